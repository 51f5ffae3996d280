package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/BruksfildServices01/salon-comanda/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-comanda/internal/db"
	"github.com/BruksfildServices01/salon-comanda/internal/logging"
	"github.com/BruksfildServices01/salon-comanda/internal/middleware"
	"github.com/BruksfildServices01/salon-comanda/internal/routes"
)

func main() {

	_ = godotenv.Load()

	cfg := config.Load()
	logging.Setup(cfg.LogLevel)
	log := logging.WithComponent("main")

	db := dbpkg.NewDB(cfg)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg)

	log.Info().Str("addr", cfg.Addr()).Msg("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
