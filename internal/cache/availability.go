package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/salon-comanda/internal/logging"
)

// Availability guarda as grades de horários livres calculadas, uma hash
// por profissional/dia (campo = duração em minutos). Toda mutação de
// agenda derruba a hash do dia. Nil desativa o cache.
type Availability struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAvailability(addr string) *Availability {
	if addr == "" {
		return nil
	}

	return &Availability{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		ttl: 5 * time.Minute,
	}
}

func dayKey(employeeID uint, day string) string {
	return fmt.Sprintf("availability:%d:%s", employeeID, day)
}

func (c *Availability) Get(ctx context.Context, employeeID uint, day string, durationMin int, dest any) bool {
	if c == nil {
		return false
	}

	raw, err := c.rdb.HGet(ctx, dayKey(employeeID, day), fmt.Sprint(durationMin)).Result()
	if err != nil {
		return false
	}

	return json.Unmarshal([]byte(raw), dest) == nil
}

func (c *Availability) Set(ctx context.Context, employeeID uint, day string, durationMin int, value any) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}

	key := dayKey(employeeID, day)
	pipe := c.rdb.Pipeline()
	pipe.HSet(ctx, key, fmt.Sprint(durationMin), raw)
	pipe.Expire(ctx, key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		logging.WithComponent("cache").Warn().Err(err).Msg("availability cache write failed")
	}
}

// InvalidateDay derruba a grade do profissional para o dia informado
// (formato 2006-01-02). Falha de cache é soft: só loga.
func (c *Availability) InvalidateDay(ctx context.Context, employeeID uint, day string) {
	if c == nil {
		return
	}

	if err := c.rdb.Del(ctx, dayKey(employeeID, day)).Err(); err != nil {
		logging.WithComponent("cache").Warn().Err(err).Msg("availability cache invalidation failed")
	}
}
