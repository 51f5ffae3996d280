package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATEs das constraints que o banco impõe por baixo da aplicação.
const (
	pgExclusionViolation = "23P01"
	pgUniqueViolation    = "23505"
	pgCheckViolation     = "23514"
)

// IsExclusionConflict reporta se o erro veio da constraint de exclusão
// de horários (dois agendamentos concorrentes para o mesmo profissional).
func IsExclusionConflict(err error) bool {
	return hasSQLState(err, pgExclusionViolation)
}

func IsUniqueViolation(err error) bool {
	return hasSQLState(err, pgUniqueViolation)
}

func IsCheckViolation(err error) bool {
	return hasSQLState(err, pgCheckViolation)
}

func hasSQLState(err error, state string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == state
	}
	return false
}
