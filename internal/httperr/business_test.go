package httperr

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyTx(t *testing.T) {
	assert.NoError(t, ClassifyTx(nil))

	// erro de negócio atravessa sem embrulho
	biz := ErrConflict("time_conflict", "Conflito de horário.")
	assert.Equal(t, biz, ClassifyTx(biz))

	// falha crua do driver vira erro de transação, causa preservada
	cause := errors.New("connection reset by peer")
	err := ClassifyTx(cause)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindTransaction))
	assert.True(t, IsBusiness(err, "transaction_failed"))
	assert.ErrorIs(t, err, cause)
}

func TestClassifyTxCheckViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23514"}

	err := ClassifyTx(pgErr)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindConflict))
	assert.True(t, IsBusiness(err, "constraint_violation"))
	assert.ErrorIs(t, err, pgErr)
}

func TestIsKindFollowsChain(t *testing.T) {
	inner := Database("database_error", "Erro de acesso ao banco.", errors.New("timeout"))
	assert.True(t, IsKind(inner, KindDatabase))
	assert.False(t, IsKind(errors.New("plain"), KindDatabase))
}
