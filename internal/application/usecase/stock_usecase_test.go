package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-monitor/internal/application/usecase"
	"github.com/jhoicas/warehouse-monitor/pkg/logger"
)

func TestStock_SumaPositiva(t *testing.T) {
	// Dos llegadas de 50 con movement_id distintos -> 100.
	repo := &fakeEventRepo{sum: 100}
	uc := usecase.NewStockUseCase(repo, logger.Nop())

	qty, err := uc.Stock(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(100), qty)
}

// Balance crudo negativo: se trunca a cero, nunca se devuelve un error.
func TestStock_BalanceNegativoTruncaACero(t *testing.T) {
	repo := &fakeEventRepo{sum: -30}
	uc := usecase.NewStockUseCase(repo, logger.Nop())

	qty, err := uc.Stock(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(0), qty)
}

func TestStock_SinFilasEsCero(t *testing.T) {
	repo := &fakeEventRepo{sum: 0}
	uc := usecase.NewStockUseCase(repo, logger.Nop())

	qty, err := uc.Stock(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(0), qty)
}

func TestStock_ErrorDelStore(t *testing.T) {
	repo := &fakeEventRepo{sumErr: errors.New("timeout")}
	uc := usecase.NewStockUseCase(repo, logger.Nop())

	_, err := uc.Stock(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)
}
