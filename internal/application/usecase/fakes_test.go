package usecase_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/warehouse-monitor/internal/domain/entity"
)

// fakeEventRepo implementación en memoria del puerto de persistencia para tests.
type fakeEventRepo struct {
	appendErr error
	appended  []*entity.MovementEvent

	events  []entity.MovementEvent
	listErr error

	sum    int64
	sumErr error
}

func (f *fakeEventRepo) Append(_ context.Context, ev *entity.MovementEvent) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, ev)
	return nil
}

func (f *fakeEventRepo) ListByMovement(_ context.Context, movementID uuid.UUID) ([]entity.MovementEvent, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []entity.MovementEvent
	for _, ev := range f.events {
		if ev.MovementID == movementID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) SignedQuantitySum(_ context.Context, _, _ uuid.UUID) (int64, error) {
	if f.sumErr != nil {
		return 0, f.sumErr
	}
	return f.sum, nil
}

// fakeCache caché en memoria que registra las claves limpiadas.
type fakeCache struct {
	data     map[string][]byte
	cleared  []string
	clearErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	return f.data[key], nil
}

func (f *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	f.data[key] = value
	return nil
}

func (f *fakeCache) Clear(_ context.Context, key string) error {
	f.cleared = append(f.cleared, key)
	if f.clearErr != nil {
		return f.clearErr
	}
	delete(f.data, key)
	return nil
}
