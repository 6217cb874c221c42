package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Los nombres de los constraints son parte del contrato: el repositorio los usa para
// traducir una violación 23505 al error de dominio correspondiente (ver errors.go).
const schemaDDL = `
CREATE TABLE IF NOT EXISTS movement_events (
    id           BIGSERIAL PRIMARY KEY,
    message_id   UUID        NOT NULL,
    movement_id  UUID        NOT NULL,
    warehouse_id UUID        NOT NULL,
    product_id   UUID        NOT NULL,
    timestamp    TIMESTAMPTZ NOT NULL,
    event        TEXT        NOT NULL CHECK (event IN ('arrival', 'departure')),
    quantity     BIGINT      NOT NULL CHECK (quantity >= 0),
    CONSTRAINT movement_events_message_id_key UNIQUE (message_id),
    CONSTRAINT uix_movement_id_event_type UNIQUE (movement_id, event)
);
`

// EnsureSchema ejecuta el DDL. Solo para dev/tests (DB_CREATE_SCHEMA=1); en producción
// el esquema lo gestiona la tubería de migraciones, fuera de este servicio.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("crear esquema: %w", err)
	}
	return nil
}
