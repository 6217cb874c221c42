package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	// ErrDuplicateMessageID: el message_id ya fue ingerido (entrega duplicada del broker).
	ErrDuplicateMessageID = errors.New("message_id ya registrado")
	// ErrDuplicateMovementEvent: ya existe un evento de ese tipo para el movement_id.
	ErrDuplicateMovementEvent = errors.New("evento duplicado para el movimiento")
	// ErrUnrecognizedConstraint: saltó un unique constraint que no está en la tabla de
	// mapeo; es un defecto de esquema, nunca se degrada a un duplicado conocido.
	ErrUnrecognizedConstraint = errors.New("violación de constraint no reconocida")
	// ErrMovementIncomplete: el movimiento no tiene aún departure y arrival. Estado
	// legítimo (mercancía en tránsito), no un error del store.
	ErrMovementIncomplete = errors.New("movimiento incompleto o no encontrado")
	// ErrInvalidEnvelope: el mensaje no cumple el esquema del envelope.
	ErrInvalidEnvelope = errors.New("envelope inválido")
	// ErrBrokerUnavailable: agotados los intentos de conexión al broker.
	ErrBrokerUnavailable = errors.New("broker no disponible")
	// ErrProducerNotStarted: Send antes de un Connect exitoso.
	ErrProducerNotStarted = errors.New("producer no iniciado")
	// ErrSendTimeout: el broker no confirmó el mensaje dentro del timeout. Distinto de
	// un rechazo: el broker pudo haberlo recibido.
	ErrSendTimeout = errors.New("timeout esperando ack del broker")
)
