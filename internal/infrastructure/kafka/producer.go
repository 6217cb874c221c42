package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/jhoicas/warehouse-monitor/internal/domain"
	"github.com/jhoicas/warehouse-monitor/pkg/config"
	"github.com/jhoicas/warehouse-monitor/pkg/logger"
)

// messageWriter abstrae kafka.Writer para poder falsearlo en tests.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publica mensajes en el broker. Connect usa la misma política de intentos
// acotados/delay fijo que el consumer; Send exige un Connect previo y acota la espera
// del ack con un timeout.
type Producer struct {
	cfg config.KafkaConfig
	log *logger.Logger

	dial      dialFunc
	newWriter func() messageWriter

	mu     sync.Mutex
	writer messageWriter
}

// NewProducer construye el producer (sin conectar).
func NewProducer(cfg config.KafkaConfig, log *logger.Logger) *Producer {
	p := &Producer{cfg: cfg, log: log}
	p.dial = dialBroker
	p.newWriter = func() messageWriter {
		return &kafka.Writer{
			Addr:         kafka.TCP(cfg.Broker),
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 10 * time.Millisecond,
		}
	}
	return p
}

// Connect establece la conexión con intentos acotados y delay fijo. Agotados los
// intentos devuelve domain.ErrBrokerUnavailable y el producer queda inutilizable.
func (p *Producer) Connect(ctx context.Context) error {
	for attempt := 1; attempt <= p.cfg.ConnectAttempts; attempt++ {
		err := p.dial(ctx, p.cfg.Broker)
		if err == nil {
			p.mu.Lock()
			p.writer = p.newWriter()
			p.mu.Unlock()
			p.log.Info().Str("broker", p.cfg.Broker).Msg("producer conectado")
			return nil
		}
		p.log.Warn().Err(err).
			Int("attempt", attempt).
			Int("max_attempts", p.cfg.ConnectAttempts).
			Msg("broker no listo")
		if attempt < p.cfg.ConnectAttempts {
			select {
			case <-time.After(p.cfg.ConnectDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return fmt.Errorf("%w tras %d intentos", domain.ErrBrokerUnavailable, p.cfg.ConnectAttempts)
}

// Send serializa el payload y lo publica en el tópico, esperando el ack a lo sumo
// SendTimeout. Un timeout se reporta como domain.ErrSendTimeout, distinto de un rechazo
// del broker: el mensaje pudo haber llegado. Send sobre un producer sin Connect
// devuelve domain.ErrProducerNotStarted de inmediato.
func (p *Producer) Send(ctx context.Context, topic string, payload any) error {
	p.mu.Lock()
	w := p.writer
	p.mu.Unlock()
	if w == nil {
		return domain.ErrProducerNotStarted
	}

	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("serializar mensaje: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.SendTimeout)
	defer cancel()

	if err := w.WriteMessages(ctx, kafka.Message{Topic: topic, Value: value}); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w tras %s (topic=%s)", domain.ErrSendTimeout, p.cfg.SendTimeout, topic)
		}
		return fmt.Errorf("enviar a %s: %w", topic, err)
	}
	return nil
}

// Disconnect cierra el writer y deja el producer en estado no conectado. Es idempotente
// y un error del cierre se loguea, no se propaga.
func (p *Producer) Disconnect() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.writer == nil {
		return
	}
	if err := p.writer.Close(); err != nil {
		p.log.Warn().Err(err).Msg("error cerrando el producer")
	}
	p.writer = nil
	p.log.Info().Msg("producer desconectado")
}
