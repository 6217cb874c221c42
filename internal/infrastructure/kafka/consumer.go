package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/jhoicas/warehouse-monitor/internal/application/dto"
	"github.com/jhoicas/warehouse-monitor/internal/domain"
	"github.com/jhoicas/warehouse-monitor/pkg/config"
	"github.com/jhoicas/warehouse-monitor/pkg/logger"
)

// EventHandler procesa un envelope ya validado. Lo implementa usecase.IngestUseCase.
type EventHandler interface {
	HandleEnvelope(ctx context.Context, env dto.Envelope) error
}

// messageReader abstrae kafka.Reader para poder falsearlo en tests.
type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type dialFunc func(ctx context.Context, broker string) error

// Consumer es el loop de ingesta: sesión de consumo contra el broker con intentos
// acotados, despacho concurrente acotado por mensaje y drenaje con espera acotada en
// el apagado. El group id fijo hace que varias instancias se repartan particiones sin
// procesar dos veces la misma.
type Consumer struct {
	cfg     config.KafkaConfig
	log     *logger.Logger
	handler EventHandler

	dial      dialFunc
	newReader func() messageReader

	inflight chan struct{} // semáforo: acota los despachos en vuelo
	wg       sync.WaitGroup
}

// NewConsumer construye el consumer.
func NewConsumer(cfg config.KafkaConfig, log *logger.Logger, handler EventHandler) *Consumer {
	c := &Consumer{
		cfg:      cfg,
		log:      log,
		handler:  handler,
		inflight: make(chan struct{}, cfg.MaxInflight),
	}
	c.dial = dialBroker
	c.newReader = func() messageReader {
		return kafka.NewReader(kafka.ReaderConfig{
			Brokers:     []string{cfg.Broker},
			Topic:       cfg.Topic,
			GroupID:     cfg.GroupID,
			StartOffset: kafka.FirstOffset,
		})
	}
	return c
}

func dialBroker(ctx context.Context, broker string) error {
	conn, err := kafka.DialContext(ctx, "tcp", broker)
	if err != nil {
		return err
	}
	return conn.Close()
}

// connect establece la sesión con intentos acotados y delay fijo entre intentos.
// Agotados los intentos devuelve domain.ErrBrokerUnavailable: el proceso termina y el
// supervisor lo reinicia, nunca se reintenta indefinidamente.
func (c *Consumer) connect(ctx context.Context) (messageReader, error) {
	for attempt := 1; attempt <= c.cfg.ConnectAttempts; attempt++ {
		err := c.dial(ctx, c.cfg.Broker)
		if err == nil {
			c.log.Info().
				Str("broker", c.cfg.Broker).
				Str("topic", c.cfg.Topic).
				Str("group_id", c.cfg.GroupID).
				Msg("conectado al broker")
			return c.newReader(), nil
		}
		c.log.Warn().Err(err).
			Int("attempt", attempt).
			Int("max_attempts", c.cfg.ConnectAttempts).
			Msg("broker no listo")
		if attempt < c.cfg.ConnectAttempts {
			select {
			case <-time.After(c.cfg.ConnectDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, fmt.Errorf("%w tras %d intentos", domain.ErrBrokerUnavailable, c.cfg.ConnectAttempts)
}

// Run conecta y consume hasta que ctx se cancele o falle la conexión con el broker.
// Un mensaje malformado se loguea y se descarta; un error procesando un mensaje no
// termina el loop ni los demás despachos. Al salir se drenan los despachos en vuelo y
// se libera la sesión.
func (c *Consumer) Run(ctx context.Context) error {
	reader, err := c.connect(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := reader.Close(); err != nil {
			c.log.Warn().Err(err).Msg("error cerrando el reader")
		}
	}()

	c.log.Info().Msg("loop de ingesta iniciado")

	var readErr error
	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				c.log.Info().Msg("apagado solicitado, se deja de leer")
			} else {
				readErr = fmt.Errorf("leer del broker: %w", err)
				c.log.Error().Err(err).Msg("fallo de conexión leyendo del broker")
			}
			break
		}

		env, err := dto.ParseEnvelope(msg.Value)
		if err != nil {
			c.log.Warn().Err(err).
				Int("partition", msg.Partition).
				Int64("offset", msg.Offset).
				Msg("envelope inválido, mensaje descartado")
			continue
		}

		c.dispatch(ctx, env)
	}

	c.drain()
	return readErr
}

// dispatch procesa el envelope como unidad de trabajo independiente, acotada por el
// semáforo y registrada en el WaitGroup. El handler recibe un contexto que sobrevive a
// la cancelación del loop: lo ya despachado corre hasta el final para no dejar
// escrituras a medias.
func (c *Consumer) dispatch(ctx context.Context, env dto.Envelope) {
	c.inflight <- struct{}{}
	c.wg.Add(1)

	handlerCtx := context.WithoutCancel(ctx)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				c.log.Error().
					Interface("panic", r).
					Str("message_id", env.ID.String()).
					Msg("pánico procesando evento")
			}
			<-c.inflight
			c.wg.Done()
		}()

		if err := c.handler.HandleEnvelope(handlerCtx, env); err != nil {
			if errors.Is(err, domain.ErrDuplicateMessageID) || errors.Is(err, domain.ErrDuplicateMovementEvent) {
				c.log.Warn().Err(err).
					Str("message_id", env.ID.String()).
					Msg("evento rechazado por duplicado")
				return
			}
			c.log.Error().Err(err).
				Str("message_id", env.ID.String()).
				Str("movement_id", env.Data.MovementID.String()).
				Msg("error procesando evento")
		}
	}()
}

// drain espera a que terminen los despachos en vuelo, con cota superior.
func (c *Consumer) drain() {
	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		c.log.Info().Msg("despachos en vuelo completados")
	case <-time.After(c.cfg.ShutdownTimeout):
		c.log.Warn().
			Dur("timeout", c.cfg.ShutdownTimeout).
			Msg("timeout drenando despachos en vuelo")
	}
}
