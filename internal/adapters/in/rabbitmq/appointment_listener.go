package rabbitmq

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/FightogFitness/fightogfitness-display/internal/config"
	"github.com/FightogFitness/fightogfitness-display/internal/core/domain"
	"github.com/FightogFitness/fightogfitness-display/internal/core/ports/in"
	"github.com/FightogFitness/fightogfitness-display/internal/core/ports/out"
)

// AppointmentListener - альтернативный путь доставки тех же событий GHL через
// очередь вместо вебхука. Тело сообщения - тот же JSON, что и у вебхука.
type AppointmentListener struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	useCase in.BoardUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

func NewAppointmentListener(useCase in.BoardUseCase, cfg *config.Config, logger out.LoggerPort) (*AppointmentListener, error) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
			"url":   cfg.RabbitMQ.URL,
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &AppointmentListener{
		conn:    conn,
		channel: channel,
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

func (l *AppointmentListener) Start(ctx context.Context) error {
	queue, err := l.channel.QueueDeclare(
		l.cfg.RabbitMQ.Queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				if err := l.processMessage(ctx, msg); err != nil {
					msg.Nack(false, true) // requeue message
					continue
				}
				msg.Ack(false)
			}
		}
	}()

	l.logger.Info("appointment.queue.started", out.LogFields{
		"queue": queue.Name,
	})

	return nil
}

func (l *AppointmentListener) processMessage(ctx context.Context, msg amqp.Delivery) error {
	var payload domain.WebhookPayload
	if err := json.Unmarshal(msg.Body, &payload); err != nil {
		l.logger.Warn("appointment.message.malformed", out.LogFields{
			"error":     err.Error(),
			"msgString": string(msg.Body),
		})
		// Нечитаемое сообщение перекладывать в очередь обратно бессмысленно
		return nil
	}

	outcome, err := l.useCase.IngestEvent(ctx, payload)
	if err != nil {
		return err
	}

	l.logger.Info("appointment.message.processed", out.LogFields{
		"outcome":   outcome,
		"msgString": string(msg.Body),
	})

	return nil
}

func (l *AppointmentListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}
