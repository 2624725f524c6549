package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"discovery-service/internal/adapters/catalog"
	"discovery-service/internal/contextkeys"
	"discovery-service/internal/contracts"
	"discovery-service/internal/core/domain"
	"discovery-service/internal/core/port"
	usecases_port "discovery-service/internal/core/port/usecases_port"
)

const reconnectDelay = 5 * time.Second

type ConsumerConfig struct {
	URL           string
	Exchange      string
	Queue         string
	RoutingKey    string
	ConsumerTag   string
	PrefetchCount int
}

// eventEnvelope - общий конверт всех событий каталога.
type eventEnvelope struct {
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
}

// archivePayload - полезная нагрузка listing_archived.
type archivePayload struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// ListingEventsConsumer - входящий адаптер: слушает очередь событий
// объявлений и применяет их к каталогу через use case.
type ListingEventsConsumer struct {
	cfg     ConsumerConfig
	useCase usecases_port.ApplyListingEventUseCase
	logger  port.LoggerPort
}

func NewListingEventsConsumer(cfg ConsumerConfig, useCase usecases_port.ApplyListingEventUseCase, logger port.LoggerPort) (*ListingEventsConsumer, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("rabbitmq consumer: URL is required")
	}
	if cfg.Queue == "" {
		return nil, fmt.Errorf("rabbitmq consumer: queue name is required")
	}
	if cfg.PrefetchCount <= 0 {
		cfg.PrefetchCount = 1
	}
	return &ListingEventsConsumer{
		cfg:     cfg,
		useCase: useCase,
		logger:  logger.WithFields(port.Fields{"component": "listing_events_consumer"}),
	}, nil
}

// Listen держит подписку до отмены контекста, переподключаясь после
// обрывов соединения.
func (c *ListingEventsConsumer) Listen(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		if err := c.consumeOnce(ctx); err != nil {
			c.logger.Error("Consumer connection lost, will reconnect", err, port.Fields{
				"delay_sec": reconnectDelay.Seconds(),
			})
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func (c *ListingEventsConsumer) consumeOnce(ctx context.Context) error {
	conn, err := amqp.Dial(c.cfg.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.Qos(c.cfg.PrefetchCount, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	if c.cfg.Exchange != "" {
		if err := ch.ExchangeDeclare(c.cfg.Exchange, "direct", true, false, false, false, nil); err != nil {
			return fmt.Errorf("failed to declare exchange: %w", err)
		}
	}

	queue, err := ch.QueueDeclare(c.cfg.Queue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	if c.cfg.Exchange != "" {
		if err := ch.QueueBind(queue.Name, c.cfg.RoutingKey, c.cfg.Exchange, false, nil); err != nil {
			return fmt.Errorf("failed to bind queue: %w", err)
		}
	}

	deliveries, err := ch.Consume(queue.Name, c.cfg.ConsumerTag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	c.logger.Info("Listening for listing events", port.Fields{"queue": queue.Name})

	for {
		select {
		case <-ctx.Done():
			return nil
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			c.handleDelivery(ctx, delivery)
		}
	}
}

func (c *ListingEventsConsumer) handleDelivery(ctx context.Context, delivery amqp.Delivery) {
	msgCtx := contextkeys.ContextWithLogger(ctx, c.logger)

	event, err := decodeListingEvent(delivery.Body)
	if err != nil {
		// Кривое сообщение не вернется в очередь - его доедает DLQ.
		c.logger.Error("Rejecting malformed listing event", err, nil)
		_ = delivery.Nack(false, false)
		return
	}

	if err := c.useCase.Execute(msgCtx, *event); err != nil {
		c.logger.Error("Failed to apply listing event", err, nil)
		_ = delivery.Nack(false, false)
		return
	}

	_ = delivery.Ack(false)
}

// decodeListingEvent валидирует сырое сообщение против схемы контракта
// и приводит его к доменному событию.
func decodeListingEvent(body []byte) (*domain.ListingEvent, error) {
	var envelope eventEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("event envelope is not valid JSON: %w", err)
	}

	if err := contracts.Validate(envelope.EventType, body); err != nil {
		return nil, err
	}

	switch domain.ListingEventKind(envelope.EventType) {
	case domain.ListingUpserted:
		var raw catalog.RawListing
		if err := json.Unmarshal(envelope.Payload, &raw); err != nil {
			return nil, fmt.Errorf("failed to decode listing payload: %w", err)
		}
		rec := catalog.MapRawListing(raw)
		return &domain.ListingEvent{Kind: domain.ListingUpserted, Record: &rec}, nil

	case domain.ListingArchived:
		var payload archivePayload
		if err := json.Unmarshal(envelope.Payload, &payload); err != nil {
			return nil, fmt.Errorf("failed to decode archive payload: %w", err)
		}
		return &domain.ListingEvent{Kind: domain.ListingArchived, PropertyID: payload.ID}, nil
	}

	return nil, fmt.Errorf("unknown event type %q", envelope.EventType)
}
