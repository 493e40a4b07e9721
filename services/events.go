package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/kendall-kelly/cafe-tropis-api/config"
	"github.com/kendall-kelly/cafe-tropis-api/models"
)

// Order event types
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderEvent is broadcast to kitchen displays and notifiers when an order changes
type OrderEvent struct {
	Type         string             `json:"type"`
	OrderID      string             `json:"order_id"`
	Status       models.OrderStatus `json:"status"`
	CustomerName string             `json:"customer_name"`
	Date         string             `json:"date"`
	Time         string             `json:"time"`
	TotalPrice   int64              `json:"total_price"`
	ItemCount    int                `json:"item_count"`
	OccurredAt   time.Time          `json:"occurred_at"`
}

// NewOrderEvent describes order as an event of eventType
func NewOrderEvent(eventType string, order *models.Order, now time.Time) OrderEvent {
	count := 0
	for _, item := range order.Items {
		count += item.Quantity
	}
	return OrderEvent{
		Type:         eventType,
		OrderID:      order.ID,
		Status:       order.Status,
		CustomerName: order.CustomerName,
		Date:         order.Date,
		Time:         order.Time,
		TotalPrice:   order.TotalPrice,
		ItemCount:    count,
		OccurredAt:   now.UTC(),
	}
}

// EventPublisher delivers order events to a broker
type EventPublisher interface {
	Publish(ctx context.Context, event OrderEvent) error
	Close() error
}

// NewEventPublisher builds the publisher selected by EVENT_BROKER
func NewEventPublisher(cfg *config.Config) (EventPublisher, error) {
	switch cfg.EventBroker {
	case "kafka":
		return NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	case "rabbitmq":
		return NewRabbitMQPublisher(cfg.RabbitMQURL, cfg.RabbitMQExchange)
	case "", "none":
		return NoopPublisher{}, nil
	}
	return nil, fmt.Errorf("unknown event broker %q", cfg.EventBroker)
}

// NoopPublisher drops every event
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, event OrderEvent) error { return nil }
func (NoopPublisher) Close() error                                         { return nil }

// KafkaPublisher writes events to a Kafka topic keyed by order id
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewKafkaPublisher connects a synchronous producer to brokers
func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Return.Successes = true
	cfg.Producer.Timeout = 5 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to start Kafka producer: %w", err)
	}
	return NewKafkaPublisherWithProducer(producer, topic), nil
}

// NewKafkaPublisherWithProducer wraps an existing producer
func NewKafkaPublisherWithProducer(producer sarama.SyncProducer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.OrderID),
		Value: sarama.ByteEncoder(body),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.Type)},
		},
	}
	if _, _, err := p.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("failed to send order event to Kafka topic %s: %w", p.topic, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// amqpChannel is the part of *amqp.Channel the publisher needs
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitMQPublisher publishes events on a topic exchange, routed by event type
type RabbitMQPublisher struct {
	conn     *amqp.Connection
	channel  amqpChannel
	exchange string
}

// NewRabbitMQPublisher dials url and declares a durable topic exchange
func NewRabbitMQPublisher(url, exchange string) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	return &RabbitMQPublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

func (p *RabbitMQPublisher) Publish(ctx context.Context, event OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(ctx, p.exchange, event.Type, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.OrderID,
		Timestamp:    event.OccurredAt,
		Type:         event.Type,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish order event to exchange %s: %w", p.exchange, err)
	}
	return nil
}

func (p *RabbitMQPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		return err
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
