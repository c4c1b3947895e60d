package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// MessageWriter часть kafka.Writer, которой пользуется издатель
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher публикует события в топик Kafka
type KafkaPublisher struct {
	writer MessageWriter
	log    Logger
}

// WriterConfig параметры kafka.Writer
type WriterConfig struct {
	Brokers      []string
	Topic        string
	MaxAttempts  int
	BatchTimeout time.Duration
}

func NewKafkaPublisher(cfg WriterConfig, log Logger) (*KafkaPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrNoBrokers
	}
	if cfg.Topic == "" {
		return nil, ErrEmptyTopic
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  cfg.MaxAttempts,
		BatchTimeout: cfg.BatchTimeout,
		Logger:       kafka.LoggerFunc(func(string, ...any) {}),
		ErrorLogger:  kafka.LoggerFunc(log.Error),
	}

	return NewKafkaPublisherWithWriter(writer, log), nil
}

func NewKafkaPublisherWithWriter(writer MessageWriter, log Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, log: log}
}

// Publish синхронно записывает событие
func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	if e.Key == "" {
		return ErrEmptyKey
	}

	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("%w: type=%s: %v", ErrMarshal, e.Type, err)
	}

	msg := kafka.Message{
		Key:   []byte(e.Key),
		Value: value,
		Time:  e.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(e.Type)},
			{Key: "event-id", Value: []byte(e.ID)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("Failed to publish event: type=%s, key=%s, error=%v", e.Type, e.Key, err)
		return fmt.Errorf("%w: type=%s: %v", ErrPublish, e.Type, err)
	}

	p.log.Info("Event published: type=%s, key=%s, id=%s", e.Type, e.Key, e.ID)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher используется, когда Kafka выключена в конфигурации
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() error { return nil }
