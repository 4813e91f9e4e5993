package event

import (
	"context"
	"errors"
	"fmt"

	"orders-hertz/biz/model"
	"orders-hertz/conf"

	"github.com/cloudwego/hertz/pkg/common/json"
	"github.com/segmentio/kafka-go"
)

var ErrNoBrokers = errors.New("kafka brokers not configured")

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes order-created events keyed by symbol, so one
// symbol's events land on one partition.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

func NewKafkaPublisher(cfg conf.Kafka) (*KafkaPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrNoBrokers
	}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		Async:                  true,
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: writer, topic: cfg.Topic}, nil
}

// CheckKafkaConnection dials the first broker once.
func CheckKafkaConnection(ctx context.Context, cfg conf.Kafka) error {
	if len(cfg.Brokers) == 0 {
		return ErrNoBrokers
	}
	conn, err := kafka.DialContext(ctx, "tcp", cfg.Brokers[0])
	if err != nil {
		return fmt.Errorf("connect to kafka %s: %w", cfg.Brokers[0], err)
	}
	return conn.Close()
}

func (p *KafkaPublisher) PublishOrderCreated(ctx context.Context, ev *model.OrderCreatedEvent) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(ev.Order.Symbol),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write to %s: %w", p.topic, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
