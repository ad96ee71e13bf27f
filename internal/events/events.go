// Package events publishes catalog changes to Kafka.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"storefront/internal/config"
)

const (
	ProductCreated = "product_created"
	ProductUpdated = "product_updated"
	ProductDeleted = "product_deleted"
	SettingUpdated = "setting_updated"
)

type Message struct {
	EventType string      `json:"event_type"`
	Data      interface{} `json:"data"`
}

// Publisher never fails the caller: delivery problems are only logged.
type Publisher interface {
	Publish(ctx context.Context, eventType string, data interface{})
	Close() error
}

type Noop struct{}

func (Noop) Publish(context.Context, string, interface{}) {}
func (Noop) Close() error                                { return nil }

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer  messageWriter
	timeout time.Duration
}

func NewKafkaPublisher(conf config.KafkaConfig) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(conf.BrokerAddress),
			Topic:                  conf.BrokerTopic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
			// одно событие на запрос: не ждать заполнения батча
			BatchSize:              1,
			BatchTimeout:           10 * time.Millisecond,
		},
		timeout: 5 * time.Second,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, eventType string, data interface{}) {
	msg, err := json.Marshal(Message{EventType: eventType, Data: data})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "KafkaPublisher.Publish").Msg("failed to marshal event")
		return
	}

	// событие не должно зависеть от отмены HTTP-запроса
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	if err := p.writer.WriteMessages(wctx, kafka.Message{Key: []byte(eventType), Value: msg}); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "KafkaPublisher.Publish").Str("event_type", eventType).Msg("failed to write event")
	}
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
