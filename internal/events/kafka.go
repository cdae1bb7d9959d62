package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

const DefaultTopic = "post_events"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes post events to a single topic. The writer is created
// on first use so a down broker does not block startup.
type KafkaPublisher struct {
	brokers   []string
	topic     string
	mu        sync.Mutex
	writer    messageWriter
	newWriter func(brokers []string, topic string) messageWriter
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &KafkaPublisher{
		brokers:   brokers,
		topic:     topic,
		newWriter: newKafkaWriter,
	}
}

func newKafkaWriter(brokers []string, topic string) messageWriter {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Compression:  kafka.Snappy,
		Async:        false,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 2 * time.Second,
		MaxAttempts:  3,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event PostCreated) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s: %w", PostCreatedEvent, err)
	}

	msg := kafka.Message{
		Key:   []byte(event.Post.UserID),
		Value: payload,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(PostCreatedEvent)},
		},
	}
	if err := p.writerForTopic().WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s to %s: %w", PostCreatedEvent, p.topic, err)
	}
	return nil
}

func (p *KafkaPublisher) writerForTopic() messageWriter {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.writer == nil {
		p.writer = p.newWriter(p.brokers, p.topic)
	}
	return p.writer
}

func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.writer == nil {
		return nil
	}
	err := p.writer.Close()
	p.writer = nil
	return err
}
