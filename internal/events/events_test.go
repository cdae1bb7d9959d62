package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ogc16/FitnessApp/internal/models"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

type publisherFunc func(ctx context.Context, event PostCreated) error

func (f publisherFunc) Publish(ctx context.Context, event PostCreated) error { return f(ctx, event) }

func TestKafkaPublisherWritesKeyedMessage(t *testing.T) {
	writer := &recordingWriter{}
	created := 0
	publisher := NewKafkaPublisher([]string{"localhost:9092"}, "")
	publisher.newWriter = func(brokers []string, topic string) messageWriter {
		created++
		require.Equal(t, DefaultTopic, topic)
		return writer
	}

	event := NewPostCreated(models.Post{ID: "p-1", UserID: "u-1", ActivityType: "Running", Duration: "00:30:00"})
	require.NoError(t, publisher.Publish(context.Background(), event))
	require.NoError(t, publisher.Publish(context.Background(), event))

	require.Equal(t, 1, created)
	require.Len(t, writer.messages, 2)
	require.Equal(t, "u-1", string(writer.messages[0].Key))
	require.Equal(t, PostCreatedEvent, string(writer.messages[0].Headers[0].Value))

	var decoded PostCreated
	require.NoError(t, json.Unmarshal(writer.messages[0].Value, &decoded))
	require.Equal(t, TypePostCreated, decoded.Type)
	require.Equal(t, "p-1", decoded.Post.ID)

	require.NoError(t, publisher.Close())
	require.True(t, writer.closed)
}

func TestKafkaPublisherWrapsWriteError(t *testing.T) {
	brokerDown := errors.New("dial tcp: connection refused")
	publisher := NewKafkaPublisher(nil, "custom")
	publisher.newWriter = func([]string, string) messageWriter {
		return &recordingWriter{err: brokerDown}
	}

	err := publisher.Publish(context.Background(), NewPostCreated(models.Post{ID: "p-1"}))
	require.ErrorIs(t, err, brokerDown)
	require.Contains(t, err.Error(), "custom")
}

func TestMultiPublishesToAllAndJoinsErrors(t *testing.T) {
	failure := errors.New("sink down")
	calls := 0
	multi := Multi{
		publisherFunc(func(context.Context, PostCreated) error { calls++; return failure }),
		nil,
		publisherFunc(func(context.Context, PostCreated) error { calls++; return nil }),
		Nop{},
	}

	err := multi.Publish(context.Background(), NewPostCreated(models.Post{ID: "p-1"}))
	require.ErrorIs(t, err, failure)
	require.Equal(t, 2, calls)
	require.NoError(t, Multi{Nop{}}.Publish(context.Background(), PostCreated{}))
}

func TestKafkaWriterIsBounded(t *testing.T) {
	writer, ok := newKafkaWriter([]string{"localhost:9092"}, DefaultTopic).(*kafka.Writer)
	require.True(t, ok)
	require.Equal(t, 2*time.Second, writer.WriteTimeout)
	require.Equal(t, 3, writer.MaxAttempts)
	require.Equal(t, 10*time.Millisecond, writer.BatchTimeout)
	require.NoError(t, writer.Close())
}
