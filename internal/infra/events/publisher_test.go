package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestPublish(t *testing.T) {
	w := &fakeWriter{}
	p := NewKafkaPublisherWithWriter(w, nopLogger{})
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	e := New(TypeBookingCancelled, "booking:5", 7, map[string]int64{"bookingId": 5}, now)
	require.NoError(t, p.Publish(context.Background(), e))

	require.Len(t, w.messages, 1)
	msg := w.messages[0]
	assert.Equal(t, "booking:5", string(msg.Key))
	assert.Equal(t, "event-type", msg.Headers[0].Key)
	assert.Equal(t, TypeBookingCancelled, string(msg.Headers[0].Value))

	var decoded Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, e.ID, decoded.ID)
	assert.Equal(t, int64(7), decoded.UserID)
}

func TestPublish_Errors(t *testing.T) {
	p := NewKafkaPublisherWithWriter(&fakeWriter{err: errors.New("broker down")}, nopLogger{})

	err := p.Publish(context.Background(), New(TypeBookingRated, "booking:1", 1, nil, time.Now()))
	assert.ErrorIs(t, err, ErrPublish)

	err = p.Publish(context.Background(), New(TypeBookingRated, "", 1, nil, time.Now()))
	assert.ErrorIs(t, err, ErrEmptyKey)
}

func TestNewKafkaPublisher_Validation(t *testing.T) {
	_, err := NewKafkaPublisher(WriterConfig{Topic: "t"}, nopLogger{})
	assert.ErrorIs(t, err, ErrNoBrokers)

	_, err = NewKafkaPublisher(WriterConfig{Brokers: []string{"localhost:9092"}}, nopLogger{})
	assert.ErrorIs(t, err, ErrEmptyTopic)
}
