package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	messages []kafka.Message
	closed   bool
}

func (w *recordingWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_Envelope(t *testing.T) {
	writer := &recordingWriter{}
	p := &kafkaPublisher{writer: writer}

	event := NewEvent(EventXrayClassified, "17", map[string]any{"prediction": "Pneumonia"})
	require.NoError(t, p.Publish(context.Background(), event))
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, "17", string(msg.Key))
	assert.Equal(t, EventXrayClassified, string(msg.Headers[0].Value))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, EventXrayClassified, decoded["type"])
	assert.Equal(t, "Pneumonia", decoded["payload"].(map[string]any)["prediction"])

	require.NoError(t, p.Close())
	assert.True(t, writer.closed)
}

func TestNewKafkaPublisher_RequiresBrokers(t *testing.T) {
	_, err := NewKafkaPublisher(nil, "topic")
	assert.Error(t, err)
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetLevel(logrus.DebugLevel)

	p := NewLogPublisher(log)
	require.NoError(t, p.Publish(context.Background(), NewEvent(EventReportCreated, "3", nil)))
	assert.Contains(t, buf.String(), EventReportCreated)
}
