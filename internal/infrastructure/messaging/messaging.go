// Package messaging publishes domain events for downstream consumers.
package messaging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	EventXrayClassified   = "xray.classified"
	EventXrayReviewed     = "xray.reviewed"
	EventReportCreated    = "report.created"
	EventTreatmentCreated = "treatment.created"
)

// Event is the envelope written to the broker.
type Event struct {
	Type       string    `json:"type"`
	Key        string    `json:"key"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

func NewEvent(eventType, key string, payload any) Event {
	return Event{Type: eventType, Key: key, OccurredAt: time.Now().UTC(), Payload: payload}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type logPublisher struct {
	log *logrus.Logger
}

// NewLogPublisher records events in the application log only.
func NewLogPublisher(log *logrus.Logger) Publisher {
	return &logPublisher{log: log}
}

func (p *logPublisher) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	p.log.WithFields(logrus.Fields{"event": event.Type, "key": event.Key}).Debug(string(body))
	return nil
}

func (p *logPublisher) Close() error { return nil }
