package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
)

// EventPublisher defines the interface for publishing attempt events
type EventPublisher interface {
	PublishAttemptEvent(ctx context.Context, event *AttemptEvent) error
	Close() error
}

// partitionKeyMetadata routes every event of one attempt to the same Kafka
// partition, so consumers see attempt.started before attempt.completed.
const partitionKeyMetadata = "attempt_id"

// AttemptPublisher implements EventPublisher on top of a Watermill publisher
type AttemptPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
	topicName string
}

// PublisherConfig holds configuration for the event publisher
type PublisherConfig struct {
	KafkaBrokers []string
	TopicName    string
	Logger       *slog.Logger
}

// NewKafkaEventPublisher creates an AttemptPublisher backed by Kafka, keyed by attempt
func NewKafkaEventPublisher(config PublisherConfig) (*AttemptPublisher, error) {
	logger := watermill.NewSlogLogger(config.Logger)

	publisher, err := kafka.NewPublisher(kafka.PublisherConfig{
		Brokers: config.KafkaBrokers,
		Marshaler: kafka.NewWithPartitioningMarshaler(func(_ string, msg *message.Message) (string, error) {
			return msg.Metadata.Get(partitionKeyMetadata), nil
		}),
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka publisher: %w", err)
	}

	return NewEventPublisher(publisher, config.TopicName, config.Logger), nil
}

// NewEventPublisher wraps any Watermill publisher, e.g. the gochannel pub/sub in tests
func NewEventPublisher(publisher message.Publisher, topicName string, logger *slog.Logger) *AttemptPublisher {
	return &AttemptPublisher{
		publisher: publisher,
		logger:    logger,
		topicName: topicName,
	}
}

// PublishAttemptEvent publishes an attempt event to the configured topic
func (p *AttemptPublisher) PublishAttemptEvent(ctx context.Context, event *AttemptEvent) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal attempt event: %w", err)
	}

	msg := message.NewMessage(event.ID, eventBytes)
	msg.SetContext(ctx)

	msg.Metadata.Set(partitionKeyMetadata, event.AttemptID)
	msg.Metadata.Set("event_type", string(event.Type))
	msg.Metadata.Set("source", event.Source)
	msg.Metadata.Set("version", event.Version)
	msg.Metadata.Set("timestamp", event.Timestamp.Format(time.RFC3339))

	if err := p.publisher.Publish(p.topicName, msg); err != nil {
		p.logger.Error("Failed to publish attempt event",
			"event_id", event.ID,
			"attempt_id", event.AttemptID,
			"event_type", event.Type,
			"error", err)
		return fmt.Errorf("failed to publish attempt event: %w", err)
	}

	p.logger.Info("Published attempt event",
		"event_id", event.ID,
		"attempt_id", event.AttemptID,
		"event_type", event.Type,
		"topic", p.topicName)

	return nil
}

// Close closes the publisher and releases resources
func (p *AttemptPublisher) Close() error {
	return p.publisher.Close()
}

// MockEventPublisher keeps published events in memory
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []AttemptEvent
	Logger *slog.Logger
}

// NewMockEventPublisher creates a new mock event publisher
func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	return &MockEventPublisher{
		Events: make([]AttemptEvent, 0),
		Logger: logger,
	}
}

// PublishAttemptEvent stores the event in memory
func (m *MockEventPublisher) PublishAttemptEvent(ctx context.Context, event *AttemptEvent) error {
	m.mu.Lock()
	m.Events = append(m.Events, *event)
	m.mu.Unlock()

	m.Logger.Info("Mock: Published attempt event",
		"event_id", event.ID,
		"event_type", event.Type)
	return nil
}

// Close is a no-op for the mock publisher
func (m *MockEventPublisher) Close() error {
	return nil
}

// GetPublishedEvents returns a copy of all published events
func (m *MockEventPublisher) GetPublishedEvents() []AttemptEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]AttemptEvent(nil), m.Events...)
}

// EventsFor returns the events published for one attempt, in order
func (m *MockEventPublisher) EventsFor(attemptID string) []AttemptEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []AttemptEvent
	for _, e := range m.Events {
		if e.AttemptID == attemptID {
			out = append(out, e)
		}
	}
	return out
}

// ClearEvents clears all published events
func (m *MockEventPublisher) ClearEvents() {
	m.mu.Lock()
	m.Events = make([]AttemptEvent, 0)
	m.mu.Unlock()
}
