package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event types for the content stream
const (
	EventContentViewed  = "content_viewed"
	EventContentDeleted = "content_deleted"
)

// Stream names
const (
	StreamContent = "stream:content"
)

// Consumer group name for content workers
const (
	ConsumerGroupContent = "content_workers"
)

// ContentEvent is published to the content stream after a read or write that
// has deferred side effects.
type ContentEvent struct {
	Type      string    `json:"type"`
	Timestamp int64     `json:"timestamp"`
	ContentID uuid.UUID `json:"content_id"`

	// Content deleted
	UserID    uuid.UUID `json:"user_id,omitempty"`
	MediaKeys []string  `json:"media_keys,omitempty"`
}

// NewContentViewedEvent asks a worker to increment the view counter.
func NewContentViewedEvent(contentID uuid.UUID) ContentEvent {
	return ContentEvent{
		Type:      EventContentViewed,
		Timestamp: time.Now().Unix(),
		ContentID: contentID,
	}
}

// NewContentDeletedEvent asks a worker to remove the stored media objects.
func NewContentDeletedEvent(contentID, userID uuid.UUID, mediaKeys ...string) ContentEvent {
	return ContentEvent{
		Type:      EventContentDeleted,
		Timestamp: time.Now().Unix(),
		ContentID: contentID,
		UserID:    userID,
		MediaKeys: mediaKeys,
	}
}

// ToMap converts the event to field-value pairs for XADD. The payload is
// JSON in a "data" field.
func (e ContentEvent) ToMap() (map[string]interface{}, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return map[string]interface{}{
		"type": e.Type,
		"data": string(data),
	}, nil
}

// ParseContentEvent parses a ContentEvent from stream message values.
func ParseContentEvent(values map[string]interface{}) (ContentEvent, error) {
	data, ok := values["data"].(string)
	if !ok {
		return ContentEvent{}, fmt.Errorf("missing or invalid 'data' field")
	}

	var event ContentEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return ContentEvent{}, fmt.Errorf("unmarshal event: %w", err)
	}
	return event, nil
}
