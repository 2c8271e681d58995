package todo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	redisstore "github.com/taskgrove/taskgrove/internal/store/redis"
)

// Publisher fans mutation events out to live subscribers.
// *redis.PubSub satisfies this interface.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// Event describes one committed mutation on a list. Changed carries the ids
// whose completed state flipped during a toggle cascade so clients can
// refresh minimal state.
type Event struct {
	Type    string      `json:"type"`
	ListID  uuid.UUID   `json:"list_id"`
	TaskID  *uuid.UUID  `json:"task_id,omitempty"`
	Changed []uuid.UUID `json:"changed,omitempty"`
	At      time.Time   `json:"at"`
}

const (
	EventListCreated  = "list.created"
	EventListDeleted  = "list.deleted"
	EventTaskCreated  = "task.created"
	EventTaskUpdated  = "task.updated"
	EventTaskToggled  = "task.toggled"
	EventTaskMoved    = "task.moved"
	EventTaskDeleted  = "task.deleted"
	EventTaskReparent = "task.reparented"
)

// publish sends an event on the list's channel. Delivery is best effort:
// a failed publish is logged, never surfaced to the mutating caller.
func (s *Service) publish(ctx context.Context, userID uuid.UUID, e Event) {
	if s.events == nil {
		return
	}
	e.At = time.Now()
	payload, err := json.Marshal(e)
	if err != nil {
		log.Warn().Err(err).Str("type", e.Type).Msg("todo: marshal event")
		return
	}
	channel := redisstore.ListChannel(userID, e.ListID)
	if err := s.events.Publish(ctx, channel, payload); err != nil {
		log.Warn().Err(err).Str("channel", channel).Msg("todo: publish event")
	}
}
