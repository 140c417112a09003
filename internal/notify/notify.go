package notify

import (
	"sync"
	"time"

	evbus "github.com/asaskevich/EventBus"
	"github.com/rs/zerolog"

	"github.com/Malithmadhushantha/asali-frontend/internal/ids"
)

// Transient user-facing feedback, the toast equivalent. Managers
// publish, views subscribe or poll the buffer.

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

const (
	TopicSuccess = "notice:success"
	TopicError   = "notice:error"
)

type Notice struct {
	ID      string    `json:"id"`
	Kind    Kind      `json:"kind"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

type Bus struct {
	bus evbus.Bus
	log zerolog.Logger

	mu      sync.Mutex
	pending []Notice
}

func New(log zerolog.Logger) *Bus {
	return &Bus{
		bus: evbus.New(),
		log: log,
	}
}

func (b *Bus) Success(message string) {
	b.publish(TopicSuccess, KindSuccess, message)
}

func (b *Bus) Error(message string) {
	b.publish(TopicError, KindError, message)
}

func (b *Bus) publish(topic string, kind Kind, message string) {
	notice := Notice{
		ID:      ids.New(),
		Kind:    kind,
		Message: message,
		At:      time.Now(),
	}

	b.mu.Lock()
	b.pending = append(b.pending, notice)
	b.mu.Unlock()

	b.log.Debug().Str("kind", string(kind)).Str("message", message).Msg("notice")
	b.bus.Publish(topic, notice)
}

// Subscribe registers fn for both success and error notices.
func (b *Bus) Subscribe(fn func(Notice)) error {
	if err := b.bus.Subscribe(TopicSuccess, fn); err != nil {
		return err
	}
	return b.bus.Subscribe(TopicError, fn)
}

// Drain returns buffered notices in publish order and clears the
// buffer. Used by the UI shell to poll for pending toasts.
func (b *Bus) Drain() []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := b.pending
	b.pending = nil
	return out
}
