package feedback

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/jafa/internal/logging"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

type Toast struct {
	ID        string
	Message   string
	Kind      Kind
	CreatedAt time.Time
}

// Presenter shows a toast the moment it is raised.
type Presenter func(Toast)

// Notifier is what action handlers need from a Channel.
type Notifier interface {
	Notify(message string, kind Kind)
}

type Options struct {
	Capacity int
	TTL      time.Duration
	Clock    clockwork.Clock
}

const (
	DefaultCapacity = 5
	DefaultTTL      = 5 * time.Second
)

// Channel is safe for concurrent use.
type Channel struct {
	mu        sync.Mutex
	toasts    []Toast
	capacity  int
	ttl       time.Duration
	clock     clockwork.Clock
	presenter Presenter
	logger    logging.Logger
}

var _ Notifier = (*Channel)(nil)

// NewChannel builds a channel. Zero options fall back to the defaults and
// the real clock; presenter may be nil.
func NewChannel(opts Options, presenter Presenter, logger logging.Logger) *Channel {
	if opts.Capacity <= 0 {
		opts.Capacity = DefaultCapacity
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	return &Channel{
		capacity:  opts.Capacity,
		ttl:       opts.TTL,
		clock:     opts.Clock,
		presenter: presenter,
		logger:    logger.With("module", "feedback"),
	}
}

// Notify raises a toast. It returns once the presenter has been called.
// When the queue is full the oldest toast is dropped.
func (c *Channel) Notify(message string, kind Kind) {
	if message == "" {
		return
	}

	t := Toast{
		ID:        uuid.NewString(),
		Message:   message,
		Kind:      kind,
		CreatedAt: c.clock.Now(),
	}

	c.mu.Lock()
	c.expireLocked()
	c.toasts = append(c.toasts, t)
	if over := len(c.toasts) - c.capacity; over > 0 {
		c.toasts = append(c.toasts[:0:0], c.toasts[over:]...)
	}
	c.mu.Unlock()

	c.logger.Debug(context.Background(), "toast", "kind", string(kind), "message", message)

	if c.presenter != nil {
		c.presenter(t)
	}
}

// Success is shorthand for Notify(message, KindSuccess).
func (c *Channel) Success(message string) {
	c.Notify(message, KindSuccess)
}

// Error is shorthand for Notify(message, KindError).
func (c *Channel) Error(message string) {
	c.Notify(message, KindError)
}

// Visible returns the unexpired toasts, oldest first.
func (c *Channel) Visible() []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expireLocked()
	return append([]Toast(nil), c.toasts...)
}

func (c *Channel) expireLocked() {
	now := c.clock.Now()
	keep := c.toasts[:0]
	for _, t := range c.toasts {
		if now.Sub(t.CreatedAt) < c.ttl {
			keep = append(keep, t)
		}
	}
	c.toasts = keep
}
