// Package notify keeps the transient notifications (toasts) shown by the panel front ends.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Kind of a toast
type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindError   Kind = "error"
)

// DefaultAutoClose matches the usual toast container default
const DefaultAutoClose = 5 * time.Second

// Toast is one notification
type Toast struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	Sticky    bool      `json:"sticky"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}

// Options for Info toasts
type Options struct {
	// ID makes the toast addressable for Dismiss. While a toast with this ID
	// is active, another one with the same ID is not created.
	ID string
	// Sticky toasts stay until dismissed.
	Sticky bool
}

// Center stores active toasts. Safe for concurrent use.
type Center struct {
	mu        sync.Mutex
	toasts    []Toast // oldest first
	autoClose time.Duration
	now       func() time.Time
	log       *zap.Logger
}

// NewCenter creates a toast center. autoClose <= 0 uses DefaultAutoClose.
func NewCenter(autoClose time.Duration, log *zap.Logger) *Center {
	if autoClose <= 0 {
		autoClose = DefaultAutoClose
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Center{
		autoClose: autoClose,
		now:       time.Now,
		log:       log.Named("toast"),
	}
}

// Success shows a success toast and returns its id
func (c *Center) Success(msg string) string {
	return c.push(KindSuccess, msg, Options{})
}

// Info shows an info toast and returns its id
func (c *Center) Info(msg string, opts Options) string {
	return c.push(KindInfo, msg, opts)
}

// Error shows an error toast and returns its id
func (c *Center) Error(msg string) string {
	return c.push(KindError, msg, Options{})
}

// Dismiss removes the active toast with id. Reports whether one was removed.
func (c *Center) Dismiss(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pruneLocked()
	for i, t := range c.toasts {
		if t.ID == id {
			c.toasts = append(c.toasts[:i], c.toasts[i+1:]...)
			c.log.Debug("dismissed", zap.String("id", id))
			return true
		}
	}
	return false
}

// Active returns the toasts still shown, newest first
func (c *Center) Active() []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pruneLocked()
	out := make([]Toast, 0, len(c.toasts))
	for i := len(c.toasts) - 1; i >= 0; i-- {
		out = append(out, c.toasts[i])
	}
	return out
}

func (c *Center) push(kind Kind, msg string, opts Options) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pruneLocked()
	if opts.ID != "" {
		for _, t := range c.toasts {
			if t.ID == opts.ID {
				return t.ID
			}
		}
	}

	id := opts.ID
	if id == "" {
		id = uuid.NewString()
	}

	now := c.now()
	t := Toast{
		ID:        id,
		Kind:      kind,
		Message:   msg,
		Sticky:    opts.Sticky,
		CreatedAt: now,
	}
	if !opts.Sticky {
		t.ExpiresAt = now.Add(c.autoClose)
	}
	c.toasts = append(c.toasts, t)

	c.log.Info(msg, zap.String("kind", string(kind)), zap.String("id", id))
	return id
}

// pruneLocked drops expired toasts. c.mu must be held.
func (c *Center) pruneLocked() {
	now := c.now()
	kept := c.toasts[:0]
	for _, t := range c.toasts {
		if t.Sticky || now.Before(t.ExpiresAt) {
			kept = append(kept, t)
		}
	}
	c.toasts = kept
}
