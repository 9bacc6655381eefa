package events

import (
	"context"
	"time"
)

const (
	TypeAccountLoggedIn  = "account_logged_in"
	TypeAccountLoggedOut = "account_logged_out"
)

type Event struct {
	Type      string    `json:"type"`
	AccountID uint      `json:"accountID"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	At        time.Time `json:"at"`
}

func (e Event) Key() string {
	return e.Email
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// Noop drops every event. Used when no brokers are configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error                        { return nil }
