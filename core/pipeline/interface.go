// Package pipeline wraps statement compilation and row decoding with
// structured logging and typed lifecycle events. The builders and the decoder
// stay pure; anything that wants observability routes the same calls through a
// Pipeline and subscribes to the events it emits.
package pipeline

import (
	"context"
)

// EventType defines the possible event types emitted by a pipeline.
type EventType string

const (
	StatementCompileStart   EventType = "statement:compile:start"
	StatementCompileSuccess EventType = "statement:compile:success"
	StatementCompileFailed  EventType = "statement:compile:failed"
	RowDecodeStart          EventType = "row:decode:start"
	RowDecodeSuccess        EventType = "row:decode:success"
	RowDecodeFailed         EventType = "row:decode:failed"
	SubscriptionRegister    EventType = "subscription:register"
	SubscriptionUnregister  EventType = "subscription:unregister"
)

// Event is the payload delivered to subscribers for every pipeline operation.
type Event struct {
	Type      EventType      `json:"type"`               // The type of event (e.g., 'statement:compile:start').
	Timestamp int64          `json:"timestamp"`          // Timestamp when the event occurred (Unix milliseconds).
	Operation string         `json:"operation"`          // The operation being performed (e.g., 'compile', 'decode').
	Dialect   *string        `json:"dialect,omitempty"`  // Name of the dialect involved (if applicable).
	Table     *string        `json:"table,omitempty"`    // Name of the table involved (if applicable).
	SQL       *string        `json:"sql,omitempty"`      // Compiled SQL text (success events only).
	Output    any            `json:"output,omitempty"`   // Data returned by the operation (if applicable).
	Error     *string        `json:"error,omitempty"`    // Error message if the operation failed.
	Duration  *int64         `json:"duration,omitempty"` // Duration of the operation in milliseconds.
	Context   map[string]any `json:"context,omitempty"`  // Additional operation-specific metadata.
}

// EventCallbackFunction is the subscriber signature.
type EventCallbackFunction func(ctx context.Context, event Event) error

// SubscriptionInfo describes a registered subscription.
type SubscriptionInfo struct {
	Event       EventType `json:"event"`                 // The event subscribed to.
	Label       *string   `json:"label,omitempty"`       // Optional short identifier.
	Description *string   `json:"description,omitempty"` // Optional description.
	Unsubscribe func()
}

// RegisterSubscriptionOptions defines options for registering a subscription.
// Registration returns a callback ID that identifies the subscription for
// unregistration.
type RegisterSubscriptionOptions struct {
	Event       EventType `json:"event"`
	Label       *string   `json:"label,omitempty"`
	Description *string   `json:"description,omitempty"`
	Callback    EventCallbackFunction
}
