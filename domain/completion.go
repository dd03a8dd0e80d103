package domain

import "context"

// Caller submits one non-streaming chat completion and returns the reply text.
type Caller interface {
	Complete(ctx context.Context, model string, messages []ChatMessage,
		temperature float64, maxTokens int) (string, error)
}

// Session is a Caller bound to a reusable transport scope (connection pool).
// The owner must Close it when the scope ends.
type Session interface {
	Caller
	Close()
}

// SessionFactory opens independent transport sessions against one endpoint.
type SessionFactory interface {
	NewSession() Session
}
