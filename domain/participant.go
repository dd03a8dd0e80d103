// Package domain contains core concepts of the dialogue system.
// This file defines Participant entities and their memory invariants.
package domain

import (
	"context"
	"fmt"
)

// MaxHistory caps a participant's private memory at 10 exchange pairs.
// Older entries are evicted from the front.
const MaxHistory = 20

// Generation defaults, applied by NewParticipant.
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 500
)

// Participant wraps one model endpoint identity, its system instruction,
// and a private conversational memory. The memory is owned exclusively by
// the participant and mutated only by Respond; nothing else reads or
// writes it.
type Participant struct {
	Name         string
	Model        string
	SystemPrompt string
	Temperature  float64
	MaxTokens    int

	history []ChatMessage
}

func NewParticipant(name, model, systemPrompt string) *Participant {
	return &Participant{
		Name:         name,
		Model:        model,
		SystemPrompt: systemPrompt,
		Temperature:  DefaultTemperature,
		MaxTokens:    DefaultMaxTokens,
	}
}

// Respond issues one chat completion for prompt, using this participant's
// instruction and memory as context. Failures never propagate: any transport
// or protocol error is rendered as the reply text, the memory stays
// untouched, and ok is false. On success the exchange is remembered.
func (p *Participant) Respond(ctx context.Context, caller Caller, prompt string) (reply string, ok bool) {
	reply, err := caller.Complete(ctx, p.Model, p.buildMessages(prompt), p.Temperature, p.MaxTokens)
	if err != nil {
		return fmt.Sprintf("Error: %v", err), false
	}

	p.remember(prompt, reply)
	return reply, true
}

// buildMessages assembles [system?] + memory + user(prompt), in that order.
func (p *Participant) buildMessages(prompt string) []ChatMessage {
	messages := make([]ChatMessage, 0, len(p.history)+2)
	if p.SystemPrompt != "" {
		messages = append(messages, ChatMessage{Role: RoleSystem, Content: p.SystemPrompt})
	}
	messages = append(messages, p.history...)
	return append(messages, ChatMessage{Role: RoleUser, Content: prompt})
}

// remember appends the exchange and keeps only the MaxHistory most recent
// entries, preserving chronological order.
func (p *Participant) remember(prompt, reply string) {
	p.history = append(p.history,
		ChatMessage{Role: RoleUser, Content: prompt},
		ChatMessage{Role: RoleAssistant, Content: reply},
	)
	if len(p.history) > MaxHistory {
		p.history = p.history[len(p.history)-MaxHistory:]
	}
}

// History returns a copy of the private memory, oldest first.
func (p *Participant) History() []ChatMessage {
	out := make([]ChatMessage, len(p.history))
	copy(out, p.history)
	return out
}
