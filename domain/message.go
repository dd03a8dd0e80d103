// Package domain contains core concepts of the dialogue system.
// This file defines the chat messages exchanged with model endpoints.
// No runtime, network, or UI logic should be added here.
package domain

// Wire-level roles of the chat-completion protocol.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is a single entry of a chat-completion conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
