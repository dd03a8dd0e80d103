package domain_test

import (
	"context"
	"fmt"
	"testing"

	"dialogue-lab/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedCaller echoes the prompt back, or fails every call.
type scriptedCaller struct {
	fail     bool
	models   []string
	messages [][]domain.ChatMessage
}

func (c *scriptedCaller) Complete(_ context.Context, model string, messages []domain.ChatMessage,
	_ float64, _ int) (string, error) {
	c.models = append(c.models, model)
	c.messages = append(c.messages, messages)
	if c.fail {
		return "", fmt.Errorf("connection refused")
	}
	return "reply to: " + messages[len(messages)-1].Content, nil
}

func Test_Participant_builds_system_then_memory_then_prompt(t *testing.T) {
	// Arrange
	caller := &scriptedCaller{}
	p := domain.NewParticipant("Philosopher", "model-a", "Be thoughtful")

	// Act
	_, ok := p.Respond(context.Background(), caller, "first question")
	require.True(t, ok)
	_, ok = p.Respond(context.Background(), caller, "second question")
	require.True(t, ok)

	// Assert: second call sees [system, user1, assistant1, user2]
	require.Len(t, caller.messages, 2)
	second := caller.messages[1]
	require.Len(t, second, 4)
	assert.Equal(t, domain.ChatMessage{Role: domain.RoleSystem, Content: "Be thoughtful"}, second[0])
	assert.Equal(t, domain.ChatMessage{Role: domain.RoleUser, Content: "first question"}, second[1])
	assert.Equal(t, domain.ChatMessage{Role: domain.RoleAssistant, Content: "reply to: first question"}, second[2])
	assert.Equal(t, domain.ChatMessage{Role: domain.RoleUser, Content: "second question"}, second[3])
	assert.Equal(t, []string{"model-a", "model-a"}, caller.models)
}

func Test_Participant_omits_absent_system_instruction(t *testing.T) {
	caller := &scriptedCaller{}
	p := domain.NewParticipant("Analyst", "model-b", "")

	_, ok := p.Respond(context.Background(), caller, "hello")

	require.True(t, ok)
	require.Len(t, caller.messages[0], 1)
	assert.Equal(t, domain.RoleUser, caller.messages[0][0].Role)
}

func Test_Participant_memory_holds_min_2N_20_entries(t *testing.T) {
	req := require.New(t)
	caller := &scriptedCaller{}
	p := domain.NewParticipant("Philosopher", "model-a", "")

	for n := 1; n <= 15; n++ {
		_, ok := p.Respond(context.Background(), caller, fmt.Sprintf("prompt %d", n))
		req.True(ok)

		expected := 2 * n
		if expected > domain.MaxHistory {
			expected = domain.MaxHistory
		}
		req.Len(p.History(), expected, "after %d exchanges", n)
	}

	// The surviving window is the 10 most recent exchanges, oldest first.
	history := p.History()
	req.Len(history, domain.MaxHistory)
	assert.Equal(t, "prompt 6", history[0].Content)
	assert.Equal(t, domain.RoleUser, history[0].Role)
	assert.Equal(t, "reply to: prompt 15", history[len(history)-1].Content)
	assert.Equal(t, domain.RoleAssistant, history[len(history)-1].Role)
}

func Test_Participant_failure_becomes_reply_text_and_skips_memory(t *testing.T) {
	caller := &scriptedCaller{fail: true}
	p := domain.NewParticipant("Philosopher", "model-a", "")

	reply, ok := p.Respond(context.Background(), caller, "anything")

	assert.False(t, ok)
	assert.Equal(t, "Error: connection refused", reply)
	assert.Empty(t, p.History(), "failed calls must not enter memory")
}

func Test_Participant_history_is_a_copy(t *testing.T) {
	caller := &scriptedCaller{}
	p := domain.NewParticipant("Philosopher", "model-a", "")
	_, _ = p.Respond(context.Background(), caller, "hello")

	history := p.History()
	history[0].Content = "tampered"

	assert.Equal(t, "hello", p.History()[0].Content)
}
