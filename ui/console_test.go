package ui_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"dialogue-lab/domain"
	"dialogue-lab/domain/event"
	"dialogue-lab/moderation"
	"dialogue-lab/ui"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Console_narrates_rounds_turns_and_commentary(t *testing.T) {
	var buf bytes.Buffer
	console := ui.NewConsole(&buf, false, nil)
	ctx := context.Background()

	require.NoError(t, console.Consume(ctx, event.RoundStarted{Num: 1}))
	require.NoError(t, console.Consume(ctx, event.TurnProduced{
		Num: 1, Speaker: domain.RoleModelA, Name: "Philosopher", Content: "An opening thought.",
	}))
	require.NoError(t, console.Consume(ctx, event.CommentaryProduced{
		Num: 1, Name: "Observer", Content: "Interesting start.", Final: true,
	}))
	require.NoError(t, console.Consume(ctx, event.RunCompleted{Rounds: 1, Topic: "openings"}))

	out := buf.String()
	assert.Contains(t, out, "Round 1")
	assert.Contains(t, out, "Philosopher:")
	assert.Contains(t, out, "An opening thought.")
	assert.Contains(t, out, "Final commentary from Observer")
	assert.Contains(t, out, "Dialogue complete")
}

func Test_Console_masks_content_when_moderated(t *testing.T) {
	mod, err := moderation.NewModerator([]string{"idiot"}, '*', slog.Default())
	require.NoError(t, err)

	var buf bytes.Buffer
	console := ui.NewConsole(&buf, false, &mod)

	require.NoError(t, console.Consume(context.Background(), event.TurnProduced{
		Num: 1, Speaker: domain.RoleModelB, Name: "Analyst", Content: "Only an idiot would disagree.",
	}))

	out := buf.String()
	assert.Contains(t, out, "Only an ***** would disagree.")
	assert.NotContains(t, out, "idiot")
}
