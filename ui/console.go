// Package ui renders the dialogue progressively to a terminal.
// It is a plain event sink: the runtime never depends on it.
package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"dialogue-lab/domain/event"
	"dialogue-lab/moderation"

	"github.com/gookit/color"
)

const separatorWidth = 60

// Console narrates rounds, turns, and commentary as they happen.
// With a moderator set, turn content is masked before printing; the
// transcript itself stays untouched.
type Console struct {
	out       io.Writer
	colours   bool
	moderator *moderation.Moderator
}

func NewConsole(out io.Writer, colours bool, moderator *moderation.Moderator) *Console {
	return &Console{out: out, colours: colours, moderator: moderator}
}

func (c *Console) Consume(_ context.Context, e event.DialogueEvent) error {
	switch evt := e.(type) {
	case event.RoundStarted:
		header := fmt.Sprintf("Round %d", evt.Num)
		fmt.Fprintf(c.out, "\n%s\n%s\n",
			c.paint(color.FgCyan, header),
			strings.Repeat("-", separatorWidth))

	case event.TurnProduced:
		style := color.FgGreen
		if evt.Failed {
			style = color.FgRed
		}
		fmt.Fprintf(c.out, "%s:\n%s\n\n",
			c.paint(style, evt.Name),
			c.censor(evt.Content))

	case event.CommentaryProduced:
		header := fmt.Sprintf("%s commentary", evt.Name)
		if evt.Final {
			header = fmt.Sprintf("Final commentary from %s", evt.Name)
		}
		fmt.Fprintf(c.out, "%s\n%s:\n%s\n%s\n",
			strings.Repeat("=", separatorWidth),
			c.paint(color.FgMagenta, header),
			c.censor(evt.Content),
			strings.Repeat("=", separatorWidth))

	case event.RunCompleted:
		fmt.Fprintf(c.out, "\n%s\n",
			c.paint(color.FgCyan, fmt.Sprintf("Dialogue complete: %d rounds on %q", evt.Rounds, evt.Topic)))
	}
	return nil
}

func (c *Console) paint(fg color.Color, s string) string {
	if !c.colours {
		return s
	}
	return color.New(fg).Render(s)
}

func (c *Console) censor(content string) string {
	if c.moderator == nil {
		return content
	}
	masked, _ := c.moderator.Censor(content)
	return masked
}
