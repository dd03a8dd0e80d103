// Package event defines the structured stream emitted while a dialogue runs.
// Presentation layers consume these events; the orchestrator only produces them.
package event

import (
	"time"

	"dialogue-lab/domain"

	"github.com/google/uuid"
)

// DialogueEvent is implemented by everything the orchestrator emits.
type DialogueEvent interface {
	Round() int
}

// RoundStarted marks the beginning of one primary exchange cycle.
type RoundStarted struct {
	ID  uuid.UUID
	Num int
	At  time.Time
}

func (e RoundStarted) Round() int { return e.Num }

// TurnProduced carries one primary participant's reply. Failed is set when
// the reply is a synthesized error string rather than model output; the run
// continues either way.
type TurnProduced struct {
	ID      uuid.UUID
	Num     int
	Speaker domain.Role
	Name    string
	Content string
	Failed  bool
	At      time.Time
}

func (e TurnProduced) Round() int { return e.Num }

// CommentaryProduced carries the commentator's analysis. Final marks the
// terminal holistic commentary emitted after the last round.
type CommentaryProduced struct {
	ID      uuid.UUID
	Num     int
	Name    string
	Content string
	Failed  bool
	Final   bool
	At      time.Time
}

func (e CommentaryProduced) Round() int { return e.Num }

// RunCompleted closes the stream once all rounds and the final commentary
// are done.
type RunCompleted struct {
	ID     uuid.UUID
	Rounds int
	Topic  string
	At     time.Time
}

func (e RunCompleted) Round() int { return e.Rounds }
