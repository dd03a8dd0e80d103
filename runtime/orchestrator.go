// Package runtime drives the turn-taking protocol between participants.
// It owns the transcript and the event stream, but no domain rules and
// no presentation.
package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dialogue-lab/contract"
	"dialogue-lab/domain"
	"dialogue-lab/domain/event"
	"dialogue-lab/errors"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Orchestrator runs a fixed-round dialogue between two primary participants
// and interleaves a commentator on a fixed cadence. Scheduling is strictly
// sequential: exactly one completion call is in flight at any time, so no
// participant memory or transcript access needs locking.
type Orchestrator struct {
	log          *slog.Logger
	sessions     domain.SessionFactory
	participants map[domain.Role]*domain.Participant
	transcript   []domain.TranscriptEntry
	sinks        []contract.EventSink
	runID        uuid.UUID

	rounds      int
	frequency   int
	pacing      time.Duration
	callTimeout time.Duration
	sinkTimeout time.Duration
}

func NewOrchestrator(log *slog.Logger, sessions domain.SessionFactory,
	rounds, frequency int, pacing, callTimeout, sinkTimeout time.Duration) *Orchestrator {
	return &Orchestrator{
		log:          log,
		sessions:     sessions,
		participants: make(map[domain.Role]*domain.Participant),
		runID:        uuid.New(),
		rounds:       rounds,
		frequency:    frequency,
		pacing:       pacing,
		callTimeout:  callTimeout,
		sinkTimeout:  sinkTimeout,
	}
}

// Register seats a participant. Registering the same role twice replaces
// the previous participant.
func (o *Orchestrator) Register(role domain.Role, p *domain.Participant) {
	o.participants[role] = p
}

func (o *Orchestrator) Add(sinks ...contract.EventSink) {
	o.sinks = append(o.sinks, sinks...)
}

// Transcript returns a copy of the primary-dialogue record accumulated so far.
func (o *Orchestrator) Transcript() []domain.TranscriptEntry {
	out := make([]domain.TranscriptEntry, len(o.transcript))
	copy(out, o.transcript)
	return out
}

// validate fails fast on configuration errors, before any network activity.
func (o *Orchestrator) validate() error {
	missing := lo.Filter(domain.RequiredRoles, func(role domain.Role, _ int) bool {
		_, ok := o.participants[role]
		return !ok
	})
	if len(missing) > 0 {
		return fmt.Errorf("%w: %v", errors.ErrRoleMissing, missing)
	}
	if o.rounds <= 0 {
		return errors.ErrInvalidRounds
	}
	if o.frequency <= 0 {
		return errors.ErrInvalidFrequency
	}
	return nil
}

// Run executes the full dialogue: rounds 1..R of A-then-B exchanges,
// commentary every frequency rounds, and one terminal holistic commentary.
// A participant call that fails becomes ordinary dialogue content and flows
// into the transcript and subsequent prompts; Run only returns an error for
// configuration problems or context cancellation, never for a bad reply.
func (o *Orchestrator) Run(ctx context.Context, topic string) error {
	if err := o.validate(); err != nil {
		return err
	}

	a := o.participants[domain.RoleModelA]
	b := o.participants[domain.RoleModelB]
	commentator := o.participants[domain.RoleCommentator]

	o.log.Info("Starting dialogue run",
		"run_id", o.runID, "topic", topic,
		"rounds", o.rounds, "commentary_frequency", o.frequency)

	// One session spans the whole round loop; every call inside reuses it.
	session := o.sessions.NewSession()
	defer session.Close()

	currentPrompt := topic
	for round := 1; round <= o.rounds; round++ {
		o.emit(ctx, event.RoundStarted{ID: uuid.New(), Num: round, At: time.Now().UTC()})

		responseA, okA := o.respond(ctx, session, a, currentPrompt)
		o.transcript = append(o.transcript, domain.TranscriptEntry{
			Round: round, Speaker: domain.RoleModelA, Content: responseA,
		})
		o.emit(ctx, event.TurnProduced{
			ID: uuid.New(), Num: round, Speaker: domain.RoleModelA,
			Name: a.Name, Content: responseA, Failed: !okA, At: time.Now().UTC(),
		})

		// B replies to A's response; the topic only reaches B through A.
		responseB, okB := o.respond(ctx, session, b, responseA)
		o.transcript = append(o.transcript, domain.TranscriptEntry{
			Round: round, Speaker: domain.RoleModelB, Content: responseB,
		})
		o.emit(ctx, event.TurnProduced{
			ID: uuid.New(), Num: round, Speaker: domain.RoleModelB,
			Name: b.Name, Content: responseB, Failed: !okB, At: time.Now().UTC(),
		})

		if round%o.frequency == 0 {
			prompt := commentaryPrompt(a.Name, responseA, b.Name, responseB)
			commentary, okC := o.respond(ctx, session, commentator, prompt)
			o.emit(ctx, event.CommentaryProduced{
				ID: uuid.New(), Num: round, Name: commentator.Name,
				Content: commentary, Failed: !okC, At: time.Now().UTC(),
			})
		}

		currentPrompt = responseB

		// Pacing throttles the request rate against the endpoint.
		if round < o.rounds {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(o.pacing):
			}
		}
	}

	// The concluding commentary is its own unit of work: it gets a fresh
	// transport scope, independent of the loop's session.
	final := o.sessions.NewSession()
	defer final.Close()

	commentary, ok := o.respond(ctx, final, commentator, finalPrompt(a.Name, b.Name, topic))
	o.emit(ctx, event.CommentaryProduced{
		ID: uuid.New(), Num: o.rounds, Name: commentator.Name,
		Content: commentary, Failed: !ok, Final: true, At: time.Now().UTC(),
	})
	o.emit(ctx, event.RunCompleted{
		ID: uuid.New(), Rounds: o.rounds, Topic: topic, At: time.Now().UTC(),
	})

	o.log.Info("Dialogue run complete", "run_id", o.runID, "turns", len(o.transcript))
	return nil
}

// respond bounds a single participant call with the configured timeout.
// A timed-out call surfaces as an error-string reply like any other failure.
func (o *Orchestrator) respond(ctx context.Context, session domain.Session,
	p *domain.Participant, prompt string) (string, bool) {
	if o.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.callTimeout)
		defer cancel()
	}
	return p.Respond(ctx, session, prompt)
}

func (o *Orchestrator) emit(ctx context.Context, e event.DialogueEvent) {
	for _, sink := range o.sinks {
		sinkCtx, cancel := context.WithTimeout(ctx, o.sinkTimeout)
		if err := sink.Consume(sinkCtx, e); err != nil {
			o.log.Warn("Sink rejected event", "error", err)
		}
		cancel()
	}
}

func commentaryPrompt(nameA, responseA, nameB, responseB string) string {
	return fmt.Sprintf(`Recent exchange:
%s: %s

%s: %s

Please provide commentary on this exchange, analyzing the dialogue quality,
key points, areas of agreement/disagreement, and interesting developments.`,
		nameA, responseA, nameB, responseB)
}

func finalPrompt(nameA, nameB, topic string) string {
	return fmt.Sprintf(`Please provide a comprehensive analysis of the entire dialogue between
%s and %s on the topic: %s

Key aspects to analyze:
- Overall dialogue quality and coherence
- Main themes and arguments presented
- Evolution of the discussion
- Notable insights or interesting points
- Areas where the models complemented or challenged each other`,
		nameA, nameB, topic)
}
