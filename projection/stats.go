// Package projection builds local read models from observed dialogue events.
// Handles aggregation only; it does not emit events or interact with UI
// directly.
package projection

import (
	"context"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"dialogue-lab/domain/event"

	"github.com/abadojack/whatlanggo"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

type speakerStats struct {
	turns     int
	words     int
	failures  int
	languages map[string]struct{}
}

// Stats aggregates per-speaker figures over one dialogue run: turn and word
// counts, detected reply languages, and failed calls. Commentary is counted
// separately since it never enters the transcript.
type Stats struct {
	mu           sync.Mutex
	speakers     map[string]*speakerStats
	commentaries int
	rounds       int
}

func NewStats() *Stats {
	return &Stats{speakers: make(map[string]*speakerStats)}
}

func (s *Stats) Consume(_ context.Context, e event.DialogueEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch evt := e.(type) {
	case event.TurnProduced:
		s.record(evt.Name, evt.Content, evt.Failed)
	case event.CommentaryProduced:
		s.commentaries++
	case event.RunCompleted:
		s.rounds = evt.Rounds
	}
	return nil
}

func (s *Stats) record(name, content string, failed bool) {
	stats, ok := s.speakers[name]
	if !ok {
		stats = &speakerStats{languages: make(map[string]struct{})}
		s.speakers[name] = stats
	}

	stats.turns++
	if failed {
		stats.failures++
		return
	}

	stats.words += len(strings.Fields(content))
	info := whatlanggo.Detect(content)
	if code := info.Lang.Iso6391(); code != "" {
		stats.languages[code] = struct{}{}
	}
}

// Render writes the per-speaker summary table, sorted by speaker name.
func (s *Stats) Render(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := lo.Keys(s.speakers)
	sort.Strings(names)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Speaker", "Turns", "Words", "Languages", "Failures"})
	for _, name := range names {
		stats := s.speakers[name]
		table.Append([]string{
			name,
			itoa(stats.turns),
			itoa(stats.words),
			strings.Join(sortedKeys(stats.languages), ","),
			itoa(stats.failures),
		})
	}
	table.SetFooter([]string{"rounds", itoa(s.rounds), "", "commentaries", itoa(s.commentaries)})
	table.Render()
}

func sortedKeys(set map[string]struct{}) []string {
	keys := lo.Keys(set)
	sort.Strings(keys)
	return keys
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
