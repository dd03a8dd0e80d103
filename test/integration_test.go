package test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"dialogue-lab/domain"
	"dialogue-lab/llm"
	"dialogue-lab/runtime"

	"github.com/kelseyhightower/envconfig"
	"github.com/stretchr/testify/require"
)

// Config points the integration run at a live OpenAI-compatible endpoint
// (e.g. a local LM Studio server). Unset DIALOGUE_E2E_BASE_URL skips it.
type Config struct {
	BaseURL     string        `envconfig:"DIALOGUE_E2E_BASE_URL"`
	Model       string        `envconfig:"DIALOGUE_E2E_MODEL" default:"qwen3-30b-a3b"`
	CallTimeout time.Duration `envconfig:"DIALOGUE_E2E_CALL_TIMEOUT" default:"2m"`
}

func Test_one_round_against_live_endpoint(t *testing.T) {
	var cfg Config
	require.NoError(t, envconfig.Process("", &cfg))
	if cfg.BaseURL == "" {
		t.Skip("DIALOGUE_E2E_BASE_URL not set")
	}

	client := llm.NewClient(cfg.BaseURL)
	o := runtime.NewOrchestrator(slog.Default(), client, 1, 1, 0, cfg.CallTimeout, time.Second)
	o.Register(domain.RoleModelA, domain.NewParticipant("Philosopher", cfg.Model, "Answer in one short sentence."))
	o.Register(domain.RoleModelB, domain.NewParticipant("Analyst", cfg.Model, "Answer in one short sentence."))
	o.Register(domain.RoleCommentator, domain.NewParticipant("Observer", cfg.Model, "Answer in one short sentence."))

	err := o.Run(context.Background(), "Is brevity a virtue?")

	// Even an unreachable model must not abort the run; the transcript
	// always carries one full round.
	require.NoError(t, err)
	require.Len(t, o.Transcript(), 2)
}
