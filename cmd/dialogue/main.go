package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dialogue-lab/domain"
	"dialogue-lab/internal"
	"dialogue-lab/llm"
	"dialogue-lab/moderation"
	"dialogue-lab/projection"
	"dialogue-lab/runtime"
	"dialogue-lab/runtime/workers"
	"dialogue-lab/ui"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes to provide meaningful status to the operating system or a
// service manager.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function acts as a thin wrapper.
	// Its only responsibility is to call run() and handle the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Dialogue terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, drives one dialogue, and centralizes
// error reporting, so that deferred cleanup executes before the process
// exits.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()

	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	charReplacement, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return exitConfig, err
	}

	logger := logs.GetLoggerFromString(config.LogLevel)

	// 2. Context & Signals
	// NotifyContext captures OS signals and cancels the context so the loop
	// stops at the next call or pacing boundary.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Sinks: console narration (optionally moderated) + stats projection
	var moderator *moderation.Moderator
	if config.EnableModeration {
		words, err := moderation.DefaultWords()
		if err != nil {
			return exitRuntime, fmt.Errorf("loading wordlists: %w", err)
		}
		m, err := moderation.NewModerator(words, charReplacement, logger)
		if err != nil {
			return exitRuntime, fmt.Errorf("building moderator: %w", err)
		}
		moderator = &m
		logger.Info("Moderation enabled", "words", len(words))
	}

	console := ui.NewConsole(os.Stdout, config.Colours, moderator)
	stats := projection.NewStats()

	// 4. Orchestrator & Participants
	client := llm.NewClient(config.BaseURL)
	orchestrator := runtime.NewOrchestrator(logger, client,
		config.Rounds, config.CommentaryFrequency,
		config.PacingDelay, config.CallTimeout, config.SinkTimeout)

	orchestrator.Register(domain.RoleModelA,
		newParticipant(config, config.ModelAName, config.ModelAID, config.ModelAPrompt))
	orchestrator.Register(domain.RoleModelB,
		newParticipant(config, config.ModelBName, config.ModelBID, config.ModelBPrompt))
	orchestrator.Register(domain.RoleCommentator,
		newParticipant(config, config.CommentatorName, config.CommentatorID, config.CommentatorPrompt))
	orchestrator.Add(console, stats)

	// 5. Background telemetry under supervision
	sup := workers.NewSupervisor(logger)
	sup.Add(workers.NewHeartbeatWorker(logger, config.HeartbeatInterval))
	go sup.Run(ctx)
	defer sup.Stop()

	// 6. Run the dialogue
	if err := orchestrator.Run(ctx, config.Topic); err != nil {
		return exitRuntime, fmt.Errorf("dialogue error: %w", err)
	}

	stats.Render(os.Stdout)
	return exitOK, nil
}

func newParticipant(config internal.Config, name, model, systemPrompt string) *domain.Participant {
	p := domain.NewParticipant(name, model, systemPrompt)
	p.Temperature = config.Temperature
	p.MaxTokens = config.MaxTokens
	return p
}
