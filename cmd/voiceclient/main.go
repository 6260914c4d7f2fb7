package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"voice-assistant-client/internal/app"
	"voice-assistant-client/internal/config"
	"voice-assistant-client/internal/events"
	apihttp "voice-assistant-client/internal/http"
	"voice-assistant-client/internal/observability"
	"voice-assistant-client/internal/session"
	"voice-assistant-client/internal/transport"
	"voice-assistant-client/internal/transport/livews"
	"voice-assistant-client/internal/transport/mock"
	"voice-assistant-client/internal/tui"
)

func main() {
	cfg := config.Load()

	application := app.New(cfg)
	if err := application.Start(); err != nil {
		log.Fatal().Err(err).Msg("Startup failed")
	}
	defer application.Shutdown()

	publisher := events.New(&events.Config{
		Enabled:         cfg.Kafka.Enabled,
		Brokers:         cfg.Kafka.Brokers,
		TopicTranscript: cfg.Kafka.TopicTranscript,
		TopicResults:    cfg.Kafka.TopicResults,
		Principal:       cfg.Kafka.Principal,
	})
	defer publisher.Close()

	sessionId := cfg.Session.Room
	if sessionId == "" {
		sessionId = fmt.Sprintf("session-%d", time.Now().Unix())
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Effects are decoupled from the reduce loop through a small buffer so a
	// slow publisher can never stall reductions.
	effectsCh := make(chan session.Effect, 64)
	coord := session.New(session.Options{
		ConnectTimeout: cfg.Session.ConnectTimeout,
		OnEffect: func(e session.Effect) {
			select {
			case effectsCh <- e:
			default:
				log.Warn().Msg("Dropping effect, sink is saturated")
			}
		},
	})
	defer coord.Close()
	go coord.Run(ctx)

	obs := observability.NewServer(cfg.Observability.MetricsAddr, apihttp.NewRouter(coord.Snapshot))
	obs.Start()
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = obs.Shutdown(shutdownCtx)
	}()

	var src transport.Source
	switch cfg.Session.Source {
	case "livews":
		src = livews.New(cfg.Session.WSURL, cfg.Session.Room)
	default:
		src = mock.New()
	}

	go func() {
		if err := src.Run(ctx, func(ev session.Event) { coord.Dispatch(ev) }); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("Session source stopped")
		}
	}()

	program := tea.NewProgram(tui.New(coord), tea.WithAltScreen(), tea.WithContext(ctx))

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case e := <-effectsCh:
				handleEffect(ctx, e, program, publisher, sessionId)
			}
		}
	}()

	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		log.Fatal().Err(err).Msg("UI error")
	}
}

// handleEffect routes one coordinator effect to its consumer.
func handleEffect(ctx context.Context, e session.Effect, program *tea.Program, publisher *events.Publisher, sessionId string) {
	switch e := e.(type) {
	case session.ScrollToBottom:
		program.Send(tui.ScrollMsg{})
	case session.PublishFinalEntry:
		if err := publisher.PublishFinalTranscript(ctx, sessionId, e.Entry); err != nil {
			log.Warn().Err(err).Msg("Failed to publish transcript entry")
		}
	case session.PublishResults:
		if err := publisher.PublishResults(ctx, sessionId, e.Records); err != nil {
			log.Warn().Err(err).Msg("Failed to publish result push")
		}
	}
}
