package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	coordinatorx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/agents/coordinator"
	specialistx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/agents/specialist"
	contractx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/contract"
	generatex "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/generate"
	llmx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/llm"
	planningx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/planning"
	sessionx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/session"
	configx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/pkg/config"
	logx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/pkg/logger"
	openrouterx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/pkg/openrouter"
	serverx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/server"
)

type AppConfig struct {
	Addr            string        `envconfig:"ADDR" default:":8000"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" split_words:"true" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" split_words:"true" default:"10s"`
	SweepInterval   time.Duration `envconfig:"SESSION_SWEEP_INTERVAL" default:"5m"`
}

func main() {
	appCfg := configx.MustNew[AppConfig]("")
	logCfg := configx.MustNew[logx.Config]("LOG")
	logx.Init(*logCfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	llmCfg := configx.MustNew[llmx.Config]("OPENROUTER")
	if err := llmCfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid model config")
	}

	var specialistGen, synthesisGen contractx.Generator
	if llmCfg.Enabled() {
		modelCfg := llmCfg.OpenRouter()
		gen, err := generatex.New(ctx, &modelCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("build specialist generator")
		}
		specialistGen = gen

		synthCfg := llmCfg.OpenRouterForSynthesis()
		synthesisGen, err = generatex.New(ctx, &synthCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("build synthesis generator")
		}

		probeModelEndpoint(ctx, llmCfg.OpenRouter())
	} else {
		log.Warn().Msg("no api key configured, specialists ship deterministic drafts")
	}

	sessionCfg := configx.MustNew[sessionx.Config]("SESSION")
	store := sessionx.NewStore(*sessionCfg)
	go store.SweepLoop(ctx, appCfg.SweepInterval)

	coord, err := coordinatorx.New(
		store,
		specialistx.NewRegistry(specialistGen),
		planningx.NewPlanner(),
		synthesisGen,
		coordinatorx.Config{RequestTimeout: appCfg.RequestTimeout},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("build coordinator")
	}

	srv := &http.Server{
		Addr:              appCfg.Addr,
		Handler:           serverx.New(coord).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), appCfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown")
		}
	}()

	log.Info().Str("addr", appCfg.Addr).Msg("careline listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("careline stopped")
}

// probeModelEndpoint checks the model endpoint is reachable at boot. Failures
// are logged, not fatal: specialists degrade to deterministic drafts.
func probeModelEndpoint(ctx context.Context, cfg openrouterx.Config) {
	client := openrouterx.NewClient(cfg)
	if client == nil {
		return
	}
	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := client.Models.List(probeCtx); err != nil {
		log.Warn().Err(err).Msg("model endpoint probe failed, continuing")
	}
}
