package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/eventsync-labs/agent/internal/config"
	"github.com/eventsync-labs/agent/pkg/agent"
	"github.com/eventsync-labs/agent/pkg/agent/conversation"
	"github.com/eventsync-labs/agent/pkg/agent/conversation/postgres"
	"github.com/eventsync-labs/agent/pkg/agent/llm"
	"github.com/eventsync-labs/agent/pkg/agent/llm/anthropic"
	"github.com/eventsync-labs/agent/pkg/agent/llm/openai"
	"github.com/eventsync-labs/agent/pkg/agent/server"
	"github.com/eventsync-labs/agent/pkg/agent/tools"
	"github.com/eventsync-labs/agent/pkg/credential"
	"github.com/eventsync-labs/agent/pkg/eventbrite"
	"github.com/eventsync-labs/agent/pkg/poap"
	"github.com/eventsync-labs/agent/pkg/wallet"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

const defaultSystemPrompt = "You are a helpful agent that can create and manage Eventbrite events " +
	"using the Eventbrite API, and reward verified attendees with POAPs through the POAP API by " +
	"sending unique mint links to their email addresses. Use your tools to interact with these " +
	"external APIs. If someone asks for something your tools cannot do, say so plainly. Be concise " +
	"and helpful, and do not restate your tools' descriptions unless explicitly asked."

func main() {
	// .env is optional; in production the environment is set by the
	// platform.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfgPath := os.Getenv("EVENTSYNC_CONFIG")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Error("loading config", "error", err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx := context.Background()
	creds := credential.Env()

	// Upstream clients.
	poapClient := poap.New(cfg.POAP.BaseURL, creds)
	ebClient := eventbrite.New(cfg.Eventbrite.BaseURL, creds)
	walletStore := wallet.NewStore(cfg.Wallet.DataFile)

	// Tools.
	registry := tools.NewRegistry()
	registerTools(registry, poapClient, ebClient, walletStore)
	logger.Info("registered tools", "tools", registry.Names())

	// Conversation store.
	var convStore conversation.Store = conversation.NewMemoryStore()
	if cfg.Storage.PostgresURL != "" {
		pool, err := pgxpool.New(ctx, cfg.Storage.PostgresURL)
		if err != nil {
			return fmt.Errorf("connecting to postgres: %w", err)
		}
		defer pool.Close()

		pgStore := postgres.New(pool)
		if err := pgStore.Migrate(ctx); err != nil {
			return err
		}
		convStore = pgStore
		logger.Info("using postgres session store")
	}

	// LLM provider.
	provider, err := newProvider(cfg.LLM)
	if err != nil {
		return err
	}

	systemPrompt := cfg.Agent.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = defaultSystemPrompt
	}

	agentCfg := agent.DefaultConfig().
		WithModel(cfg.LLM.Model).
		WithSystemPrompt(systemPrompt)
	if cfg.Agent.MaxTokens > 0 {
		agentCfg.MaxTokens = cfg.Agent.MaxTokens
	}
	if cfg.Agent.MaxTurns > 0 {
		agentCfg.MaxTurns = cfg.Agent.MaxTurns
	}
	agentCfg.Temperature = cfg.Agent.Temperature

	ag := agent.New(provider, convStore, registry,
		agent.WithConfig(agentCfg),
		agent.WithLogger(logger),
	)

	// Daily POAP token refresh, server-side variant only.
	if cfg.Refresh.AuthBaseURL != "" {
		refresher := credential.NewRefresher(cfg.Refresh, creds, logger)
		c, err := refresher.Start()
		if err != nil {
			return err
		}
		defer c.Stop()
	}

	srv := server.New(ag, server.Config{
		CORSOrigins:     cfg.Server.CORSOrigins,
		RootRedirectURL: cfg.Server.RootRedirectURL,
	})

	logger.Info("starting server", "addr", cfg.Server.Addr)
	return srv.ListenAndServe(cfg.Server.Addr)
}

func newProvider(cfg config.LLMConfig) (llm.Provider, error) {
	switch cfg.Provider {
	case "anthropic":
		return anthropic.New(anthropic.Config{
			APIKey:  apiKey(cfg, "ANTHROPIC_API_KEY"),
			BaseURL: cfg.BaseURL,
		}), nil
	case "openai":
		return openai.New(openai.Config{
			APIKey:  apiKey(cfg, "OPENAI_API_KEY"),
			BaseURL: cfg.BaseURL,
		}), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", cfg.Provider)
	}
}

func apiKey(cfg config.LLMConfig, defaultVar string) string {
	if cfg.APIKeyVar != "" {
		return os.Getenv(cfg.APIKeyVar)
	}
	return os.Getenv(defaultVar)
}
