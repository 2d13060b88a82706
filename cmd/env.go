package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/langkah-ekspor/exporo/internal/assess"
	"github.com/langkah-ekspor/exporo/internal/chat"
	"github.com/langkah-ekspor/exporo/internal/extract"
	"github.com/langkah-ekspor/exporo/internal/store"
	"github.com/langkah-ekspor/exporo/pkg/anthropic"
)

// env bundles the wired application dependencies for a command.
type env struct {
	Store    store.Store
	Engine   *chat.Engine
	Analyzer *assess.Analyzer
	Catalog  *chat.Catalog
}

func (e *env) Close() {
	if e.Store != nil {
		e.Store.Close() //nolint:errcheck
	}
}

// initStore opens the configured database backend.
func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		return store.NewSQLite(cfg.Store.DatabaseURL)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
	default:
		return nil, eris.Errorf("unknown store driver: %s", cfg.Store.Driver)
	}
}

// initEnv wires the client, extractors, analyzer, engine, and store.
func initEnv(ctx context.Context) (*env, error) {
	if cfg.Anthropic.Key == "" {
		return nil, eris.New("anthropic.key is not configured (set EXPORO_ANTHROPIC_KEY)")
	}

	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}

	catalog := chat.DefaultCatalog()
	if cfg.CountriesFile != "" {
		catalog, err = chat.LoadCatalog(cfg.CountriesFile)
		if err != nil {
			st.Close() //nolint:errcheck
			return nil, err
		}
	}

	client := anthropic.NewRateLimited(anthropic.NewClient(cfg.Anthropic.Key), cfg.Anthropic.RPS)
	timeout := cfg.Anthropic.Timeout()

	analyzer := assess.NewAnalyzer(client, cfg.Anthropic.DialogueModel, timeout)
	engine := chat.NewEngine(chat.EngineOptions{
		Client:             client,
		Model:              cfg.Anthropic.DialogueModel,
		Timeout:            timeout,
		ProfileExtractor:   extract.NewProfileExtractor(client, cfg.Anthropic.ExtractModel, cfg.Chat.ProfileWindow, timeout),
		ReadinessExtractor: extract.NewReadinessExtractor(client, cfg.Anthropic.ExtractModel, cfg.Chat.ReadinessWindow, timeout),
		Analyzer:           analyzer,
		Saver:              st,
		Catalog:            catalog,
	})

	return &env{Store: st, Engine: engine, Analyzer: analyzer, Catalog: catalog}, nil
}
