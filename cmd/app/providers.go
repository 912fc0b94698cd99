package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/valkey-io/valkey-go"

	"github.com/mtnwx/avalanche-briefing/internal/domain/briefing"
	"github.com/mtnwx/avalanche-briefing/internal/infra/briefingstore"
	"github.com/mtnwx/avalanche-briefing/internal/infra/config"
	"github.com/mtnwx/avalanche-briefing/internal/infra/llm/chatgpt"
	"github.com/mtnwx/avalanche-briefing/internal/infra/reports/avycenter"
	"github.com/mtnwx/avalanche-briefing/internal/observability"
)

func provideBriefingConfig(cfg *config.Config) briefing.Config {
	return briefing.Config{
		Model:           cfg.LLM.Model,
		Temperature:     cfg.LLM.Temperature,
		Prompt:          cfg.Briefing.Prompt,
		ChatPrompt:      cfg.Briefing.ChatPrompt,
		CacheTTL:        cfg.Briefing.CacheTTL,
		MaxPromptTokens: cfg.Briefing.MaxPromptTokens,
	}
}

func provideChatGPTClient(cfg *config.Config) (*chatgpt.Client, error) {
	return chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL)
}

func provideReportClient(cfg *config.Config) *avycenter.Client {
	return avycenter.NewClient(cfg.Reports.APIBaseURL, cfg.Reports.Timeout)
}

func provideClock() clockwork.Clock {
	return clockwork.NewRealClock()
}

func provideMetrics() *observability.Metrics {
	return observability.NewMetrics(prometheus.DefaultRegisterer)
}

func provideTokenCounter(logger *slog.Logger) *briefing.TokenCounter {
	counter, err := briefing.NewTokenCounter()
	if err != nil {
		logger.Warn("token encoding unavailable, falling back to approximate budget", "error", err)
		return nil
	}
	return counter
}

func provideBriefingStore(cfg *config.Config, logger *slog.Logger) briefing.Store {
	if cfg.Briefing.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return briefingstore.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return briefingstore.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
		} else {
			logger.Info("briefing valkey store enabled", "addr", cfg.Briefing.Valkey.Addr)
			return briefingstore.NewValkeyStore(client, "briefing")
		}
	}
	return briefingstore.NewMemoryStore()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Briefing.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Briefing.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Briefing.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}
