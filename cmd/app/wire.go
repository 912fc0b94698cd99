//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/mtnwx/avalanche-briefing/internal/bootstrap"
	"github.com/mtnwx/avalanche-briefing/internal/domain/briefing"
	"github.com/mtnwx/avalanche-briefing/internal/domain/progress"
	"github.com/mtnwx/avalanche-briefing/internal/infra/config"
	"github.com/mtnwx/avalanche-briefing/internal/infra/llm/chatgpt"
	"github.com/mtnwx/avalanche-briefing/internal/infra/reports/avycenter"
	httpiface "github.com/mtnwx/avalanche-briefing/internal/interface/http"
	"github.com/mtnwx/avalanche-briefing/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideBriefingConfig,
		provideChatGPTClient,
		provideReportClient,
		provideBriefingStore,
		provideClock,
		provideMetrics,
		provideTokenCounter,
		progress.NewBroadcaster,
		briefing.NewService,
		wire.Bind(new(briefing.ChatClient), new(*chatgpt.Client)),
		wire.Bind(new(briefing.ReportClient), new(*avycenter.Client)),
		wire.Bind(new(briefing.ProgressSink), new(*progress.Broadcaster)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
