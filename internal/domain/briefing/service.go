package briefing

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/mtnwx/avalanche-briefing/internal/domain/progress"
	"github.com/mtnwx/avalanche-briefing/internal/domain/report"
	"github.com/mtnwx/avalanche-briefing/internal/infra/llm/chatgpt"
	"github.com/mtnwx/avalanche-briefing/internal/observability"
	apperrors "github.com/mtnwx/avalanche-briefing/pkg/errors"
	"github.com/mtnwx/avalanche-briefing/pkg/metrics"
)

// Service exposes the daily briefing capabilities.
type Service interface {
	Brief(ctx context.Context, req Request) (Response, error)
	Chat(ctx context.Context, req ChatRequest) (<-chan StreamChunk, error)
}

// ChatClient is the LLM surface the briefing domain needs.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
	CreateChatCompletionStream(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.Stream, error)
}

// ReportClient fetches a day of field reports from the avalanche center.
type ReportClient interface {
	Fetch(ctx context.Context, date string) ([]report.FieldReport, error)
}

// Store caches generated summaries keyed by report content hash.
type Store interface {
	Get(ctx context.Context, key string) (SummaryRecord, bool, error)
	Save(ctx context.Context, record SummaryRecord, ttl time.Duration) error
}

// ProgressSink receives stage events for a briefing session.
type ProgressSink interface {
	Publish(sessionID string, event progress.Event)
}

type service struct {
	cfg      Config
	reports  ReportClient
	client   ChatClient
	store    Store
	progress ProgressSink
	tokens   *TokenCounter
	metrics  *observability.Metrics
	clock    clockwork.Clock
	logger   *slog.Logger
}

// NewService wires up the briefing domain.
func NewService(cfg Config, reports ReportClient, client ChatClient, store Store, sink ProgressSink, tokens *TokenCounter, m *observability.Metrics, clock clockwork.Clock, logger *slog.Logger) Service {
	return &service{
		cfg:      cfg,
		reports:  reports,
		client:   client,
		store:    store,
		progress: sink,
		tokens:   tokens,
		metrics:  m,
		clock:    clock,
		logger:   logger.With("component", "briefing.service"),
	}
}

func (s *service) Brief(ctx context.Context, req Request) (Response, error) {
	date, err := s.resolveDate(req.Date)
	if err != nil {
		return Response{}, apperrors.Wrap("invalid_input", "date must be formatted as YYYY-MM-DD", err)
	}

	s.publish(req.SessionID, progress.StageFetching, "fetching field reports for "+date)
	fetchStart := s.clock.Now()
	reports, err := s.reports.Fetch(ctx, date)
	if err != nil {
		s.fail(req.SessionID, "fetch")
		return Response{}, apperrors.Wrap("report_data_error", "failed to fetch field reports", err)
	}
	s.metrics.FetchDuration.Observe(s.clock.Since(fetchStart).Seconds())
	s.metrics.ReportsFetched.Add(float64(len(reports)))
	s.logger.Info("field reports fetched", "date", date, "reports", len(reports))

	s.publish(req.SessionID, progress.StageAggregating, fmt.Sprintf("aggregating %d reports", len(reports)))
	snapshot := report.Aggregate(reports)
	texts := report.CollectTexts(reports)

	key := contentHash(date, reports)
	cached, hit, err := s.store.Get(ctx, key)
	if err != nil {
		s.logger.Warn("summary cache lookup failed", "error", err)
	}
	if hit {
		s.metrics.CacheLookups.WithLabelValues("hit").Inc()
		s.metrics.BriefingsServed.WithLabelValues("cache").Inc()
		s.publish(req.SessionID, progress.StageDone, "briefing served from cache")
		return Response{
			Date:        date,
			Snapshot:    snapshot,
			Texts:       texts,
			Summary:     cached.Summary,
			Source:      "cache",
			GeneratedAt: cached.CreatedAt.UTC().Format(time.RFC3339),
		}, nil
	}
	s.metrics.CacheLookups.WithLabelValues("miss").Inc()

	s.publish(req.SessionID, progress.StageSummarizing, "generating summary")
	summary, usage, err := s.summarize(ctx, date, snapshot, texts)
	if err != nil {
		s.fail(req.SessionID, "llm")
		return Response{}, err
	}

	generatedAt := s.clock.Now().UTC()
	record := SummaryRecord{
		Key:       key,
		Date:      date,
		Summary:   summary,
		CreatedAt: generatedAt,
	}
	if err := s.store.Save(ctx, record, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("summary cache save failed", "error", err)
	}

	s.metrics.BriefingsServed.WithLabelValues("llm").Inc()
	s.publish(req.SessionID, progress.StageDone, "briefing generated")

	return Response{
		Date:        date,
		Snapshot:    snapshot,
		Texts:       texts,
		Summary:     summary,
		Source:      "llm",
		GeneratedAt: generatedAt.Format(time.RFC3339),
		TokenUsage:  usage,
	}, nil
}

func (s *service) Chat(ctx context.Context, req ChatRequest) (<-chan StreamChunk, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, apperrors.Wrap("invalid_input", "question cannot be empty", nil)
	}
	date, err := s.resolveDate(req.Date)
	if err != nil {
		return nil, apperrors.Wrap("invalid_input", "date must be formatted as YYYY-MM-DD", err)
	}

	reports, err := s.reports.Fetch(ctx, date)
	if err != nil {
		return nil, apperrors.Wrap("report_data_error", "failed to fetch field reports", err)
	}
	snapshot := report.Aggregate(reports)
	texts := report.CollectTexts(reports)

	messages := []chatgpt.Message{
		{Role: "system", Content: s.chatSystemPrompt()},
		{Role: "user", Content: s.buildChatPrompt(date, snapshot, texts, question)},
	}

	s.metrics.LLMRequests.Inc()
	stream, err := s.client.CreateChatCompletionStream(ctx, chatgpt.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Messages:    messages,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, apperrors.Wrap("llm_error", "chatgpt stream request failed", err)
	}

	out := make(chan StreamChunk)
	go func() {
		defer close(out)
		defer stream.Close()

		for {
			chunk, recvErr := stream.Recv()
			if recvErr != nil {
				if !errors.Is(recvErr, io.EOF) {
					s.logger.Error("chatgpt stream recv failed", "error", recvErr)
				}
				break
			}
			for _, choice := range chunk.Choices {
				if choice.Delta.Content == "" {
					continue
				}
				select {
				case out <- StreamChunk{Content: choice.Delta.Content}:
				case <-ctx.Done():
					return
				}
			}
		}

		select {
		case out <- StreamChunk{Completed: true}:
		case <-ctx.Done():
		}
	}()

	return out, nil
}

func (s *service) summarize(ctx context.Context, date string, snapshot report.Snapshot, texts report.TextBundle) (string, *metrics.TokenUsage, error) {
	messages := []chatgpt.Message{
		{Role: "system", Content: s.systemPrompt()},
		{Role: "user", Content: s.buildSummaryPrompt(date, snapshot, texts)},
	}

	s.metrics.LLMRequests.Inc()
	llmStart := s.clock.Now()
	completion, err := s.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Messages:    messages,
		Temperature: s.cfg.Temperature,
	})
	s.metrics.LLMDuration.Observe(s.clock.Since(llmStart).Seconds())
	if err != nil {
		return "", nil, apperrors.Wrap("llm_error", "chatgpt request failed", err)
	}
	if len(completion.Choices) == 0 {
		return "", nil, apperrors.Wrap("llm_error", "chatgpt returned no choices", nil)
	}
	summary := strings.TrimSpace(completion.Choices[0].Message.Content)
	if summary == "" {
		return "", nil, apperrors.Wrap("llm_error", "chatgpt response empty", nil)
	}

	var usage *metrics.TokenUsage
	if completion.Usage.TotalTokens > 0 {
		usage = &metrics.TokenUsage{
			PromptTokens:     completion.Usage.PromptTokens,
			CompletionTokens: completion.Usage.CompletionTokens,
			TotalTokens:      completion.Usage.TotalTokens,
		}
	}
	return summary, usage, nil
}

func (s *service) buildSummaryPrompt(date string, snapshot report.Snapshot, texts report.TextBundle) string {
	stats, err := json.Marshal(snapshot)
	if err != nil {
		stats = []byte("{}")
	}

	body := joinSections(map[string][]string{
		"Observations": texts.Observations,
		"Snowpack":     texts.Snowpack,
		"Weather":      texts.Weather,
	}, []string{"Observations", "Snowpack", "Weather"})
	body = s.tokens.Truncate(body, s.cfg.MaxPromptTokens)

	return fmt.Sprintf("Summarize the avalanche field reports for %s.\n\nAggregated statistics:\n%s\n\nField notes:\n%s", date, stats, body)
}

func (s *service) buildChatPrompt(date string, snapshot report.Snapshot, texts report.TextBundle, question string) string {
	stats, err := json.Marshal(snapshot)
	if err != nil {
		stats = []byte("{}")
	}

	body := joinSections(map[string][]string{
		"Observations": texts.Observations,
		"Snowpack":     texts.Snowpack,
		"Weather":      texts.Weather,
	}, []string{"Observations", "Snowpack", "Weather"})
	body = s.tokens.Truncate(body, s.cfg.MaxPromptTokens)

	return fmt.Sprintf("Field reports for %s.\n\nAggregated statistics:\n%s\n\nField notes:\n%s\n\nQuestion: %s", date, stats, body, question)
}

func (s *service) systemPrompt() string {
	prompt := strings.TrimSpace(s.cfg.Prompt)
	if prompt == "" {
		prompt = "You are an avalanche forecaster's assistant summarizing field reports."
	}
	return prompt
}

func (s *service) chatSystemPrompt() string {
	prompt := strings.TrimSpace(s.cfg.ChatPrompt)
	if prompt == "" {
		prompt = s.systemPrompt()
	}
	return prompt
}

func (s *service) resolveDate(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return s.clock.Now().UTC().Format("2006-01-02"), nil
	}
	if _, err := time.Parse("2006-01-02", trimmed); err != nil {
		return "", err
	}
	return trimmed, nil
}

func (s *service) publish(sessionID string, stage progress.Stage, detail string) {
	if s.progress == nil || sessionID == "" {
		return
	}
	s.progress.Publish(sessionID, progress.Event{
		Stage:  stage,
		Detail: detail,
		At:     s.clock.Now().UTC(),
	})
}

func (s *service) fail(sessionID, stage string) {
	s.metrics.BriefingErrors.WithLabelValues(stage).Inc()
	s.publish(sessionID, progress.StageFailed, "briefing failed during "+stage)
}

// contentHash keys the summary cache on the date plus the exact report
// payload, so a re-fetch that returns new or edited reports misses the cache
// while an identical payload hits it.
func contentHash(date string, reports []report.FieldReport) string {
	hasher := sha256.New()
	hasher.Write([]byte(date))
	if payload, err := json.Marshal(reports); err == nil {
		hasher.Write(payload)
	}
	return hex.EncodeToString(hasher.Sum(nil))
}
