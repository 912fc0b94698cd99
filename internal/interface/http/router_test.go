package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtnwx/avalanche-briefing/internal/domain/briefing"
	"github.com/mtnwx/avalanche-briefing/internal/domain/progress"
	"github.com/mtnwx/avalanche-briefing/internal/infra/config"
	apperrors "github.com/mtnwx/avalanche-briefing/pkg/errors"
)

type stubBriefingService struct {
	briefFn func(ctx context.Context, req briefing.Request) (briefing.Response, error)
	chatFn  func(ctx context.Context, req briefing.ChatRequest) (<-chan briefing.StreamChunk, error)
}

func (s *stubBriefingService) Brief(ctx context.Context, req briefing.Request) (briefing.Response, error) {
	if s.briefFn == nil {
		return briefing.Response{}, nil
	}
	return s.briefFn(ctx, req)
}

func (s *stubBriefingService) Chat(ctx context.Context, req briefing.ChatRequest) (<-chan briefing.StreamChunk, error) {
	if s.chatFn == nil {
		return nil, apperrors.Wrap("llm_error", "not configured", nil)
	}
	return s.chatFn(ctx, req)
}

func newRouterUnderTest(t *testing.T, svc briefing.Service, broadcaster *progress.Broadcaster) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: 5 * time.Second,
		},
	}
	handler := NewHandler(svc, broadcaster, logger)
	return NewRouter(cfg, handler, logger).Handler
}

func performRequest(target, body string, handler http.Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func decodeErrorBody(t *testing.T, body []byte) map[string]map[string]string {
	t.Helper()
	var out map[string]map[string]string
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestRouter_BriefSuccess(t *testing.T) {
	want := briefing.Response{Date: "2026-02-14", Summary: "Quiet day in the backcountry.", Source: "llm"}
	svc := &stubBriefingService{
		briefFn: func(ctx context.Context, req briefing.Request) (briefing.Response, error) {
			require.Equal(t, "2026-02-14", req.Date)
			return want, nil
		},
	}

	recorder := performRequest("/api/v1/briefings", `{"date":"2026-02-14"}`, newRouterUnderTest(t, svc, progress.NewBroadcaster()))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got briefing.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	assert.Equal(t, want.Summary, got.Summary)
	assert.Equal(t, want.Source, got.Source)
}

func TestRouter_BriefInvalidJSON(t *testing.T) {
	recorder := performRequest("/api/v1/briefings", `{"date":123}`, newRouterUnderTest(t, &stubBriefingService{}, progress.NewBroadcaster()))
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	assert.Equal(t, "invalid_request", errBody["error"]["code"])
}

func TestRouter_BriefInvalidInput(t *testing.T) {
	svc := &stubBriefingService{
		briefFn: func(ctx context.Context, req briefing.Request) (briefing.Response, error) {
			return briefing.Response{}, apperrors.Wrap("invalid_input", "date must be formatted as YYYY-MM-DD", nil)
		},
	}

	recorder := performRequest("/api/v1/briefings", `{"date":"nope"}`, newRouterUnderTest(t, svc, progress.NewBroadcaster()))
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestRouter_BriefUpstreamFailure(t *testing.T) {
	svc := &stubBriefingService{
		briefFn: func(ctx context.Context, req briefing.Request) (briefing.Response, error) {
			return briefing.Response{}, apperrors.Wrap("report_data_error", "failed to fetch field reports", nil)
		},
	}

	recorder := performRequest("/api/v1/briefings", `{}`, newRouterUnderTest(t, svc, progress.NewBroadcaster()))
	require.Equal(t, http.StatusBadGateway, recorder.Code)
}

func TestRouter_CreateSession(t *testing.T) {
	recorder := performRequest("/api/v1/briefings/sessions", ``, newRouterUnderTest(t, &stubBriefingService{}, progress.NewBroadcaster()))
	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.NotEmpty(t, body["sessionId"])
}

func TestRouter_Healthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	recorder := httptest.NewRecorder()
	newRouterUnderTest(t, &stubBriefingService{}, progress.NewBroadcaster()).ServeHTTP(recorder, req)
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestRouter_ProgressStream(t *testing.T) {
	broadcaster := progress.NewBroadcaster()
	server := httptest.NewServer(newRouterUnderTest(t, &stubBriefingService{}, broadcaster))
	defer server.Close()

	go func() {
		// Give the handler a moment to register the subscription.
		time.Sleep(50 * time.Millisecond)
		broadcaster.Publish("sess-1", progress.Event{Stage: progress.StageFetching, At: time.Now()})
		broadcaster.Publish("sess-1", progress.Event{Stage: progress.StageDone, At: time.Now()})
	}()

	resp, err := http.Get(server.URL + "/api/v1/briefings/progress/sess-1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	var stages []string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var event progress.Event
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &event))
		stages = append(stages, string(event.Stage))
	}
	assert.Equal(t, []string{"fetching", "done"}, stages)
}

func TestRouter_ChatStream(t *testing.T) {
	svc := &stubBriefingService{
		chatFn: func(ctx context.Context, req briefing.ChatRequest) (<-chan briefing.StreamChunk, error) {
			out := make(chan briefing.StreamChunk, 3)
			out <- briefing.StreamChunk{Content: "Wind slabs "}
			out <- briefing.StreamChunk{Content: "on NE aspects."}
			out <- briefing.StreamChunk{Completed: true}
			close(out)
			return out, nil
		},
	}
	server := httptest.NewServer(newRouterUnderTest(t, svc, progress.NewBroadcaster()))
	defer server.Close()

	resp, err := http.Post(server.URL+"/api/v1/briefings/chat", "application/json", strings.NewReader(`{"date":"2026-02-14","question":"where?"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := string(payload)
	assert.Contains(t, body, "Wind slabs ")
	assert.Contains(t, body, "on NE aspects.")
	assert.Contains(t, body, `"completed":true`)
}

func TestRouter_ChatInvalidInput(t *testing.T) {
	svc := &stubBriefingService{
		chatFn: func(ctx context.Context, req briefing.ChatRequest) (<-chan briefing.StreamChunk, error) {
			return nil, apperrors.Wrap("invalid_input", "question cannot be empty", nil)
		},
	}

	recorder := performRequest("/api/v1/briefings/chat", `{"date":"2026-02-14"}`, newRouterUnderTest(t, svc, progress.NewBroadcaster()))
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}
