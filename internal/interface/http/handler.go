package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mtnwx/avalanche-briefing/internal/domain/briefing"
	"github.com/mtnwx/avalanche-briefing/internal/domain/progress"
	apperrors "github.com/mtnwx/avalanche-briefing/pkg/errors"
)

// Handler wires the HTTP transport to the briefing domain.
type Handler struct {
	briefingSvc briefing.Service
	broadcaster *progress.Broadcaster
	logger      *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(briefingSvc briefing.Service, broadcaster *progress.Broadcaster, logger *slog.Logger) *Handler {
	return &Handler{
		briefingSvc: briefingSvc,
		broadcaster: broadcaster,
		logger:      logger.With("component", "http.handler"),
	}
}

// CreateSession mints a progress session ID. The client subscribes to the
// progress stream with it before requesting the briefing.
func (h *Handler) CreateSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sessionId": uuid.NewString()})
}

// Brief handles the sync briefing endpoint.
func (h *Handler) Brief(c *gin.Context) {
	var req briefing.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.briefingSvc.Brief(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "briefing_failed"
		switch {
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_request"
		case apperrors.IsCode(err, "report_data_error"):
			status = http.StatusBadGateway
		case apperrors.IsCode(err, "llm_error"):
			status = http.StatusBadGateway
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Progress streams briefing stage events for one session over Server-Sent
// Events until the briefing finishes or the client disconnects.
func (h *Handler) Progress(c *gin.Context) {
	sessionID := c.Param("session")
	if sessionID == "" {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "session id required", nil))
		return
	}

	events := h.broadcaster.Register(sessionID)
	defer h.broadcaster.Close(sessionID)

	flusher, ok := prepareSSE(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "stream_unsupported", "streaming not supported", nil))
		return
	}

	for {
		select {
		case event, open := <-events:
			if !open {
				return
			}
			writeSSE(c, flusher, event)
			if event.Stage == progress.StageDone || event.Stage == progress.StageFailed {
				return
			}
		case <-c.Request.Context().Done():
			return
		}
	}
}

// Chat streams an LLM answer about a day's field reports.
func (h *Handler) Chat(c *gin.Context) {
	var req briefing.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	stream, err := h.briefingSvc.Chat(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "chat_failed"
		switch {
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_request"
		case apperrors.IsCode(err, "report_data_error"), apperrors.IsCode(err, "llm_error"):
			status = http.StatusBadGateway
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	flusher, ok := prepareSSE(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "stream_unsupported", "streaming not supported", nil))
		return
	}

	for chunk := range stream {
		writeSSE(c, flusher, chunk)
	}
}

// Healthz reports service liveness.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func prepareSSE(c *gin.Context) (http.Flusher, bool) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	flusher, ok := c.Writer.(http.Flusher)
	return flusher, ok
}

func writeSSE(c *gin.Context, flusher http.Flusher, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	c.Writer.Write([]byte("data: "))
	c.Writer.Write(data)
	c.Writer.Write([]byte("\n\n"))
	flusher.Flush()
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
