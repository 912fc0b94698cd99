package briefing

import (
	"time"

	"github.com/mtnwx/avalanche-briefing/internal/domain/report"
	"github.com/mtnwx/avalanche-briefing/pkg/metrics"
)

// Request captures the payload accepted by the briefing service.
type Request struct {
	Date string `json:"date"`
	// SessionID, when set, routes progress events to a subscribed SSE
	// connection.
	SessionID string `json:"sessionId"`
}

// Response is serialized back to API consumers.
type Response struct {
	Date        string              `json:"date"`
	Snapshot    report.Snapshot     `json:"snapshot"`
	Texts       report.TextBundle   `json:"texts"`
	Summary     string              `json:"summary"`
	Source      string              `json:"source"`
	GeneratedAt string              `json:"generatedAt"`
	TokenUsage  *metrics.TokenUsage `json:"tokenUsage,omitempty"`
}

// ChatRequest is a follow-up question about a day's reports.
type ChatRequest struct {
	Date     string `json:"date"`
	Question string `json:"question"`
}

// StreamChunk is one frame of a streamed chat answer.
type StreamChunk struct {
	Content   string `json:"content"`
	Completed bool   `json:"completed,omitempty"`
}

// SummaryRecord is the cached LLM summary for one day's report content.
type SummaryRecord struct {
	Key       string    `json:"key"`
	Date      string    `json:"date"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"createdAt"`
}

// Config wires runtime settings for the briefing domain.
type Config struct {
	Model           string
	Temperature     float32
	Prompt          string
	ChatPrompt      string
	CacheTTL        time.Duration
	MaxPromptTokens int
}
