package briefing

import (
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter bounds prompt text to a token budget before it is sent to the
// LLM. The core text collector never truncates; that responsibility lives
// here with the caller.
type TokenCounter struct {
	enc *tiktoken.Tiktoken
}

// NewTokenCounter builds a counter over the cl100k_base encoding used by the
// gpt-4 family.
func NewTokenCounter() (*TokenCounter, error) {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, err
	}
	return &TokenCounter{enc: enc}, nil
}

// Count returns the token length of text.
func (t *TokenCounter) Count(text string) int {
	if t == nil || t.enc == nil {
		return approxTokens(text)
	}
	return len(t.enc.Encode(text, nil, nil))
}

// Truncate cuts text down to at most budget tokens. A nil counter falls back
// to an approximate cut of four bytes per token so the service keeps working
// when the encoding could not be loaded.
func (t *TokenCounter) Truncate(text string, budget int) string {
	if budget <= 0 {
		return ""
	}
	if t == nil || t.enc == nil {
		if approxTokens(text) <= budget {
			return text
		}
		return text[:budget*4]
	}
	ids := t.enc.Encode(text, nil, nil)
	if len(ids) <= budget {
		return text
	}
	return t.enc.Decode(ids[:budget])
}

func approxTokens(text string) int {
	return (len(text) + 3) / 4
}

// joinSections renders the labelled text sections that feed the prompt.
func joinSections(sections map[string][]string, order []string) string {
	var builder strings.Builder
	for _, name := range order {
		lines := sections[name]
		if len(lines) == 0 {
			continue
		}
		builder.WriteString(name)
		builder.WriteString(":\n")
		for _, line := range lines {
			builder.WriteString("- ")
			builder.WriteString(line)
			builder.WriteString("\n")
		}
		builder.WriteString("\n")
	}
	return strings.TrimSpace(builder.String())
}
