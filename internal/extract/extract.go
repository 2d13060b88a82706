// Package extract turns recent conversation turns into structured profile
// fragments via the Anthropic API. Extraction is best-effort: a response that
// fails to parse degrades to an empty fragment rather than failing the turn.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/langkah-ekspor/exporo/internal/model"
	"github.com/langkah-ekspor/exporo/pkg/anthropic"
)

// Default trailing windows. Profile facts cluster in the latest exchange;
// export intent tends to span a few more turns.
const (
	DefaultProfileWindow   = 4
	DefaultReadinessWindow = 6
)

const (
	extractMaxTokens   = 4000
	extractTemperature = 0.1
)

// readinessKeywords gates the readiness extractor. If none of these appear in
// the window, the second API call is skipped entirely.
var readinessKeywords = []string{
	"export",
	"ekspor",
	"international",
	"negara",
	"country",
	"market",
	"pasar",
	"certification",
	"sertifikasi",
	"readiness",
}

// Extractor produces a merge fragment from a conversation window.
type Extractor interface {
	Extract(ctx context.Context, turns []model.Turn) (map[string]any, error)
}

type extractor struct {
	client  anthropic.Client
	model   string
	prompt  string
	window  int
	timeout time.Duration
	gated   bool
	name    string
}

// NewProfileExtractor extracts business profile fields from the trailing
// window of the conversation.
func NewProfileExtractor(client anthropic.Client, llmModel string, window int, timeout time.Duration) Extractor {
	if window <= 0 {
		window = DefaultProfileWindow
	}
	return &extractor{
		client:  client,
		model:   llmModel,
		prompt:  profilePrompt,
		window:  window,
		timeout: timeout,
		name:    "profile",
	}
}

// NewReadinessExtractor extracts export readiness fields. It only issues an
// API call when the window mentions export-related keywords.
func NewReadinessExtractor(client anthropic.Client, llmModel string, window int, timeout time.Duration) Extractor {
	if window <= 0 {
		window = DefaultReadinessWindow
	}
	return &extractor{
		client:  client,
		model:   llmModel,
		prompt:  readinessPrompt,
		window:  window,
		timeout: timeout,
		gated:   true,
		name:    "readiness",
	}
}

func (e *extractor) Extract(ctx context.Context, turns []model.Turn) (map[string]any, error) {
	window := model.Window(turns, e.window)
	if len(window) == 0 {
		return map[string]any{}, nil
	}

	text := model.Flatten(window)
	if e.gated && !hasReadinessContent(text) {
		return map[string]any{}, nil
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	resp, err := e.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       e.model,
		MaxTokens:   extractMaxTokens,
		System:      anthropic.BuildCachedSystemBlocks(e.prompt),
		Temperature: ptr(extractTemperature),
		Messages: []anthropic.Message{
			{Role: "user", Content: fmt.Sprintf("Extract data from this conversation:\n\n%s", text)},
		},
	})
	if err != nil {
		return nil, eris.Wrapf(err, "extract: %s call", e.name)
	}

	fragment, perr := parseFragment(resp.Text())
	if perr != nil {
		zap.L().Warn("extraction response did not parse, degrading to empty fragment",
			zap.String("extractor", e.name),
			zap.String("raw", snippet(resp.Text(), 200)),
			zap.Error(perr))
		return map[string]any{}, nil
	}

	if e.name == "profile" {
		normalizeLocation(fragment)
	}
	return fragment, nil
}

func hasReadinessContent(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range readinessKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func parseFragment(text string) (map[string]any, error) {
	cleaned := cleanJSON(text)
	if cleaned == "" {
		return nil, eris.New("extract: empty response")
	}
	var fragment map[string]any
	if err := json.Unmarshal([]byte(cleaned), &fragment); err != nil {
		return nil, eris.Wrap(err, "extract: parse fragment")
	}
	return fragment, nil
}

// cleanJSON strips markdown fences and extracts the JSON object.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(text)
}

var titleCaser = cases.Title(language.Indonesian)

// normalizeLocation proper-cases city and province names in place, so
// "bandung" and "JAWA BARAT" merge consistently across turns.
func normalizeLocation(fragment map[string]any) {
	loc, ok := fragment["production_location"].(map[string]any)
	if !ok {
		return
	}
	for _, key := range []string{"city", "province", "country"} {
		s, ok := loc[key].(string)
		if !ok || s == "" {
			continue
		}
		if isSentinel(s) {
			continue
		}
		loc[key] = titleCaser.String(strings.ToLower(s))
	}
}

func isSentinel(s string) bool {
	for _, sentinel := range model.SentinelStrings {
		if strings.EqualFold(s, sentinel) {
			return true
		}
	}
	return false
}

func snippet(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func ptr(f float64) *float64 { return &f }
