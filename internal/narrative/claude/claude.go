package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"redflag-aggregator/internal/interfaces"
	"redflag-aggregator/internal/logger"
	"redflag-aggregator/internal/store"
)

const systemPrompt = "You are a financial risk analyst. Summarize the structured red-flag " +
	"aggregation you receive as JSON into a concise plain-text narrative: red flag index, " +
	"high-risk themes, detected scenarios, critical issues. The structured numbers are " +
	"authoritative; do not restate them differently."

// Narrator generates the explanatory summary via the Anthropic messages API.
type Narrator struct {
	cfg      *store.Config
	endpoint string
}

// NewNarrator creates a Claude-backed narrator. The endpoint can be redirected
// to a proxy via the CLAUDE_API_ENDPOINT env var.
func NewNarrator(cfg *store.Config) *Narrator {
	endpoint := "https://api.anthropic.com/v1/messages"
	if ep := os.Getenv("CLAUDE_API_ENDPOINT"); ep != "" {
		endpoint = ep
	}
	return &Narrator{cfg: cfg, endpoint: endpoint}
}

func (n *Narrator) Narrate(ctx context.Context, in interfaces.NarrativeInput) (string, error) {
	ctx, span := logger.StartSpan(ctx, "claude-narrative-call")
	defer span.End()

	apiKey := os.Getenv("CLAUDE_API_KEY")
	if apiKey == "" {
		return "", errors.New("CLAUDE_API_KEY missing")
	}

	state := map[string]any{
		"company_id":     in.CompanyID,
		"red_flag_index": in.RedFlagIndex,
		"category_risks": in.CategoryRisks,
		"scenarios":      in.Scenarios,
		"flags":          in.Flags,
	}
	stateB, _ := json.Marshal(state)

	reqBody := map[string]any{
		"model":  n.cfg.Narrative.Model,
		"system": systemPrompt,
		"messages": []map[string]string{
			{"role": "user", "content": string(stateB)},
		},
		"max_tokens":  n.cfg.Narrative.MaxTokens,
		"temperature": n.cfg.Narrative.Temperature,
	}

	bb, _ := json.Marshal(reqBody)
	req, err := http.NewRequestWithContext(ctx, "POST", n.endpoint, bytes.NewReader(bb))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("claude http %d: %s", resp.StatusCode, string(body))
	}

	var r struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return "", err
	}

	var out strings.Builder
	for _, block := range r.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(out.String())
	if text == "" {
		return "", errors.New("empty narrative")
	}
	return text, nil
}
