package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"redflag-aggregator/internal/interfaces"
	"redflag-aggregator/internal/logger"
	"redflag-aggregator/internal/store"
)

const systemPrompt = "You are a financial risk analyst. You will receive the structured output " +
	"of a red-flag aggregation as JSON. Write a concise plain-text narrative for an analyst: " +
	"state the red flag index, the high-risk themes, any detected scenarios, and the critical " +
	"issues. Do not invent numbers; the structured outputs are authoritative."

// Narrator generates the explanatory summary via the OpenAI chat completions
// API. Failures are recovered by the orchestrator, which falls back to the
// deterministic builder.
type Narrator struct {
	cfg *store.Config
}

func NewNarrator(cfg *store.Config) *Narrator {
	return &Narrator{cfg: cfg}
}

func (n *Narrator) Narrate(ctx context.Context, in interfaces.NarrativeInput) (string, error) {
	ctx, span := logger.StartSpan(ctx, "openai-narrative-call")
	defer span.End()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return "", errors.New("OPENAI_API_KEY missing")
	}

	state := map[string]any{
		"company_id":     in.CompanyID,
		"red_flag_index": in.RedFlagIndex,
		"category_risks": in.CategoryRisks,
		"scenarios":      in.Scenarios,
		"flags":          in.Flags,
	}
	sb, _ := json.Marshal(state)

	body := map[string]any{
		"model": n.cfg.Narrative.Model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": string(sb)},
		},
		"temperature": n.cfg.Narrative.Temperature,
		"max_tokens":  n.cfg.Narrative.MaxTokens,
	}
	bb, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, "POST", "https://api.openai.com/v1/chat/completions", bytes.NewReader(bb))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("openai http %d", resp.StatusCode)
	}

	var r struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return "", err
	}

	if len(r.Choices) == 0 {
		return "", errors.New("no choices")
	}

	out := strings.TrimSpace(r.Choices[0].Message.Content)
	if out == "" {
		return "", errors.New("empty narrative")
	}
	return out, nil
}
