package enrichment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"catalog-service/pkg/config"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

// GeminiClient calls the Gemini generateContent REST endpoint
type GeminiClient struct {
	http    *retryablehttp.Client
	baseURL string
	model   string
	apiKey  string
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// NewGeminiClient creates a client bounded by cfg.Timeout per attempt and cfg.RetryMax retries
func NewGeminiClient(cfg *config.EnrichmentConfig, log *zap.Logger) *GeminiClient {
	client := retryablehttp.NewClient()
	client.RetryMax = cfg.RetryMax
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.HTTPClient.Timeout = cfg.Timeout
	client.Logger = leveledLogger{log.Sugar()}

	return &GeminiClient{
		http:    client,
		baseURL: strings.TrimRight(cfg.GeminiBaseURL, "/"),
		model:   cfg.GeminiModel,
		apiKey:  cfg.GeminiAPIKey,
	}
}

// GenerateText sends prompt and returns the first candidate's text
func (g *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("encode gemini request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, url.PathEscape(g.model))
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("call gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}

	for _, candidate := range decoded.Candidates {
		for _, p := range candidate.Content.Parts {
			if text := strings.TrimSpace(p.Text); text != "" {
				return text, nil
			}
		}
	}
	return "", errors.New("gemini response contained no text")
}

// leveledLogger adapts zap to retryablehttp.LeveledLogger
type leveledLogger struct {
	log *zap.SugaredLogger
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, keysAndValues...)
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.log.Warnw(msg, keysAndValues...)
}
