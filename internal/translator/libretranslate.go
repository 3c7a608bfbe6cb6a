package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultLibreTranslateURL = "https://libretranslate.com"

	libreDefaultSource = "auto"
)

type LibreTranslateService struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewLibreTranslateService creates the primary provider. apiKey may be empty; it is only
// sent when set.
func NewLibreTranslateService(baseURL, apiKey string, timeout time.Duration) *LibreTranslateService {
	if baseURL == "" {
		baseURL = DefaultLibreTranslateURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &LibreTranslateService{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *LibreTranslateService) Name() string {
	return "libretranslate"
}

type libreRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type libreResponse struct {
	TranslatedText *string `json:"translatedText"`
	Error          string  `json:"error"`
}

func (s *LibreTranslateService) Translate(ctx context.Context, req TranslateRequest) (*ServiceResult, error) {
	result := &ServiceResult{ServiceName: s.Name()}
	start := time.Now()
	defer func() { result.Latency = time.Since(start) }()

	sourceLang := req.SourceLang
	if sourceLang == "" {
		sourceLang = libreDefaultSource
	}
	result.SourceLang = sourceLang

	jsonData, err := json.Marshal(libreRequest{
		Q:      req.Text,
		Source: sourceLang,
		Target: req.TargetLang,
		Format: "text",
		APIKey: s.apiKey,
	})
	if err != nil {
		return result, failure(result, err, "failed to marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/translate", bytes.NewReader(jsonData))
	if err != nil {
		return result, failure(result, err, "failed to create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return result, failure(result, err, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return result, failure(result, nil, fmt.Sprintf("API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var libreResp libreResponse
	if err := json.NewDecoder(resp.Body).Decode(&libreResp); err != nil {
		return result, failure(result, err, "failed to decode response")
	}

	if libreResp.TranslatedText == nil {
		msg := "missing translatedText in response"
		if libreResp.Error != "" {
			msg = "API error: " + libreResp.Error
		}
		return result, failure(result, nil, msg)
	}

	result.TranslatedText = *libreResp.TranslatedText
	return result, nil
}
