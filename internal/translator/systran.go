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
	DefaultSystranURL = "https://api-systran-systran-translation-v1.p.rapidapi.com"

	systranDefaultSource = "auto"
)

// SystranService calls Systran through RapidAPI. Optional; it needs an API key.
type SystranService struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewSystranService(baseURL, apiKey string, timeout time.Duration) *SystranService {
	if baseURL == "" {
		baseURL = DefaultSystranURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &SystranService{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *SystranService) Name() string {
	return "systran"
}

func (s *SystranService) Translate(ctx context.Context, req TranslateRequest) (*ServiceResult, error) {
	result := &ServiceResult{ServiceName: s.Name()}
	start := time.Now()
	defer func() { result.Latency = time.Since(start) }()

	if s.apiKey == "" {
		return result, failure(result, nil, "Systran API key required")
	}

	sourceLang := req.SourceLang
	if sourceLang == "" {
		sourceLang = systranDefaultSource
	}
	result.SourceLang = sourceLang

	jsonData, err := json.Marshal(map[string]interface{}{
		"input":  []string{req.Text},
		"source": sourceLang,
		"target": req.TargetLang,
		"format": "text",
	})
	if err != nil {
		return result, failure(result, err, "failed to marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/translation/text/translate", bytes.NewReader(jsonData))
	if err != nil {
		return result, failure(result, err, "failed to create request")
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-RapidAPI-Key", s.apiKey)
	httpReq.Header.Set("X-RapidAPI-Host", httpReq.URL.Host)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return result, failure(result, err, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return result, failure(result, nil, fmt.Sprintf("API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var systranResp struct {
		Outputs []struct {
			Output string `json:"output"`
			Error  string `json:"error"`
		} `json:"outputs"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&systranResp); err != nil {
		return result, failure(result, err, "failed to decode response")
	}

	if len(systranResp.Outputs) == 0 || systranResp.Outputs[0].Output == "" {
		msg := "empty translation response"
		if len(systranResp.Outputs) > 0 && systranResp.Outputs[0].Error != "" {
			msg = "API error: " + systranResp.Outputs[0].Error
		}
		return result, failure(result, nil, msg)
	}

	result.TranslatedText = systranResp.Outputs[0].Output
	return result, nil
}
