package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultMyMemoryURL = "https://api.mymemory.translated.net"

	myMemoryDefaultSource = "en"
)

type MyMemoryService struct {
	baseURL string
	email   string
	client  *http.Client
}

func NewMyMemoryService(baseURL, email string, timeout time.Duration) *MyMemoryService {
	if baseURL == "" {
		baseURL = DefaultMyMemoryURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &MyMemoryService{
		baseURL: strings.TrimRight(baseURL, "/"),
		email:   email,
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *MyMemoryService) Name() string {
	return "mymemory"
}

// responseStatus records the body status code and whether it arrived as a JSON number.
// MyMemory quotes the code on some error paths; only the number 200 is success.
type responseStatus struct {
	code   int
	number bool
}

func (r *responseStatus) UnmarshalJSON(data []byte) error {
	*r = responseStatus{}
	if string(data) == "null" {
		return nil
	}
	r.number = !bytes.HasPrefix(data, []byte(`"`))
	data = bytes.Trim(data, `"`)
	if len(data) == 0 {
		return nil
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("invalid responseStatus %q", data)
	}
	r.code = n
	return nil
}

func (r responseStatus) ok() bool {
	return r.number && r.code == http.StatusOK
}

func (r responseStatus) String() string {
	if r.number {
		return strconv.Itoa(r.code)
	}
	return strconv.Quote(strconv.Itoa(r.code))
}

type myMemoryResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
	ResponseStatus  responseStatus  `json:"responseStatus"`
	ResponseDetails json.RawMessage `json:"responseDetails"`
}

func (s *MyMemoryService) Translate(ctx context.Context, req TranslateRequest) (*ServiceResult, error) {
	result := &ServiceResult{ServiceName: s.Name()}
	start := time.Now()
	defer func() { result.Latency = time.Since(start) }()

	sourceLang := req.SourceLang
	if sourceLang == "" {
		sourceLang = myMemoryDefaultSource
	}
	result.SourceLang = sourceLang

	params := url.Values{}
	params.Set("q", req.Text)
	params.Set("langpair", fmt.Sprintf("%s|%s", sourceLang, req.TargetLang))
	if s.email != "" {
		params.Set("de", s.email)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/get?"+params.Encode(), nil)
	if err != nil {
		return result, failure(result, err, "failed to create request")
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return result, failure(result, err, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return result, failure(result, nil, fmt.Sprintf("API returned status %d", resp.StatusCode))
	}

	var mymemResp myMemoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&mymemResp); err != nil {
		return result, failure(result, err, "failed to decode response")
	}

	// HTTP 200 is only transport success; the body carries the real outcome.
	if !mymemResp.ResponseStatus.ok() {
		return result, failure(result, nil, fmt.Sprintf("API error: %s (%s)", details(mymemResp.ResponseDetails), mymemResp.ResponseStatus))
	}

	result.TranslatedText = mymemResp.ResponseData.TranslatedText
	return result, nil
}

func details(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
