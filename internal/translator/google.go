package translator

import (
	"context"
	"time"

	translate "cloud.google.com/go/translate"
	"github.com/pkg/errors"
	"golang.org/x/text/language"
	"google.golang.org/api/option"
)

// GoogleService is an optional provider. It joins the chain only when listed in the
// configured providers.
type GoogleService struct {
	credentials string
	projectID   string
}

func NewGoogleService(credentials, projectID string) *GoogleService {
	return &GoogleService{credentials: credentials, projectID: projectID}
}

func (s *GoogleService) Name() string {
	return "google"
}

func (s *GoogleService) Translate(ctx context.Context, req TranslateRequest) (*ServiceResult, error) {
	result := &ServiceResult{ServiceName: s.Name(), SourceLang: req.SourceLang}
	start := time.Now()
	defer func() { result.Latency = time.Since(start) }()

	targetLangTag, err := language.Parse(req.TargetLang)
	if err != nil {
		return result, failure(result, err, "invalid target language")
	}

	var opts *translate.Options
	if req.SourceLang != "" && req.SourceLang != "auto" {
		sourceLangTag, err := language.Parse(req.SourceLang)
		if err != nil {
			return result, failure(result, err, "invalid source language")
		}
		opts = &translate.Options{Source: sourceLangTag, Format: translate.Text}
	} else {
		result.SourceLang = "auto"
		opts = &translate.Options{Format: translate.Text}
	}

	clientOpts := []option.ClientOption{}
	if s.credentials != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(s.credentials))
	}
	if s.projectID != "" {
		clientOpts = append(clientOpts, option.WithQuotaProject(s.projectID))
	}

	client, err := translate.NewClient(ctx, clientOpts...)
	if err != nil {
		return result, failure(result, err, "failed to create client")
	}
	defer client.Close()

	translations, err := client.Translate(ctx, []string{req.Text}, targetLangTag, opts)
	if err != nil {
		return result, failure(result, err, "translation failed")
	}
	if len(translations) == 0 {
		return result, failure(result, errors.New("no translation returned"), "translation failed")
	}

	result.TranslatedText = translations[0].Text
	return result, nil
}
