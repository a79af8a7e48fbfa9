package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/selahapp/selah-backend/internal/logger"
	"github.com/selahapp/selah-backend/internal/utils"
)

// scriptureTranslation is the single supported translation. The model may
// suggest another one; it is discarded in favor of this.
const scriptureTranslation = "web"

type ScriptureClient interface {
	Lookup(ctx context.Context, book string, chapter, verseStart int, verseEnd *int) (string, error)
}

type scriptureClient struct {
	log    *logger.Logger
	client *resty.Client
}

func NewScriptureClient(log *logger.Logger) ScriptureClient {
	baseURL := utils.GetEnv("SCRIPTURE_API_URL", "https://bible-api.com", log)
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second)
	return &scriptureClient{
		log:    log.With("service", "ScriptureClient"),
		client: client,
	}
}

type scriptureLookupResponse struct {
	Reference string `json:"reference"`
	Text      string `json:"text"`
}

func (c *scriptureClient) Lookup(ctx context.Context, book string, chapter, verseStart int, verseEnd *int) (string, error) {
	if strings.TrimSpace(book) == "" || chapter <= 0 || verseStart <= 0 {
		return "", fmt.Errorf("invalid scripture reference")
	}

	ref := fmt.Sprintf("%s %d:%d", book, chapter, verseStart)
	if verseEnd != nil && *verseEnd > verseStart {
		ref = fmt.Sprintf("%s-%d", ref, *verseEnd)
	}

	var out scriptureLookupResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("translation", scriptureTranslation).
		SetResult(&out).
		Get("/" + ref)
	if err != nil {
		return "", fmt.Errorf("scripture lookup: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("scripture lookup: http %d", resp.StatusCode())
	}

	text := strings.TrimSpace(out.Text)
	if text == "" {
		return "", fmt.Errorf("scripture lookup returned empty text for %s", ref)
	}
	return text, nil
}
