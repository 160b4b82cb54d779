// Package dictionary looks up verb meanings shown as hints during drills.
package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-resty/resty/v2"

	"github.com/at-ishikawa/verbdrill/internal/dictionary/rapidapi"
)

//go:generate mockgen -source=dictionary_reader.go -destination=../mocks/dictionary/mock_dictionary_reader.go -package=mock_dictionary

var (
	ErrNotConfigured = errors.New("dictionary API is not configured")
	ErrWordNotFound  = errors.New("word not found")
)

// Lookuper looks up a word.
type Lookuper interface {
	Lookup(ctx context.Context, word string) (rapidapi.Response, error)
}

type Reader struct {
	config    Config
	client    *resty.Client
	fileCache *FileCache
}

type Config struct {
	RapidAPIHost string
	RapidAPIKey  string
	// BaseURL overrides https://<RapidAPIHost>.
	BaseURL string
}

func NewReader(cacheDirectory string, config Config) *Reader {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "https://" + config.RapidAPIHost
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("x-rapidapi-host", config.RapidAPIHost).
		SetHeader("x-rapidapi-key", config.RapidAPIKey)

	return &Reader{
		config:    config,
		client:    client,
		fileCache: NewFileCache(cacheDirectory),
	}
}

func (r *Reader) lookupAPI(ctx context.Context, word string) ([]byte, error) {
	if r.config.RapidAPIHost == "" || r.config.RapidAPIKey == "" {
		return nil, ErrNotConfigured
	}

	res, err := r.client.R().
		SetContext(ctx).
		Get("/words/" + url.PathEscape(word))
	if err != nil {
		return nil, fmt.Errorf("client.R.Get > %w", err)
	}
	switch res.StatusCode() {
	case http.StatusOK:
		return res.Body(), nil
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrWordNotFound, word)
	default:
		return nil, fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body()))
	}
}

// Lookup returns the cached response for word, calling the API on a cache miss.
func (r *Reader) Lookup(ctx context.Context, word string) (rapidapi.Response, error) {
	var resp rapidapi.Response
	contents, err := r.fileCache.cache(word, func() ([]byte, error) {
		body, err := r.lookupAPI(ctx, word)
		if err != nil {
			return nil, fmt.Errorf("r.lookupAPI > %w", err)
		}
		return body, nil
	})
	if err != nil {
		return resp, fmt.Errorf("r.fileCache.cache > %w", err)
	}
	if err := json.Unmarshal(contents, &resp); err != nil {
		return resp, fmt.Errorf("json.Unmarshal > %w", err)
	}
	return resp, nil
}
