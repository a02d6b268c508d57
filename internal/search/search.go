package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrMissingAPIKey = errors.New("API key is required")

// типы записей в data
const (
	ResultOrganic = 0
	ResultRelated = 1
)

type SearchClient interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)
}

type SearchRequest struct {
	Query  string
	Limit  int
	APIKey string
}

type SearchResponse struct {
	Meta   Meta
	Data   []SearchResult
	Errors []APIError
}

type Meta struct {
	ID         string  `json:"id"`
	Node       string  `json:"node"`
	Ms         float64 `json:"ms"`
	APIBalance float64 `json:"api_balance"`
}

type SearchResult struct {
	T         int        `json:"t"`
	URL       string     `json:"url,omitempty"`
	Title     string     `json:"title,omitempty"`
	Snippet   string     `json:"snippet,omitempty"`
	Published string     `json:"published,omitempty"`
	Thumbnail *Thumbnail `json:"thumbnail,omitempty"`
}

type Thumbnail struct {
	URL    string `json:"url,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

type APIError struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// IsOrganic - настоящий результат поиска со ссылкой (не related searches)
func (r SearchResult) IsOrganic() bool {
	return r.T == ResultOrganic && r.URL != ""
}

// Organic оставляет только organic-результаты, порядок сохраняется
func (r *SearchResponse) Organic() []SearchResult {
	out := make([]SearchResult, 0, len(r.Data))
	for _, res := range r.Data {
		if res.IsOrganic() {
			out = append(out, res)
		}
	}
	return out
}

// StatusError - API ответил не-2xx статусом
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	detail := e.Body
	if detail == "" {
		detail = e.Status
	}
	return fmt.Sprintf("status %d: %s", e.StatusCode, detail)
}

// APIErrors - непустой список error в теле ответа
type APIErrors []APIError

func (e APIErrors) Error() string {
	return strings.Join(e.Messages(), "; ")
}

func (e APIErrors) Messages() []string {
	msgs := make([]string, len(e))
	for i, apiErr := range e {
		msgs[i] = apiErr.Msg
	}
	return msgs
}
