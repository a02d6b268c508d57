// Package tool implements the kagi_search tool: it resolves the API key and
// limit for a call, queries Kagi and turns every outcome into text.
package tool

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/kitbuilder587/kagi-search/internal/credential"
	"github.com/kitbuilder587/kagi-search/internal/hostconfig"
	"github.com/kitbuilder587/kagi-search/internal/metrics"
	"github.com/kitbuilder587/kagi-search/internal/search"
)

const (
	PluginID          = "kagi-search"
	PluginName        = "Kagi Search"
	PluginDescription = "Search the web using Kagi — structured results, no AI synthesis"

	Name        = "kagi_search"
	Description = "Search the web using Kagi Search API. Returns structured results (title, URL, snippet, published date) without AI synthesis. Useful when you need raw search results with direct links rather than a synthesized answer."

	ArgQuery = "query"
	ArgLimit = "limit"

	configLimitKey = "limit"
)

type Deps struct {
	Search search.SearchClient
	Host   *hostconfig.Config
	// nil - ключ ищется через credential.OS()
	Resolver *credential.Resolver
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
}

type SearchTool struct {
	search   search.SearchClient
	host     *hostconfig.Config
	resolver credential.Resolver
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

func New(deps Deps) *SearchTool {
	resolver := credential.OS()
	if deps.Resolver != nil {
		resolver = *deps.Resolver
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Host == nil {
		deps.Host = &hostconfig.Config{}
	}

	return &SearchTool{
		search:   deps.Search,
		host:     deps.Host,
		resolver: resolver,
		logger:   deps.Logger,
		metrics:  deps.Metrics,
	}
}

// Execute runs one search call. Every outcome, including failures, comes
// back as text; Execute never panics past its own boundary.
func (t *SearchTool) Execute(ctx context.Context, args map[string]any) string {
	text, _ := t.execute(ctx, args)
	return text
}

func (t *SearchTool) execute(ctx context.Context, args map[string]any) (text, outcome string) {
	start := time.Now()
	callID := uuid.NewString()
	logger := t.logger.With(zap.String("call_id", callID))

	if t.metrics != nil {
		t.metrics.IncToolCallsInFlight()
		defer t.metrics.DecToolCallsInFlight()
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("kagi_search panicked", zap.Any("panic", r))
			text, outcome = FormatFailure(fmt.Errorf("%v", r)), metrics.OutcomeFailed
		}
		if t.metrics != nil {
			t.metrics.RecordToolCall(outcome, time.Since(start))
		}
		logger.Info("kagi_search finished",
			zap.String("outcome", outcome),
			zap.Duration("duration", time.Since(start)),
		)
	}()

	cfg := t.host.PluginConfig(PluginID)

	apiKey, source := t.resolver.Resolve(cfg)
	if source == credential.SourceNone {
		logger.Warn("no kagi api key configured")
		return MsgNoCredential, metrics.OutcomeNoCredential
	}

	query := cast.ToString(args[ArgQuery])
	limit := ResolveLimit(args[ArgLimit], cfg[configLimitKey])

	logger.Debug("kagi_search started",
		zap.String("query", query),
		zap.Int("limit", limit),
		zap.String("key_source", string(source)),
	)

	if t.search == nil {
		return FormatFailure(errors.New("search client is not configured")), metrics.OutcomeFailed
	}

	resp, err := t.search.Search(ctx, search.SearchRequest{
		Query:  query,
		Limit:  limit,
		APIKey: apiKey,
	})
	if err != nil {
		return t.errorText(logger, err)
	}
	if resp == nil {
		return FormatFailure(errors.New("empty response")), metrics.OutcomeFailed
	}

	// клиент мог вернуть ответ с ошибками, не конвертируя их в error
	if len(resp.Errors) > 0 {
		return t.errorText(logger, search.APIErrors(resp.Errors))
	}

	organic := resp.Organic()
	if len(organic) == 0 {
		return FormatNoResults(query), metrics.OutcomeNoResults
	}

	logger.Debug("kagi_search results",
		zap.Int("total", len(resp.Data)),
		zap.Int("organic", len(organic)),
		zap.String("request_id", resp.Meta.ID),
	)

	return FormatResults(organic, resp.Meta), metrics.OutcomeOK
}

func (t *SearchTool) errorText(logger *zap.Logger, err error) (string, string) {
	var statusErr *search.StatusError
	if errors.As(err, &statusErr) {
		logger.Warn("kagi api returned error status", zap.Int("status", statusErr.StatusCode))
		return FormatStatusError(statusErr), metrics.OutcomeHTTPError
	}

	var apiErrs search.APIErrors
	if errors.As(err, &apiErrs) {
		logger.Warn("kagi api reported errors", zap.Strings("errors", apiErrs.Messages()))
		return FormatAPIErrors(apiErrs), metrics.OutcomeAPIError
	}

	logger.Error("kagi search failed", zap.Error(err))
	return FormatFailure(err), metrics.OutcomeFailed
}
