package cricfeed

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/platform/logging"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/platform/resilience"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/usecase"
)

const (
	defaultBaseURL = "https://feeds.cricdata.example/v2"
	maxMatchPages  = 50
)

var apiTokenParamRegex = regexp.MustCompile(`api_token=[^&\s"']+`)
var errCricFeedTransient = crerr.New("cricfeed transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchMatches pulls every match the provider lists inside the date window.
// The provider pages its listings; pages are followed until has_more is false.
func (c *Client) FetchMatches(ctx context.Context, from, to time.Time) ([]usecase.ExternalMatch, error) {
	query := map[string]string{}
	if !from.IsZero() {
		query["from"] = from.UTC().Format("2006-01-02")
	}
	if !to.IsZero() {
		query["to"] = to.UTC().Format("2006-01-02")
	}

	out := make([]usecase.ExternalMatch, 0, 64)
	for page := 1; page <= maxMatchPages; page++ {
		query["page"] = strconv.Itoa(page)

		var envelope matchesEnvelope
		if _, err := c.doJSON(ctx, "/matches", query, &envelope); err != nil {
			return nil, fmt.Errorf("fetch matches page=%d: %w", page, err)
		}

		for _, item := range envelope.Data {
			mapped, ok := mapMatchItem(item)
			if !ok {
				c.logger.WarnContext(ctx, "skipping provider match without id or date", "external_id", item.ID)
				continue
			}
			out = append(out, mapped)
		}

		if !envelope.Pagination.HasMore {
			break
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ExternalID < out[j].ExternalID
	})
	return out, nil
}

// FetchDeliveries pulls the full ball-by-ball record for one match.
func (c *Client) FetchDeliveries(ctx context.Context, matchExternalID string) ([]usecase.ExternalDelivery, error) {
	id := strings.TrimSpace(matchExternalID)
	if id == "" {
		return nil, fmt.Errorf("match external id must not be empty")
	}

	path := "/matches/" + url.PathEscape(id) + "/deliveries"
	var envelope deliveriesEnvelope
	if _, err := c.doJSON(ctx, path, nil, &envelope); err != nil {
		return nil, fmt.Errorf("fetch deliveries match_id=%s: %w", id, err)
	}

	out := make([]usecase.ExternalDelivery, 0, len(envelope.Data))
	for _, item := range envelope.Data {
		out = append(out, mapDeliveryItem(id, item))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Innings != out[j].Innings {
			return out[i].Innings < out[j].Innings
		}
		if out[i].Over != out[j].Over {
			return out[i].Over < out[j].Over
		}
		return out[i].Ball < out[j].Ball
	})
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "cricfeed circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: ball-by-ball feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}
	values.Set("api_token", c.token)

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	key := path + "?" + values.Encode()
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil {
				if isCricFeedCircuitFailure(reqErr) {
					c.breaker.RecordFailure()
				} else {
					c.breaker.RecordSuccess()
				}
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return nil, fmt.Errorf("decode provider payload: %w", err)
	}

	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errCricFeedTransient, sanitizeSensitiveText(err.Error(), c.token))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errCricFeedTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else {
				if isRetryableStatus(resp.StatusCode) {
					lastErr = fmt.Errorf("%w: provider status=%d body=%s", errCricFeedTransient, resp.StatusCode, abbreviateBody(raw))
				} else {
					return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
				}
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "cricfeed request failed", "url", redactAPIURL(fullURL), "error", lastErr)
	return nil, lastErr
}

func mapMatchItem(item matchItem) (usecase.ExternalMatch, bool) {
	id := strings.TrimSpace(item.ID)
	parsed := parseProviderDate(item.Date)
	if id == "" || parsed == nil {
		return usecase.ExternalMatch{}, false
	}

	overs := item.FormatOvers
	if overs <= 0 {
		overs = 20
	}

	return usecase.ExternalMatch{
		ExternalID:    id,
		Date:          *parsed,
		HomeLabel:     strings.TrimSpace(item.HomeTeam),
		AwayLabel:     strings.TrimSpace(item.AwayTeam),
		LeagueLabel:   strings.TrimSpace(item.Competition),
		Event:         strings.TrimSpace(item.Event),
		WinnerLabel:   strings.TrimSpace(item.Winner),
		NoResult:      item.NoResult,
		FormatOvers:   overs,
		International: item.International,
	}, true
}

func mapDeliveryItem(matchExternalID string, item deliveryItem) usecase.ExternalDelivery {
	return usecase.ExternalDelivery{
		MatchExternalID: matchExternalID,
		Innings:         item.Innings,
		Over:            item.Over,
		Ball:            item.Ball,
		Striker:         strings.TrimSpace(item.Striker),
		NonStriker:      strings.TrimSpace(item.NonStriker),
		Bowler:          strings.TrimSpace(item.Bowler),
		BattingLabel:    strings.TrimSpace(item.BattingTeam),
		BowlingLabel:    strings.TrimSpace(item.BowlingTeam),
		Runs:            item.RunsOffBat,
		Extras:          item.Extras,
		Wicket:          item.Wicket,
		Shot:            strings.TrimSpace(item.Shot),
		Line:            strings.TrimSpace(item.Line),
		Length:          strings.TrimSpace(item.Length),
	}
}

func parseProviderDate(raw string) *time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}

	layouts := []string{
		"2006-01-02",
		"2006-01-02 15:04:05",
		time.RFC3339,
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			v := parsed.UTC()
			return &v
		}
	}
	return nil
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if token != "" {
		value = strings.ReplaceAll(value, token, "REDACTED")
	}
	value = apiTokenParamRegex.ReplaceAllString(value, "api_token=REDACTED")
	return value
}

func redactAPIURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := parsed.Query()
	if query.Has("api_token") {
		query.Set("api_token", "REDACTED")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func isCricFeedCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errCricFeedTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
