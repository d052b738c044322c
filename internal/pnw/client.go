package pnw

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"pnw_targets/internal/app"
	"pnw_targets/internal/config"

	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the Politics & War GraphQL endpoint
const DefaultBaseURL = "https://api.politicsandwar.com/graphql"

type Client struct {
	apiKey        string
	baseURL       string
	client        *http.Client
	requestDelay  time.Duration
	rateLimitWait time.Duration
	pageSize      int
	apiCallCount  int64
	apiCallMutex  sync.Mutex
}

// NewClient creates a client for the public API using the default request settings
func NewClient(apiKey string) *Client {
	return NewClientWithConfig(apiKey, DefaultBaseURL, config.DefaultResilienceConfig.APIRequest)
}

// NewClientWithConfig creates a client against baseURL with explicit pacing settings
func NewClientWithConfig(apiKey, baseURL string, cfg config.RequestConfig) *Client {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = config.NationsPageSize
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		requestDelay:  cfg.Delay,
		rateLimitWait: cfg.RateLimitWait,
		pageSize:      pageSize,
	}
}

// IncrementAPICall safely increments the API call counter
func (c *Client) IncrementAPICall() {
	c.apiCallMutex.Lock()
	c.apiCallCount++
	c.apiCallMutex.Unlock()
}

// GetAPICallCount returns the current API call count
func (c *Client) GetAPICallCount() int64 {
	c.apiCallMutex.Lock()
	defer c.apiCallMutex.Unlock()
	return c.apiCallCount
}

// ResetAPICallCount resets the API call counter to zero
func (c *Client) ResetAPICallCount() {
	c.apiCallMutex.Lock()
	c.apiCallCount = 0
	c.apiCallMutex.Unlock()
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// FetchNationByID fetches a single nation. A lookup with no matching record
// fails with app.ErrNotFound.
func (c *Client) FetchNationByID(ctx context.Context, nationID int) (*app.Nation, error) {
	log.Debug().Int("nation_id", nationID).Msg("Fetching nation by ID")

	var payload struct {
		Nations *rawNationList `json:"nations"`
	}
	if err := c.runQuery(ctx, nationByIDQuery(nationID), &payload); err != nil {
		return nil, err
	}

	if payload.Nations == nil || payload.Nations.Data == nil {
		return nil, fmt.Errorf("%w: response missing 'nations.data' field", app.ErrProtocol)
	}
	if len(payload.Nations.Data) == 0 {
		return nil, fmt.Errorf("%w: nation with ID %d", app.ErrNotFound, nationID)
	}

	nation := normalizeNation(payload.Nations.Data[0])

	log.Debug().
		Int("nation_id", nation.ID).
		Str("nation_name", nation.Name).
		Float64("score", nation.Score).
		Msg("Successfully fetched nation")

	return &nation, nil
}

// FetchNationsPage fetches one page of the nation list, starting at page 1
func (c *Client) FetchNationsPage(ctx context.Context, page int) (*app.NationsPage, error) {
	log.Debug().
		Int("page", page).
		Int("page_size", c.pageSize).
		Msg("Fetching nations page")

	var payload struct {
		Nations *rawNationList `json:"nations"`
	}
	if err := c.runQuery(ctx, nationsPageQuery(page, c.pageSize), &payload); err != nil {
		return nil, err
	}

	if payload.Nations == nil {
		return nil, fmt.Errorf("%w: response missing 'nations' field - API format may have changed", app.ErrProtocol)
	}
	if payload.Nations.Data == nil {
		return nil, fmt.Errorf("%w: response missing nation data", app.ErrProtocol)
	}

	result := normalizePage(*payload.Nations)

	log.Debug().
		Int("page", page).
		Int("nations_count", len(result.Nations)).
		Bool("has_more_pages", result.HasMorePages).
		Msg("Successfully fetched nations page")

	return &result, nil
}

// runQuery sends a GraphQL query and decodes its data envelope into out
func (c *Client) runQuery(ctx context.Context, query string, out any) error {
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return fmt.Errorf("failed to encode query: %w", err)
	}

	if err := sleep(ctx, c.requestDelay); err != nil {
		return err
	}

	resp, err := c.makeAPIRequest(ctx, body)
	if err != nil {
		return err
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		resp.Body.Close()
		return fmt.Errorf("%w: check your API key", app.ErrAuthentication)
	case http.StatusForbidden:
		resp.Body.Close()
		return fmt.Errorf("%w: your key may be invalid or lacks permissions", app.ErrAuthorization)
	case http.StatusTooManyRequests:
		resp.Body.Close()
		log.Warn().
			Dur("backoff", c.rateLimitWait).
			Msg("Rate limit hit, waiting to retry")

		if err := sleep(ctx, c.rateLimitWait); err != nil {
			return err
		}
		resp, err = c.makeAPIRequest(ctx, body)
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return fmt.Errorf("%w: rate limit retry failed with status code %d", app.ErrTransport, resp.StatusCode)
		}
	default:
		resp.Body.Close()
		return fmt.Errorf("%w: status code %d", app.ErrTransport, resp.StatusCode)
	}

	return c.decodeResponse(resp, out)
}

// makeAPIRequest creates and executes an HTTP POST request to the GraphQL endpoint
func (c *Client) makeAPIRequest(ctx context.Context, body []byte) (*http.Response, error) {
	endpoint := c.baseURL + "?api_key=" + url.QueryEscape(c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Debug().
			Err(err).
			Str("base_url", c.baseURL).
			Msg("API request failed")
		return nil, fmt.Errorf("%w: %w", app.ErrTransport, err)
	}

	c.IncrementAPICall()
	log.Debug().Int("status", resp.StatusCode).Msg("API response received")
	return resp, nil
}

// decodeResponse checks the GraphQL envelope and unmarshals its data into out
func (c *Client) decodeResponse(resp *http.Response, out any) error {
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response body: %w", app.ErrTransport, err)
	}

	var envelope graphQLResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("%w: failed to decode response: %w", app.ErrProtocol, err)
	}

	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			msg := e.Message
			if msg == "" {
				msg = "Unknown GraphQL error"
			}
			messages = append(messages, msg)
		}
		joined := strings.Join(messages, "; ")
		log.Error().Str("graphql_errors", joined).Msg("GraphQL API error")
		return fmt.Errorf("%w: GraphQL API Error: %s", app.ErrProtocol, joined)
	}

	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return fmt.Errorf("%w: response missing 'data' field", app.ErrProtocol)
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("%w: failed to decode data: %w", app.ErrProtocol, err)
	}

	return nil
}

// sleep waits for d or until ctx is done
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
