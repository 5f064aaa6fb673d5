package anilist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"anilistbot/internal/metrics"
)

// Client issues the fixed GraphQL queries against AniList.
type Client struct {
	URL    string
	Client *http.Client
	Logger *zap.Logger
}

func NewClient(url string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		URL:    url,
		Client: &http.Client{Timeout: 12 * time.Second},
		Logger: logger.With(zap.String("component", "anilist")),
	}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors"`
}

// GraphQLError is one entry of the "errors" array AniList returns.
type GraphQLError struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// APIError carries AniList's own error report back to the caller unchanged.
type APIError struct {
	Status int
	Errors []GraphQLError
}

func (e *APIError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, ge := range e.Errors {
		msgs = append(msgs, ge.Message)
	}
	if len(msgs) == 0 {
		return fmt.Sprintf("anilist: status %d", e.Status)
	}
	return fmt.Sprintf("anilist: status %d: %s", e.Status, strings.Join(msgs, "; "))
}

// IsNotFound reports whether err is AniList saying the requested id does not exist.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Status == http.StatusNotFound {
		return true
	}
	for _, ge := range apiErr.Errors {
		if ge.Status == http.StatusNotFound {
			return true
		}
	}
	return false
}

// do posts one query and decodes the "data" object into out. A response
// carrying errors, or a non-200 status, becomes an *APIError.
func (c *Client) do(ctx context.Context, name, query string, vars map[string]any, out any) error {
	start := time.Now()
	defer func() {
		metrics.AniListLatency.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}()

	payload, err := json.Marshal(graphQLRequest{Query: query, Variables: vars})
	if err != nil {
		return fmt.Errorf("anilist: marshal %s: %w", name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("anilist: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		metrics.AniListRequests.WithLabelValues(name, "transport_error").Inc()
		return fmt.Errorf("anilist: %s request: %w", name, err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		metrics.AniListRequests.WithLabelValues(name, "transport_error").Inc()
		return fmt.Errorf("anilist: read %s response: %w", name, err)
	}

	var gr graphQLResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		metrics.AniListRequests.WithLabelValues(name, "transport_error").Inc()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("anilist: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		}
		return fmt.Errorf("anilist: decode %s: %w", name, err)
	}

	if len(gr.Errors) > 0 || resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Status: resp.StatusCode, Errors: gr.Errors}
		outcome := "api_error"
		if IsNotFound(apiErr) {
			outcome = "not_found"
		}
		metrics.AniListRequests.WithLabelValues(name, outcome).Inc()
		c.Logger.Debug("anilist returned errors",
			zap.String("query", name),
			zap.Int("status", resp.StatusCode),
			zap.Error(apiErr))
		return apiErr
	}

	if err := json.Unmarshal(gr.Data, out); err != nil {
		metrics.AniListRequests.WithLabelValues(name, "transport_error").Inc()
		return fmt.Errorf("anilist: decode %s data: %w", name, err)
	}
	metrics.AniListRequests.WithLabelValues(name, "ok").Inc()
	return nil
}

func pageVars(name string, id, page int) map[string]any {
	vars := map[string]any{}
	if id != 0 {
		vars["id"] = id
	}
	if name = strings.TrimSpace(name); name != "" {
		vars["search"] = name
	}
	if page < 1 {
		page = 1
	}
	vars["page"] = page
	return vars
}

func errNotFound() *APIError {
	return &APIError{
		Status: http.StatusNotFound,
		Errors: []GraphQLError{{Message: "Not Found.", Status: http.StatusNotFound}},
	}
}
