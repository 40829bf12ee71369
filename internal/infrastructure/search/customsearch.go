package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"NewsRisk/internal/config"
	"NewsRisk/internal/domain"
	"NewsRisk/internal/ports"
)

const collaboratorName = "search"

// CustomSearchClient talks to the Google Custom Search JSON API.
type CustomSearchClient struct {
	endpoint string
	cx       string
	apiKey   string
	http     *http.Client
}

var _ ports.SearchClient = (*CustomSearchClient)(nil)

// NewCustomSearchClient creates a reusable HTTP client from configuration.
func NewCustomSearchClient(cfg config.SearchConfig, client *http.Client) *CustomSearchClient {
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 20 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &CustomSearchClient{
		endpoint: cfg.Endpoint,
		cx:       cfg.CX,
		apiKey:   cfg.APIKey,
		http:     client,
	}
}

// Search issues one GET request and returns the raw items list.
func (c *CustomSearchClient) Search(ctx context.Context, req domain.SearchRequest) (domain.SearchResultSet, error) {
	target, err := c.buildURL(req)
	if err != nil {
		return nil, domain.NewCollaboratorError(collaboratorName, domain.KindTransport, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, domain.NewCollaboratorError(collaboratorName, domain.KindTransport, fmt.Errorf("new request: %w", err))
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, domain.NewCollaboratorError(collaboratorName, domain.KindTransport, fmt.Errorf("do request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		kind := domain.KindStatus
		if resp.StatusCode == http.StatusTooManyRequests {
			kind = domain.KindRateLimit
		}
		return nil, &domain.CollaboratorError{
			Collaborator: collaboratorName,
			Kind:         kind,
			StatusCode:   resp.StatusCode,
			Err:          fmt.Errorf("unexpected status %s: %s", resp.Status, strings.TrimSpace(string(payload))),
		}
	}

	var body struct {
		Items *[]json.RawMessage `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, domain.NewCollaboratorError(collaboratorName, domain.KindMalformed, fmt.Errorf("decode response: %w", err))
	}
	if body.Items == nil {
		return nil, domain.NewCollaboratorError(collaboratorName, domain.KindMalformed, errors.New("response has no items"))
	}

	return domain.SearchResultSet(*body.Items), nil
}

func (c *CustomSearchClient) buildURL(req domain.SearchRequest) (string, error) {
	parsed, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid search endpoint %s: %w", c.endpoint, err)
	}

	query := parsed.Query()
	query.Set("q", req.Query)
	query.Set("cx", c.cx)
	query.Set("key", c.apiKey)
	if req.Num > 0 {
		query.Set("num", strconv.Itoa(req.Num))
	}
	if req.Language != "" {
		query.Set("lr", req.Language)
	}
	if req.Filter {
		query.Set("filter", "1")
	} else {
		query.Set("filter", "0")
	}
	if req.DateRestrict != "" {
		query.Set("dateRestrict", req.DateRestrict)
	}
	if req.Country != "" {
		query.Set("cr", req.Country)
	}
	if req.Start > 0 {
		query.Set("start", strconv.Itoa(req.Start))
	}
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}
