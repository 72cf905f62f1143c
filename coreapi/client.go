package coreapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rossostudios/puerta-abierta-sub004/config"
	"github.com/rossostudios/puerta-abierta-sub004/models"
)

// Client talks to the core records API (units, leases, tasks, collections,
// ...). The bearer token is optional; unauthenticated requests are still
// attempted and the backend decides what they may see.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(token string) *Client {
	return &Client{
		baseURL: config.CoreApiBaseURL(),
		token:   strings.TrimSpace(token),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type listResponse struct {
	Data []models.Record `json:"data"`
}

func (c *Client) getList(ctx context.Context, path string, params url.Values) ([]models.Record, error) {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint = endpoint + "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("core api error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed listResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}
	return parsed.Data, nil
}

// fetchList is the soft-failure wrapper around getList: any network error,
// non-2xx status or malformed payload is logged and becomes an empty list.
// One slow or broken endpoint must not block the rest of the snapshot.
func (c *Client) fetchList(ctx context.Context, path string, params url.Values) []models.Record {
	records, err := c.getList(ctx, path, params)
	if err != nil {
		config.LogError(config.GetLogger(), "coreapi", "fetchList", path, nil, err)
		return nil
	}
	return records
}
