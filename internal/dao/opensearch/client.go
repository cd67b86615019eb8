package opensearch

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/flarebyte/dbreset/internal/config"
)

type Client struct {
	httpClient *http.Client
	baseURL    string // e.g. http://127.0.0.1:9200 or https://127.0.0.1:9200
	username   string
	password   string
}

// NewClientFromConfig builds a client from the opensearch section of the config.
func NewClientFromConfig(cfg config.OpenSearchConfig) *Client {
	scheme := cfg.Scheme
	if scheme == "" {
		scheme = "http"
	}
	host := cfg.Host
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port == 0 {
		port = config.DefaultOpenSearchPort
	}
	tr := &http.Transport{}
	if scheme == "https" && cfg.InsecureSkipVerify {
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // dev-only
	}
	// Delete-by-query on large indices can take a while.
	hc := &http.Client{Transport: tr, Timeout: 10 * time.Minute}
	return NewClient(fmt.Sprintf("%s://%s:%d", scheme, host, port), cfg.Username, cfg.Password, hc)
}

// NewClient builds a client for baseURL. A nil httpClient uses http.DefaultClient.
func NewClient(baseURL, username, password string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		username:   username,
		password:   password,
	}
}

func (c *Client) do(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}
	return c.httpClient.Do(req)
}

func statusError(op string, resp *http.Response) error {
	b, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("%s: status=%d body=%s", op, resp.StatusCode, string(b))
}

// ClusterHealth returns the cluster health status string (e.g., green, yellow, red).
func (c *Client) ClusterHealth(ctx context.Context) (string, error) {
	req, _ := http.NewRequest(http.MethodGet, c.baseURL+"/_cluster/health", nil)
	resp, err := c.do(ctx, req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", statusError("cluster health", resp)
	}
	var obj struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&obj); err != nil {
		return "", err
	}
	return obj.Status, nil
}

// IndexExists checks if a given index exists.
func (c *Client) IndexExists(ctx context.Context, index string) (bool, error) {
	if index == "" {
		return false, fmt.Errorf("empty index")
	}
	req, _ := http.NewRequest(http.MethodHead, c.baseURL+"/"+url.PathEscape(index), nil)
	resp, err := c.do(ctx, req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusOK {
		return true, nil
	}
	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	return false, statusError("index exists check", resp)
}

// DeleteAllDocuments removes every document from index and returns the number deleted.
func (c *Client) DeleteAllDocuments(ctx context.Context, index string) (int64, error) {
	if index == "" {
		return 0, fmt.Errorf("empty index")
	}
	u := fmt.Sprintf("%s/%s/_delete_by_query?conflicts=proceed&refresh=true", c.baseURL, url.PathEscape(index))
	req, _ := http.NewRequest(http.MethodPost, u, strings.NewReader(`{"query":{"match_all":{}}}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.do(ctx, req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return 0, statusError("delete by query", resp)
	}
	var obj struct {
		Deleted  int64             `json:"deleted"`
		Failures []json.RawMessage `json:"failures"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&obj); err != nil {
		return 0, err
	}
	if len(obj.Failures) > 0 {
		return obj.Deleted, fmt.Errorf("delete by query on %s: %d failures", index, len(obj.Failures))
	}
	return obj.Deleted, nil
}

// IndexDocCount returns document count via _count API.
func (c *Client) IndexDocCount(ctx context.Context, index string) (int64, error) {
	if index == "" {
		return 0, fmt.Errorf("empty index")
	}
	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/%s/_count", c.baseURL, url.PathEscape(index)), nil)
	resp, err := c.do(ctx, req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return 0, statusError("get index count", resp)
	}
	var obj struct {
		Count int64 `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&obj); err != nil {
		return 0, err
	}
	return obj.Count, nil
}
