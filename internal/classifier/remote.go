package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RemoteScorer delegates scoring to a model sidecar over HTTP.
type RemoteScorer struct {
	url        string
	token      string
	names      []string
	httpClient *http.Client
}

type remoteRequest struct {
	FeatureNames []string  `json:"feature_names"`
	Vector       []float64 `json:"vector"`
}

type remoteResponse struct {
	Probability *float64 `json:"probability"`
}

// NewRemoteScorer posts vectors to url. names are sent alongside each vector
// so the sidecar can build a named frame.
func NewRemoteScorer(url, token string, names []string, timeout time.Duration) *RemoteScorer {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RemoteScorer{
		url:        url,
		token:      token,
		names:      names,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *RemoteScorer) Score(ctx context.Context, x []float64) (float64, error) {
	payload, err := json.Marshal(remoteRequest{FeatureNames: c.names, Vector: x})
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}
	if resp.StatusCode >= 400 {
		return 0, fmt.Errorf("model sidecar POST %s: %d %s", c.url, resp.StatusCode, string(body))
	}
	var out remoteResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return 0, fmt.Errorf("decode sidecar response: %w", err)
	}
	if out.Probability == nil {
		return 0, fmt.Errorf("sidecar response has no probability")
	}
	return *out.Probability, nil
}
