package predictapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"titanic/domain/passenger"
	"titanic/domain/prediction"
	"titanic/internal"
	"titanic/internal/errors"
	"titanic/ports"
)

// Client calls the external survival model over HTTP
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	logger     *internal.Logger
}

// NewClient creates a client for origin. A zero timeout means no client-side deadline.
func NewClient(origin string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(origin, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
		logger:     internal.DefaultLogger.Named("PredictAPI"),
	}
}

type predictResponse struct {
	Probability *float64 `json:"probability"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Predict posts q to {origin}/predict and returns the probability.
// Failures are never retried.
func (c *Client) Predict(ctx context.Context, q passenger.Query) (prediction.Result, error) {
	jsonData, err := json.Marshal(q)
	if err != nil {
		return prediction.Result{}, errors.Wrap(err, "failed to marshal passenger query")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/predict", bytes.NewBuffer(jsonData))
	if err != nil {
		return prediction.Result{}, errors.TransportError(fmt.Sprintf("invalid backend origin %q", c.BaseURL), err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("POST %s/predict pclass=%v sex=%v age=%v embarked=%s", c.BaseURL, q.Pclass, q.Sex, q.Age, q.Embarked)
	start := time.Now()

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.logger.Warn("request to %s failed: %v", c.BaseURL, err)
		return prediction.Result{}, errors.TransportError(err.Error(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return prediction.Result{}, errors.TransportError(fmt.Sprintf("failed to read response: %v", err), err)
	}

	c.logger.Debug("response status=%d size=%d in %s", resp.StatusCode, len(body), time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody errorResponse
		if json.Unmarshal(body, &errBody) == nil && errBody.Error != "" {
			return prediction.Result{}, errors.TransportError(errBody.Error, nil)
		}
		return prediction.Result{}, errors.TransportError(fmt.Sprintf("Request failed with status %d", resp.StatusCode), nil)
	}

	var parsed predictResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return prediction.Result{}, errors.MalformedResponse(fmt.Sprintf("invalid JSON in prediction response: %v", err), err)
	}
	if parsed.Probability == nil {
		return prediction.Result{}, errors.MalformedResponse("prediction response is missing a numeric probability", nil)
	}
	p := *parsed.Probability
	if math.IsNaN(p) || p < 0 || p > 1 {
		return prediction.Result{}, errors.MalformedResponse(fmt.Sprintf("probability %v is outside [0,1]", p), nil)
	}

	return prediction.Result{Probability: p}, nil
}

// Health checks {origin}/health
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/health", nil)
	if err != nil {
		return errors.TransportError(fmt.Sprintf("invalid backend origin %q", c.BaseURL), err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return errors.TransportError(err.Error(), err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return errors.TransportError(fmt.Sprintf("unhealthy: status %d", resp.StatusCode), nil)
	}
	return nil
}

// Factory returns a BackendFactory that builds a client per resolved origin
func Factory(timeout time.Duration) ports.BackendFactory {
	return func(origin string) ports.Backend {
		return NewClient(origin, timeout)
	}
}
