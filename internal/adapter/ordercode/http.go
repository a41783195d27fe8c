package ordercode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/polkiloo/restomart/internal/domain/model"
)

// TooManyRequestsError represents rate limiting signal from the code service.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// HTTPGenerator asks a remote service for order codes.
type HTTPGenerator struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

type codeRequest struct {
	Year           int    `json:"year"`
	Sex            string `json:"sex"`
	Classification string `json:"classification"`
}

type codeResponse struct {
	Code string `json:"code"`
}

// NewHTTPGenerator creates HTTPGenerator with default timeout.
func NewHTTPGenerator(baseURL string, logger *slog.Logger) (*HTTPGenerator, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse order code service url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("order code service url must be absolute")
	}
	return &HTTPGenerator{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}, nil
}

// Generate requests a code for key.
func (g *HTTPGenerator) Generate(ctx context.Context, key model.OrderCodeKey) (string, error) {
	endpoint := *g.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/order-codes")

	body, err := json.Marshal(codeRequest{Year: key.Year, Sex: string(key.Sex), Classification: string(key.Classification)})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		var data codeResponse
		if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
			return "", fmt.Errorf("decode order code: %w", err)
		}
		if data.Code == "" {
			return "", fmt.Errorf("order code service returned an empty code")
		}
		return data.Code, nil
	case http.StatusTooManyRequests:
		return "", TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	default:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		g.logger.Error("order code request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(msg)))
		return "", fmt.Errorf("order code service error: %s", resp.Status)
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
