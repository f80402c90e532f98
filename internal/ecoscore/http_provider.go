package ecoscore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// HTTPConfig configures the HTTP provider.
type HTTPConfig struct {
	BaseURL    string
	Timeout    time.Duration // per attempt
	MaxRetries int
}

// lookupResponse is the subset of the provider payload the catalog reads.
type lookupResponse struct {
	Status  int `json:"status"`
	Product struct {
		EcoscoreGrade string `json:"ecoscore_grade"`
	} `json:"product"`
}

// httpProvider implements Provider against an Open Food Facts compatible API.
type httpProvider struct {
	baseURL    string
	client     *http.Client
	timeout    time.Duration
	maxRetries int
	logger     zerolog.Logger

	// newBackOff is replaced in tests to avoid real sleeps.
	newBackOff func() backoff.BackOff
}

// NewHTTPProvider creates a provider that fetches grades over HTTP.
// A nil client uses a dedicated http.Client without a global timeout; each
// attempt is bounded by cfg.Timeout instead.
func NewHTTPProvider(cfg HTTPConfig, client *http.Client, logger zerolog.Logger) Provider {
	if client == nil {
		client = &http.Client{}
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	return &httpProvider{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		client:     client,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		logger:     logger.With().Str("component", "ecoscore-client").Logger(),
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 50 * time.Millisecond
			b.MaxInterval = 250 * time.Millisecond
			b.MaxElapsedTime = 0
			return b
		},
	}
}

// Grade fetches the grade for productID, retrying transport failures and 5xx
// responses at most maxRetries times.
func (p *httpProvider) Grade(ctx context.Context, productID int64) (string, error) {
	attempt := 0
	operation := func() (string, error) {
		attempt++
		grade, err := p.fetch(ctx, productID)
		if err != nil && !isPermanent(err) {
			p.logger.Debug().
				Err(err).
				Int64("product_id", productID).
				Int("attempt", attempt).
				Msg("ecoscore lookup attempt failed")
		}
		return grade, err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(p.newBackOff(), uint64(p.maxRetries)),
		ctx,
	)

	grade, err := backoff.RetryWithData(operation, policy)
	if err != nil {
		return "", err
	}
	return grade, nil
}

// fetch performs a single bounded lookup.
func (p *httpProvider) fetch(ctx context.Context, productID int64) (string, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	url := fmt.Sprintf("%s/product/%d.json", p.baseURL, productID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("failed to create ecoscore request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach ecoscore provider: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", backoff.Permanent(ErrNoData)
	case resp.StatusCode >= 500:
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("ecoscore provider returned status %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return "", backoff.Permanent(fmt.Errorf("ecoscore provider returned status %d", resp.StatusCode))
	}

	var payload lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", backoff.Permanent(fmt.Errorf("failed to decode ecoscore response: %w", err))
	}

	if payload.Status == 0 {
		return "", backoff.Permanent(ErrNoData)
	}

	grade, ok := NormalizeGrade(payload.Product.EcoscoreGrade)
	if !ok {
		return "", backoff.Permanent(ErrNoData)
	}

	return grade, nil
}

func isPermanent(err error) bool {
	var permanent *backoff.PermanentError
	return errors.As(err, &permanent)
}
