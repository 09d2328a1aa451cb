// Package authority is the typed client for the remote signing authority's
// procedural RPC service. Every operation POSTs a JSON payload to
// {base}/rpc/{Method} with static credential headers and returns the
// normalized business result; retries with linearly increasing backoff are
// reserved for transport-level failures, a well-formed authority answer
// always short-circuits.
package authority

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	defaultMaxAttempts = 3
	defaultBackoffStep = 2 * time.Second
	defaultCallTimeout = 90 * time.Second

	headerClientID     = "X-Client-ID"
	headerClientSecret = "X-Client-Secret"
)

type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string

	MaxAttempts int
	BackoffStep time.Duration
	CallTimeout time.Duration
}

// Service is what the workflow engine consumes. Every method returns the
// normalized business Result; the error is reserved for transport failures
// and malformed answers.
type Service interface {
	RequestOTP(ctx context.Context, request *OTPRequest) (*Result, error)
	EnrollCertificate(ctx context.Context, request *EnrollmentRequest) (*Result, error)
	CertificateStatus(ctx context.Context, signerID string) (*Result, error)
	SignDocument(ctx context.Context, request *SignRequest) (*Result, error)
	VerifySignature(ctx context.Context, pdf []byte) (*Result, error)
	RevokeCertificate(ctx context.Context, signerID, reason string) (*Result, error)
}

var _ Service = (*Client)(nil)

type Client struct {
	config Config

	initOnce   sync.Once
	httpClient *http.Client
}

func NewClient(config Config) *Client {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = defaultMaxAttempts
	}
	if config.BackoffStep <= 0 {
		config.BackoffStep = defaultBackoffStep
	}
	if config.CallTimeout <= 0 {
		config.CallTimeout = defaultCallTimeout
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &Client{config: config}
}

// getHTTPClient initializes the shared connection lazily. Races double the
// work at worst, sync.Once keeps the published client single.
func (c *Client) getHTTPClient() *http.Client {
	c.initOnce.Do(func() {
		c.httpClient = &http.Client{
			Timeout: c.config.CallTimeout,
		}
	})

	return c.httpClient
}

// RequestOTP asks the authority to deliver a one-time code to the
// signatory's contact address.
func (c *Client) RequestOTP(ctx context.Context, request *OTPRequest) (*Result, error) {
	return c.call(ctx, "RequestOTP", request)
}

// EnrollCertificate starts certificate issuance for a signer without a
// usable certificate.
func (c *Client) EnrollCertificate(ctx context.Context, request *EnrollmentRequest) (*Result, error) {
	return c.call(ctx, "EnrollCertificate", request)
}

// CertificateStatus fetches the signer's certificate state.
func (c *Client) CertificateStatus(ctx context.Context, signerID string) (*Result, error) {
	return c.call(ctx, "CertificateStatus", map[string]string{"signer_id": signerID})
}

// SignDocument applies the signer's certificate to the document at the
// given placement. The one-time code authorizes the operation.
func (c *Client) SignDocument(ctx context.Context, request *SignRequest) (*Result, error) {
	return c.call(ctx, "SignDocument", request)
}

// VerifySignature checks the signatures embedded in the document.
func (c *Client) VerifySignature(ctx context.Context, pdf []byte) (*Result, error) {
	return c.call(ctx, "VerifySignature", map[string][]byte{"pdf": pdf})
}

// RevokeCertificate revokes the signer's certificate.
func (c *Client) RevokeCertificate(ctx context.Context, signerID, reason string) (*Result, error) {
	return c.call(ctx, "RevokeCertificate", map[string]string{"signer_id": signerID, "reason": reason})
}

func (c *Client) call(ctx context.Context, method string, payload interface{}) (*Result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s request: %w", method, err)
	}

	endpoint := fmt.Sprintf("%s/rpc/%s", c.config.BaseURL, method)

	var lastErr error
	for attempt := 1; attempt <= c.config.MaxAttempts; attempt++ {
		if attempt > 1 {
			// Linear backoff: step, 2*step, ...
			delay := time.Duration(attempt-1) * c.config.BackoffStep
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to create %s request: %w", method, err)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set(headerClientID, c.config.ClientID)
		httpReq.Header.Set(headerClientSecret, c.config.ClientSecret)

		resp, err := c.getHTTPClient().Do(httpReq)
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response body: %w", err)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("rate limited (%d)", resp.StatusCode)
			continue
		}

		result, err := normalize(respBody)
		if err == nil {
			// A well-formed answer is the authority's verdict, success or
			// not. Never retried.
			return result, nil
		}

		if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode < http.StatusBadRequest {
			// Unparseable 5xx or garbage on a 2xx, both transport-class.
			lastErr = fmt.Errorf("malformed response (%d): %w", resp.StatusCode, err)
			continue
		}

		// Unparseable 4xx means the request itself never reaches the
		// authority logic. Retrying the same bytes cannot help.
		return nil, fmt.Errorf("authority %s: unexpected response (%d): %s", method, resp.StatusCode, truncate(respBody, 256))
	}

	return nil, &TransportError{Method: method, Attempts: c.config.MaxAttempts, Err: lastErr}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
