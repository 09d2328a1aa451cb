// Package envelope talks to the document-envelope platform: the service the
// borrowers interact with to fill and submit signing forms. The orchestrator
// uses it to resolve webhook payloads into full submission context, to hold
// back the platform's own completion sealing, and to download the original
// unsigned artifact.
package envelope

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNotFound is returned when the platform does not know the identifier.
var ErrNotFound = errors.New("envelope: not found")

const (
	authHeader = "X-Auth-Token"

	defaultTimeout = 30 * time.Second
)

// Submitter is one signing party of a submission.
type Submitter struct {
	ID           string     `json:"id"`
	SubmissionID string     `json:"submission_id"`
	Role         string     `json:"role"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	SignerID     string     `json:"signer_id"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// Submission groups the submitters of one document batch.
type Submission struct {
	ID          string      `json:"id"`
	BatchID     string      `json:"batch_id"`
	TemplateID  string      `json:"template_id"`
	ContractID  string      `json:"contract_id"`
	DocumentURL string      `json:"document_url"`
	Submitters  []Submitter `json:"submitters"`
}

type Service interface {
	GetSubmitter(ctx context.Context, submitterID string) (*Submitter, error)
	GetSubmission(ctx context.Context, submissionID string) (*Submission, error)
	SuppressCompletion(ctx context.Context, submitterID string) error
	Download(ctx context.Context, documentURL string) ([]byte, error)
}

var _ Service = (*Client)(nil)

type Client struct {
	baseURL   string
	authToken string

	httpClient *http.Client
}

func NewClient(baseURL, authToken string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		authToken: authToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) GetSubmitter(ctx context.Context, submitterID string) (*Submitter, error) {
	var submitter Submitter
	if err := c.getJSON(ctx, fmt.Sprintf("%s/api/submitters/%s", c.baseURL, submitterID), &submitter); err != nil {
		return nil, fmt.Errorf("failed to get submitter %s: %w", submitterID, err)
	}
	return &submitter, nil
}

func (c *Client) GetSubmission(ctx context.Context, submissionID string) (*Submission, error) {
	var submission Submission
	if err := c.getJSON(ctx, fmt.Sprintf("%s/api/submissions/%s", c.baseURL, submissionID), &submission); err != nil {
		return nil, fmt.Errorf("failed to get submission %s: %w", submissionID, err)
	}
	return &submission, nil
}

// SuppressCompletion asks the platform not to seal the envelope for this
// submitter. The authority signature must land on the artifact first; the
// engine treats a failure here as advisory.
func (c *Client) SuppressCompletion(ctx context.Context, submitterID string) error {
	body := strings.NewReader(`{"suppress_completion":true}`)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		fmt.Sprintf("%s/api/submitters/%s", c.baseURL, submitterID), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(authHeader, c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to suppress completion for %s: %w", submitterID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to suppress completion for %s: unexpected status %d", submitterID, resp.StatusCode)
	}

	return nil
}

// Download fetches a document by the URL the platform handed out. Relative
// URLs resolve against the platform base.
func (c *Client) Download(ctx context.Context, documentURL string) ([]byte, error) {
	if strings.HasPrefix(documentURL, "/") {
		documentURL = c.baseURL + documentURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, documentURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(authHeader, c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", documentURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download %s: unexpected status %d", documentURL, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read document body: %w", err)
	}

	return data, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(authHeader, c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
