// Package kyc calls the platform's identity-verification sidecars. Scores
// and extracted fields feed certificate enrollment as supporting evidence;
// none of them gates the signing flow on their own.
package kyc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultTimeout = 20 * time.Second

// OCRFields are the identity-card fields the OCR sidecar extracts.
type OCRFields struct {
	Name     string `json:"name"`
	ICNumber string `json:"ic_number"`
	DOB      string `json:"dob"`
	Address  string `json:"address"`
}

type Service interface {
	FaceMatch(ctx context.Context, icFrontURL, selfieURL string) (float64, error)
	Liveness(ctx context.Context, selfieURL string) (float64, error)
	OCR(ctx context.Context, frontURL, backURL string) (*OCRFields, error)
}

var _ Service = (*Client)(nil)

type Client struct {
	faceURL     string
	livenessURL string
	ocrURL      string

	httpClient *http.Client
}

func NewClient(faceURL, livenessURL, ocrURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		faceURL:     faceURL,
		livenessURL: livenessURL,
		ocrURL:      ocrURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FaceMatch compares the identity-card photo against the selfie and returns
// a similarity score in [0,1].
func (c *Client) FaceMatch(ctx context.Context, icFrontURL, selfieURL string) (float64, error) {
	var out struct {
		Score float64 `json:"score"`
	}

	payload := map[string]string{
		"icFrontUrl": icFrontURL,
		"selfieUrl":  selfieURL,
	}
	if err := c.postJSON(ctx, c.faceURL+"/face-match", payload, &out); err != nil {
		return 0, fmt.Errorf("failed to face-match: %w", err)
	}

	return out.Score, nil
}

// Liveness scores whether the selfie shows a live person.
func (c *Client) Liveness(ctx context.Context, selfieURL string) (float64, error) {
	var out struct {
		Score float64 `json:"score"`
	}

	payload := map[string]string{
		"selfieUrl": selfieURL,
	}
	if err := c.postJSON(ctx, c.livenessURL+"/liveness", payload, &out); err != nil {
		return 0, fmt.Errorf("failed to score liveness: %w", err)
	}

	return out.Score, nil
}

// OCR extracts identity fields from the card images. backURL may be empty.
func (c *Client) OCR(ctx context.Context, frontURL, backURL string) (*OCRFields, error) {
	payload := map[string]string{
		"frontUrl": frontURL,
	}
	if backURL != "" {
		payload["backUrl"] = backURL
	}

	var fields OCRFields
	if err := c.postJSON(ctx, c.ocrURL+"/ocr", payload, &fields); err != nil {
		return nil, fmt.Errorf("failed to OCR: %w", err)
	}

	return &fields, nil
}

func (c *Client) postJSON(ctx context.Context, url string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
