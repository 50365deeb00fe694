package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the scoring engine. Every call carries a bounded
// timeout; the client never retries on its own.
type Client struct {
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
	baseURL     string
	timeout     time.Duration
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{httpClient: &http.Client{}, baseURL: baseURL, timeout: timeout}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetRateLimit(maxRequestsPerSecond float32) {
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

// Extract sends resume bytes for attribute extraction.
func (c *Client) Extract(ctx context.Context, fileName string, fileBytes []byte, mimeType string) (*Attributes, error) {

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("error creating multipart body: %v", err)
	}
	if _, err = part.Write(fileBytes); err != nil {
		return nil, fmt.Errorf("error writing multipart body: %v", err)
	}
	if err = writer.WriteField("mime_type", mimeType); err != nil {
		return nil, fmt.Errorf("error writing multipart field: %v", err)
	}
	if err = writer.Close(); err != nil {
		return nil, fmt.Errorf("error closing multipart body: %v", err)
	}

	respBody, err := c.sendRequest(ctx, "POST", c.baseURL+"/parse_cv", body, writer.FormDataContentType())
	if err != nil {
		return nil, err
	}

	var attributes Attributes
	if err := json.NewDecoder(bytes.NewReader(respBody)).Decode(&attributes); err != nil {
		return nil, fmt.Errorf("error decoding JSON response: %v", err)
	}

	return &attributes, nil
}

// Rank asks the engine to score jobs for the given attributes under the
// named policy. The call is stateless from the engine's point of view.
func (c *Client) Rank(ctx context.Context, attributes Attributes, policy string, limit int) ([]RankItem, error) {

	payload, err := json.Marshal(rankRequest{Attributes: attributes, Mode: policy, TopK: limit})
	if err != nil {
		return nil, fmt.Errorf("error encoding request: %v", err)
	}

	respBody, err := c.sendRequest(ctx, "POST", c.baseURL+"/match_jobs", bytes.NewReader(payload), "application/json")
	if err != nil {
		return nil, err
	}

	var response rankResponse
	if err := json.NewDecoder(bytes.NewReader(respBody)).Decode(&response); err != nil {
		return nil, fmt.Errorf("error decoding JSON response: %v", err)
	}

	return response.Matches, nil
}

// AddJob pushes an approved posting into the engine's ranking universe.
func (c *Client) AddJob(ctx context.Context, job JobData) error {

	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("error encoding request: %v", err)
	}

	_, err = c.sendRequest(ctx, "POST", c.baseURL+"/add_job", bytes.NewReader(payload), "application/json")
	return err
}

// ClearSession drops any engine-side state for the session.
func (c *Client) ClearSession(ctx context.Context, sessionID string) error {

	payload, err := json.Marshal(clearSessionRequest{SessionID: sessionID})
	if err != nil {
		return fmt.Errorf("error encoding request: %v", err)
	}

	_, err = c.sendRequest(ctx, "POST", c.baseURL+"/clear_session", bytes.NewReader(payload), "application/json")
	return err
}

func (c *Client) sendRequest(ctx context.Context, method string, url string, body io.Reader, contentType string) ([]byte, error) {

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	return c.handleResponse(resp)
}

func (c *Client) handleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status %v, body: %v", resp.StatusCode, string(body))
	}

	return body, nil
}
