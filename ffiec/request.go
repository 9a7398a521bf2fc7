package ffiec

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// APIError is a non-2xx response from the CDR.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ffiec cdr error %d: %s", e.StatusCode, e.Message)
}

var ErrMissingCredentials = errors.New("ffiec: username and token are required")

// do issues a GET against path. The CDR takes every parameter as a header.
func (c *Client) do(ctx context.Context, creds Credentials, path string, params map[string]string) ([]byte, error) {
	if creds.Username == "" || creds.Token == "" {
		return nil, ErrMissingCredentials
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("UserID", creds.Username)
	req.Header.Set("Authentication", "Bearer "+creds.Token)
	for k, v := range params {
		req.Header.Set(k, v)
	}

	c.logger.Debug("cdr request", zap.String("path", path), zap.Any("params", params))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.StatusCode, body),
			Body:       body,
		}
	}

	return body, nil
}

func (c *Client) get(ctx context.Context, creds Credentials, path string, params map[string]string, result any) error {
	body, err := c.do(ctx, creds, path, params)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}

// errorMessage pulls a readable message out of an error body. The CDR returns
// either a bare JSON string, an object with a message field, or plain text.
func errorMessage(status int, body []byte) string {
	var s string
	if err := json.Unmarshal(body, &s); err == nil && s != "" {
		return s
	}

	var obj struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &obj); err == nil {
		if obj.Message != "" {
			return obj.Message
		}
		if obj.Error != "" {
			return obj.Error
		}
	}

	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}

	return http.StatusText(status)
}
