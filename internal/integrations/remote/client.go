package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// Envelope общий формат ответа сервисов платформы
type Envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
}

// Observer получает длительность каждого удаленного вызова
type Observer interface {
	ObserveRemoteCall(service, operation, status string, duration time.Duration)
}

// Client HTTP клиент удаленного сервиса с разбором конверта
type Client struct {
	service    string
	baseURL    string
	httpClient *http.Client
	observer   Observer
}

// NewClient создает клиент. observer может быть nil.
func NewClient(service, baseURL string, timeout time.Duration, observer Observer) *Client {
	return &Client{
		service: service,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		observer: observer,
	}
}

// Call выполняет запрос и декодирует поле data в out (если out не nil).
// Любой неуспешный ответ возвращается как *Error.
func (c *Client) Call(ctx context.Context, operation, method, path string, body any, headers map[string]string, out any) error {
	start := time.Now()
	status, err := c.call(ctx, method, path, body, headers, out)
	if c.observer != nil {
		c.observer.ObserveRemoteCall(c.service, operation, strconv.Itoa(status), time.Since(start))
	}
	return err
}

func (c *Client) call(ctx context.Context, method, path string, body any, headers map[string]string, out any) (int, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 0, err
		}
		return 0, NewError(c.service, 0, err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, NewError(c.service, 0, fmt.Sprintf("failed to read response: %v", err))
	}

	var env Envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := http.StatusText(resp.StatusCode)
		if decodeErr == nil && env.Message != "" {
			message = env.Message
		}
		return resp.StatusCode, NewError(c.service, resp.StatusCode, message)
	}

	if decodeErr != nil {
		return resp.StatusCode, fmt.Errorf("%w: service=%s: %v", ErrInvalidResponse, c.service, decodeErr)
	}

	if !env.Success {
		return resp.StatusCode, &Error{
			Service: c.service,
			Status:  resp.StatusCode,
			Message: env.Message,
			kind:    ErrRequestFailed,
		}
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return resp.StatusCode, fmt.Errorf("%w: service=%s: failed to decode data: %v", ErrInvalidResponse, c.service, err)
		}
	}

	return resp.StatusCode, nil
}
