// internal/common/backend/client.go
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"mortgage-dashboard/internal/common/config"
	apperrors "mortgage-dashboard/internal/common/errors"
	"mortgage-dashboard/internal/common/logger"
	"mortgage-dashboard/internal/common/metrics"
)

// Client is the outbound HTTP client for the mortgage API. Every page service
// goes through it; it owns bearer auth, multipart encoding and the JSON error
// envelope ({"error": "..."}) the API returns on failure.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	uploadClient *http.Client
	logger       logger.Logger
}

// NewClient creates a backend client from configuration.
func NewClient(cfg config.BackendConfig, log logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: config.GetDuration(cfg.Timeout),
		},
		// Document parsing upstream is slow, so uploads get a longer deadline.
		uploadClient: &http.Client{
			Timeout: config.GetDuration(cfg.UploadTimeout),
		},
		logger: log.WithFields(map[string]interface{}{
			"component": "backend-client",
			"base_url":  cfg.BaseURL,
		}),
	}
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetJSON performs an authenticated GET and decodes the JSON response into out.
func (c *Client) GetJSON(ctx context.Context, path, token string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	c.setAuth(req, token)
	return c.do(c.httpClient, req, path, out)
}

// SubmitForm performs an authenticated multipart request (POST or PUT) and
// decodes the JSON response into out.
func (c *Client) SubmitForm(ctx context.Context, method, path, token string, form *Form, out interface{}) error {
	body, contentType, err := form.encode()
	if err != nil {
		return fmt.Errorf("encode form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	c.setAuth(req, token)

	client := c.httpClient
	if form.hasFiles() {
		client = c.uploadClient
	}
	return c.do(client, req, path, out)
}

func (c *Client) setAuth(req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *Client) do(client *http.Client, req *http.Request, path string, out interface{}) error {
	start := time.Now()

	resp, err := client.Do(req)
	if err != nil {
		metrics.BackendRequestsFailed.WithLabelValues(req.Method, path, "transport").Inc()
		if ctxErr := req.Context().Err(); ctxErr == context.DeadlineExceeded {
			return apperrors.NewBackendTimeoutError(req.Method + " " + path)
		}
		c.logger.WithError(err).Error("Backend request failed", map[string]interface{}{
			"method": req.Method,
			"path":   path,
		})
		return apperrors.NewBackendUnreachableError(err)
	}
	defer resp.Body.Close()

	metrics.BackendRequestDuration.WithLabelValues(req.Method, path).Observe(time.Since(start).Seconds())

	if resp.StatusCode == http.StatusUnauthorized {
		metrics.BackendRequestsFailed.WithLabelValues(req.Method, path, "unauthorized").Inc()
		return apperrors.NewUnauthorizedError(c.readErrorMessage(resp.Body))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.BackendRequestsFailed.WithLabelValues(req.Method, path, fmt.Sprintf("%d", resp.StatusCode)).Inc()
		msg := c.readErrorMessage(resp.Body)
		c.logger.Warn("Backend returned error status", map[string]interface{}{
			"method":  req.Method,
			"path":    path,
			"status":  resp.StatusCode,
			"message": msg,
		})
		return apperrors.NewBackendError(resp.StatusCode, msg)
	}

	metrics.BackendRequestsCompleted.WithLabelValues(req.Method, path).Inc()

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response from %s: %w", path, err)
	}
	return nil
}

// readErrorMessage extracts the API's {"error": "..."} envelope, falling back
// to the raw body when it is not JSON.
func (c *Client) readErrorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error != "" {
		return envelope.Error
	}
	return strings.TrimSpace(string(raw))
}

// Form builds multipart/form-data request bodies.
type Form struct {
	fields []formField
	files  []formFile
}

type formField struct {
	name  string
	value string
}

type formFile struct {
	field    string
	filename string
	content  []byte
}

func NewForm() *Form {
	return &Form{}
}

// Set appends a plain text field.
func (f *Form) Set(name, value string) *Form {
	f.fields = append(f.fields, formField{name: name, value: value})
	return f
}

// AddFile appends a file part.
func (f *Form) AddFile(field, filename string, content []byte) *Form {
	f.files = append(f.files, formFile{field: field, filename: filename, content: content})
	return f
}

func (f *Form) hasFiles() bool {
	return len(f.files) > 0
}

func (f *Form) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, field := range f.fields {
		if err := w.WriteField(field.name, field.value); err != nil {
			return nil, "", err
		}
	}
	for _, file := range f.files {
		part, err := w.CreateFormFile(file.field, file.filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(file.content); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
