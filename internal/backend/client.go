// Package backend talks JSON over HTTP to the storefront's backend service.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// maxErrorBody caps how much of a failed response body is kept.
const maxErrorBody = 4 << 10

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend %s %s: status %d", e.Method, e.Path, e.StatusCode)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
	Log     logrus.FieldLogger
}

// New returns a client for baseURL. A zero timeout leaves request duration
// to the transport.
func New(baseURL string, timeout time.Duration, log logrus.FieldLogger) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: timeout},
		Log:     log.WithField("component", "backend"),
	}
}

// GetJSON issues GET BaseURL+path?query and decodes the body into out.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	target := c.BaseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	return c.do(req, path, out)
}

// PostJSON encodes in as the request body. Extra headers are added as-is.
func (c *Client) PostJSON(ctx context.Context, path string, header http.Header, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return errors.Wrap(err, "encode request body")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	return c.do(req, path, out)
}

func (c *Client) do(req *http.Request, path string, out interface{}) error {
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	log := c.Log.WithFields(logrus.Fields{
		"method":     req.Method,
		"path":       path,
		"request_id": requestID,
	})

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		log.WithError(err).Warn("backend request failed")
		return errors.Wrapf(err, "backend %s %s", req.Method, path)
	}
	defer resp.Body.Close()

	log = log.WithFields(logrus.Fields{"status": resp.StatusCode, "took": time.Since(start)})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		log.Warn("backend returned an error status")
		return &StatusError{
			Method:     req.Method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       string(raw),
		}
	}
	log.Debug("backend request done")

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return errors.Wrapf(err, "decode %s %s response", req.Method, path)
	}
	return nil
}
