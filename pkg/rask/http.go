package rask

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/MimeLyc/rask-sdk-go/internal/auth"
)

const userAgent = "rask-sdk-go/1.0"

// request describes one API call. Exactly one of body and files may be set.
type request struct {
	method  string
	path    string
	query   url.Values
	body    any
	files   []formFile
	timeout time.Duration
}

// formFile is a multipart file part. Content is rewound before every
// attempt so a request can be replayed after re-authentication.
type formFile struct {
	field   string
	name    string
	content io.ReadSeeker
}

// call runs req with one re-authentication on a token signal and decodes the
// response into a new T.
func call[T any](ctx context.Context, c *Client, req request) (*T, error) {
	return auth.Do(ctx, c.session, func(ctx context.Context) (*T, error) {
		var out T
		if err := c.do(ctx, req, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

// do performs a single attempt of req.
func (c *Client) do(ctx context.Context, req request, result any) error {
	token, err := c.store.Load()
	if err != nil {
		return err
	}

	timeout := req.timeout
	if timeout == 0 {
		timeout = c.config.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var (
		body        io.Reader
		contentType string
		waitWriter  func() error
	)
	switch {
	case req.files != nil:
		pr, ct, wait := multipartBody(req.files)
		defer pr.Close()
		body, contentType, waitWriter = pr, ct, wait
	case req.body != nil:
		data, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		body, contentType = bytes.NewReader(data), "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.endpoint(req.path, req.query), body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+token.AccessToken)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", userAgent)
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if waitWriter != nil {
			_ = waitWriter()
		}
		if os.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("request timed out: %w", err)
		}
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	c.logger.Debug("%s %s -> %d (%s)", req.method, req.path, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := translateError(resp.StatusCode, respBody)
		if waitWriter != nil {
			_ = waitWriter()
		}
		if resp.StatusCode == http.StatusUnauthorized {
			c.store.Reject(token)
			c.logger.Warn("%s %s rejected the access token: %s", req.method, req.path, apiErr.Detail)
			return auth.ExpiredBy(apiErr)
		}
		return apiErr
	}

	if waitWriter != nil {
		if err := waitWriter(); err != nil {
			return err
		}
	}

	if result == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

// endpoint joins the base URL, path and query.
func (c *Client) endpoint(path string, query url.Values) string {
	u := strings.TrimRight(c.config.BaseURL, "/") + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// multipartBody streams files as multipart form data through a pipe so large
// media never sits in memory. wait closes the pipe and returns the writer's
// error; it must be called once the request is finished.
func multipartBody(files []formFile) (io.ReadCloser, string, func() error) {
	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	errCh := make(chan error, 1)
	go func() {
		err := writeParts(writer, files)
		pw.CloseWithError(err)
		errCh <- err
	}()

	wait := func() error {
		// Unblocks the writer if the server answered before reading everything.
		pr.Close()
		err := <-errCh
		if errors.Is(err, io.ErrClosedPipe) {
			return nil
		}
		return err
	}
	return pr, writer.FormDataContentType(), wait
}

func writeParts(writer *multipart.Writer, files []formFile) error {
	for _, f := range files {
		if _, err := f.content.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("rewind %s: %w", f.field, err)
		}
		part, err := writer.CreateFormFile(f.field, f.name)
		if err != nil {
			return fmt.Errorf("create form file %s: %w", f.field, err)
		}
		if _, err := io.Copy(part, f.content); err != nil {
			return fmt.Errorf("copy %s: %w", f.field, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}
	return nil
}
