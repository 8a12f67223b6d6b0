// Package fetch retrieves the interfaces page as one complete, UTF-8
// decoded body.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"
	"unicode/utf8"

	"ifreport/internal/config"
	"ifreport/internal/dialer"
	"ifreport/internal/logging"

	"golang.org/x/net/html/charset"
)

var (
	ErrStatus       = errors.New("unexpected HTTP status")
	ErrBodyTooLarge = errors.New("response body exceeds limit")
)

// FetchError is any failure to obtain a complete body.
type FetchError struct {
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

type Client struct {
	url     string
	headers map[string]string
	maxBody int64
	http    *http.Client
}

// New builds a client for src whose connections are opened by d.
func New(src config.SourceConfig, d dialer.Dialer) (*Client, error) {
	if d == nil {
		return nil, errors.New("fetch: nil dialer")
	}
	u, err := src.URL()
	if err != nil {
		return nil, err
	}

	transport := &http.Transport{
		Proxy:               nil, // egress is decided by the dialer
		DialContext:         d.DialContext,
		TLSHandshakeTimeout: src.Timeout,
		DisableKeepAlives:   true, // one request per run
	}

	return &Client{
		url:     u,
		headers: src.Headers,
		maxBody: src.MaxBodyBytes,
		http: &http.Client{
			Transport: transport,
			Timeout:   src.Timeout,
		},
	}, nil
}

// URL returns the address the client requests.
func (c *Client) URL() string { return c.url }

// Fetch issues the GET and returns the whole decoded body. The body is
// returned only when it was received completely with a 2xx status.
func (c *Client) Fetch(ctx context.Context) (string, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", &FetchError{URL: c.url, Err: err}
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &FetchError{URL: c.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", &FetchError{URL: c.url, StatusCode: resp.StatusCode, Err: fmt.Errorf("%w: %s", ErrStatus, resp.Status)}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return "", &FetchError{URL: c.url, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	if int64(len(raw)) > c.maxBody {
		return "", &FetchError{URL: c.url, StatusCode: resp.StatusCode, Err: fmt.Errorf("%w (%d bytes)", ErrBodyTooLarge, c.maxBody)}
	}

	body, err := decode(raw, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", &FetchError{URL: c.url, StatusCode: resp.StatusCode, Err: err}
	}

	logging.LogFetch(c.url, resp.StatusCode, len(raw), time.Since(start))
	return body, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decode converts raw to UTF-8. A body that is valid UTF-8 is taken as is
// unless a BOM or the Content-Type charset names another encoding.
// Anything else is decoded with the encoding charset.DetermineEncoding picks.
func decode(raw []byte, contentType string) (string, error) {
	if utf8.Valid(raw) && !declaresOtherCharset(raw, contentType) {
		return string(bytes.TrimPrefix(raw, utf8BOM)), nil
	}

	enc, name, _ := charset.DetermineEncoding(raw, contentType)
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decode body as %s: %w", name, err)
	}
	return string(bytes.TrimPrefix(out, utf8BOM)), nil
}

// declaresOtherCharset reports a UTF-16 BOM or a Content-Type charset
// that is not UTF-8.
func declaresOtherCharset(raw []byte, contentType string) bool {
	if len(raw) >= 2 && (raw[0] == 0xFE && raw[1] == 0xFF || raw[0] == 0xFF && raw[1] == 0xFE) {
		return true
	}
	if contentType == "" {
		return false
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	label := params["charset"]
	if label == "" {
		return false
	}
	_, name := charset.Lookup(label)
	return name != "" && name != "utf-8"
}
