package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/matzehuels/flamelens/pkg/buildinfo"
	apperrors "github.com/matzehuels/flamelens/pkg/errors"
	"github.com/matzehuels/flamelens/pkg/observability"
)

const (
	// DefaultMaxBytes caps remote profile downloads. Profiles larger than
	// this are rejected rather than read into memory.
	DefaultMaxBytes = 32 << 20 // 32 MiB

	defaultTimeout = 30 * time.Second
)

// Get fetches url and returns the response body.
//
// Transient failures (network errors, 429, 5xx) are retried with exponential
// backoff; everything else fails immediately with a coded error. The body is
// read through a size limit of maxBytes (DefaultMaxBytes when <= 0).
//
// A nil client gets a default with a 30s timeout.
func Get(ctx context.Context, client *http.Client, url string, maxBytes int64) ([]byte, error) {
	if err := apperrors.ValidateURL(url); err != nil {
		return nil, err
	}
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	var body []byte
	err := RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "build request for %s", url)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "flamelens/"+buildinfo.Version)

		observability.HTTP().OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)
		start := time.Now()

		resp, err := client.Do(req)
		if err != nil {
			observability.HTTP().OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
			return &RetryableError{Err: err}
		}
		defer resp.Body.Close()
		observability.HTTP().OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

		switch {
		case resp.StatusCode == http.StatusOK:
			// fall through to body read
		case resp.StatusCode == http.StatusTooManyRequests:
			return &RetryableError{Err: &apperrors.RateLimitedError{
				RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			}}
		case RetryableStatus(resp.StatusCode):
			return &RetryableError{Err: fmt.Errorf("status %d fetching %s", resp.StatusCode, url)}
		case resp.StatusCode == http.StatusNotFound:
			return apperrors.New(apperrors.ErrCodeNotFound, "profile not found at %s", url)
		default:
			return apperrors.New(apperrors.ErrCodeNetwork, "unexpected status %d fetching %s", resp.StatusCode, url)
		}

		data, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
		if err != nil {
			return &RetryableError{Err: err}
		}
		if int64(len(data)) > maxBytes {
			return apperrors.New(apperrors.ErrCodeProfileTooLarge, "response from %s exceeds %d bytes", url, maxBytes)
		}
		body = data
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if apperrors.GetCode(err) != "" {
			return nil, err
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeNetwork, err, "fetch %s", url)
	}
	return body, nil
}

func parseRetryAfter(header string) int {
	if header == "" {
		return 0
	}
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds < 0 {
		return 0
	}
	return seconds
}
