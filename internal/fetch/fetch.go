// Package fetch downloads document bytes from a URL. A fetched document and
// a locally picked file both collapse to the same "bytes in" load path.
package fetch

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"flipbook-viewer/internal/logger"
	"flipbook-viewer/internal/types"
)

const (
	// DefaultTimeout is the HTTP client timeout for downloads
	DefaultTimeout = 120 * time.Second
	// MaxRetries is the maximum number of retry attempts for network errors
	MaxRetries = 3
	// BaseRetryDelay is the base delay between retries (multiplied by attempt number)
	BaseRetryDelay = 2 * time.Second
)

var pdfMagic = []byte("%PDF-")

// Fetcher downloads documents over HTTP with a size cap.
type Fetcher struct {
	httpClient *http.Client
	maxBytes   int64
}

// NewFetcher creates a Fetcher capped at maxSizeMB megabytes per download.
func NewFetcher(maxSizeMB int) *Fetcher {
	if maxSizeMB < 1 {
		maxSizeMB = 100
	}
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return types.NewAppError(types.ErrNetwork, "too many redirects", nil)
				}
				return nil
			},
		},
		maxBytes: int64(maxSizeMB) * 1024 * 1024,
	}
}

// FetchDocument downloads the document at the given URL and returns its
// bytes. Transient network errors are retried with a linear backoff; a
// response that is not a PDF fails immediately.
func (f *Fetcher) FetchDocument(url string) ([]byte, error) {
	logger.Info("fetching document", logger.String("url", url))

	url = strings.TrimSpace(url)
	if url == "" {
		return nil, types.NewAppError(types.ErrInvalidInput, "URL cannot be empty", nil)
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, types.NewAppError(types.ErrInvalidInput, "URL must use http or https", nil)
	}

	var lastErr error
	for attempt := 1; attempt <= MaxRetries; attempt++ {
		data, err := f.fetchOnce(url)
		if err == nil {
			logger.Info("document fetched",
				logger.String("url", url),
				logger.Int("bytes", len(data)))
			return data, nil
		}

		lastErr = err
		// Invalid content will not get better on retry.
		if appErr, ok := err.(*types.AppError); ok && appErr.Code == types.ErrInvalidInput {
			return nil, err
		}

		logger.Warn("fetch attempt failed",
			logger.String("url", url),
			logger.Int("attempt", attempt),
			logger.Err(err))
		if attempt < MaxRetries {
			time.Sleep(BaseRetryDelay * time.Duration(attempt))
		}
	}
	return nil, types.NewAppError(types.ErrNetwork,
		fmt.Sprintf("download failed after %d attempts", MaxRetries), lastErr)
}

// fetchOnce performs a single download attempt
func (f *Fetcher) fetchOnce(url string) ([]byte, error) {
	resp, err := f.httpClient.Get(url)
	if err != nil {
		return nil, types.NewAppError(types.ErrNetwork, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, types.NewAppError(types.ErrNetwork,
			fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}
	if resp.ContentLength > f.maxBytes {
		return nil, types.NewAppError(types.ErrInvalidInput,
			fmt.Sprintf("document exceeds the %d MB limit", f.maxBytes/(1024*1024)), nil)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, types.NewAppError(types.ErrNetwork, "download interrupted", err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, types.NewAppError(types.ErrInvalidInput,
			fmt.Sprintf("document exceeds the %d MB limit", f.maxBytes/(1024*1024)), nil)
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		return nil, types.NewAppError(types.ErrInvalidInput, "fetched content is not a PDF document", nil)
	}
	return data, nil
}
