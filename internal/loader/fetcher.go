package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"mmpstats/internal/config"
	"mmpstats/pkg/utils"
)

// FetchInfo describes one completed fetch.
type FetchInfo struct {
	Duration   time.Duration
	Size       int64
	StatusCode int
}

// Fetcher reads raw payloads from http(s) URLs or local files.
type Fetcher struct {
	client       *http.Client
	headers      *utils.HTTPHelper
	maxBodyBytes int64
}

// NewFetcherWithConfig creates a fetcher with a custom timeout (zero for none) and body limit.
func NewFetcherWithConfig(timeout time.Duration, maxBodyBytes int64) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		headers:      utils.NewHTTPHelper(),
		maxBodyBytes: maxBodyBytes,
	}
}

// Fetch returns the raw payload of source. There is no retry.
func (f *Fetcher) Fetch(ctx context.Context, source string) ([]byte, FetchInfo, error) {
	if config.IsRemote(source) {
		return f.fetchRemote(ctx, source)
	}

	return f.readLocal(source)
}

func (f *Fetcher) fetchRemote(ctx context.Context, url string) ([]byte, FetchInfo, error) {
	startTime := time.Now()
	info := FetchInfo{}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, info, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header = f.headers.BuildHeaders(nil)

	resp, err := f.client.Do(req)
	if err != nil {
		info.Duration = time.Since(startTime)

		return nil, info, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	info.StatusCode = resp.StatusCode

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		info.Duration = time.Since(startTime)

		return nil, info, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	// Read one byte past the limit to tell a full body from a truncated one.
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes+1))
	info.Duration = time.Since(startTime)

	if err != nil {
		return nil, info, fmt.Errorf("failed to read response body: %w", err)
	}

	if int64(len(body)) > f.maxBodyBytes {
		return nil, info, fmt.Errorf("%w: %d bytes", ErrBodyTooLarge, f.maxBodyBytes)
	}

	info.Size = int64(len(body))

	return body, info, nil
}

func (f *Fetcher) readLocal(filePath string) ([]byte, FetchInfo, error) {
	startTime := time.Now()

	content, err := os.ReadFile(filePath)
	info := FetchInfo{Duration: time.Since(startTime), Size: int64(len(content))}

	if err != nil {
		return nil, info, fmt.Errorf("failed to read local file %s: %w", filePath, err)
	}

	return content, info, nil
}
