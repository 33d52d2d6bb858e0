package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds one supplier feed download. Feeds are small text
// documents; a slow supplier should fail the run, not stall it.
const DefaultTimeout = 30 * time.Second

var defaultClient = &http.Client{Timeout: DefaultTimeout}

// FetchError reports a failed supplier feed download: either a transport
// failure (Err set) or a non-2xx response (StatusCode set).
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("feed download %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("feed download %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetch downloads the raw feed document. A nil client uses the package
// default with DefaultTimeout. Every failure path yields a *FetchError.
func Fetch(ctx context.Context, client *http.Client, feedURL string) ([]byte, error) {
	if client == nil {
		client = defaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, &FetchError{URL: feedURL, Err: err}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: feedURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{URL: feedURL, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: feedURL, Err: err}
	}

	return data, nil
}
