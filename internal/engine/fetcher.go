package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/tartampluch/go-phonebook/internal/config"
)

// FetchRequest describes a remote address book to download.
type FetchRequest struct {
	URL      string
	User     string
	Password string
}

// VCardFetcher retrieves a remote vCard stream for the importer.
type VCardFetcher interface {
	Fetch(ctx context.Context, req FetchRequest) (io.ReadCloser, error)
}

// HTTPFetcher implements VCardFetcher over net/http.
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher creates a fetcher with the configured timeout.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client: &http.Client{
			Timeout: config.HTTPTimeout,
		},
	}
}

// Fetch downloads the address book. The query string is left out of the logs
// since it may carry tokens, and the body is capped at MaxHTTPResponseSize.
func (f *HTTPFetcher) Fetch(ctx context.Context, fr FetchRequest) (io.ReadCloser, error) {
	u, err := url.Parse(fr.URL)
	if err != nil {
		// Centralized message for an invalid URL structure.
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	// Security check: plain HTTP or HTTPS only, no file:// or custom schemes.
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	// Log a safe URL: the query string may carry tokens.
	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompFetcher),
		slog.String(config.LogKeyURL, u.Scheme+"://"+u.Host+u.Path),
	)
	log.Debug("Initiating vCard download")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fr.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	// Same User-Agent as every other request of the application.
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	// An empty password is still sent when a user is given; the server decides.
	if fr.User != "" || fr.Password != "" {
		req.SetBasicAuth(fr.User, fr.Password)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error during fetch: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close() // Do not leak the connection on error.
		log.Warn("Server returned error status", slog.Int(config.LogKeyStatus, resp.StatusCode))
		return nil, fmt.Errorf("server returned unexpected status: %s", resp.Status)
	}

	// Cap the body so a misbehaving server cannot exhaust memory.
	// The caller closes the original body through the wrapper.
	return &limitedReadCloser{
		Reader: io.LimitReader(resp.Body, config.MaxHTTPResponseSize),
		Closer: resp.Body,
	}, nil
}

// limitedReadCloser pairs a size-limited reader with the response body closer.
type limitedReadCloser struct {
	io.Reader
	io.Closer
}
