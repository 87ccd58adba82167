// SPDX-FileCopyrightText: 2025 5C Menu contributors
// SPDX-License-Identifier: Apache-2.0

package parsers

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

const (
	// fetchTimeout bounds the whole request including body download.
	fetchTimeout = 30 * time.Second
	// connectTimeout bounds TCP connection establishment.
	connectTimeout = 10 * time.Second

	// Vendor sites serve an empty shell (or a 403) to clients that do not
	// look like a browser.
	userAgent = "Mozilla/5.0 (compatible; 5CMenu/2.0)"
)

// newHTTPClient builds the client used for a single fetch. Each FetchRaw call
// constructs a fresh one so that every exit path releases its connections;
// redirects are followed by default.
func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: fetchTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: connectTimeout,
			}).DialContext,
		},
	}
}

// fetchText GETs a URL and returns the response body as a string. Any non-2xx
// status is an error; the parser layer never retries.
func fetchText(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("GET %s: HTTP %d", url, resp.StatusCode)
	}

	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("GET %s: read body: %w", url, err)
	}
	return string(buf), nil
}
