// Package httpclient provides basic http functions
package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"time"
)

// Client retrieves resources with GET requests
type Client struct {
	log        *log.Logger
	httpClient *http.Client
}

// NewClient creates a Client. A timeout of zero leaves requests bounded only by their context
func NewClient(log *log.Logger, timeout time.Duration) *Client {
	return &Client{
		log:        log,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// StatusError is returned when the server answers with a status other than 2xx
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
}

// Get retrieves the body at url, sending headers with the request
func (c *Client) Get(ctx context.Context, url string, headers http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for name, values := range headers {
		for _, value := range values {
			req.Header.Add(name, value)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		innerErr := resp.Body.Close()
		if innerErr != nil {
			c.log.Printf("error closing http response body. error: %v\n", innerErr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	buf := new(bytes.Buffer)
	_, err = buf.ReadFrom(resp.Body)
	if err != nil {
		return nil, err
	}
	c.log.Printf("retrieved %d bytes from %s", buf.Len(), url)
	return buf.Bytes(), nil
}
