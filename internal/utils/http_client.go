package utils

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	httpClientRetries     = 2
	httpClientRetryWait   = 200 * time.Millisecond
	httpClientMaxWaitTime = 2 * time.Second
)

// HTTPClient is a wrapper around resty.Client for outbound calls. It embeds
// *resty.Client so callers use the resty API directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client rooted at baseURL with the given per-request
// timeout. Requests that fail at the transport level or receive a 5xx are
// retried twice with backoff.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(httpClientRetries).
		SetRetryWaitTime(httpClientRetryWait).
		SetRetryMaxWaitTime(httpClientMaxWaitTime).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return err != nil || resp.StatusCode() >= http.StatusInternalServerError
		})

	return &HTTPClient{Client: client}
}
