package telegram

import (
	"net/http"
	"time"

	"github.com/m3rciful/fitbot/core/netutil"
)

const (
	defaultClientTimeout  = 30 * time.Second
	defaultResponseWait   = 5 * time.Second
	defaultRetryAttempts  = 3
	defaultRetryBackoff   = 2 * time.Second
)

// BuildHTTPClient returns an HTTP client tuned for Telegram API calls.
func BuildHTTPClient() *http.Client {
	return netutil.NewClient(netutil.ClientOptions{
		Timeout:               defaultClientTimeout,
		ResponseHeaderTimeout: defaultResponseWait,
		RetryAttempts:         defaultRetryAttempts,
		RetryBackoff:          defaultRetryBackoff,
	})
}
