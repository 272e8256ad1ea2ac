// Package appium checks whether an Appium server is ready to accept sessions.
package appium

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/saucelabs/wdiorun/internal/msg"
)

// Status is the payload of the appium /status endpoint.
type Status struct {
	Value struct {
		Ready   bool   `json:"ready"`
		Message string `json:"message"`
	} `json:"value"`
}

// Client polls an appium status endpoint.
type Client struct {
	HTTPClient *resty.Client
	URL        string
	// Interval is the time to wait between two polls.
	Interval time.Duration
}

// New returns a Client for the status endpoint at url.
func New(url string) *Client {
	return &Client{
		HTTPClient: resty.New().SetTimeout(5 * time.Second),
		URL:        url,
		Interval:   time.Second,
	}
}

// IsReady reports whether the server responds successfully and does not declare itself unready.
// Older servers omit the ready flag, in which case a successful response is sufficient.
func (c *Client) IsReady(ctx context.Context) (bool, error) {
	var status Status
	status.Value.Ready = true

	resp, err := c.HTTPClient.R().
		SetContext(ctx).
		SetResult(&status).
		Get(c.URL)
	if err != nil {
		return false, err
	}
	if resp.StatusCode() != http.StatusOK {
		return false, fmt.Errorf("unexpected status code %d", resp.StatusCode())
	}

	return status.Value.Ready, nil
}

// WaitUntilReady polls the status endpoint until the server is ready or timeout has passed.
func (c *Client) WaitUntilReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for {
		ready, err := c.IsReady(ctx)
		if ready {
			log.Info().Str("url", c.URL).Msg("Appium is ready.")
			return nil
		}
		if err != nil {
			log.Debug().Err(err).Str("url", c.URL).Msg("Appium is not reachable yet.")
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf(msg.AppiumNotReady+": %w", c.URL, ctx.Err())
		case <-time.After(c.Interval):
		}
	}
}
