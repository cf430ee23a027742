// Package notify delivers user-facing notifications through the external
// notification service.
package notify

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const newFollowerPath = "/notify/new-follower"

// Client posts notifications to the notification service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a notification client for the service at baseURL.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// newFollowerPayload matches the notification service's request shape;
// followedId is a JSON number there, unlike the string ids this API renders.
type newFollowerPayload struct {
	FollowedID int64  `json:"followedId"`
	Title      string `json:"title"`
	Body       string `json:"body"`
}

// SendNewFollower tells the notification service that followerUsername
// started following the user with followedID.
func (c *Client) SendNewFollower(ctx context.Context, followedID int64, followerUsername string) error {
	payload := newFollowerPayload{
		FollowedID: followedID,
		Title:      "You have a new follower!",
		Body:       fmt.Sprintf("%s has started following you.", followerUsername),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+newFollowerPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("notification service returned status %d", resp.StatusCode)
	}

	c.logger.Debug("sent new-follower notification",
		"followed_id", followedID,
		"follower", followerUsername,
	)
	return nil
}
