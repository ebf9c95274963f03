package twitter

import (
	"context"
	"encoding/json"
	"net/http"
)

const statusUpdatePath = "/1.1/statuses/update.json"

// Tweet is the subset of the status-update response this client consumes.
type Tweet struct {
	IDStr string `json:"id_str"`
	Text  string `json:"text"`
}

// UpdateStatus publishes a text-only tweet.
func (c *Client) UpdateStatus(ctx context.Context, status string) (*Tweet, error) {
	return c.updateStatus(ctx, map[string]string{"status": status})
}

// UpdateStatusWithMedia uploads the payload through the chunked protocol
// and publishes a tweet referencing it. A failed upload fails the whole
// call; no tweet is attempted without a committed media id.
func (c *Client) UpdateStatusWithMedia(ctx context.Context, status string, media []byte, mediaType string) (*Tweet, error) {
	mediaID, err := c.UploadMedia(ctx, media, mediaType)
	if err != nil {
		return nil, err
	}
	return c.updateStatus(ctx, map[string]string{
		"status":    status,
		"media_ids": mediaID,
	})
}

func (c *Client) updateStatus(ctx context.Context, params map[string]string) (*Tweet, error) {
	body, err := c.Request(ctx, http.MethodPost, c.apiBaseURL+statusUpdatePath, params)
	if err != nil {
		return nil, err
	}

	var tweet Tweet
	if err := json.Unmarshal([]byte(body), &tweet); err != nil {
		return nil, &ProtocolError{Msg: "status-update response is not JSON: " + err.Error()}
	}
	return &tweet, nil
}
