package poster

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abdulachik/chirp/internal/twitter"
)

// TwitterPoster posts to Twitter/X via the OAuth 1.0a API.
type TwitterPoster struct {
	client *twitter.Client
}

// NewTwitterPoster creates a poster around an authorized client.
func NewTwitterPoster(client *twitter.Client) *TwitterPoster {
	return &TwitterPoster{client: client}
}

// Platform returns the platform name.
func (t *TwitterPoster) Platform() string {
	return "twitter"
}

// ValidateCredentials checks the access token against the API.
func (t *TwitterPoster) ValidateCredentials(ctx context.Context) error {
	if _, err := t.client.VerifyCredentials(ctx); err != nil {
		return fmt.Errorf("verify credentials: %w", err)
	}
	return nil
}

// Post publishes content to Twitter, uploading attached media first.
func (t *TwitterPoster) Post(ctx context.Context, content PostContent) (*PostResult, error) {
	text := content.Text
	if !FitsInLimit(text, TwitterMaxLength) {
		text = Truncate(text, TwitterMaxLength)
	}

	var tweet *twitter.Tweet
	var err error
	if len(content.Media) > 0 {
		tweet, err = t.client.UpdateStatusWithMedia(ctx, text, content.Media, content.MediaType)
	} else {
		tweet, err = t.client.UpdateStatus(ctx, text)
	}
	if err != nil {
		return nil, fmt.Errorf("post to Twitter: %w", err)
	}

	postURL := ""
	if screenName := t.client.Identity().ScreenName; screenName != "" {
		postURL = fmt.Sprintf("https://twitter.com/%s/status/%s", screenName, tweet.IDStr)
	}

	slog.Info("posted to Twitter",
		"id", tweet.IDStr,
		"url", postURL,
	)

	return &PostResult{
		PostID:  tweet.IDStr,
		PostURL: postURL,
	}, nil
}
