package twitter

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
)

const (
	requestTokenPath = "/oauth/request_token"
	authorizePath    = "/oauth/authorize"
	accessTokenPath  = "/oauth/access_token"
)

// RequestToken performs the first leg of the three-legged handshake: it
// obtains a temporary request-token pair using the out-of-band (PIN)
// callback. The pair is held on the client until AccessToken exchanges it.
func (c *Client) RequestToken(ctx context.Context) error {
	body, err := c.signedRequest(ctx, http.MethodPost, c.apiBaseURL+requestTokenPath,
		map[string]string{"oauth_callback": "oob"}, "", "")
	if err != nil {
		return err
	}

	form, err := url.ParseQuery(body)
	if err != nil {
		return &ProtocolError{Msg: "request-token response is not form-encoded: " + err.Error()}
	}
	token := form.Get("oauth_token")
	secret := form.Get("oauth_token_secret")
	if token == "" || secret == "" {
		return &ProtocolError{Msg: "request-token response missing oauth_token or oauth_token_secret"}
	}

	c.requestToken = token
	c.requestSecret = secret

	slog.Debug("obtained request token", "token", token)
	return nil
}

// AuthorizeURL returns the URL the user must visit to approve the request
// token and receive a PIN. Pure function of handshake state; no network
// call is made.
func (c *Client) AuthorizeURL() (string, error) {
	if c.requestToken == "" {
		return "", &InvalidStateError{Msg: "no request token: call RequestToken first"}
	}
	return c.apiBaseURL + authorizePath + "?oauth_token=" + url.QueryEscape(c.requestToken), nil
}

// AccessToken exchanges the user-supplied PIN for a long-lived access-token
// pair, signing with the temporary request-token pair. On success the
// client's credentials and identity are replaced together; on any failure,
// including a malformed response, the previous credentials are left intact.
func (c *Client) AccessToken(ctx context.Context, pin string) error {
	if c.requestToken == "" {
		return &InvalidStateError{Msg: "no request token: call RequestToken first"}
	}

	body, err := c.signedRequest(ctx, http.MethodPost, c.apiBaseURL+accessTokenPath,
		map[string]string{"oauth_verifier": pin}, c.requestToken, c.requestSecret)
	if err != nil {
		return err
	}

	form, err := url.ParseQuery(body)
	if err != nil {
		return &ProtocolError{Msg: "access-token response is not form-encoded: " + err.Error()}
	}

	token := form.Get("oauth_token")
	secret := form.Get("oauth_token_secret")
	userID := form.Get("user_id")
	screenName := form.Get("screen_name")
	if token == "" || secret == "" || userID == "" || screenName == "" {
		return &ProtocolError{Msg: "access-token response missing one of oauth_token, oauth_token_secret, user_id, screen_name"}
	}

	// all four applied together, only after the response validated
	c.creds.AccessToken = token
	c.creds.AccessTokenSecret = secret
	c.identity = Identity{UserID: userID, ScreenName: screenName}
	c.requestToken = ""
	c.requestSecret = ""

	slog.Info("authorized",
		"user_id", userID,
		"screen_name", screenName,
	)
	return nil
}
