package twitter

import (
	"context"
	"encoding/json"
	"net/http"
)

const verifyCredentialsPath = "/1.1/account/verify_credentials.json"

// VerifyCredentials checks the stored access token against the API and
// returns the account it belongs to.
func (c *Client) VerifyCredentials(ctx context.Context) (*Identity, error) {
	if c.creds.AccessToken == "" {
		return nil, &InvalidStateError{Msg: "no access token: authorize first"}
	}

	body, err := c.Request(ctx, http.MethodGet, c.apiBaseURL+verifyCredentialsPath, nil)
	if err != nil {
		return nil, err
	}

	var account struct {
		IDStr      string `json:"id_str"`
		ScreenName string `json:"screen_name"`
	}
	if err := json.Unmarshal([]byte(body), &account); err != nil {
		return nil, &ProtocolError{Msg: "verify_credentials response is not JSON: " + err.Error()}
	}
	return &Identity{UserID: account.IDStr, ScreenName: account.ScreenName}, nil
}
