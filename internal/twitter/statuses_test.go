package twitter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/1.1/statuses/update.json", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "hello", r.PostForm.Get("status"))

		// the signature must match an independent computation for this
		// exact request
		params := parseOAuthHeader(t, r.Header.Get("Authorization"))
		expected := Sign(http.MethodPost, "http://"+r.Host+r.URL.Path, map[string]string{
			"oauth_consumer_key":     "ck",
			"oauth_token":            "at",
			"oauth_signature_method": "HMAC-SHA1",
			"oauth_timestamp":        "1500000000",
			"oauth_nonce":            "fixed-nonce",
			"oauth_version":          "1.0",
			"status":                 "hello",
		}, "cs", "ats")
		assert.Equal(t, PercentEncode(expected), params["oauth_signature"])

		w.Write([]byte(`{"id_str":"850007368138018817","text":"hello"}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, testCredentials())
	tweet, err := c.UpdateStatus(context.Background(), "hello")
	require.NoError(t, err)

	assert.Equal(t, "850007368138018817", tweet.IDStr)
	assert.Equal(t, "hello", tweet.Text)
}

func TestUpdateStatusWithMedia(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/1.1/media/upload.json":
			if r.URL.Query().Get("command") == "APPEND" {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			w.Write([]byte(`{"media_id_string":"710511363345354753"}`))
		case "/1.1/statuses/update.json":
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "look at this", r.PostForm.Get("status"))
			assert.Equal(t, "710511363345354753", r.PostForm.Get("media_ids"))
			w.Write([]byte(`{"id_str":"1","text":"look at this"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	c := newTestClient(server.URL, testCredentials())
	tweet, err := c.UpdateStatusWithMedia(context.Background(), "look at this", []byte("png bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "1", tweet.IDStr)
}

func TestUpdateStatusWithMediaUploadFailure(t *testing.T) {
	var statusPosted bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/1.1/media/upload.json":
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"errors":[{"message":"bad media"}]}`))
		case "/1.1/statuses/update.json":
			statusPosted = true
		}
	}))
	defer server.Close()

	c := newTestClient(server.URL, testCredentials())
	_, err := c.UpdateStatusWithMedia(context.Background(), "nope", []byte("data"), "image/png")

	require.Error(t, err)
	assert.False(t, statusPosted, "no tweet may be attempted without a committed media id")
}

func TestVerifyCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/1.1/account/verify_credentials.json", r.URL.Path)
		w.Write([]byte(`{"id_str":"42","screen_name":"gopher"}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, testCredentials())
	id, err := c.VerifyCredentials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Identity{UserID: "42", ScreenName: "gopher"}, id)
}

func TestVerifyCredentialsWithoutToken(t *testing.T) {
	c := newTestClient("http://unused", Credentials{ConsumerKey: "ck", ConsumerSecret: "cs"})

	_, err := c.VerifyCredentials(context.Background())
	var stateErr *InvalidStateError
	require.ErrorAs(t, err, &stateErr)
}
