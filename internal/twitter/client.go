package twitter

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAPIBaseURL    = "https://api.twitter.com"
	defaultUploadBaseURL = "https://upload.twitter.com"
)

// Credentials holds the two OAuth 1.0a key pairs. AccessToken and
// AccessTokenSecret stay empty until the three-legged handshake completes
// (or the caller supplies a previously issued pair).
type Credentials struct {
	ConsumerKey       string
	ConsumerSecret    string
	AccessToken       string
	AccessTokenSecret string
}

// Identity is the authorizing user, resolved by the access-token exchange.
// Both fields are set together or not at all.
type Identity struct {
	UserID     string
	ScreenName string
}

// Client signs and dispatches requests against the Twitter API on behalf of
// one set of credentials. The embedded http.Client is shared across all
// calls from this instance. Credentials are mutated only by AccessToken;
// callers must not post concurrently with an in-flight handshake.
type Client struct {
	httpClient    *http.Client
	creds         Credentials
	identity      Identity
	apiBaseURL    string
	uploadBaseURL string

	// request-token pair, held only between RequestToken and AccessToken
	requestToken  string
	requestSecret string

	// overridable for deterministic signatures in tests
	nonce func() string
	now   func() time.Time
}

// Config holds construction parameters for a Client.
type Config struct {
	Credentials Credentials
	Identity    Identity
	Timeout     time.Duration

	// base URL overrides, used by tests
	APIBaseURL    string
	UploadBaseURL string
}

// NewClient creates a client around a single shared HTTP transport.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	apiBaseURL := cfg.APIBaseURL
	if apiBaseURL == "" {
		apiBaseURL = defaultAPIBaseURL
	}
	uploadBaseURL := cfg.UploadBaseURL
	if uploadBaseURL == "" {
		uploadBaseURL = defaultUploadBaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		creds:         cfg.Credentials,
		identity:      cfg.Identity,
		apiBaseURL:    apiBaseURL,
		uploadBaseURL: uploadBaseURL,
		nonce:         newNonce,
		now:           time.Now,
	}
}

// Credentials returns a copy of the client's current credential set.
func (c *Client) Credentials() Credentials { return c.creds }

// Identity returns the authorizing user resolved by the handshake.
func (c *Client) Identity() Identity { return c.identity }

// newNonce returns a fresh random nonce; nonces are never reused across
// requests (reuse is a replay risk the server may reject).
func newNonce() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic("twitter: nonce: " + err.Error())
	}
	return hex.EncodeToString(b[:])
}

// protocolParams assembles the oauth_* parameter set for one attempt, with
// a fresh nonce and timestamp. token is omitted when empty (request-token
// step).
func (c *Client) protocolParams(token string) map[string]string {
	p := map[string]string{
		"oauth_consumer_key":     c.creds.ConsumerKey,
		"oauth_nonce":            c.nonce(),
		"oauth_signature_method": "HMAC-SHA1",
		"oauth_timestamp":        strconv.FormatInt(c.now().Unix(), 10),
		"oauth_version":          "1.0",
	}
	if token != "" {
		p["oauth_token"] = token
	}
	return p
}

// authorizationHeader signs method+rawurl+(oauth merged with extra) and renders the
// Authorization header value. Only the protocol parameters appear in the
// header; extra request parameters are signed but travel in the query
// string or body.
func (c *Client) authorizationHeader(method, rawurl string, oauth, extra map[string]string, tokenSecret string) string {
	signed := make(map[string]string, len(oauth)+len(extra))
	for k, v := range oauth {
		signed[k] = v
	}
	for k, v := range extra {
		signed[k] = v
	}
	oauth["oauth_signature"] = Sign(method, rawurl, signed, c.creds.ConsumerSecret, tokenSecret)

	keys := make([]string, 0, len(oauth))
	for k := range oauth {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = PercentEncode(k) + `="` + PercentEncode(oauth[k]) + `"`
	}
	return "OAuth " + strings.Join(parts, ", ")
}

// Request dispatches one signed call with the current access-token pair.
// GET sends params as a query string, POST as a form-encoded body. The raw
// response body is returned on 2xx; decoding it is the caller's business.
// Non-2xx becomes *RemoteAPIError and transport failures become
// *NetworkError. No retries.
func (c *Client) Request(ctx context.Context, method, rawurl string, params map[string]string) (string, error) {
	return c.signedRequest(ctx, method, rawurl, params, c.creds.AccessToken, c.creds.AccessTokenSecret)
}

// signedRequest is Request with an explicit token pair, so the handshake
// can sign with the temporary request token.
func (c *Client) signedRequest(ctx context.Context, method, rawurl string, params map[string]string, token, tokenSecret string) (string, error) {
	oauth := c.protocolParams(token)
	header := c.authorizationHeader(method, rawurl, oauth, params, tokenSecret)

	values := url.Values{}
	for k, v := range params {
		values.Set(k, v)
	}

	var req *http.Request
	var err error
	switch method {
	case http.MethodGet:
		target := rawurl
		if len(values) > 0 {
			target += "?" + values.Encode()
		}
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	default:
		req, err = http.NewRequestWithContext(ctx, method, rawurl, strings.NewReader(values.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	}
	if err != nil {
		return "", &NetworkError{Op: "create request", Err: err}
	}
	req.Header.Set("Authorization", header)

	return c.send(req)
}

// send executes a prepared request and maps the response per the error
// taxonomy.
func (c *Client) send(req *http.Request) (string, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &NetworkError{Op: "send request", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &NetworkError{Op: "read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &RemoteAPIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	slog.Debug("twitter request ok",
		"method", req.Method,
		"url", req.URL.Path,
		"status", resp.StatusCode,
	)

	return string(body), nil
}
