package twitter

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"sort"
	"strings"
)

// needsEscape reports whether c falls outside the RFC 3986 unreserved set.
// See https://dev.twitter.com/oauth/overview/percent-encoding-parameters
func needsEscape(c byte) bool {
	return !(('A' <= c && c <= 'Z') ||
		('a' <= c && c <= 'z') ||
		('0' <= c && c <= '9') ||
		c == '-' || c == '.' || c == '_' || c == '~')
}

// PercentEncode escapes s per RFC 3986. Space becomes %20 (never +) and
// slash is escaped, which is what the OAuth 1.0a signature scheme requires.
func PercentEncode(s string) string {
	var buf bytes.Buffer
	buf.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		if needsEscape(s[i]) {
			fmt.Fprintf(&buf, "%%%02X", s[i])
		} else {
			buf.WriteByte(s[i])
		}
	}
	return buf.String()
}

// encodeParams percent-encodes each key/value pair, sorts the encoded pairs,
// and joins them with &. Sorting after encoding matches RFC 5849 3.4.1.3.2.
func encodeParams(params map[string]string) string {
	pairs := make([]string, 0, len(params))
	for k, v := range params {
		pairs = append(pairs, PercentEncode(k)+"="+PercentEncode(v))
	}
	sort.Strings(pairs)
	return strings.Join(pairs, "&")
}

// signatureBase builds the OAuth signature base string from the uppercased
// method, the base URL (no query string) and the full parameter set.
func signatureBase(method, rawurl string, params map[string]string) string {
	return strings.ToUpper(method) + "&" +
		PercentEncode(rawurl) + "&" +
		PercentEncode(encodeParams(params))
}

// Sign computes the HMAC-SHA1 OAuth 1.0a signature for a request.
//
// params must contain every parameter being signed: the oauth_* protocol
// parameters (including nonce and timestamp, which the caller generates)
// merged with any query or body parameters. tokenSecret is empty while no
// token has been issued yet, e.g. on the request-token call.
func Sign(method, rawurl string, params map[string]string, consumerSecret, tokenSecret string) string {
	key := PercentEncode(consumerSecret) + "&" + PercentEncode(tokenSecret)
	mac := hmac.New(sha1.New, []byte(key))
	mac.Write([]byte(signatureBase(method, rawurl, params)))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
