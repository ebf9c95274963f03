package twitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentEncode(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"Ladies + Gentlemen", "Ladies%20%2B%20Gentlemen"},
		{"an='a'", "an%3D%27a%27"},
		{"Dogs, Cats & Mice", "Dogs%2C%20Cats%20%26%20Mice"},
		{"ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-._~", "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-._~"},
		{"http://example.com/path", "http%3A%2F%2Fexample.com%2Fpath"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, PercentEncode(tt.in))
		})
	}
}

func TestEncodeParamsOrdering(t *testing.T) {
	// sorted by key regardless of map iteration order
	params := map[string]string{"b": "2", "a": "1", "c": "3"}
	for i := 0; i < 10; i++ {
		assert.Equal(t, "a=1&b=2&c=3", encodeParams(params))
	}
}

func TestSignatureBase(t *testing.T) {
	// example from the OAuth 1.0a specification, appendix A.5.1
	params := map[string]string{
		"oauth_consumer_key":     "dpf43f3p2l4k3l03",
		"oauth_token":            "nnch734d00sl2jdk",
		"oauth_signature_method": "HMAC-SHA1",
		"oauth_timestamp":        "1191242096",
		"oauth_nonce":            "kllo9940pd9333jh",
		"oauth_version":          "1.0",
		"file":                   "vacation.jpg",
		"size":                   "original",
	}

	base := signatureBase("get", "http://photos.example.net/photos", params)
	assert.Equal(t,
		"GET&http%3A%2F%2Fphotos.example.net%2Fphotos&file%3Dvacation.jpg%26oauth_consumer_key%3Ddpf43f3p2l4k3l03%26oauth_nonce%3Dkllo9940pd9333jh%26oauth_signature_method%3DHMAC-SHA1%26oauth_timestamp%3D1191242096%26oauth_token%3Dnnch734d00sl2jdk%26oauth_version%3D1.0%26size%3Doriginal",
		base)
}

func TestSignKnownVector(t *testing.T) {
	// the OAuth specification's published example must reproduce exactly
	params := map[string]string{
		"oauth_consumer_key":     "dpf43f3p2l4k3l03",
		"oauth_token":            "nnch734d00sl2jdk",
		"oauth_signature_method": "HMAC-SHA1",
		"oauth_timestamp":        "1191242096",
		"oauth_nonce":            "kllo9940pd9333jh",
		"oauth_version":          "1.0",
		"file":                   "vacation.jpg",
		"size":                   "original",
	}

	sig := Sign("GET", "http://photos.example.net/photos", params,
		"kd94hf93k423kf44", "pfkkdhi9sl3r4s00")
	assert.Equal(t, "tR3+Ty81lMeYAr/Fid0kMTYa/WM=", sig)
}

func TestSignDeterministic(t *testing.T) {
	params := map[string]string{
		"oauth_consumer_key": "key",
		"oauth_nonce":        "fixed-nonce",
		"oauth_timestamp":    "1500000000",
		"status":             "hello world",
	}

	first := Sign("POST", "https://api.twitter.com/1.1/statuses/update.json", params, "cs", "ts")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Sign("POST", "https://api.twitter.com/1.1/statuses/update.json", params, "cs", "ts"))
	}
}

func TestSignEmptyTokenSecret(t *testing.T) {
	// request-token step signs with "consumerSecret&"
	withEmpty := Sign("POST", "https://api.twitter.com/oauth/request_token",
		map[string]string{"oauth_callback": "oob"}, "secret", "")
	withToken := Sign("POST", "https://api.twitter.com/oauth/request_token",
		map[string]string{"oauth_callback": "oob"}, "secret", "other")
	assert.NotEmpty(t, withEmpty)
	assert.NotEqual(t, withEmpty, withToken)
}
