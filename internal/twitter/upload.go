package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
)

const (
	mediaUploadPath = "/1.1/media/upload.json"

	// uploadChunkSize is the APPEND segment ceiling documented by the
	// upload endpoint.
	uploadChunkSize = 5 * 1024 * 1024
)

// mediaUploadResponse is the JSON body returned by INIT and FINALIZE.
type mediaUploadResponse struct {
	MediaIDString string `json:"media_id_string"`
}

// UploadMedia pushes a binary payload through the chunked upload protocol:
// INIT announces size and type, one APPEND per 5MB segment sends the bytes
// strictly in order, FINALIZE commits. The returned media id attaches the
// upload to a status. Any phase failing fails the whole upload; a partially
// appended media id is never returned (the orphan is left unfinalized on
// the server, no cleanup is attempted).
func (c *Client) UploadMedia(ctx context.Context, media []byte, mediaType string) (string, error) {
	if len(media) == 0 {
		return "", &InvalidStateError{Msg: "media payload is empty"}
	}

	mediaID, err := c.uploadInit(ctx, len(media), mediaType)
	if err != nil {
		return "", fmt.Errorf("INIT: %w", err)
	}

	for i := 0; i*uploadChunkSize < len(media); i++ {
		start := i * uploadChunkSize
		end := start + uploadChunkSize
		if end > len(media) {
			end = len(media)
		}
		if err := c.uploadAppend(ctx, mediaID, i, media[start:end]); err != nil {
			return "", fmt.Errorf("APPEND segment %d: %w", i, err)
		}
	}

	finalID, err := c.uploadFinalize(ctx, mediaID)
	if err != nil {
		return "", fmt.Errorf("FINALIZE: %w", err)
	}

	slog.Debug("media uploaded",
		"media_id", finalID,
		"bytes", len(media),
	)
	return finalID, nil
}

func (c *Client) uploadInit(ctx context.Context, totalBytes int, mediaType string) (string, error) {
	body, err := c.Request(ctx, http.MethodPost, c.uploadBaseURL+mediaUploadPath, map[string]string{
		"command":     "INIT",
		"total_bytes": strconv.Itoa(totalBytes),
		"media_type":  mediaType,
	})
	if err != nil {
		return "", err
	}

	var resp mediaUploadResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return "", &ProtocolError{Msg: "INIT response is not JSON: " + err.Error()}
	}
	if resp.MediaIDString == "" {
		return "", &ProtocolError{Msg: "INIT response missing media_id_string"}
	}
	return resp.MediaIDString, nil
}

// uploadAppend sends one segment. The command parameters ride in the signed
// query string; the bytes go in a multipart body, which per RFC 5849 is not
// part of the signature.
func (c *Client) uploadAppend(ctx context.Context, mediaID string, segment int, chunk []byte) error {
	params := map[string]string{
		"command":       "APPEND",
		"media_id":      mediaID,
		"segment_index": strconv.Itoa(segment),
	}

	rawurl := c.uploadBaseURL + mediaUploadPath
	oauth := c.protocolParams(c.creds.AccessToken)
	header := c.authorizationHeader(http.MethodPost, rawurl, oauth, params, c.creds.AccessTokenSecret)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("media", "media")
	if err != nil {
		return &NetworkError{Op: "build multipart body", Err: err}
	}
	if _, err := part.Write(chunk); err != nil {
		return &NetworkError{Op: "build multipart body", Err: err}
	}
	if err := w.Close(); err != nil {
		return &NetworkError{Op: "build multipart body", Err: err}
	}

	values := url.Values{}
	for k, v := range params {
		values.Set(k, v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawurl+"?"+values.Encode(), &buf)
	if err != nil {
		return &NetworkError{Op: "create request", Err: err}
	}
	req.Header.Set("Authorization", header)
	req.Header.Set("Content-Type", w.FormDataContentType())

	_, err = c.send(req)
	return err
}

func (c *Client) uploadFinalize(ctx context.Context, mediaID string) (string, error) {
	body, err := c.Request(ctx, http.MethodPost, c.uploadBaseURL+mediaUploadPath, map[string]string{
		"command":  "FINALIZE",
		"media_id": mediaID,
	})
	if err != nil {
		return "", err
	}

	var resp mediaUploadResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return "", &ProtocolError{Msg: "FINALIZE response is not JSON: " + err.Error()}
	}
	if resp.MediaIDString == "" {
		return "", &ProtocolError{Msg: "FINALIZE response missing media_id_string"}
	}
	return resp.MediaIDString, nil
}
