package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a thin Deepgram-style REST pass-through for speech-to-text and
// text-to-speech. The core is agnostic to audio formats; whatever bytes arrive
// are forwarded as-is.
type Client struct {
	apiKey   string
	baseURL  string
	sttModel string
	language string
	httpc    *http.Client
}

// NewClient builds a speech client.
func NewClient(apiKey, baseURL, sttModel, language string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey:   apiKey,
		baseURL:  strings.TrimRight(baseURL, "/"),
		sttModel: sttModel,
		language: language,
		httpc:    &http.Client{Timeout: timeout},
	}
}

type listenResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string `json:"transcript"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

// Transcribe converts audio bytes to text.
func (c *Client) Transcribe(ctx context.Context, audio []byte, mimetype string) (string, error) {
	q := url.Values{}
	q.Set("model", c.sttModel)
	q.Set("language", c.language)
	q.Set("smart_format", "true")
	q.Set("punctuate", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/listen?"+q.Encode(), bytes.NewReader(audio))
	if err != nil {
		return "", fmt.Errorf("build transcribe request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	if mimetype == "" {
		mimetype = "audio/wav"
	}
	req.Header.Set("Content-Type", mimetype)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcribe request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("speech provider returned %d", resp.StatusCode)
	}

	var payload listenResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode transcribe response: %w", err)
	}

	if len(payload.Results.Channels) == 0 || len(payload.Results.Channels[0].Alternatives) == 0 {
		return "", fmt.Errorf("speech provider returned no transcript")
	}
	return payload.Results.Channels[0].Alternatives[0].Transcript, nil
}

// Synthesize converts spoken text into audio bytes using the requested voice
// preference ("male" or "female").
func (c *Client) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, fmt.Errorf("encode synthesize request: %w", err)
	}

	q := url.Values{}
	q.Set("model", VoiceID(voice))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/speak?"+q.Encode(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build synthesize request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("synthesize request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("speech provider returned %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read synthesized audio: %w", err)
	}
	return audio, nil
}
