// Package elevenlabs is a client for the ElevenLabs text-to-speech API.
package elevenlabs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	BaseURL = "https://api.elevenlabs.io/v1"

	DefaultModelID      = "eleven_multilingual_v2"
	DefaultVoiceID      = "JBFqnCBsd6RMkjVDRZzb"
	DefaultOutputFormat = "mp3_44100_128"

	timeout = 30 * time.Second
)

// Proxy holds optional HTTP proxy settings.
type Proxy struct {
	Server   string
	Username string
	Password string
}

// TTSRequest describes one synthesis call: the text segment plus the voice
// configuration. Text must fit the provider's accepted request size; long
// scripts are split by the caller.
type TTSRequest struct {
	Text          string                 `json:"text"`
	ModelID       string                 `json:"model_id"`
	VoiceSettings map[string]interface{} `json:"voice_settings,omitempty"`

	// VoiceID and OutputFormat go into the URL, not the JSON body.
	VoiceID      string `json:"-"`
	OutputFormat string `json:"-"`
}

// Client talks to the ElevenLabs API. The API key is passed per call so a
// single client can serve every key in the rotation pool.
type Client struct {
	BaseURL string
	Client  *http.Client
}

// NewClient creates a client, optionally routed through a proxy.
func NewClient(proxy *Proxy) *Client {
	client := &http.Client{Timeout: timeout}

	if proxy != nil && proxy.Server != "" {
		proxyURL, err := url.Parse("http://" + proxy.Server)
		if err != nil {
			fmt.Printf("Warning: Invalid proxy server format: %v\n", err)
		} else {
			if proxy.Username != "" {
				proxyURL.User = url.UserPassword(proxy.Username, proxy.Password)
			}
			client.Transport = &http.Transport{
				Proxy: http.ProxyURL(proxyURL),
			}
		}
	}

	return &Client{
		BaseURL: BaseURL,
		Client:  client,
	}
}

// TextToSpeech converts a text segment to audio using the given API key.
// It returns the raw MP3 payload on success. Quota and rate-limit
// responses come back as *QuotaError so callers can rotate keys; every
// other non-200 response is an *APIError.
func (c *Client) TextToSpeech(apiKey string, ttsReq TTSRequest) ([]byte, error) {
	if ttsReq.Text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}
	if ttsReq.ModelID == "" {
		ttsReq.ModelID = DefaultModelID
	}
	voiceID := ttsReq.VoiceID
	if voiceID == "" {
		voiceID = DefaultVoiceID
	}
	outputFormat := ttsReq.OutputFormat
	if outputFormat == "" {
		outputFormat = DefaultOutputFormat
	}

	jsonData, err := json.Marshal(ttsReq)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/text-to-speech/%s?output_format=%s", c.BaseURL, voiceID, outputFormat)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", apiKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, classifyError(resp)
	}

	audioData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if len(audioData) == 0 {
		return nil, fmt.Errorf("received empty audio data")
	}

	return audioData, nil
}
