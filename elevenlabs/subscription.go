package elevenlabs

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Subscription is the account quota report used by the balance checker.
type Subscription struct {
	Tier                        string `json:"tier"`
	CharacterCount              int    `json:"character_count"`
	CharacterLimit              int    `json:"character_limit"`
	Status                      string `json:"status"`
	NextCharacterCountResetUnix int64  `json:"next_character_count_reset_unix"`
	VoiceLimit                  int    `json:"voice_limit"`
	VoiceSlotsUsed              int    `json:"voice_slots_used"`
	BillingPeriod               string `json:"billing_period"`
}

// CharactersRemaining is how many characters the key can still synthesize
// in the current billing period.
func (s *Subscription) CharactersRemaining() int {
	remaining := s.CharacterLimit - s.CharacterCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// NextReset converts the reset timestamp to local time.
func (s *Subscription) NextReset() time.Time {
	return time.Unix(s.NextCharacterCountResetUnix, 0)
}

// GetSubscription fetches the subscription details for the given key.
func (c *Client) GetSubscription(apiKey string) (*Subscription, error) {
	url := fmt.Sprintf("%s/user/subscription", c.BaseURL)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("xi-api-key", apiKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{StatusCode: resp.StatusCode, Detail: string(body)}
	}

	var sub Subscription
	if err := json.NewDecoder(resp.Body).Decode(&sub); err != nil {
		return nil, fmt.Errorf("decoding subscription: %w", err)
	}

	return &sub, nil
}
