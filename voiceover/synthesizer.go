// Package voiceover wraps text-to-speech calls with API key rotation.
//
// ElevenLabs free-tier keys run out of characters quickly, so the
// synthesizer works through a pool of keys: when the provider reports a
// quota or rate-limit error the next key is tried, strictly in pool
// order. Any other provider error fails the request immediately, and an
// exhausted pool is a terminal failure for the rest of the run.
package voiceover

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"book_video_automation/credentials"
	"book_video_automation/elevenlabs"
)

// ErrAllKeysExhausted means every key in the pool reported a quota error.
// The run cannot continue without more credentials.
var ErrAllKeysExhausted = errors.New("all API keys exhausted")

// SpeechClient is the provider call the synthesizer wraps. Satisfied by
// *elevenlabs.Client.
type SpeechClient interface {
	TextToSpeech(apiKey string, req elevenlabs.TTSRequest) ([]byte, error)
}

// Synthesizer issues synthesis requests with the pool's current key and
// rotates on quota errors. Single-threaded by design: the pipeline issues
// one request at a time.
type Synthesizer struct {
	pool   *credentials.Pool
	client SpeechClient
}

// NewSynthesizer creates a synthesizer over the given key pool.
func NewSynthesizer(pool *credentials.Pool, client SpeechClient) *Synthesizer {
	return &Synthesizer{
		pool:   pool,
		client: client,
	}
}

// Synthesize converts one text segment to audio. On a quota error it
// advances the key pool and retries the same request, so the attempt
// count is bounded by the pool size. Non-quota errors are returned
// immediately, annotated with the account that produced them.
func (s *Synthesizer) Synthesize(req elevenlabs.TTSRequest) ([]byte, error) {
	requestID := uuid.New().String()[:8]
	attempts := 0

	for {
		key, err := s.pool.Current()
		if err != nil {
			log.Printf("[%s] no keys left after %d rotations", requestID, attempts)
			return nil, fmt.Errorf("%w: %d keys tried", ErrAllKeysExhausted, attempts)
		}
		attempts++

		audio, err := s.client.TextToSpeech(key.Secret, req)
		if err == nil {
			log.Printf("[%s] synthesized %d chars with key %s (%d bytes)",
				requestID, len(req.Text), key.Account, len(audio))
			return audio, nil
		}

		var quotaErr *elevenlabs.QuotaError
		if errors.As(err, &quotaErr) {
			log.Printf("[%s] key %s out of quota (%s), rotating to next key",
				requestID, key.Account, quotaErr.Status)
			s.pool.Advance()
			continue
		}

		log.Printf("[%s] key %s failed: %v", requestID, key.Account, err)
		return nil, fmt.Errorf("synthesis with key %s: %w", key.Account, err)
	}
}
