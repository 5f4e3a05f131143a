package voiceover

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book_video_automation/credentials"
	"book_video_automation/elevenlabs"
)

// fakeSpeechClient maps each API key to a canned outcome and records the
// order keys were tried in.
type fakeSpeechClient struct {
	responses map[string]fakeResponse
	attempts  []string
}

type fakeResponse struct {
	audio []byte
	err   error
}

func (f *fakeSpeechClient) TextToSpeech(apiKey string, req elevenlabs.TTSRequest) ([]byte, error) {
	f.attempts = append(f.attempts, apiKey)
	resp, ok := f.responses[apiKey]
	if !ok {
		return nil, errors.New("unknown key")
	}
	return resp.audio, resp.err
}

func quotaErr() error {
	return &elevenlabs.QuotaError{StatusCode: 401, Status: "quota_exceeded", Detail: "out of characters"}
}

func newTestPool(t *testing.T, secrets ...string) *credentials.Pool {
	t.Helper()
	keys := make([]credentials.Key, len(secrets))
	for i, s := range secrets {
		keys[i] = credentials.Key{Account: "account-" + s, Secret: s}
	}
	pool, err := credentials.NewPool(keys)
	require.NoError(t, err)
	return pool
}

func TestSynthesizeFirstKeySucceeds(t *testing.T) {
	client := &fakeSpeechClient{responses: map[string]fakeResponse{
		"k1": {audio: []byte("mp3-bytes")},
	}}
	pool := newTestPool(t, "k1", "k2")
	synth := NewSynthesizer(pool, client)

	audio, err := synth.Synthesize(elevenlabs.TTSRequest{Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3-bytes"), audio)
	assert.Equal(t, []string{"k1"}, client.attempts)
	assert.Equal(t, 2, pool.Remaining())
}

func TestSynthesizeRotatesOnQuota(t *testing.T) {
	client := &fakeSpeechClient{responses: map[string]fakeResponse{
		"k1": {err: quotaErr()},
		"k2": {err: quotaErr()},
		"k3": {audio: []byte("audio")},
	}}
	pool := newTestPool(t, "k1", "k2", "k3")
	synth := NewSynthesizer(pool, client)

	audio, err := synth.Synthesize(elevenlabs.TTSRequest{Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, []byte("audio"), audio)
	// Keys are tried strictly in pool order, one attempt each.
	assert.Equal(t, []string{"k1", "k2", "k3"}, client.attempts)
	assert.Equal(t, 1, pool.Remaining())
}

func TestSynthesizeAllKeysExhausted(t *testing.T) {
	client := &fakeSpeechClient{responses: map[string]fakeResponse{
		"k1": {err: quotaErr()},
		"k2": {err: quotaErr()},
		"k3": {err: quotaErr()},
	}}
	pool := newTestPool(t, "k1", "k2", "k3")
	synth := NewSynthesizer(pool, client)

	_, err := synth.Synthesize(elevenlabs.TTSRequest{Text: "hello"})
	assert.ErrorIs(t, err, ErrAllKeysExhausted)
	// Exactly one attempt per key, never more.
	assert.Equal(t, []string{"k1", "k2", "k3"}, client.attempts)
}

func TestSynthesizeNonQuotaErrorFailsImmediately(t *testing.T) {
	client := &fakeSpeechClient{responses: map[string]fakeResponse{
		"k1": {err: &elevenlabs.APIError{StatusCode: 400, Detail: "invalid voice_id"}},
		"k2": {audio: []byte("audio")},
	}}
	pool := newTestPool(t, "k1", "k2")
	synth := NewSynthesizer(pool, client)

	_, err := synth.Synthesize(elevenlabs.TTSRequest{Text: "hello"})
	require.Error(t, err)

	var apiErr *elevenlabs.APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Contains(t, err.Error(), "account-k1")
	// No rotation happened: the second key was never touched and stays
	// current for the next request.
	assert.Equal(t, []string{"k1"}, client.attempts)
	assert.Equal(t, 2, pool.Remaining())
}

func TestSynthesizeRateLimitTriggersRotation(t *testing.T) {
	client := &fakeSpeechClient{responses: map[string]fakeResponse{
		"k1": {err: &elevenlabs.QuotaError{StatusCode: 429, Status: "too_many_concurrent_requests"}},
		"k2": {audio: []byte("audio")},
	}}
	pool := newTestPool(t, "k1", "k2")
	synth := NewSynthesizer(pool, client)

	audio, err := synth.Synthesize(elevenlabs.TTSRequest{Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, []byte("audio"), audio)
	assert.Equal(t, []string{"k1", "k2"}, client.attempts)
}

func TestSynthesizeExhaustionReportsAttemptsOfThisRequest(t *testing.T) {
	client := &fakeSpeechClient{responses: map[string]fakeResponse{
		"k1": {err: quotaErr()},
		"k2": {audio: []byte("audio")},
	}}
	pool := newTestPool(t, "k1", "k2")
	synth := NewSynthesizer(pool, client)

	// First request consumes k1 and succeeds on k2.
	_, err := synth.Synthesize(elevenlabs.TTSRequest{Text: "first"})
	require.NoError(t, err)

	// k2 runs out before the second request, which then only has one key
	// left to try; the error counts that one attempt, not the pool size.
	client.responses["k2"] = fakeResponse{err: quotaErr()}
	_, err = synth.Synthesize(elevenlabs.TTSRequest{Text: "second"})
	require.ErrorIs(t, err, ErrAllKeysExhausted)
	assert.Contains(t, err.Error(), "1 keys tried")
}

func TestSynthesizePoolStateCarriesBetweenRequests(t *testing.T) {
	client := &fakeSpeechClient{responses: map[string]fakeResponse{
		"k1": {err: quotaErr()},
		"k2": {audio: []byte("audio")},
	}}
	pool := newTestPool(t, "k1", "k2")
	synth := NewSynthesizer(pool, client)

	_, err := synth.Synthesize(elevenlabs.TTSRequest{Text: "first"})
	require.NoError(t, err)

	// The exhausted first key is not retried on the next request.
	client.attempts = nil
	_, err = synth.Synthesize(elevenlabs.TTSRequest{Text: "second"})
	require.NoError(t, err)
	assert.Equal(t, []string{"k2"}, client.attempts)
}
