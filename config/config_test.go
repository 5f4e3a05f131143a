package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book_video_automation/elevenlabs"
	"book_video_automation/storyplanner"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"GROQ_API_KEY", "GROQ_MODEL", "ELEVENLABS_KEYS_FILE", "VOICE_ID",
		"MODEL_ID", "OUTPUT_FORMAT", "OUTPUT_DIR", "PAUSE_SECONDS",
		"MERGE_AUDIO", "MONGODB_URI", "MONGODB_DATABASE", "PORT",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, storyplanner.DefaultModel, cfg.GroqModel)
	assert.Equal(t, "elevenlabs_apis", cfg.KeysFile)
	assert.Equal(t, elevenlabs.DefaultVoiceID, cfg.VoiceID)
	assert.Equal(t, elevenlabs.DefaultModelID, cfg.ModelID)
	assert.Equal(t, "youtube_content", cfg.OutputDir)
	assert.Equal(t, 1*time.Second, cfg.Pause)
	assert.False(t, cfg.MergeAudio)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "8085", cfg.Port)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("PAUSE_SECONDS", "5")
	t.Setenv("MERGE_AUDIO", "true")
	t.Setenv("VOICE_ID", "custom-voice")

	cfg := Load()

	assert.Equal(t, "gsk_test", cfg.GroqAPIKey)
	assert.Equal(t, 5*time.Second, cfg.Pause)
	assert.True(t, cfg.MergeAudio)
	assert.Equal(t, "custom-voice", cfg.VoiceID)
}

func TestLoadIgnoresBadValues(t *testing.T) {
	t.Setenv("PAUSE_SECONDS", "not-a-number")
	t.Setenv("MERGE_AUDIO", "maybe")

	cfg := Load()

	assert.Equal(t, 1*time.Second, cfg.Pause)
	assert.False(t, cfg.MergeAudio)
}

func TestValidateForGeneration(t *testing.T) {
	cfg := &Config{}
	require.Error(t, cfg.ValidateForGeneration())

	cfg.GroqAPIKey = "gsk_test"
	assert.NoError(t, cfg.ValidateForGeneration())
}
