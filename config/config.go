// Package config loads runtime configuration from the environment, with a
// .env file picked up when present.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"book_video_automation/elevenlabs"
	"book_video_automation/storyplanner"
)

// Config holds everything the programs read from the environment.
type Config struct {
	GroqAPIKey string
	GroqModel  string

	KeysFile     string
	VoiceID      string
	ModelID      string
	OutputFormat string

	OutputDir  string
	Pause      time.Duration
	MergeAudio bool

	MongoURI      string
	MongoDatabase string
	Port          string
}

// Load reads the .env file (if any) and the environment.
func Load() *Config {
	// Missing .env is fine; env vars alone are enough
	_ = godotenv.Load()

	return &Config{
		GroqAPIKey:    os.Getenv("GROQ_API_KEY"),
		GroqModel:     getEnv("GROQ_MODEL", storyplanner.DefaultModel),
		KeysFile:      getEnv("ELEVENLABS_KEYS_FILE", "elevenlabs_apis"),
		VoiceID:       getEnv("VOICE_ID", elevenlabs.DefaultVoiceID),
		ModelID:       getEnv("MODEL_ID", elevenlabs.DefaultModelID),
		OutputFormat:  getEnv("OUTPUT_FORMAT", elevenlabs.DefaultOutputFormat),
		OutputDir:     getEnv("OUTPUT_DIR", "youtube_content"),
		Pause:         getEnvDuration("PAUSE_SECONDS", 1*time.Second),
		MergeAudio:    getEnvBool("MERGE_AUDIO", false),
		MongoURI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGODB_DATABASE", "book_video_automation"),
		Port:          getEnv("PORT", "8085"),
	}
}

// ValidateForGeneration checks the settings the script pipeline needs.
func (c *Config) ValidateForGeneration() error {
	if c.GroqAPIKey == "" {
		return fmt.Errorf("GROQ_API_KEY not found in environment variables")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds < 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
