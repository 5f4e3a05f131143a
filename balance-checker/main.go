// balance-checker reports the remaining character quota for every
// ElevenLabs key in the pool, with an optional live audio-generation test
// per key.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"book_video_automation/config"
	"book_video_automation/credentials"
	"book_video_automation/elevenlabs"
)

const pauseBetweenKeys = 1 * time.Second

func main() {
	testAudio := flag.Bool("audio", false, "Test audio generation capability for each key")
	flag.Parse()

	cfg := config.Load()

	fmt.Println("\n🔍 Checking ElevenLabs API Key Balances...")
	if *testAudio {
		fmt.Println("🎵 Audio generation testing enabled")
	}

	pool, err := credentials.LoadFile(cfg.KeysFile)
	if err != nil {
		log.Fatalf("Error loading API keys: %v", err)
	}

	keys := pool.Keys()
	fmt.Printf("\nFound %d API keys to check.\n", len(keys))
	fmt.Println(strings.Repeat("=", 100))

	client := elevenlabs.NewClient(nil)

	var (
		runningTotal      int
		activeCount       int
		errorCount        int
		audioCapableCount int
	)

	for i, key := range keys {
		sub, err := client.GetSubscription(key.Secret)
		if err != nil {
			errorCount++
			fmt.Printf("❌ Key %2d/%d: %s\n", i+1, len(keys), key.Account)
			fmt.Printf("   Error: %v\n", err)
			fmt.Println(strings.Repeat("-", 100))
			time.Sleep(pauseBetweenKeys)
			continue
		}

		activeCount++
		remaining := sub.CharactersRemaining()
		runningTotal += remaining

		fmt.Printf("[%s] Key %2d/%d: %s\n", strings.ToUpper(sub.Tier), i+1, len(keys), key.Account)
		fmt.Printf("   Characters: %s/%s\n", formatNumber(remaining), formatNumber(sub.CharacterLimit))
		fmt.Printf("   Voice Slots: %d/%d\n", sub.VoiceSlotsUsed, sub.VoiceLimit)
		fmt.Printf("   Status: %s\n", sub.Status)
		fmt.Printf("   Billing Period: %s\n", sub.BillingPeriod)
		fmt.Printf("   Next Reset: %s\n", sub.NextReset().Format("2006-01-02 15:04:05"))
		fmt.Printf("   Running Total: %s\n", formatNumber(runningTotal))

		if *testAudio {
			if canGenerateAudio(client, key.Secret, cfg) {
				audioCapableCount++
				fmt.Println("   Audio Generation: ✓ Working")
			} else {
				fmt.Println("   Audio Generation: ✗ Not Working")
			}
		}

		fmt.Println(strings.Repeat("-", 100))
		time.Sleep(pauseBetweenKeys) // prevent rate limiting
	}

	fmt.Println("\n" + strings.Repeat("=", 100))
	fmt.Println("\n📈 Final Summary:")
	fmt.Printf("Total Keys Checked: %d\n", len(keys))
	fmt.Printf("Active Keys: %d\n", activeCount)
	fmt.Printf("Error Keys: %d\n", errorCount)
	if *testAudio {
		fmt.Printf("Audio Capable Keys: %d\n", audioCapableCount)
	}
	fmt.Printf("\nTotal Characters Available: %s\n", formatNumber(runningTotal))

	if activeCount > 0 {
		fmt.Printf("Average Characters per Active Key: %s\n", formatNumber(runningTotal/activeCount))
	}
}

// canGenerateAudio checks whether the key can actually synthesize, not
// just report a balance. Quota errors count as not working.
func canGenerateAudio(client *elevenlabs.Client, apiKey string, cfg *config.Config) bool {
	_, err := client.TextToSpeech(apiKey, elevenlabs.TTSRequest{
		Text:         "Test.",
		VoiceID:      cfg.VoiceID,
		ModelID:      cfg.ModelID,
		OutputFormat: cfg.OutputFormat,
	})
	return err == nil
}

// formatNumber adds thousands separators.
func formatNumber(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var sb strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		sb.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if sb.Len() > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(s[i : i+3])
	}
	return sb.String()
}
