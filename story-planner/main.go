// story-planner is the interactive CLI: pick a language, enter a book
// title, and it generates the video script and the per-section voice-over
// audio in one run.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"book_video_automation/config"
	"book_video_automation/credentials"
	"book_video_automation/elevenlabs"
	"book_video_automation/pipeline"
	"book_video_automation/storyplanner"
	"book_video_automation/voiceover"
)

func main() {
	cfg := config.Load()
	if err := cfg.ValidateForGeneration(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if err := setupLogFile(); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}

	reader := bufio.NewReader(os.Stdin)

	language := promptLanguage(reader)
	bookName := promptBookName(reader)

	pool, err := credentials.LoadFile(cfg.KeysFile)
	if err != nil {
		log.Fatalf("Failed to load API keys: %v", err)
	}
	fmt.Printf("✓ Loaded %d ElevenLabs API keys\n", pool.Size())

	groq := storyplanner.NewGroqService(cfg.GroqAPIKey, cfg.GroqModel)
	planner := storyplanner.NewScriptService(groq, storyplanner.GetLanguageConfig(language))
	synth := voiceover.NewSynthesizer(pool, elevenlabs.NewClient(nil))

	automation := &pipeline.BookAutomation{
		Planner: planner,
		Synth:   synth,
		Voice: pipeline.VoiceConfig{
			VoiceID:      cfg.VoiceID,
			ModelID:      cfg.ModelID,
			OutputFormat: cfg.OutputFormat,
		},
		BaseDir:    cfg.OutputDir,
		Pause:      cfg.Pause,
		MergeAudio: cfg.MergeAudio,
	}

	result, err := automation.Run(bookName)
	if err != nil {
		log.Fatalf("❌ Program failed: %v", err)
	}

	fmt.Println("\n📂 Generated files:")
	fmt.Printf("  1. Full Script (JSON):    %s\n", result.Paths.ScriptJSONPath())
	fmt.Printf("  2. Voice-over Scripts:    %s\n", result.Paths.Sections)
	fmt.Printf("  3. Main Voice-over Script: %s\n", filepath.Join(result.Paths.VoiceOver, "voice_over_script.txt"))
	fmt.Printf("  4. Production Script:     %s\n", filepath.Join(result.Paths.Script, "production_script.txt"))
	fmt.Printf("  5. Section Audio (%d files): %s\n", len(result.AudioFiles), result.Paths.Sections)
	if result.MergedFile != "" {
		fmt.Printf("  6. Complete Voice-over:   %s\n", result.MergedFile)
	}
}

func promptLanguage(reader *bufio.Reader) string {
	fmt.Println("\n📚 Available languages:")
	for _, code := range storyplanner.LanguageCodes {
		fmt.Printf("  🌐 %s: %s\n", code, storyplanner.SupportedLanguages[code].Name)
	}

	for {
		fmt.Print("\n🌍 Enter language code (default: en): ")
		line, err := reader.ReadString('\n')
		if err != nil {
			log.Fatalf("Failed to read input: %v", err)
		}
		language := strings.ToLower(strings.TrimSpace(line))
		if language == "" {
			return "en"
		}
		if storyplanner.IsSupported(language) {
			return language
		}
		fmt.Printf("❌ Unsupported language code. Please choose from: %s\n",
			strings.Join(storyplanner.LanguageCodes, ", "))
	}
}

func promptBookName(reader *bufio.Reader) string {
	for {
		fmt.Print("📖 Enter the name of the book for video creation: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			log.Fatalf("Failed to read input: %v", err)
		}
		bookName := strings.TrimSpace(line)
		if bookName != "" {
			return bookName
		}
		fmt.Println("❌ Book name cannot be empty. Please try again.")
	}
}

// setupLogFile mirrors rotation and attempt logs into logs/ so a failed
// run can be diagnosed afterwards.
func setupLogFile() error {
	if err := os.MkdirAll("logs", 0755); err != nil {
		return err
	}

	timestamp := time.Now().Format("20060102_150405")
	logPath := filepath.Join("logs", fmt.Sprintf("story_planner_%s.log", timestamp))
	logFile, err := os.Create(logPath)
	if err != nil {
		return err
	}

	log.SetOutput(io.MultiWriter(os.Stderr, logFile))
	return nil
}
