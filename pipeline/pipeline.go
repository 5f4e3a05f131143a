// Package pipeline runs the book-to-narrated-script flow end to end:
// generate the structured script, persist its text artifacts, then
// synthesize one MP3 per section with key rotation handled underneath.
package pipeline

import (
	"fmt"
	"path/filepath"
	"time"

	"book_video_automation/content"
	"book_video_automation/elevenlabs"
	"book_video_automation/storyplanner"
	"book_video_automation/textsplit"
)

// Sections are synthesized one at a time; anything longer than this is
// split into multiple requests (free-tier request size is 5000 chars,
// keep headroom).
const DefaultCharLimit = 4500

// ScriptGenerator produces the structured script for a book.
type ScriptGenerator interface {
	GenerateBookScript(bookName string) (*storyplanner.VideoScript, error)
}

// SpeechSynthesizer renders one text segment to audio.
type SpeechSynthesizer interface {
	Synthesize(req elevenlabs.TTSRequest) ([]byte, error)
}

// VoiceConfig is the voice applied to every section request.
type VoiceConfig struct {
	VoiceID      string
	ModelID      string
	OutputFormat string
}

// BookAutomation wires the script generator and the synthesizer together.
type BookAutomation struct {
	Planner    ScriptGenerator
	Synth      SpeechSynthesizer
	Voice      VoiceConfig
	BaseDir    string
	Pause      time.Duration // sleep between synthesis calls to stay under rate limits
	CharLimit  int
	MergeAudio bool
}

// AudioFile is one synthesized MP3 with the section it belongs to. A
// section whose voice-over was split produces several files sharing the
// same SectionIndex, distinguished by Part.
type AudioFile struct {
	SectionIndex int // 1-based
	Part         int // 1-based within the section
	Title        string
	Path         string
	CharCount    int
}

// Result summarizes a completed run.
type Result struct {
	Paths      *content.Paths
	Script     *storyplanner.VideoScript
	AudioFiles []AudioFile
	MergedFile string
	Elapsed    time.Duration
}

// AudioPaths returns the audio file paths in synthesis order.
func (r *Result) AudioPaths() []string {
	paths := make([]string, len(r.AudioFiles))
	for i, af := range r.AudioFiles {
		paths[i] = af.Path
	}
	return paths
}

// Run executes the full pipeline for one book. It stops at the first
// terminal failure: script generation errors, file errors, non-quota
// provider errors, or an exhausted key pool.
func (ba *BookAutomation) Run(bookName string) (*Result, error) {
	startTime := time.Now()

	baseDir := ba.BaseDir
	if baseDir == "" {
		baseDir = content.DefaultBaseDir
	}
	charLimit := ba.CharLimit
	if charLimit <= 0 {
		charLimit = DefaultCharLimit
	}

	paths, err := content.CreateProjectStructure(baseDir, bookName)
	if err != nil {
		return nil, fmt.Errorf("creating project structure: %w", err)
	}

	fmt.Println("⚡ Generating comprehensive video script...")
	script, err := ba.Planner.GenerateBookScript(bookName)
	if err != nil {
		return nil, fmt.Errorf("generating script: %w", err)
	}
	fmt.Printf("✓ Script generated: %s (%d sections)\n", script.Title, len(script.Sections))

	if err := content.SaveScriptContent(paths, script); err != nil {
		return nil, fmt.Errorf("saving script content: %w", err)
	}
	fmt.Println("📝 Script content saved")

	audioFiles, err := ba.generateVoiceOvers(paths, script, charLimit)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Paths:      paths,
		Script:     script,
		AudioFiles: audioFiles,
	}

	if ba.MergeAudio && len(audioFiles) > 0 {
		fmt.Println("Merging audio files...")
		merged := filepath.Join(paths.VoiceOver, "complete_voiceover.mp3")
		if err := content.MergeAudioFiles(result.AudioPaths(), merged); err != nil {
			return nil, fmt.Errorf("merging audio files: %w", err)
		}
		result.MergedFile = merged
		fmt.Printf("✓ Merged voice-over saved to: %s\n", merged)
	}

	result.Elapsed = time.Since(startTime)
	fmt.Printf("\n🎉 Completed in %.1fs\n", result.Elapsed.Seconds())
	return result, nil
}

// generateVoiceOvers synthesizes every section in order, pausing between
// consecutive provider calls. Over-long sections are split at sentence
// boundaries and written as separate part files.
func (ba *BookAutomation) generateVoiceOvers(paths *content.Paths, script *storyplanner.VideoScript, charLimit int) ([]AudioFile, error) {
	var audioFiles []AudioFile
	firstCall := true

	for i, section := range script.Sections {
		fmt.Printf("🎙️  Generating voice for section %d/%d: %s\n", i+1, len(script.Sections), section.Title)

		basename := content.SectionBasename(i+1, section.Title)
		segments := textsplit.SplitByCharLimit(section.VoiceOver, charLimit)

		for j, segment := range segments {
			if !firstCall && ba.Pause > 0 {
				time.Sleep(ba.Pause)
			}
			firstCall = false

			audio, err := ba.Synth.Synthesize(elevenlabs.TTSRequest{
				Text:         segment,
				VoiceID:      ba.Voice.VoiceID,
				ModelID:      ba.Voice.ModelID,
				OutputFormat: ba.Voice.OutputFormat,
			})
			if err != nil {
				return nil, fmt.Errorf("section %d (%s): %w", i+1, section.Title, err)
			}

			name := basename
			if len(segments) > 1 {
				name = fmt.Sprintf("%s_part%d", basename, j+1)
			}
			path, err := content.SaveAudioFile(paths, name, audio)
			if err != nil {
				return nil, fmt.Errorf("section %d (%s): %w", i+1, section.Title, err)
			}
			audioFiles = append(audioFiles, AudioFile{
				SectionIndex: i + 1,
				Part:         j + 1,
				Title:        section.Title,
				Path:         path,
				CharCount:    len(segment),
			})
		}

		fmt.Printf("✓ Section %d voice-over complete\n", i+1)
	}

	return audioFiles, nil
}
