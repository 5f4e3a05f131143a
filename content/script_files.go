package content

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"book_video_automation/storyplanner"
)

// SaveScriptContent writes every text artifact for the script: the JSON
// document, per-section transcripts, the main voice-over script, and the
// production script with visual notes.
func SaveScriptContent(paths *Paths, script *storyplanner.VideoScript) error {
	if err := saveScriptJSON(paths, script); err != nil {
		return err
	}
	if err := saveSectionTranscripts(paths, script); err != nil {
		return err
	}
	if err := saveVoiceOverScript(paths, script); err != nil {
		return err
	}
	return saveProductionScript(paths, script)
}

func saveScriptJSON(paths *Paths, script *storyplanner.VideoScript) error {
	data, err := json.MarshalIndent(script, "", "    ")
	if err != nil {
		return fmt.Errorf("marshalling script: %w", err)
	}
	if err := os.WriteFile(paths.ScriptJSONPath(), data, filePermissions); err != nil {
		return fmt.Errorf("writing full script JSON: %w", err)
	}
	return nil
}

func saveSectionTranscripts(paths *Paths, script *storyplanner.VideoScript) error {
	for i, section := range script.Sections {
		filename := SectionBasename(i+1, section.Title) + ".txt"

		var sb strings.Builder
		fmt.Fprintf(&sb, "# %s\n", section.Title)
		fmt.Fprintf(&sb, "Duration: %s\n\n", section.Duration)
		fmt.Fprintf(&sb, "%s\n", section.VoiceOver)

		path := filepath.Join(paths.Sections, filename)
		if err := os.WriteFile(path, []byte(sb.String()), filePermissions); err != nil {
			return fmt.Errorf("writing section transcript %s: %w", filename, err)
		}
	}
	return nil
}

func saveVoiceOverScript(paths *Paths, script *storyplanner.VideoScript) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n", script.Title)
	fmt.Fprintf(&sb, "Target Duration: %s\n\n", script.Duration)

	for i, section := range script.Sections {
		fmt.Fprintf(&sb, "\n%s\n", strings.Repeat("=", 50))
		fmt.Fprintf(&sb, "Section %d: %s\n", i+1, section.Title)
		fmt.Fprintf(&sb, "Duration: %s\n", section.Duration)
		fmt.Fprintf(&sb, "%s\n\n", strings.Repeat("=", 50))
		fmt.Fprintf(&sb, "VOICE OVER:\n%s\n\n", section.VoiceOver)
	}

	path := filepath.Join(paths.VoiceOver, "voice_over_script.txt")
	if err := os.WriteFile(path, []byte(sb.String()), filePermissions); err != nil {
		return fmt.Errorf("writing voice-over script: %w", err)
	}
	return nil
}

func saveProductionScript(paths *Paths, script *storyplanner.VideoScript) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n", script.Title)
	fmt.Fprintf(&sb, "Target Duration: %s\n", script.Duration)
	fmt.Fprintf(&sb, "Target Audience: %s\n", script.TargetAudience)
	fmt.Fprintf(&sb, "\nVisual Style: %s\n", script.VisualStyle)
	sb.WriteString("\nKey Points:\n")
	for _, point := range script.KeyPoints {
		fmt.Fprintf(&sb, "- %s\n", point)
	}

	for i, section := range script.Sections {
		fmt.Fprintf(&sb, "\n%s\n", strings.Repeat("=", 50))
		fmt.Fprintf(&sb, "Section %d: %s\n", i+1, section.Title)
		fmt.Fprintf(&sb, "Duration: %s\n", section.Duration)
		fmt.Fprintf(&sb, "%s\n\n", strings.Repeat("=", 50))
		fmt.Fprintf(&sb, "VOICE OVER:\n%s\n\n", section.VoiceOver)
		fmt.Fprintf(&sb, "VISUAL NOTES:\n%s\n\n", section.VisualNotes)
		fmt.Fprintf(&sb, "BACKGROUND MUSIC:\n%s\n\n", section.BackgroundMusic)
	}

	path := filepath.Join(paths.Script, "production_script.txt")
	if err := os.WriteFile(path, []byte(sb.String()), filePermissions); err != nil {
		return fmt.Errorf("writing production script: %w", err)
	}
	return nil
}

// SaveAudioFile writes one synthesized MP3 into the sections directory and
// returns its path.
func SaveAudioFile(paths *Paths, basename string, audio []byte) (string, error) {
	path := filepath.Join(paths.Sections, basename+".mp3")
	if err := os.WriteFile(path, audio, filePermissions); err != nil {
		return "", fmt.Errorf("writing audio file: %w", err)
	}
	return path, nil
}
