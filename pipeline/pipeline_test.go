package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book_video_automation/elevenlabs"
	"book_video_automation/storyplanner"
	"book_video_automation/voiceover"
)

type stubPlanner struct {
	script *storyplanner.VideoScript
	err    error
}

func (p *stubPlanner) GenerateBookScript(bookName string) (*storyplanner.VideoScript, error) {
	return p.script, p.err
}

type stubSynth struct {
	requests []elevenlabs.TTSRequest
	err      error
	failAt   int // 1-based call index that fails; 0 means never
}

func (s *stubSynth) Synthesize(req elevenlabs.TTSRequest) ([]byte, error) {
	s.requests = append(s.requests, req)
	if s.failAt > 0 && len(s.requests) == s.failAt {
		return nil, s.err
	}
	return []byte("fake-audio"), nil
}

func twoSectionScript() *storyplanner.VideoScript {
	return &storyplanner.VideoScript{
		Title:    "Test Video",
		Duration: "20 minutes",
		Sections: []storyplanner.Section{
			{Title: "Opening Hook", Duration: "2 minutes", VoiceOver: "Welcome to the video."},
			{Title: "Core Ideas", Duration: "10 minutes", VoiceOver: "Here are the main ideas."},
		},
	}
}

func TestRunHappyPath(t *testing.T) {
	planner := &stubPlanner{script: twoSectionScript()}
	synth := &stubSynth{}

	ba := &BookAutomation{
		Planner: planner,
		Synth:   synth,
		Voice:   VoiceConfig{VoiceID: "voice1", ModelID: "model1", OutputFormat: "mp3_44100_128"},
		BaseDir: t.TempDir(),
	}

	result, err := ba.Run("Test Book")
	require.NoError(t, err)

	require.Len(t, result.AudioFiles, 2)
	assert.True(t, strings.HasSuffix(result.AudioFiles[0].Path, "01_opening_hook.mp3"))
	assert.True(t, strings.HasSuffix(result.AudioFiles[1].Path, "02_core_ideas.mp3"))
	assert.Equal(t, 1, result.AudioFiles[0].SectionIndex)
	assert.Equal(t, "Opening Hook", result.AudioFiles[0].Title)
	assert.Equal(t, 2, result.AudioFiles[1].SectionIndex)
	assert.Equal(t, "Core Ideas", result.AudioFiles[1].Title)
	for _, af := range result.AudioFiles {
		_, err := os.Stat(af.Path)
		assert.NoError(t, err)
	}

	// Voice config flows into every request.
	require.Len(t, synth.requests, 2)
	assert.Equal(t, "voice1", synth.requests[0].VoiceID)
	assert.Equal(t, "model1", synth.requests[0].ModelID)
	assert.Equal(t, "Welcome to the video.", synth.requests[0].Text)

	// Text artifacts were written alongside the audio.
	_, err = os.Stat(result.Paths.ScriptJSONPath())
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(result.Paths.VoiceOver, "voice_over_script.txt"))
	assert.NoError(t, err)

	assert.Empty(t, result.MergedFile)
}

func TestRunSplitsLongSections(t *testing.T) {
	script := &storyplanner.VideoScript{
		Title: "Long Video",
		Sections: []storyplanner.Section{
			{Title: "Big Section", VoiceOver: "First sentence here. Second sentence here. Third sentence here."},
			{Title: "Short Section", VoiceOver: "One short sentence."},
		},
	}
	synth := &stubSynth{}

	ba := &BookAutomation{
		Planner:   &stubPlanner{script: script},
		Synth:     synth,
		BaseDir:   t.TempDir(),
		CharLimit: 45,
	}

	result, err := ba.Run("Test Book")
	require.NoError(t, err)

	// The first section exceeds the limit, so it becomes numbered part
	// files; both parts keep the first section's index and title, and the
	// second section's file is still attributed to section 2.
	require.Len(t, result.AudioFiles, 3)

	assert.True(t, strings.HasSuffix(result.AudioFiles[0].Path, "01_big_section_part1.mp3"))
	assert.Equal(t, 1, result.AudioFiles[0].SectionIndex)
	assert.Equal(t, 1, result.AudioFiles[0].Part)
	assert.Equal(t, "Big Section", result.AudioFiles[0].Title)

	assert.True(t, strings.HasSuffix(result.AudioFiles[1].Path, "01_big_section_part2.mp3"))
	assert.Equal(t, 1, result.AudioFiles[1].SectionIndex)
	assert.Equal(t, 2, result.AudioFiles[1].Part)
	assert.Equal(t, "Big Section", result.AudioFiles[1].Title)

	assert.True(t, strings.HasSuffix(result.AudioFiles[2].Path, "02_short_section.mp3"))
	assert.Equal(t, 2, result.AudioFiles[2].SectionIndex)
	assert.Equal(t, 1, result.AudioFiles[2].Part)
	assert.Equal(t, "Short Section", result.AudioFiles[2].Title)

	for i, req := range synth.requests {
		assert.LessOrEqual(t, len(req.Text), 45)
		assert.Equal(t, len(req.Text), result.AudioFiles[i].CharCount)
	}

	assert.Equal(t, []string{
		result.AudioFiles[0].Path,
		result.AudioFiles[1].Path,
		result.AudioFiles[2].Path,
	}, result.AudioPaths())
}

func TestRunScriptGenerationFails(t *testing.T) {
	ba := &BookAutomation{
		Planner: &stubPlanner{err: errors.New("model unavailable")},
		Synth:   &stubSynth{},
		BaseDir: t.TempDir(),
	}

	_, err := ba.Run("Test Book")
	assert.ErrorContains(t, err, "generating script")
}

func TestRunStopsOnSynthesisFailure(t *testing.T) {
	synth := &stubSynth{failAt: 2, err: voiceover.ErrAllKeysExhausted}

	ba := &BookAutomation{
		Planner: &stubPlanner{script: twoSectionScript()},
		Synth:   synth,
		BaseDir: t.TempDir(),
	}

	_, err := ba.Run("Test Book")
	require.Error(t, err)
	assert.ErrorIs(t, err, voiceover.ErrAllKeysExhausted)
	assert.Contains(t, err.Error(), "Core Ideas")
	// No further sections were attempted after the failure.
	assert.Len(t, synth.requests, 2)
}
