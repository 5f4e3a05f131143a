// Package storyplanner generates structured book video scripts using the
// Groq chat-completions API.
package storyplanner

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// ScriptService orchestrates script generation for a book.
type ScriptService struct {
	groq     *GroqService
	language LanguageConfig
	template ScriptTemplate
}

// NewScriptService creates a script service for the given language.
func NewScriptService(groq *GroqService, language LanguageConfig) *ScriptService {
	return &ScriptService{
		groq:     groq,
		language: language,
		template: GetScriptTemplate(language.ScriptStyle),
	}
}

// Language returns the configured narration language.
func (s *ScriptService) Language() LanguageConfig {
	return s.language
}

// GenerateBookScript asks the model for a complete single-video script
// covering the book and parses the JSON response.
func (s *ScriptService) GenerateBookScript(bookName string) (*VideoScript, error) {
	messages := []ChatMessage{
		{Role: "system", Content: s.buildSystemPrompt()},
		{Role: "user", Content: buildScriptPrompt(bookName)},
	}

	response, err := s.groq.GenerateContent(messages)
	if err != nil {
		return nil, fmt.Errorf("generating book script: %w", err)
	}

	cleaned := CleanJSONResponse(response)

	var script VideoScript
	if err := json.Unmarshal([]byte(cleaned), &script); err != nil {
		return nil, fmt.Errorf("parsing script JSON: %w", err)
	}

	if len(script.Sections) == 0 {
		return nil, fmt.Errorf("script contains no sections")
	}

	return &script, nil
}

func (s *ScriptService) buildSystemPrompt() string {
	return fmt.Sprintf("You are a professional YouTube scriptwriter specializing in %s book summaries and analysis. "+
		"Create a comprehensive, engaging script that covers the book's key ideas in a single video. "+
		"Open with a hook in the spirit of %q and close with a call to action like %q. "+
		"Include clear voice-over instructions and visual suggestions.",
		s.language.Name, s.template.Hook, s.template.CallToAction)
}

func buildScriptPrompt(bookName string) string {
	return fmt.Sprintf(`Create a detailed single video script for the book '%s'.
Format your response STRICTLY as a JSON object with the following structure:
{
    "title": "Video Title",
    "duration": "20-30 minutes",
    "target_audience": "string",
    "sections": [
        {
            "title": "Section Title",
            "duration": "string",
            "voice_over": "Detailed voice-over script",
            "visual_notes": "Description of visuals/animations",
            "background_music": "Music mood suggestion"
        }
    ],
    "key_points": ["string"],
    "visual_style": "Overall visual style description",
    "thumbnail_text": "string"
}`, bookName)
}

var badEscapeRegex = regexp.MustCompile(`\\([^"\\/bfnrtu])`)

// CleanJSONResponse strips non-JSON text around the response object and
// fixes the escape mistakes the model commonly makes.
func CleanJSONResponse(response string) string {
	jsonStart := strings.Index(response, "{")
	jsonEnd := strings.LastIndex(response, "}")
	if jsonStart >= 0 && jsonEnd > jsonStart {
		response = response[jsonStart : jsonEnd+1]
	}

	response = badEscapeRegex.ReplaceAllString(response, "$1")

	return response
}
