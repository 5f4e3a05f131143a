package storyplanner

// LanguageConfig describes a supported narration language.
type LanguageConfig struct {
	Code        string
	Name        string
	ScriptStyle string
}

// ScriptTemplate holds the stock phrases for a regional script style.
type ScriptTemplate struct {
	Hook         string
	Intro        string
	MainContent  string
	Engagement   string
	CallToAction string
	Cliffhanger  string
}

// SupportedLanguages lists the languages scripts can be generated in.
// Iteration order for display comes from LanguageCodes.
var SupportedLanguages = map[string]LanguageConfig{
	"en": {Code: "en", Name: "English", ScriptStyle: "western"},
	"es": {Code: "es", Name: "Spanish", ScriptStyle: "western"},
	"zh": {Code: "zh", Name: "Chinese", ScriptStyle: "asian"},
	"ja": {Code: "ja", Name: "Japanese", ScriptStyle: "asian"},
	"ta": {Code: "ta", Name: "Tamil", ScriptStyle: "indian"},
	"hi": {Code: "hi", Name: "Hindi", ScriptStyle: "indian"},
}

// LanguageCodes is the stable display order for the language menu.
var LanguageCodes = []string{"en", "es", "zh", "ja", "ta", "hi"}

var scriptTemplates = map[string]ScriptTemplate{
	"western": {
		Hook:         "Welcome to our channel!",
		Intro:        "Today we will explore...",
		MainContent:  "Let me tell you about...",
		Engagement:   "If you enjoyed this content...",
		CallToAction: "Don't forget to like and subscribe!",
		Cliffhanger:  "Stay tuned for our next episode...",
	},
	"asian": {
		Hook:         "ようこそ！/ 欢迎！",
		Intro:        "今日は... / 今天我们...",
		MainContent:  "今から... / 让我告诉你...",
		Engagement:   "もし良かったら... / 如果您喜欢...",
		CallToAction: "チャンネル登録お願いします！/ 请订阅我们的频道！",
		Cliffhanger:  "次回をお楽しみに！/ 下集再见！",
	},
	"indian": {
		Hook:         "नमस्कार / வணக்கம்!",
		Intro:        "आज हम... / இன்று நாம்...",
		MainContent:  "मैं आपको बताता/बताती हूं... / நான் உங்களுக்கு சொல்கிறேன்...",
		Engagement:   "अगर आपको यह वीडियो पसंद आया... / இந்த வீடியோ பிடித்திருந்தால்...",
		CallToAction: "चैनल को सब्सक्राइब करना न भूलें! / எங்கள் சேனலை subscribe செய்யுங்கள்!",
		Cliffhanger:  "अगली एपिसोड का इंतज़ार करें... / அடுத்த எபிசோட்டில் சந்திப்போம்...",
	},
}

// GetLanguageConfig returns the config for a language code, falling back
// to English for unknown codes.
func GetLanguageConfig(code string) LanguageConfig {
	if cfg, ok := SupportedLanguages[code]; ok {
		return cfg
	}
	return SupportedLanguages["en"]
}

// GetScriptTemplate returns the template for a script style, falling back
// to the western template.
func GetScriptTemplate(style string) ScriptTemplate {
	if tpl, ok := scriptTemplates[style]; ok {
		return tpl
	}
	return scriptTemplates["western"]
}

// IsSupported reports whether the language code has a configuration.
func IsSupported(code string) bool {
	_, ok := SupportedLanguages[code]
	return ok
}
