package storyplanner

// VideoScript is the structured script the LLM returns for a book.
type VideoScript struct {
	Title          string    `json:"title" bson:"title"`
	Duration       string    `json:"duration" bson:"duration"`
	TargetAudience string    `json:"target_audience" bson:"target_audience"`
	Sections       []Section `json:"sections" bson:"sections"`
	KeyPoints      []string  `json:"key_points" bson:"key_points"`
	VisualStyle    string    `json:"visual_style" bson:"visual_style"`
	ThumbnailText  string    `json:"thumbnail_text" bson:"thumbnail_text"`
}

// Section is one narrated segment of the video.
type Section struct {
	Title           string `json:"title" bson:"title"`
	Duration        string `json:"duration" bson:"duration"`
	VoiceOver       string `json:"voice_over" bson:"voice_over"`
	VisualNotes     string `json:"visual_notes" bson:"visual_notes"`
	BackgroundMusic string `json:"background_music" bson:"background_music"`
}
