// Package content writes the generated script and audio artifacts to the
// project output tree:
//
//	<base>/<book>/script/full_script.json
//	<base>/<book>/script/production_script.txt
//	<base>/<book>/voice_over/voice_over_script.txt
//	<base>/<book>/voice_over/sections/NN_section_title.txt
//	<base>/<book>/voice_over/sections/NN_section_title.mp3
package content

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	DefaultBaseDir = "youtube_content"

	dirPermissions  = 0755
	filePermissions = 0644
)

// Paths holds the directories for one book's generated content.
type Paths struct {
	Root      string
	Script    string
	VoiceOver string
	Sections  string
}

var unsafePathChars = regexp.MustCompile(`[<>:"/\\|?*]`)
var unsafeSectionChars = regexp.MustCompile(`[^\w\s-]`)

// CreateProjectStructure creates the output directory tree for a book.
func CreateProjectStructure(baseDir, bookName string) (*Paths, error) {
	safeBookName := strings.TrimSpace(unsafePathChars.ReplaceAllString(bookName, ""))
	if safeBookName == "" {
		return nil, fmt.Errorf("book name %q contains no usable characters", bookName)
	}

	root := filepath.Join(baseDir, safeBookName)
	paths := &Paths{
		Root:      root,
		Script:    filepath.Join(root, "script"),
		VoiceOver: filepath.Join(root, "voice_over"),
		Sections:  filepath.Join(root, "voice_over", "sections"),
	}

	for _, dir := range []string{paths.Root, paths.Script, paths.VoiceOver, paths.Sections} {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	return paths, nil
}

// ScriptJSONPath is where the full structured script lands.
func (p *Paths) ScriptJSONPath() string {
	return filepath.Join(p.Script, "full_script.json")
}

// SectionBasename builds the sanitized "NN_section_title" stem used for
// both the per-section transcript and its audio file.
func SectionBasename(index int, title string) string {
	name := unsafeSectionChars.ReplaceAllString(title, "")
	name = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
	return fmt.Sprintf("%02d_%s", index, name)
}
