package content

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// MergeAudioFiles concatenates the per-section MP3s into one file using
// ffmpeg's concat demuxer. Requires ffmpeg on PATH.
func MergeAudioFiles(inputFiles []string, outputFile string) error {
	if len(inputFiles) == 0 {
		return fmt.Errorf("no input files to merge")
	}

	if len(inputFiles) == 1 {
		return copyFile(inputFiles[0], outputFile)
	}

	for _, file := range inputFiles {
		if _, err := os.Stat(file); os.IsNotExist(err) {
			return fmt.Errorf("input file does not exist: %s", file)
		}
	}

	outputDir := filepath.Dir(outputFile)
	if err := os.MkdirAll(outputDir, dirPermissions); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	// ffmpeg's concat demuxer reads the input list from a file
	listFile := filepath.Join(outputDir, "temp_filelist.txt")
	defer os.Remove(listFile)

	file, err := os.Create(listFile)
	if err != nil {
		return fmt.Errorf("creating file list: %w", err)
	}

	for _, audioFile := range inputFiles {
		absPath, err := filepath.Abs(audioFile)
		if err != nil {
			file.Close()
			return fmt.Errorf("resolving path for %s: %w", audioFile, err)
		}
		absPath = filepath.ToSlash(absPath)
		if _, err := fmt.Fprintf(file, "file '%s'\n", absPath); err != nil {
			file.Close()
			return fmt.Errorf("writing file list: %w", err)
		}
	}
	file.Close()

	cmd := exec.Command("ffmpeg", "-y", "-f", "concat", "-safe", "0", "-i", listFile, "-c", "copy", outputFile)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg failed: %w, output: %s", err, string(output))
	}

	return nil
}

func copyFile(src, dst string) error {
	input, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, input, filePermissions)
}
