// =============================================================================
// Financial Statements Generator - File Manager
// =============================================================================
//
// Shared file-handling helpers for the command layer and the pipeline:
// directory setup, placeholder-based output naming, and archival of consumed
// input workbooks. None of this touches workbook content; it only moves
// bytes and names around.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
)

// EnsureDirectories creates every given directory (and parents) if absent.
func EnsureDirectories(dirs ...string) error {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrapf(err, "utils: create directory %q", dir)
		}
	}
	return nil
}

// GenerateOutputFileName expands an output-name format into a concrete file
// name. Placeholders:
//
//	{uuid}      - a random UUID
//	{timestamp} - current timestamp (YYYYMMDD_HHMMSS)
//	{date}      - current date (YYYYMMDD)
//	{original}  - the input file name without extension
//
// The result always carries an .xlsx extension.
func GenerateOutputFileName(format, inputPath string) string {
	now := time.Now()

	original := filepath.Base(inputPath)
	original = strings.TrimSuffix(original, filepath.Ext(original))

	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{original}":  original,
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if !strings.HasSuffix(strings.ToLower(result), ".xlsx") {
		result += ".xlsx"
	}
	return result
}

// ArchiveFile moves a consumed input workbook into the archive directory,
// uniquifying the name on collision so repeated uploads never overwrite
// each other.
func ArchiveFile(path, archiveDir string) (string, error) {
	if err := EnsureDirectories(archiveDir); err != nil {
		return "", err
	}

	target := filepath.Join(archiveDir, filepath.Base(path))
	if FileExists(target) {
		ext := filepath.Ext(target)
		base := strings.TrimSuffix(filepath.Base(target), ext)
		target = filepath.Join(archiveDir, fmt.Sprintf("%s_%s%s", base, time.Now().Format("20060102_150405"), ext))
	}

	if err := os.Rename(path, target); err == nil {
		return target, nil
	}
	// Rename fails across filesystems; fall back to copy-and-remove.
	if err := copyFile(path, target); err != nil {
		return "", eris.Wrapf(err, "utils: archive %q", path)
	}
	if err := os.Remove(path); err != nil {
		return "", eris.Wrapf(err, "utils: remove archived source %q", path)
	}
	return target, nil
}

// FileExists reports whether path names an existing file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
