package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultExt is used for inputs without an extension
const DefaultExt = ".png"

// EnsureDir creates a directory if it doesn't exist
func EnsureDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}

// GetFileExtension returns the file extension without the dot
func GetFileExtension(filename string) string {
	ext := filepath.Ext(filename)
	if len(ext) > 0 {
		return strings.ToLower(ext[1:])
	}
	return ""
}

// IsImageFile checks if a file has an image extension
func IsImageFile(filename string) bool {
	ext := GetFileExtension(filename)
	imageExts := []string{"jpg", "jpeg", "png", "gif", "bmp", "tif", "tiff", "webp"}

	for _, imgExt := range imageExts {
		if ext == imgExt {
			return true
		}
	}
	return false
}

// CleanPath trims whitespace and surrounding quotes from a pasted path and
// expands a leading ~ to the home directory
func CleanPath(p string) string {
	p = strings.TrimSpace(p)
	p = strings.Trim(p, `"'`)
	if p == "~" || strings.HasPrefix(p, "~/") || strings.HasPrefix(p, `~\`) {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[1:])
		}
	}
	return p
}

// OutputFilename appends one -token per applied transform to the input base
// name and keeps the input extension. Without tokens the suffix is -out; an
// input without extension gets defaultExt (DefaultExt when empty). A
// non-empty outputDir replaces the input directory.
func OutputFilename(inputFile, outputDir string, tokens []string, defaultExt string) string {
	ext := filepath.Ext(inputFile)
	base := strings.TrimSuffix(inputFile, ext)
	if ext == "" {
		ext = defaultExt
		if ext == "" {
			ext = DefaultExt
		}
	}

	suffix := "-out"
	if len(tokens) > 0 {
		suffix = "-" + strings.Join(tokens, "-")
	}

	name := base + suffix + ext
	if outputDir != "" {
		name = filepath.Join(outputDir, filepath.Base(name))
	}
	return name
}

// FileExists checks if a file exists and is not a directory
func FileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// FormatFileSize formats file size in human-readable format
func FormatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
