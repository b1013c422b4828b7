package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFilename(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		outputDir string
		tokens    []string
		defExt    string
		want      string
	}{
		{
			name:   "orientation then mode",
			input:  filepath.Join("shots", "VRChat_2048x1440.png"),
			tokens: []string{"orientation", "darkmode"},
			want:   filepath.Join("shots", "VRChat_2048x1440-orientation-darkmode.png"),
		},
		{
			name:   "mode only keeps extension",
			input:  "photo.JPG",
			tokens: []string{"lightmode"},
			want:   "photo-lightmode.JPG",
		},
		{
			name:   "no extension",
			input:  "photo",
			tokens: []string{"orientation"},
			want:   "photo-orientation.png",
		},
		{
			name:   "no extension custom default",
			input:  "photo",
			tokens: []string{"orientation"},
			defExt: ".webp",
			want:   "photo-orientation.webp",
		},
		{
			name:  "no tokens",
			input: "photo.png",
			want:  "photo-out.png",
		},
		{
			name:      "output dir",
			input:     filepath.Join("a", "b", "photo.png"),
			outputDir: "out",
			tokens:    []string{"darkmode"},
			want:      filepath.Join("out", "photo-darkmode.png"),
		},
		{
			name:   "dotted base",
			input:  "my.photo.v2.png",
			tokens: []string{"darkmode"},
			want:   "my.photo.v2-darkmode.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OutputFilename(tt.input, tt.outputDir, tt.tokens, tt.defExt))
		})
	}
}

func TestCleanPath(t *testing.T) {
	assert.Equal(t, "photo.png", CleanPath(`  "photo.png" `))
	assert.Equal(t, "photo.png", CleanPath(`'photo.png'`))

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "Pictures", "a.png"), CleanPath("~/Pictures/a.png"))
}

func TestIsImageFile(t *testing.T) {
	assert.True(t, IsImageFile("a.PNG"))
	assert.True(t, IsImageFile("a.webp"))
	assert.False(t, IsImageFile("a.txt"))
	assert.False(t, IsImageFile("a"))
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "x.png")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(dir))
	assert.False(t, FileExists(filepath.Join(dir, "missing")))

	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, EnsureDir(nested))
	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFormatFileSize(t *testing.T) {
	assert.Equal(t, "512 B", FormatFileSize(512))
	assert.Equal(t, "1.5 KB", FormatFileSize(1536))
	assert.Equal(t, "2.0 MB", FormatFileSize(2*1024*1024))
}
