package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/inkmark/inkmark/internal/config"
)

func TestRootHelp(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"--help"})
	defer rootCmd.SetArgs(nil)
	defer rootCmd.Flags().Set("help", "false")

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("help failed: %v", err)
	}

	help := out.String()
	for _, want := range []string{"mark", "check", "inspect", "profile"} {
		if !strings.Contains(help, want) {
			t.Errorf("help output missing %q", want)
		}
	}
}

func TestRootVersion(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"--version"})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out.String(), version) {
		t.Errorf("version output %q missing %q", out.String(), version)
	}
}

func TestIsImageFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"photo.jpg", true},
		{"photo.JPG", true},
		{"photo.jpeg", true},
		{"scan.png", true},
		{"anim.gif", true},
		{"old.bmp", true},
		{"notes.txt", false},
		{"archive.zip", false},
		{"noext", false},
	}

	for _, tt := range tests {
		if got := isImageFile(tt.path); got != tt.want {
			t.Errorf("isImageFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		file   string
		format string
		want   string
	}{
		{"photo.jpg", "", "photo.jpg"},
		{"photo.jpg", "jpeg", "photo.jpg"},
		{"photo.jpeg", "jpeg", "photo.jpeg"},
		{"scan.png", "jpeg", "scan.jpg"},
		{"photo.jpg", "png", "photo.png"},
		{"scan.png", "png", "scan.png"},
		{"dir/nested/photo.bmp", "png", "photo.png"},
	}

	for _, tt := range tests {
		if got := outputName(tt.file, tt.format); got != tt.want {
			t.Errorf("outputName(%q, %q) = %q, want %q", tt.file, tt.format, got, tt.want)
		}
	}
}

func TestCollectImages(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"a.jpg", "b.png", "skip.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(sub, "c.gif"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	files, err := collectImages([]string{dir})
	if err != nil {
		t.Fatalf("collectImages failed: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("collected %d files, want 3: %v", len(files), files)
	}

	// A single file argument is passed through, non-images dropped.
	files, err = collectImages([]string{filepath.Join(dir, "a.jpg"), filepath.Join(dir, "skip.txt")})
	if err != nil {
		t.Fatalf("collectImages failed: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "a.jpg" {
		t.Errorf("collected %v, want only a.jpg", files)
	}
}

func TestCollectImagesMissingFile(t *testing.T) {
	if _, err := collectImages([]string{"does-not-exist.jpg"}); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestMergeMarkFlags(t *testing.T) {
	prof := config.DefaultProfileSettings()

	flags := markCmd.Flags()
	if err := flags.Set("text", "© Override"); err != nil {
		t.Fatal(err)
	}
	if err := flags.Set("margin", "0.1"); err != nil {
		t.Fatal(err)
	}
	if err := flags.Set("anchor", "mm"); err != nil {
		t.Fatal(err)
	}

	mergeMarkFlags(markCmd, &prof)

	if prof.Text != "© Override" {
		t.Errorf("Text = %q, want the flag value", prof.Text)
	}
	if prof.Margin != 0.1 {
		t.Errorf("Margin = %g, want 0.1", prof.Margin)
	}
	if prof.Anchor != "mm" {
		t.Errorf("Anchor = %q, want mm", prof.Anchor)
	}

	// Untouched flags keep the profile's values.
	if prof.RelativeHeight != config.DefaultRelHeight {
		t.Errorf("RelativeHeight = %g, want %g", prof.RelativeHeight, config.DefaultRelHeight)
	}
	if prof.Opacity != config.DefaultOpacity {
		t.Errorf("Opacity = %d, want %d", prof.Opacity, config.DefaultOpacity)
	}
}

func TestMergeSaveFlags(t *testing.T) {
	prof := config.DefaultProfileSettings()

	flags := profileSaveCmd.Flags()
	if err := flags.Set("height", "0.08"); err != nil {
		t.Fatal(err)
	}
	if err := flags.Set("opacity", "200"); err != nil {
		t.Fatal(err)
	}

	mergeSaveFlags(profileSaveCmd, &prof)

	if prof.RelativeHeight != 0.08 {
		t.Errorf("RelativeHeight = %g, want 0.08", prof.RelativeHeight)
	}
	if prof.Opacity != 200 {
		t.Errorf("Opacity = %d, want 200", prof.Opacity)
	}
	if prof.Text != config.DefaultText {
		t.Errorf("Text = %q, want the default", prof.Text)
	}
}
