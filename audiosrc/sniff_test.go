package audiosrc

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSniffMissingFile(t *testing.T) {
	err := Sniff(filepath.Join(t.TempDir(), "nope.mp3"))
	if !errors.Is(err, ErrSourceMissing) {
		t.Errorf("Sniff() error = %v, want ErrSourceMissing", err)
	}
}

func TestSniffUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("plain text, not audio"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	err := Sniff(path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Sniff() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestSniffWAV(t *testing.T) {
	// Minimal 44-byte WAV header, no data — enough for mimetype to detect
	// "audio/wav".
	header := []byte("RIFF\x24\x00\x00\x00WAVEfmt \x10\x00\x00\x00\x01\x00\x02\x00\x80\xbb\x00\x00\x00\xee\x02\x00\x04\x00\x10\x00data\x00\x00\x00\x00")
	path := filepath.Join(t.TempDir(), "tone.wav")
	if err := os.WriteFile(path, header, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if err := Sniff(path); err != nil {
		t.Errorf("Sniff() error = %v, want nil", err)
	}
}
