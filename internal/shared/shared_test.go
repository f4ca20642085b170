package shared

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestExtractPlaylistID(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		want       string
	}{
		{"raw ID passes through", "37i9dQZF1DXcBWIGoYBM5M", "37i9dQZF1DXcBWIGoYBM5M"},
		{"playlist URL", "https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M", "37i9dQZF1DXcBWIGoYBM5M"},
		{"URL with query string", "https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M?si=abc123", "37i9dQZF1DXcBWIGoYBM5M"},
		{"trailing path only", "playlist/abc", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractPlaylistID(tt.identifier); got != tt.want {
				t.Errorf("ExtractPlaylistID(%q) = %q, want %q", tt.identifier, got, tt.want)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Road Trip 2024", "Road_Trip_2024"},
		{"a/b\\c", "a_b_c"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenerateState(t *testing.T) {
	first, err := GenerateState()
	if err != nil {
		t.Fatalf("failed to generate state: %v", err)
	}
	if len(first) != 32 {
		t.Errorf("expected 32 hex chars, got %d", len(first))
	}

	second, err := GenerateState()
	if err != nil {
		t.Fatalf("failed to generate state: %v", err)
	}
	if first == second {
		t.Error("expected distinct state values")
	}
}

func TestGenerateID(t *testing.T) {
	id := GenerateID()
	if len(id) != 36 || strings.Count(id, "-") != 4 {
		t.Errorf("expected UUID shape, got %q", id)
	}
}

func TestMarshalJSON(t *testing.T) {
	data := map[string]string{"key": "value"}

	compact, err := MarshalJSON(data, false)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if strings.Contains(string(compact), "\n") {
		t.Error("compact output should have no newlines")
	}

	pretty, err := MarshalJSON(data, true)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(pretty), "  \"key\"") {
		t.Errorf("expected indented output, got %s", pretty)
	}
}

func TestLoggerHelpers(t *testing.T) {
	logger := NewLogger(io.Discard)

	SetLogLevel(logger, log.DebugLevel)
	if logger.GetLevel() != log.DebugLevel {
		t.Errorf("expected debug level, got %v", logger.GetLevel())
	}

	if child := WithLogger(logger, "component", "engine"); child == nil {
		t.Fatal("expected a child logger")
	}
}
