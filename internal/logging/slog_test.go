package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("json at info", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, false)
		logger.Debug("hidden")
		logger.Info("shown", Tool("docs_get_document"))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 1 {
			t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
			t.Fatalf("output is not JSON: %v", err)
		}
		if entry[KeyTool] != "docs_get_document" {
			t.Errorf("tool = %v, want docs_get_document", entry[KeyTool])
		}
	})

	t.Run("text at debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, true)
		logger.Debug("visible")
		if !strings.Contains(buf.String(), "msg=visible") {
			t.Errorf("debug output missing: %q", buf.String())
		}
	})
}

func TestWithHelpers(t *testing.T) {
	logger := slog.Default()
	if WithOperation(logger, "refresh") == nil {
		t.Error("WithOperation returned nil")
	}
	if WithTool(logger, "drive_list_files") == nil {
		t.Error("WithTool returned nil")
	}
	if WithComponent(logger, "gateway") == nil {
		t.Error("WithComponent returned nil")
	}
}

func TestAttrs(t *testing.T) {
	tests := []struct {
		name    string
		attr    slog.Attr
		wantKey string
		wantVal string
	}{
		{"operation", Operation("exchange"), KeyOperation, "exchange"},
		{"service", Service("drive"), KeyService, "drive"},
		{"tool", Tool("drive_move_file"), KeyTool, "drive_move_file"},
		{"status", Status(StatusSuccess), KeyStatus, StatusSuccess},
		{"request id", RequestID("abc"), KeyRequestID, "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.attr.Key != tt.wantKey {
				t.Errorf("key = %q, want %q", tt.attr.Key, tt.wantKey)
			}
			if tt.attr.Value.String() != tt.wantVal {
				t.Errorf("value = %q, want %q", tt.attr.Value.String(), tt.wantVal)
			}
		})
	}
}

func TestErr(t *testing.T) {
	attr := Err(errors.New("test error"))
	if attr.Key != KeyError {
		t.Errorf("Err key = %q, want %q", attr.Key, KeyError)
	}
	if attr.Value.String() != "test error" {
		t.Errorf("Err value = %q, want %q", attr.Value.String(), "test error")
	}

	// Empty Group has empty key
	attr = Err(nil)
	if attr.Key != "" {
		t.Errorf("Err(nil) key = %q, want empty string (empty group)", attr.Key)
	}
}

func TestHashSessionID(t *testing.T) {
	id := "3q2-7wAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

	got := HashSessionID(id)
	if len(got) != len("session:")+16 {
		t.Errorf("HashSessionID length = %d, want %d", len(got), len("session:")+16)
	}
	if !strings.HasPrefix(got, "session:") {
		t.Errorf("HashSessionID(%q) = %q, want session: prefix", id, got)
	}
	if strings.Contains(got, id) {
		t.Error("HashSessionID leaked the raw id")
	}
	if got != HashSessionID(id) {
		t.Error("HashSessionID should be deterministic")
	}
	if got == HashSessionID(id+"x") {
		t.Error("different ids should produce different hashes")
	}
	if HashSessionID("") != "" {
		t.Error("HashSessionID(\"\") should be empty")
	}

	attr := Session(id)
	if attr.Key != KeySession || attr.Value.String() != got {
		t.Errorf("Session attr = %v, want %s=%s", attr, KeySession, got)
	}
}

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		token    string
		expected string
	}{
		{"", "<empty>"},
		{"abc123", "[token:6 chars]"},
		{"ya29.a_very_long_token", "[token:22 chars]"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := SanitizeToken(tt.token)
			if result != tt.expected {
				t.Errorf("SanitizeToken(%q) = %q, want %q", tt.token, result, tt.expected)
			}
		})
	}
}
