package serializer

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

type sample struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

func TestFormatIsUnknown(t *testing.T) {
	tests := []struct {
		format  Format
		unknown bool
	}{
		{FormatJSON, false},
		{FormatYAML, false},
		{FormatTable, false},
		{Format("xml"), true},
		{Format(""), true},
	}

	for _, tt := range tests {
		if got := tt.format.IsUnknown(); got != tt.unknown {
			t.Errorf("Format(%q).IsUnknown() = %v, want %v", tt.format, got, tt.unknown)
		}
	}
}

func TestSerializeJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatJSON, &buf)

	if err := w.Serialize(sample{Name: "users", Count: 2}); err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	var out sample
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if out.Name != "users" || out.Count != 2 {
		t.Errorf("unexpected round-trip result: %+v", out)
	}
}

func TestSerializeYAML(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatYAML, &buf)

	if err := w.Serialize(sample{Name: "messages", Count: 7}); err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	if !strings.Contains(buf.String(), "name: messages") {
		t.Errorf("expected YAML output to contain name, got %q", buf.String())
	}
}

func TestSerializeTable(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatTable, &buf)

	if err := w.Serialize(sample{Name: "users", Count: 2}); err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "FIELD") || !strings.Contains(out, "Name") {
		t.Errorf("expected table header and field names, got %q", out)
	}
}

func TestSerializeUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(Format("protobuf"), &buf)

	if err := w.Serialize(sample{}); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestNewFileWriterOrStdoutFallsBack(t *testing.T) {
	// Empty path falls back to stdout rather than failing.
	w := NewFileWriterOrStdout(FormatJSON, "   ")
	if w == nil {
		t.Fatal("expected writer instance")
	}
}

func TestNewFileWriterOrStdoutCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	w := NewFileWriterOrStdout(FormatJSON, path)

	if err := w.Serialize(sample{Name: "f", Count: 1}); err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
}
