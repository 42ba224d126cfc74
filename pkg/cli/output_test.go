package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func TestOutput_JSON(t *testing.T) {
	var buf bytes.Buffer

	data := map[string]any{
		"name":  "test",
		"value": 123,
	}

	err := Output(data, OutputOptions{
		Format: FormatJSON,
		Writer: &buf,
	})
	if err != nil {
		t.Fatalf("Output error: %v", err)
	}

	// Verify valid JSON
	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}

	if result["name"] != "test" {
		t.Errorf("name = %v, want %q", result["name"], "test")
	}
}

func TestOutput_YAML(t *testing.T) {
	var buf bytes.Buffer

	data := map[string]any{
		"name":  "test",
		"value": 123,
	}

	err := Output(data, OutputOptions{
		Format: FormatYAML,
		Writer: &buf,
	})
	if err != nil {
		t.Fatalf("Output error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "name: test") {
		t.Errorf("Output should contain 'name: test', got: %s", output)
	}
}

func TestOutput_DefaultFormat(t *testing.T) {
	var buf bytes.Buffer

	data := map[string]string{"key": "value"}

	// Empty format should default to YAML
	err := Output(data, OutputOptions{
		Format: "",
		Writer: &buf,
	})
	if err != nil {
		t.Fatalf("Output error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "key: value") {
		t.Errorf("Default format should be YAML, got: %s", output)
	}
}

func TestOutput_Raw_Bytes(t *testing.T) {
	var buf bytes.Buffer

	data := []byte("raw binary data")

	err := Output(data, OutputOptions{
		Format: FormatRaw,
		Writer: &buf,
	})
	if err != nil {
		t.Fatalf("Output error: %v", err)
	}

	if buf.String() != "raw binary data" {
		t.Errorf("Output = %q, want %q", buf.String(), "raw binary data")
	}
}

func TestOutput_Raw_String(t *testing.T) {
	var buf bytes.Buffer

	data := "raw string data"

	err := Output(data, OutputOptions{
		Format: FormatRaw,
		Writer: &buf,
	})
	if err != nil {
		t.Fatalf("Output error: %v", err)
	}

	if buf.String() != "raw string data\n" {
		t.Errorf("Output = %q, want %q", buf.String(), "raw string data\n")
	}
}

func TestOutput_Raw_Other(t *testing.T) {
	var buf bytes.Buffer

	// Non-string/bytes should fall back to YAML
	data := map[string]int{"count": 42}

	err := Output(data, OutputOptions{
		Format: FormatRaw,
		Writer: &buf,
	})
	if err != nil {
		t.Fatalf("Output error: %v", err)
	}

	if !strings.Contains(buf.String(), "count: 42") {
		t.Errorf("Output should contain YAML, got: %s", buf.String())
	}
}

func TestOutput_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer

	err := Output("data", OutputOptions{
		Format: "invalid",
		Writer: &buf,
	})
	if err == nil {
		t.Error("Output should fail for unsupported format")
	}
}

func TestOutput_ToFile(t *testing.T) {
	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "output.json")

	data := map[string]string{"key": "value"}

	err := Output(data, OutputOptions{
		Format: FormatJSON,
		File:   filePath,
	})
	if err != nil {
		t.Fatalf("Output error: %v", err)
	}

	// Read and verify file
	content, err := os.ReadFile(filePath)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}

	var result map[string]string
	if err := json.Unmarshal(content, &result); err != nil {
		t.Fatalf("Invalid JSON in file: %v", err)
	}

	if result["key"] != "value" {
		t.Errorf("key = %q, want %q", result["key"], "value")
	}
}

func TestOutput_JSONIndent(t *testing.T) {
	var buf bytes.Buffer

	data := map[string]string{"key": "value"}

	err := Output(data, OutputOptions{
		Format: FormatJSON,
		Writer: &buf,
		Indent: "    ", // 4 spaces
	})
	if err != nil {
		t.Fatalf("Output error: %v", err)
	}

	// Should contain indentation
	if !strings.Contains(buf.String(), "    ") {
		t.Errorf("Output should be indented, got: %s", buf.String())
	}
}

func TestOutputFormat_Constants(t *testing.T) {
	// Verify format constants
	if FormatYAML != "yaml" {
		t.Errorf("FormatYAML = %q, want %q", FormatYAML, "yaml")
	}

	if FormatJSON != "json" {
		t.Errorf("FormatJSON = %q, want %q", FormatJSON, "json")
	}

	if FormatTable != "table" {
		t.Errorf("FormatTable = %q, want %q", FormatTable, "table")
	}

	if FormatRaw != "raw" {
		t.Errorf("FormatRaw = %q, want %q", FormatRaw, "raw")
	}

	if FormatMsgpack != "msgpack" {
		t.Errorf("FormatMsgpack = %q, want %q", FormatMsgpack, "msgpack")
	}
}

func TestOutputFormat_Valid(t *testing.T) {
	for _, f := range []OutputFormat{"", FormatYAML, FormatJSON, FormatTable, FormatRaw, FormatMsgpack} {
		if !f.Valid() {
			t.Errorf("%q should be valid", f)
		}
	}
	if OutputFormat("xml").Valid() {
		t.Error("xml should not be valid")
	}
}

type point struct {
	X int `json:"x" msgpack:"x"`
	Y int `json:"y" msgpack:"y"`
}

func TestOutput_Msgpack(t *testing.T) {
	var buf bytes.Buffer

	if err := Output(point{X: 1, Y: 2}, OutputOptions{Format: FormatMsgpack, Writer: &buf}); err != nil {
		t.Fatalf("Output error: %v", err)
	}

	var got point
	if err := msgpack.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Invalid msgpack output: %v", err)
	}
	if got != (point{X: 1, Y: 2}) {
		t.Errorf("decoded = %+v", got)
	}
}

func TestOutput_Query(t *testing.T) {
	var buf bytes.Buffer

	data := map[string]any{
		"frames": []point{{1, 2}, {3, 4}, {5, 6}},
	}
	err := Output(data, OutputOptions{
		Format: FormatJSON,
		Query:  ".frames | length",
		Writer: &buf,
	})
	if err != nil {
		t.Fatalf("Output error: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "3" {
		t.Errorf("Output = %q, want 3", buf.String())
	}
}

func TestQuery(t *testing.T) {
	data := struct {
		Points []point `json:"points"`
	}{Points: []point{{1, 2}, {3, 4}}}

	got, err := Query(data, ".points[1].y")
	if err != nil {
		t.Fatalf("Query error: %v", err)
	}
	if got != float64(4) {
		t.Errorf("Query = %v (%T), want 4", got, got)
	}

	many, err := Query(data, ".points[].x")
	if err != nil {
		t.Fatalf("Query error: %v", err)
	}
	if xs, ok := many.([]any); !ok || len(xs) != 2 {
		t.Errorf("Query multiple = %#v, want two values", many)
	}

	none, err := Query(data, "empty")
	if err != nil || none != nil {
		t.Errorf("Query(empty) = %v, %v", none, err)
	}

	if _, err := Query(data, ".points["); err == nil {
		t.Error("Query should fail to parse")
	}
	if _, err := Query(data, ".points | error(\"boom\")"); err == nil {
		t.Error("Query should surface runtime errors")
	}
}

type tabled struct{}

func (tabled) Tables() []Table {
	return []Table{{
		Title:   "Scores",
		Headers: []string{"metric", "value"},
		Rows:    [][]string{{"WER", "25.00%"}, {"CER", "8.33%"}},
	}}
}

func TestOutput_Table(t *testing.T) {
	var buf bytes.Buffer

	if err := Output(tabled{}, OutputOptions{Format: FormatTable, Writer: &buf}); err != nil {
		t.Fatalf("Output error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Scores", "metric", "WER", "25.00%", "╭", "╰"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}

	// Values without tables fall back to YAML.
	buf.Reset()
	if err := Output(map[string]int{"n": 1}, OutputOptions{Format: FormatTable, Writer: &buf}); err != nil {
		t.Fatalf("Output error: %v", err)
	}
	if !strings.Contains(buf.String(), "n: 1") {
		t.Errorf("fallback output = %q", buf.String())
	}
}
