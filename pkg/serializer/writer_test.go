package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func testOptions() map[string]any {
	return map[string]any{
		"entry":  map[string]any{"main": "./src/index.js"},
		"output": map[string]any{"filename": "bundle.js", "path": "dist"},
		"plugins": []any{
			map[string]any{"name": "HotModuleReplacementPlugin"},
		},
	}
}

func TestWriter_SerializeJSON(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatJSON, &buf)

	if err := writer.Serialize(context.Background(), testOptions()); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}

	output, ok := result["output"].(map[string]any)
	if !ok || output["filename"] != "bundle.js" {
		t.Errorf("Unexpected output section: %+v", result["output"])
	}
}

func TestWriter_SerializeYAML(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatYAML, &buf)

	if err := writer.Serialize(context.Background(), []any{testOptions(), testOptions()}); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	var result []map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal YAML: %v", err)
	}

	if len(result) != 2 {
		t.Errorf("Expected 2 configs, got %d", len(result))
	}
}

func TestWriter_SerializeTable(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatTable, &buf)

	opts := testOptions()
	opts["plugins"] = []any{
		map[string]any{"name": "DefinePlugin", "options": map[string]any{"DEBUG": true}},
		map[string]any{"name": "HtmlPlugin", "package": "html-webpack-plugin"},
	}
	opts["module"] = map[string]any{
		"loaders": []any{map[string]any{"test": `\.sass$`, "loader": "sass-loader"}},
	}
	opts["resolve"] = map[string]any{
		"alias":      map[string]string{"vue": "vue/dist/vue.js"},
		"extensions": []string{".js", ".ts"},
	}
	if err := writer.Serialize(context.Background(), opts); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	rows := map[string]string{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n")[2:] {
		key, value, _ := strings.Cut(line, "  ")
		rows[key] = strings.TrimSpace(value)
	}
	want := map[string]string{
		"entry.main":         "./src/index.js",
		"output.filename":    "bundle.js",
		"output.path":        "dist",
		"plugins[0]":         `DefinePlugin {"DEBUG":true}`,
		"plugins[1]":         "HtmlPlugin (html-webpack-plugin)",
		"module.loaders[0]":  `\.sass$ -> sass-loader`,
		"resolve.alias.vue":  "vue/dist/vue.js",
		"resolve.extensions": "[.js, .ts]",
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("table rows mismatch (-want +got):\n%s\n%s", diff, buf.String())
	}
}

func TestWriter_SerializeTable_ConfigList(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatTable, &buf)

	if err := writer.Serialize(context.Background(), []any{testOptions(), testOptions()}); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	for _, key := range []string{"[0].output.filename", "[1].plugins[0]"} {
		if !strings.Contains(buf.String(), key) {
			t.Errorf("Expected key %q not found in:\n%s", key, buf.String())
		}
	}
}

func TestWriter_SerializeTable_EmptyData(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatTable, &buf)

	if err := writer.Serialize(context.Background(), map[string]any{}); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "<empty>" {
		t.Errorf("Expected <empty>, got %q", buf.String())
	}
}

func TestNewWriter_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(Format("xml"), &buf)
	if writer.format != FormatJSON {
		t.Errorf("Expected fallback to JSON, got %s", writer.format)
	}
}

func TestNewFileWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.yaml")

	w, err := NewFileWriter(FormatYAML, path)
	if err != nil {
		t.Fatalf("NewFileWriter failed: %v", err)
	}
	if err := w.Serialize(context.Background(), testOptions()); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if !strings.Contains(string(data), "filename: bundle.js") {
		t.Errorf("Unexpected file content:\n%s", data)
	}
}

func TestNewFileWriter_Uncreatable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "out.json")
	if _, err := NewFileWriter(FormatJSON, path); err == nil {
		t.Error("expected error for uncreatable file")
	}
}

func TestFormat_Extension(t *testing.T) {
	tests := map[Format]string{FormatJSON: "json", FormatYAML: "yaml", FormatTable: "txt"}
	for f, want := range tests {
		if got := f.Extension(); got != want {
			t.Errorf("%s.Extension() = %q, want %q", f, got, want)
		}
	}
}

func TestWriteToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "webpack.config.json")
	if err := WriteToFile(path, []byte(`{"entry":"x"}`)); err != nil {
		t.Fatalf("WriteToFile failed: %v", err)
	}
	if err := WriteToFile(path, []byte(`{}`)); err != nil {
		t.Fatalf("WriteToFile overwrite failed: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "{}" {
		t.Errorf("Expected overwritten content, got %q", data)
	}
}

func TestWriteToFile_KeepsMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "webpack.config.yaml")
	if err := os.WriteFile(path, []byte("entry: x\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := WriteToFile(path, []byte("entry: y\n")); err != nil {
		t.Fatalf("WriteToFile failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %v", entries)
	}
}

func TestFormat_IsUnknown(t *testing.T) {
	for _, f := range SupportedFormats() {
		if Format(f).IsUnknown() {
			t.Errorf("%s reported unknown", f)
		}
	}
	if !Format("xml").IsUnknown() {
		t.Error("xml should be unknown")
	}
}
