package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"text", FormatText},
		{"TEXT", FormatText},
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"yaml", FormatYAML},
		{"yml", FormatYAML},
		{"toon", FormatTOON},
		{"markdown", FormatMarkdown},
		{"md", FormatMarkdown},
		{"MARKDOWN", FormatMarkdown},
		{"table", FormatTable},
		{"", FormatText},
		{"invalid", FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseFormat(tt.input)
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		colored bool
	}{
		{"text_stdout_colored", FormatText, true},
		{"json_stdout_nocolor", FormatJSON, false},
		{"table_stdout_colored", FormatTable, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFormatter(tt.format, "", tt.colored)
			if err != nil {
				t.Fatalf("NewFormatter() error: %v", err)
			}
			defer f.Close()

			if f.format != tt.format {
				t.Errorf("format = %q, want %q", f.format, tt.format)
			}
			if f.colored != tt.colored {
				t.Errorf("colored = %v, want %v", f.colored, tt.colored)
			}
			if f.file != nil {
				t.Error("file should be nil for stdout")
			}
			if f.writer == nil {
				t.Error("writer should not be nil")
			}
		})
	}
}

func TestFormatterCloseReportsError(t *testing.T) {
	f, err := NewFormatter(FormatText, filepath.Join(t.TempDir(), "out.txt"), false)
	if err != nil {
		t.Fatalf("NewFormatter() error: %v", err)
	}
	if err := f.file.Close(); err != nil {
		t.Fatalf("file.Close() error: %v", err)
	}

	if err := f.Close(); !errors.Is(err, os.ErrClosed) {
		t.Errorf("Close() error = %v, want os.ErrClosed", err)
	}
}

func TestNewFormatterWithFile(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "output.txt")

	f, err := NewFormatter(FormatJSON, outputPath, true)
	if err != nil {
		t.Fatalf("NewFormatter() error: %v", err)
	}

	if f.file == nil {
		t.Error("file should not be nil for file output")
	}
	if f.colored {
		t.Error("colored should be false when writing to file")
	}
	if err := f.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
	if _, err := os.Stat(outputPath); os.IsNotExist(err) {
		t.Error("output file should exist")
	}
}

func TestNewFormatterInvalidPath(t *testing.T) {
	_, err := NewFormatter(FormatText, "/nonexistent/directory/file.txt", false)
	if err == nil {
		t.Error("NewFormatter() should error for invalid path")
	}
}

func TestTableRenderText(t *testing.T) {
	table := NewTable(
		"Latency",
		[]string{"Scope", "Count", "Mean"},
		[][]string{
			{"all", "6", "6.00000"},
			{"p50", "3", "2.66667"},
		},
		nil,
		nil,
	)

	var buf bytes.Buffer
	if err := table.RenderText(&buf, false); err != nil {
		t.Fatalf("RenderText() error: %v", err)
	}

	output := buf.String()
	for _, want := range []string{"Latency", "SCOPE", "COUNT", "MEAN", "p50", "2.66667"} {
		if !strings.Contains(output, want) {
			t.Errorf("RenderText() missing %q in output:\n%s", want, output)
		}
	}
}

func TestTableRenderMarkdown(t *testing.T) {
	table := NewTable(
		"Results",
		[]string{"Scope", "Count"},
		[][]string{{"all", "6"}},
		[]string{"Total", "6"},
		nil,
	)

	var buf bytes.Buffer
	if err := table.RenderMarkdown(&buf); err != nil {
		t.Fatalf("RenderMarkdown() error: %v", err)
	}

	output := buf.String()
	for _, want := range []string{"## Results", "| Scope | Count |", "| --- | --- |", "| all | 6 |", "| Total | 6 |"} {
		if !strings.Contains(output, want) {
			t.Errorf("RenderMarkdown() missing %q in output:\n%s", want, output)
		}
	}
}

func TestTableRenderData(t *testing.T) {
	t.Run("with_data_field", func(t *testing.T) {
		data := map[string]any{"custom": "data"}
		table := NewTable("Title", []string{"H1"}, [][]string{{"R1"}}, nil, data)

		resultMap, ok := table.RenderData().(map[string]any)
		if !ok || resultMap["custom"] != "data" {
			t.Error("RenderData() should return the Data field when set")
		}
	})

	t.Run("without_data_field", func(t *testing.T) {
		table := NewTable(
			"Test",
			[]string{"Scope", "Count"},
			[][]string{{"all", "10"}, {"p90", "9"}},
			nil,
			nil,
		)

		rows, ok := table.RenderData().([]map[string]string)
		if !ok {
			t.Fatalf("RenderData() should return []map[string]string, got %T", table.RenderData())
		}
		if len(rows) != 2 {
			t.Errorf("RenderData() returned %d rows, want 2", len(rows))
		}
		if rows[1]["Scope"] != "p90" || rows[1]["Count"] != "9" {
			t.Errorf("RenderData() row 1 = %v, want {Scope: p90, Count: 9}", rows[1])
		}
	})
}

func TestFormatterOutputRaw(t *testing.T) {
	data := map[string]any{"name": "series", "count": 3}

	tests := []struct {
		format Format
		check  func(t *testing.T, out []byte)
	}{
		{FormatJSON, func(t *testing.T, out []byte) {
			var got map[string]any
			if err := json.Unmarshal(out, &got); err != nil {
				t.Fatalf("Unmarshal() error: %v", err)
			}
			if got["name"] != "series" {
				t.Errorf("name = %v, want series", got["name"])
			}
		}},
		{FormatYAML, func(t *testing.T, out []byte) {
			var got map[string]any
			if err := yaml.Unmarshal(out, &got); err != nil {
				t.Fatalf("Unmarshal() error: %v", err)
			}
			if got["count"] != 3 {
				t.Errorf("count = %v, want 3", got["count"])
			}
		}},
		{FormatMarkdown, func(t *testing.T, out []byte) {
			if !strings.HasPrefix(string(out), "```json\n") {
				t.Errorf("markdown raw output should be fenced JSON:\n%s", out)
			}
		}},
		{FormatTOON, func(t *testing.T, out []byte) {
			if !strings.Contains(string(out), "series") {
				t.Errorf("toon output missing value:\n%s", out)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			f := NewWriterFormatter(tt.format, &buf, false)
			if err := f.Output(data); err != nil {
				t.Fatalf("Output() error: %v", err)
			}
			tt.check(t, buf.Bytes())
		})
	}
}

func TestFormatterOutputToFile(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "out.json")

	f, err := NewFormatter(FormatJSON, outputPath, false)
	if err != nil {
		t.Fatalf("NewFormatter() error: %v", err)
	}
	if err := f.Output(NewTable("", []string{"A"}, [][]string{{"1"}}, nil, nil)); err != nil {
		t.Fatalf("Output() error: %v", err)
	}
	f.Close()

	content, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if !strings.Contains(string(content), `"A": "1"`) {
		t.Errorf("unexpected file content:\n%s", content)
	}
}
