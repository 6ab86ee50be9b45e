package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/rupor-github/gencfg"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return configPath
}

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}

	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}

	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
}

func TestConfig_DefaultValues(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	doc := cfg.Document
	if want := []string{"//div[span]", "//div[@class='letter']"}; !slices.Equal(doc.ParagraphXPaths, want) {
		t.Errorf("ParagraphXPaths = %v, want %v", doc.ParagraphXPaths, want)
	}
	for _, prop := range []string{"padding-left", "text-indent", "margin-left", "padding-bottom", "padding-top", "border"} {
		if !slices.Contains(doc.SpanBlocklist, prop) {
			t.Errorf("SpanBlocklist does not contain %q", prop)
		}
	}
	if !doc.Output.BOM {
		t.Error("Expected BOM to be enabled by default")
	}
	if doc.Output.Indent != 0 {
		t.Errorf("Indent = %d, want 0", doc.Output.Indent)
	}
	if !doc.Output.Open {
		t.Error("Expected Open to be enabled by default")
	}
	if cfg.Logging.ConsoleLogger.Level != "normal" {
		t.Errorf("Console level = %q, want normal", cfg.Logging.ConsoleLogger.Level)
	}
	if cfg.Logging.FileLogger.Level != "none" {
		t.Errorf("File level = %q, want none", cfg.Logging.FileLogger.Level)
	}
}

func TestConfig_TemplatesNotExpanded(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if !strings.Contains(cfg.Document.Output.NameTemplate, "{{ .SourceFile }}") {
		t.Errorf("NameTemplate was expanded: %q", cfg.Document.Output.NameTemplate)
	}
	if !strings.Contains(cfg.Document.TitleTemplate, ".Title") {
		t.Errorf("TitleTemplate was expanded: %q", cfg.Document.TitleTemplate)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := writeConfig(t, `version: 1
document:
  title_template: "Dictionary"
  paragraph_xpaths:
    - "//xhtml:div[xhtml:span]"
  check_images: false
  output:
    name_template: "{{ .SourceFile | lower }}.htm"
    bom: false
    indent: 2
    open: false
logging:
  console:
    level: debug
  file:
    level: debug
    destination: `+filepath.Join(tmpDir, "logs", "test.log")+`
    mode: rotate
    rotation:
      max_size_mb: 5
      max_backups: 2
reporting:
  destination: `+filepath.Join(tmpDir, "test-report.zip")+`
`)

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	doc := cfg.Document
	if doc.TitleTemplate != "Dictionary" {
		t.Errorf("TitleTemplate = %q", doc.TitleTemplate)
	}
	if len(doc.ParagraphXPaths) != 1 || doc.ParagraphXPaths[0] != "//xhtml:div[xhtml:span]" {
		t.Errorf("ParagraphXPaths = %v", doc.ParagraphXPaths)
	}
	if len(doc.SpanBlocklist) == 0 {
		t.Error("SpanBlocklist default was lost")
	}
	if doc.CheckImages || doc.Output.BOM || doc.Output.Open {
		t.Error("Expected boolean overrides to be applied")
	}
	if doc.Output.Indent != 2 {
		t.Errorf("Indent = %d, want 2", doc.Output.Indent)
	}
	if doc.Output.NameTemplate != "{{ .SourceFile | lower }}.htm" {
		t.Errorf("NameTemplate = %q", doc.Output.NameTemplate)
	}
	if cfg.Logging.FileLogger.Mode != "rotate" || cfg.Logging.FileLogger.Rotation.MaxSizeMB != 5 {
		t.Errorf("FileLogger = %+v", cfg.Logging.FileLogger)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "logs")); err != nil {
		t.Errorf("Expected log directory to be created by sanitizer: %v", err)
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	_, err := LoadConfiguration("/nonexistent/config.yaml")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "version: 1\ndocument:\n  bom: true\n  invalid indent\n"},
		{"unknown field", "version: 1\nunknown_field: value\n"},
		{"unknown nested field", "version: 1\ndocument:\n  fix_zip: true\n"},
		{"bad version", "version: 2\n"},
		{"bad logging level", "version: 1\nlogging:\n  console:\n    level: loud\n"},
		{"bad logging mode", "version: 1\nlogging:\n  file:\n    mode: sometimes\n"},
		{"bad indent", "version: 1\ndocument:\n  output:\n    indent: 42\n"},
		{"empty xpath", "version: 1\ndocument:\n  paragraph_xpaths: [\"\"]\n"},
		{"empty name template", "version: 1\ndocument:\n  output:\n    name_template: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfiguration(writeConfig(t, tt.content)); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {
		// Options are opaque, just test that we can pass them
	}

	cfg, err := LoadConfiguration("", option)
	if err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}

	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	if len(data) == 0 {
		t.Error("Prepare() returned empty data")
	}

	// Verify it's valid YAML by trying to unmarshal
	cfg := &Config{}
	_, err = unmarshalConfig(data, cfg, true)
	if err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	// dumped configuration must be loadable as is
	back, err := unmarshalConfig(data, &Config{}, true)
	if err != nil {
		t.Fatalf("Dumped config is not valid: %v\n%s", err, data)
	}
	if back.Document.Output.NameTemplate != cfg.Document.Output.NameTemplate {
		t.Errorf("NameTemplate = %q, want %q", back.Document.Output.NameTemplate, cfg.Document.Output.NameTemplate)
	}
	if !slices.Equal(back.Document.SpanBlocklist, cfg.Document.SpanBlocklist) {
		t.Errorf("SpanBlocklist = %v, want %v", back.Document.SpanBlocklist, cfg.Document.SpanBlocklist)
	}
}
