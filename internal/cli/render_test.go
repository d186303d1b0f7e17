package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "png", []string{"png"}},
		{"multiple formats", "svg,png,dot", []string{"svg", "png", "dot"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestParseLevels(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "region", []string{"region"}},
		{"multiple trimmed", "region, city", []string{"region", "city"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseLevels(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("parseLevels(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseLevels(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		wantErr bool
	}{
		{"valid svg", []string{"svg"}, false},
		{"valid all", []string{"svg", "png", "dot", "dot-svg", "json"}, false},
		{"invalid format", []string{"pdf"}, true},
		{"mixed valid invalid", []string{"svg", "invalid"}, true},
		{"empty slice", []string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFormats(tt.formats)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
			}
		})
	}
}

func TestFormatExt(t *testing.T) {
	if got := formatExt("svg"); got != "svg" {
		t.Errorf("formatExt(svg) = %q, want svg", got)
	}
	if got := formatExt("dot-svg"); got != "dot.svg" {
		t.Errorf("formatExt(dot-svg) = %q, want dot.svg", got)
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"empty output strips input ext", "", "data/sales.csv", "data/sales"},
		{"output with format ext", "chart.svg", "sales.csv", "chart"},
		{"output with foreign ext kept", "chart.out", "sales.csv", "chart.out"},
		{"bare output kept", "chart", "sales.csv", "chart"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestFlagFingerprint(t *testing.T) {
	a := flagFingerprint(&renderOpts{area: "sales", levels: []string{"region"}})
	b := flagFingerprint(&renderOpts{area: "sales", levels: []string{"region"}})
	if a != b {
		t.Error("fingerprint should be deterministic")
	}

	c := flagFingerprint(&renderOpts{area: "sales", levels: []string{"region"}, split: true})
	if a == c {
		t.Error("layout-affecting flags should change the fingerprint")
	}
	d := flagFingerprint(&renderOpts{area: "sales", levels: []string{"region", "city"}})
	if a == d {
		t.Error("levels should change the fingerprint")
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-test")
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir error: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg-test", appName) {
		t.Errorf("cacheDir = %q", dir)
	}

	t.Setenv("XDG_CACHE_HOME", "")
	dir, err = cacheDir()
	if err != nil {
		t.Fatalf("cacheDir error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if dir != filepath.Join(home, ".cache", appName) {
		t.Errorf("cacheDir = %q", dir)
	}
}

func TestDefaultConstants(t *testing.T) {
	if defaultWidth != 800 {
		t.Errorf("defaultWidth = %v, want 800", defaultWidth)
	}
	if defaultHeight != 600 {
		t.Errorf("defaultHeight = %v, want 600", defaultHeight)
	}
}
