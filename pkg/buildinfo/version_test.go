package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	orig := Version
	origCommit, origDate := Commit, Date
	defer func() { Version, Commit, Date = orig, origCommit, origDate }()

	Version, Commit, Date = "v1.2.0", "abc123", "2026-08-24T00:00:00Z"

	got := Template()
	for _, want := range []string{"{{.Name}} v1.2.0", "commit: abc123", "built: 2026-08-24T00:00:00Z"} {
		if !strings.Contains(got, want) {
			t.Errorf("Template() = %q, missing %q", got, want)
		}
	}
	if !strings.HasSuffix(got, "\n") {
		t.Error("Template() output must end with a newline")
	}
}
