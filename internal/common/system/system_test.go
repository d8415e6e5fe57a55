package system

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const debianRelease = `PRETTY_NAME="Debian GNU/Linux 12 (bookworm)"
NAME="Debian GNU/Linux"
VERSION_ID="12"
# comment line
ID=debian
HOME_URL="https://www.debian.org/"
`

func TestParseOSRelease(t *testing.T) {
	fields := ParseOSRelease(strings.NewReader(debianRelease))

	tests := []struct {
		key      string
		expected string
	}{
		{"PRETTY_NAME", "Debian GNU/Linux 12 (bookworm)"},
		{"VERSION_ID", "12"},
		{"ID", "debian"},
		{"HOME_URL", "https://www.debian.org/"},
	}

	for _, tt := range tests {
		if got := fields[tt.key]; got != tt.expected {
			t.Errorf("%s = %q, expected %q", tt.key, got, tt.expected)
		}
	}
	if _, ok := fields["# comment line"]; ok {
		t.Error("comment lines must be skipped")
	}
}

func TestOSName(t *testing.T) {
	original := OsReleaseFile
	defer func() { OsReleaseFile = original }()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"pretty name", debianRelease, "Debian GNU/Linux 12 (bookworm)"},
		{"name only", "NAME=Ubuntu\n", "Ubuntu"},
		{"nothing useful", "ID=foo\n", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "os-release")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write os-release file: %v", err)
			}
			OsReleaseFile = path

			if got := OSName(); got != tt.expected {
				t.Errorf("OSName() = %q, expected %q", got, tt.expected)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		OsReleaseFile = "/nonexistent/os-release"
		if got := OSName(); got != Unknown {
			t.Errorf("OSName() = %q, expected %q", got, Unknown)
		}
	})
}
