package apt

import (
	"reflect"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

const samplePolicy = `bash:
  Installed: 5.1-6ubuntu1
  Candidate: 5.1-6ubuntu1.1
  Version table:
 *** 5.1-6ubuntu1.1 500
        500 http://archive.ubuntu.com/ubuntu jammy-updates/main amd64 Packages
        500 http://archive.ubuntu.com/ubuntu jammy-updates/main i386 Packages
        100 /var/lib/dpkg/status
     5.1-6ubuntu1 500
        500 http://archive.ubuntu.com/ubuntu jammy/main amd64 Packages
`

func TestParsePolicyOutput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Policy
	}{
		{
			name:     "empty output",
			input:    "",
			expected: Policy{Name: "bash"},
		},
		{
			name:  "installed package with two architectures",
			input: samplePolicy,
			expected: Policy{
				Name:          "bash",
				Installed:     "5.1-6ubuntu1",
				Candidate:     "5.1-6ubuntu1.1",
				Architectures: []string{"amd64", "i386"},
			},
		},
		{
			name: "not installed",
			input: `bash:
  Installed: (none)
  Candidate: 5.1-6
  Version table:
     5.1-6 500
        500 http://deb.debian.org/debian bookworm/main arm64 Packages
`,
			expected: Policy{
				Name:          "bash",
				Candidate:     "5.1-6",
				Architectures: []string{"arm64"},
			},
		},
		{
			name:  "unrecognized lines are ignored",
			input: "N: Unable to locate package bash\nsome noise\n",
			expected: Policy{
				Name: "bash",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParsePolicyOutput("bash", tt.input)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("expected %+v, got %+v", tt.expected, result)
			}
		})
	}
}

// TestPolicyArchitecturesAreUnique tests that architectures are deduplicated
// in first-seen order
func TestPolicyArchitecturesAreUnique(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	genArch := gen.OneConstOf("amd64", "i386", "arm64", "armhf", "all")

	properties.Property("each architecture appears once, in first-seen order", prop.ForAll(
		func(archs []string) bool {
			var b strings.Builder
			b.WriteString("pkg:\n  Installed: (none)\n  Candidate: 1.0\n")
			for _, arch := range archs {
				b.WriteString("        500 http://deb.debian.org/debian stable/main " + arch + " Packages\n")
			}

			policy := ParsePolicyOutput("pkg", b.String())

			var want []string
			seen := map[string]bool{}
			for _, arch := range archs {
				if !seen[arch] {
					seen[arch] = true
					want = append(want, arch)
				}
			}
			return reflect.DeepEqual(policy.Architectures, want)
		},
		gen.SliceOf(genArch),
	))

	properties.TestingRun(t)
}

func TestParseUpgradableOutput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []ListEntry
	}{
		{
			name:     "empty output",
			input:    "",
			expected: nil,
		},
		{
			name:     "header only",
			input:    "Listing... Done\n",
			expected: nil,
		},
		{
			name:  "single upgradable package",
			input: "Listing...\nbash/stable 5.1-6 amd64 [upgradable from: 5.0-1]\n",
			expected: []ListEntry{
				{Name: "bash", CandidateVersion: "5.1-6", Architecture: "amd64", InstalledVersion: "5.0-1"},
			},
		},
		{
			name:  "header without ellipsis and lowercase",
			input: "listing\nvim/jammy-updates 2:8.2.3995-1ubuntu2.15 amd64 [upgradable from: 2:8.2.3995-1ubuntu2.13]\n",
			expected: []ListEntry{
				{Name: "vim", CandidateVersion: "2:8.2.3995-1ubuntu2.15", Architecture: "amd64", InstalledVersion: "2:8.2.3995-1ubuntu2.13"},
			},
		},
		{
			name: "short lines are skipped",
			input: `Listing... Done
bash/stable 5.1-6 amd64
curl/stable 7.88.1-10 arm64 [upgradable from: 7.88.1-9]
no-slash-here 1.0 amd64 a b c
`,
			expected: []ListEntry{
				{Name: "curl", CandidateVersion: "7.88.1-10", Architecture: "arm64", InstalledVersion: "7.88.1-9"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseUpgradableOutput(tt.input)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("expected %+v, got %+v", tt.expected, result)
			}
		})
	}
}

func TestParseInstalledOutput(t *testing.T) {
	input := `Listing... Done
adduser/jammy,now 3.118ubuntu5 all [installed,automatic]
bash/jammy-updates,now 5.1-6ubuntu1.1 amd64 [installed]
broken/now
`
	expected := []ListEntry{
		{Name: "adduser", InstalledVersion: "3.118ubuntu5", Architecture: "all"},
		{Name: "bash", InstalledVersion: "5.1-6ubuntu1.1", Architecture: "amd64"},
	}

	result := ParseInstalledOutput(input)
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("expected %+v, got %+v", expected, result)
	}
}

func TestFilterNames(t *testing.T) {
	tests := []struct {
		name     string
		names    []string
		terms    []string
		expected []string
	}{
		{
			name:     "no terms keeps everything",
			names:    []string{"libcurl4", "libfoo", ""},
			terms:    nil,
			expected: []string{"libcurl4", "libfoo"},
		},
		{
			name:     "every term must match",
			names:    []string{"libcurl4-openssl-dev", "libcurl4", "libssl-dev"},
			terms:    []string{"curl", "DEV"},
			expected: []string{"libcurl4-openssl-dev"},
		},
		{
			name:     "no match",
			names:    []string{"bash"},
			terms:    []string{"zsh"},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FilterNames(tt.names, tt.terms)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

const sampleShow = `Package: curl
Version: 7.88.1-10
Architecture: amd64
Homepage: https://curl.se
Description: command line tool for transferring data with URL syntax
 curl is a command line tool for transferring data with URL syntax,
 supporting DICT, FILE, FTP, FTPS, GOPHER, HTTP, HTTPS.

Package: curl
Version: 7.88.1-9
Architecture: amd64
Homepage: http://curl.haxx.se
Description: older build
`

func TestFilterStanzas(t *testing.T) {
	stanzas := FilterStanzas(sampleShow, "7.88.1-9")
	if len(stanzas) != 1 {
		t.Fatalf("expected 1 stanza, got %d", len(stanzas))
	}
	if !strings.Contains(stanzas[0], "older build") {
		t.Errorf("expected the 7.88.1-9 stanza, got %q", stanzas[0])
	}

	if got := FilterStanzas(sampleShow, ""); len(got) != 2 {
		t.Errorf("expected all stanzas for empty version, got %d", len(got))
	}

	if got := FilterStanzas(sampleShow, "7.88.1"); len(got) != 0 {
		t.Errorf("expected no stanza for a version prefix, got %d", len(got))
	}
}

func TestParseShowOutput(t *testing.T) {
	fields := ParseShowOutput(sampleShow, "7.88.1-10")

	expected := []InfoField{
		{Field: "Package", Value: "curl"},
		{Field: "Version", Value: "7.88.1-10"},
		{Field: "Architecture", Value: "amd64"},
		{Field: "Homepage", Value: "https://curl.se"},
		{Field: "Description", Value: "command line tool for transferring data with URL syntax\n" +
			"curl is a command line tool for transferring data with URL syntax,\n" +
			"supporting DICT, FILE, FTP, FTPS, GOPHER, HTTP, HTTPS."},
	}

	if !reflect.DeepEqual(fields, expected) {
		t.Errorf("expected %+v, got %+v", expected, fields)
	}
}

// TestShowContinuationKeepsURLScheme tests that a continuation line after a
// URL field is appended without altering the scheme
func TestShowContinuationKeepsURLScheme(t *testing.T) {
	input := "Package: foo\nVersion: 1.0\nHomepage: https://example.org\n mirror https://mirror.example.org/foo\n"

	fields := ParseShowOutput(input, "1.0")
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d: %+v", len(fields), fields)
	}

	homepage := fields[2]
	if homepage.Field != "Homepage" {
		t.Fatalf("expected Homepage field, got %q", homepage.Field)
	}
	want := "https://example.org\nmirror https://mirror.example.org/foo"
	if homepage.Value != want {
		t.Errorf("expected %q, got %q", want, homepage.Value)
	}
}

// TestURLValuesSurviveParsing tests that any http(s) URL value is kept intact
func TestURLValuesSurviveParsing(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	genURL := gopter.CombineGens(
		gen.OneConstOf("http", "https", "ftp"),
		gen.RegexMatch(`^[a-z]{1,10}\.[a-z]{2,4}(/[a-z0-9]{0,8})?$`),
	).Map(func(values []interface{}) string {
		return values[0].(string) + "://" + values[1].(string)
	})

	properties.Property("field value equals the URL", prop.ForAll(
		func(url string) bool {
			fields := ParseShowOutput("Version: 1\nHomepage: "+url+"\n", "1")
			return len(fields) == 2 && fields[1].Field == "Homepage" && fields[1].Value == url
		},
		genURL,
	))

	properties.TestingRun(t)
}

func TestMutationArgs(t *testing.T) {
	tests := []struct {
		name     string
		mutation Mutation
		expected []string
	}{
		{
			name:     "remove",
			mutation: Mutation{Kind: MutationRemove, Specifiers: []string{"foo:amd64"}},
			expected: []string{"remove", "-y", "foo:amd64"},
		},
		{
			name: "install with all fix flags",
			mutation: Mutation{
				Kind:       MutationInstall,
				Specifiers: []string{"foo:amd64=1.2", "bar"},
				Options:    InstallOptions{FixMissing: true, FixBroken: true, FixPolicy: true},
			},
			expected: []string{"install", "-y", "--fix-missing", "--fix-broken", "--fix-policy", "foo:amd64=1.2", "bar"},
		},
		{
			name:     "install without flags",
			mutation: Mutation{Kind: MutationInstall, Specifiers: []string{"bar"}},
			expected: []string{"install", "-y", "bar"},
		},
		{
			name:     "remove ignores install options",
			mutation: Mutation{Kind: MutationRemove, Specifiers: []string{"bar"}, Options: InstallOptions{FixBroken: true}},
			expected: []string{"remove", "-y", "bar"},
		},
		{
			name:     "update ignores specifiers",
			mutation: Mutation{Kind: MutationUpdate, Specifiers: []string{"bar"}},
			expected: []string{"update", "-y"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mutation.Args(); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}
