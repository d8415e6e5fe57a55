package apt

import (
	"strings"
)

const (
	candidatePrefix = "Candidate: "
	installedPrefix = "Installed: "
	packagesSuffix  = " Packages"
	noneVersion     = "(none)"
)

// ParsePolicyOutput parses apt-cache policy output.
// Unrecognized lines are ignored; architectures keep first-seen order.
func ParsePolicyOutput(name, output string) Policy {
	policy := Policy{Name: name}

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, candidatePrefix):
			policy.Candidate = normalizeVersion(line[len(candidatePrefix):])
		case strings.HasPrefix(line, installedPrefix):
			policy.Installed = normalizeVersion(line[len(installedPrefix):])
		case strings.HasSuffix(line, packagesSuffix):
			// 500 http://deb.debian.org/debian stable/main amd64 Packages
			fields := strings.Fields(line)
			if len(fields) < 5 {
				continue
			}
			arch := fields[3]
			if !containsString(policy.Architectures, arch) {
				policy.Architectures = append(policy.Architectures, arch)
			}
		}
	}

	return policy
}

// normalizeVersion maps apt's "(none)" placeholder to an empty string
func normalizeVersion(v string) string {
	v = strings.TrimSpace(v)
	if v == noneVersion {
		return ""
	}
	return v
}

// ParseUpgradableOutput parses `apt list --upgradable` output.
//
// Expected line format:
//
//	name/suite candidate arch [upgradable from: installed]
//
// Lines with fewer than six columns after the slash are skipped.
func ParseUpgradableOutput(output string) []ListEntry {
	var entries []ListEntry

	for _, line := range listLines(output) {
		name, cols, ok := splitListLine(line)
		if !ok || len(cols) < 6 {
			continue
		}

		entries = append(entries, ListEntry{
			Name:             name,
			CandidateVersion: cols[1],
			Architecture:     cols[2],
			InstalledVersion: strings.TrimSuffix(cols[5], "]"),
		})
	}

	return entries
}

// ParseInstalledOutput parses `apt list --installed` output.
//
// Expected line format:
//
//	name/suite,now version arch [installed...]
func ParseInstalledOutput(output string) []ListEntry {
	var entries []ListEntry

	for _, line := range listLines(output) {
		name, cols, ok := splitListLine(line)
		if !ok || len(cols) < 3 {
			continue
		}

		entries = append(entries, ListEntry{
			Name:             name,
			InstalledVersion: cols[1],
			Architecture:     cols[2],
		})
	}

	return entries
}

// listLines splits apt list output into non-empty lines, dropping the
// "Listing..." header when present
func listLines(output string) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}

	if len(lines) > 0 && strings.HasPrefix(strings.ToLower(lines[0]), "listing") {
		lines = lines[1:]
	}
	return lines
}

// splitListLine splits a list line once on "/" and the remainder on whitespace
func splitListLine(line string) (name string, cols []string, ok bool) {
	parts := strings.SplitN(line, "/", 2)
	if len(parts) != 2 {
		return "", nil, false
	}
	name = strings.TrimSpace(parts[0])
	if name == "" {
		return "", nil, false
	}
	return name, strings.Fields(parts[1]), true
}

// FilterNames keeps the names that contain every term, case-insensitively
func FilterNames(names []string, terms []string) []string {
	result := []string{}

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		lower := strings.ToLower(name)
		matched := true
		for _, term := range terms {
			if !strings.Contains(lower, strings.ToLower(term)) {
				matched = false
				break
			}
		}
		if matched {
			result = append(result, name)
		}
	}

	return result
}

// SplitStanzas splits apt-cache show output into blank-line separated blocks
func SplitStanzas(output string) []string {
	var stanzas []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			stanzas = append(stanzas, strings.Join(current, "\n"))
			current = nil
		}
	}

	for _, line := range strings.Split(strings.ReplaceAll(output, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	return stanzas
}

// FilterStanzas keeps the stanzas describing the requested version.
// An empty version keeps every stanza.
func FilterStanzas(output, version string) []string {
	stanzas := SplitStanzas(output)
	if version == "" {
		return stanzas
	}

	want := "Version: " + strings.TrimSpace(version)
	var kept []string
	for _, stanza := range stanzas {
		for _, line := range strings.Split(stanza, "\n") {
			if strings.TrimSpace(line) == want {
				kept = append(kept, stanza)
				break
			}
		}
	}
	return kept
}

// ParseShowOutput parses the fields of the stanzas matching version.
// Continuation lines without a separator are appended to the previous
// field's value on a new line.
func ParseShowOutput(output, version string) []InfoField {
	var fields []InfoField

	for _, stanza := range FilterStanzas(output, version) {
		for _, line := range strings.Split(stanza, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}

			sep := fieldSeparator(line)
			if sep < 0 {
				if len(fields) > 0 {
					last := &fields[len(fields)-1]
					last.Value += "\n" + line
				}
				continue
			}

			fields = append(fields, InfoField{
				Field: strings.TrimSpace(line[:sep]),
				Value: strings.TrimSpace(line[sep+1:]),
			})
		}
	}

	return fields
}

// fieldSeparator returns the index of the first colon that is not the
// start of a "://" URL scheme separator, or -1
func fieldSeparator(line string) int {
	for i := 0; i < len(line); i++ {
		if line[i] != ':' {
			continue
		}
		if strings.HasPrefix(line[i:], "://") {
			continue
		}
		return i
	}
	return -1
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
