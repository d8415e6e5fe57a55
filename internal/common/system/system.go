package system

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/obentoo/vapt/internal/common/logger"
)

// OsReleaseFile is the file OSName reads; tests point it elsewhere
var OsReleaseFile = "/etc/os-release"

// Unknown is returned when the OS name cannot be determined
const Unknown = "Linux"

// OSName returns the PRETTY_NAME of the running distribution, falling back
// to NAME and then to Unknown
func OSName() string {
	file, err := os.Open(OsReleaseFile)
	if err != nil {
		logger.Debug("reading %s: %v", OsReleaseFile, err)
		return Unknown
	}
	defer file.Close()

	fields := ParseOSRelease(file)
	if name := fields["PRETTY_NAME"]; name != "" {
		return name
	}
	if name := fields["NAME"]; name != "" {
		return name
	}
	return Unknown
}

// ParseOSRelease reads KEY=value lines, dropping comments and quotes
func ParseOSRelease(r io.Reader) map[string]string {
	fields := make(map[string]string)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		value := strings.TrimSpace(parts[1])
		value = strings.Trim(value, `"'`)
		fields[strings.TrimSpace(parts[0])] = value
	}

	return fields
}
