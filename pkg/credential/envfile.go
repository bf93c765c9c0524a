package credential

import (
	"fmt"
	"os"
	"strings"
)

// SetEnvFileVar rewrites the line starting with "key=" in a .env-style
// file, leaving every other line byte-identical. When the key is not
// present a new line is appended.
func SetEnvFileVar(path, key, value string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	prefix := key + "="
	lines := strings.Split(string(data), "\n")

	replaced := false
	for i, line := range lines {
		if strings.HasPrefix(line, prefix) {
			lines[i] = prefix + value
			replaced = true
			break
		}
	}

	if !replaced {
		// Keep a trailing newline if the file had one.
		if n := len(lines); n > 0 && lines[n-1] == "" {
			lines = append(lines[:n-1], prefix+value, "")
		} else {
			lines = append(lines, prefix+value)
		}
	}

	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
