package wordlist

import (
	"fmt"
	"os"
	"strings"
)

// defaultPaths is the built-in fallback used whenever the wordlist file
// cannot be read. It covers the classic exposed-resource suspects.
var defaultPaths = []string{
	"admin",
	"login",
	"config",
	"backup",
	"test",
	"phpinfo.php",
	".env",
	".git",
	"wp-admin",
	"wp-login.php",
}

// Load returns the candidate paths to probe. Any failure to read the
// file at path is recovered by substituting the built-in default list
// with a warning on stderr; Load never fails outward. Blank lines and
// # comments are skipped and entries are de-duplicated, preserving
// first-seen order.
func Load(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[!] Wordlist %s unavailable (%v) — using built-in default list\n", path, err)
		return Default()
	}

	lines := strings.Split(string(data), "\n")
	seen := make(map[string]struct{}, len(lines))
	var result []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, ok := seen[line]; !ok {
			seen[line] = struct{}{}
			result = append(result, line)
		}
	}

	if len(result) == 0 {
		fmt.Fprintf(os.Stderr, "[!] Wordlist %s is empty — using built-in default list\n", path)
		return Default()
	}
	return result
}

// Default returns a copy of the built-in candidate list.
func Default() []string {
	out := make([]string, len(defaultPaths))
	copy(out, defaultPaths)
	return out
}
