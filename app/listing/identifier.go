package listing

import "strings"

// ExtractIdentifier derives the lookup identifier for Update/Delete
// commands: an explicit Address: field, else an explicit MLS: field, else
// the first non-empty line of the body. Returns "" only for a blank body.
func ExtractIdentifier(body string) string {
	lines := strings.Split(body, "\n")

	if addr := scanField(lines, "address"); addr != nil {
		return *addr
	}
	if mls := scanField(lines, "mls"); mls != nil {
		return *mls
	}

	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
