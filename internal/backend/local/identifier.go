package local

import (
	"strings"
	"unicode"
)

// Identifier derives the folder name of an instance from its display name:
// lowercased, anything but letters, digits, '_' and '-' replaced by '-',
// runs of '-' collapsed and leading/trailing '-' trimmed.
func Identifier(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r), unicode.IsNumber(r), r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}

	id := b.String()
	for strings.Contains(id, "--") {
		id = strings.ReplaceAll(id, "--", "-")
	}
	return strings.Trim(id, "-")
}

// sameName compares display names the way uniqueness is enforced
func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// validIdentifier rejects identifiers that would escape the instances directory
func validIdentifier(id string) bool {
	return id != "" && id != "." && id != ".." && !strings.ContainsAny(id, `/\`)
}
