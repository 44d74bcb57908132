package store

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	spaceRun  = regexp.MustCompile(`\s+`)
	invalidID = regexp.MustCompile(`[^a-z0-9-]`)
)

// CleanID normalizes a user-supplied session ID: lowercase, spaces become
// dashes, anything outside [a-z0-9-] is dropped and edge dashes trimmed.
func CleanID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	id = spaceRun.ReplaceAllString(id, "-")
	id = invalidID.ReplaceAllString(id, "")
	return strings.Trim(id, "-")
}

// NewSessionID derives a unique session ID from the subject.
func NewSessionID(subject string) string {
	slug := CleanID(subject)
	if slug == "" {
		slug = "session"
	}
	return slug + "-" + uuid.NewString()[:8]
}

// DisplayName turns a session ID back into a title-cased label.
func DisplayName(id string) string {
	words := strings.ReplaceAll(strings.ReplaceAll(id, "-", " "), "_", " ")
	return cases.Title(language.English).String(strings.Join(strings.Fields(words), " "))
}
