package api

import (
	"regexp"

	"github.com/google/uuid"
)

// PersonaIdentifierPrefix precedes the random part of every identifier the
// client mints for a newly created persona. The platform accepts the value
// verbatim and echoes it back as the persona's external_id.
const PersonaIdentifierPrefix = "id:"

var personaIdentifierPattern = regexp.MustCompile(
	`^id:[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// NewPersonaIdentifier mints a fresh persona identifier of the form
// "id:<uuid>". Each call returns a distinct value.
func NewPersonaIdentifier() string {
	return PersonaIdentifierPrefix + uuid.NewString()
}

// IsPersonaIdentifier reports whether s has the shape of a client-minted
// persona identifier.
func IsPersonaIdentifier(s string) bool {
	return personaIdentifierPattern.MatchString(s)
}
