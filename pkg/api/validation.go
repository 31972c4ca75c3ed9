package api

import "fmt"

// Length bounds the platform enforces server-side. Validating locally lets
// the client reject bad arguments without spending a round trip.
const (
	MinUsernameLength = 2
	MaxUsernameLength = 20
	MinNameLength     = 2
	MaxNameLength     = 50
	MaxBioLength      = 500

	MinPersonaNameLength    = 3
	MaxPersonaNameLength    = 20
	MaxPersonaDefinitionLen = 728
)

// ValidateAccountUpdate checks the profile fields submitted by an account
// edit. It returns a *CallError describing the first violated bound, or nil
// when all fields are acceptable.
func ValidateAccountUpdate(name, username, bio string) *CallError {
	if len(username) < MinUsernameLength || len(username) > MaxUsernameLength {
		return NewInvalidArgumentError(fmt.Sprintf(
			"username must be at least %d characters and no more than %d",
			MinUsernameLength, MaxUsernameLength))
	}
	if len(name) < MinNameLength || len(name) > MaxNameLength {
		return NewInvalidArgumentError(fmt.Sprintf(
			"name must be at least %d characters and no more than %d",
			MinNameLength, MaxNameLength))
	}
	if len(bio) > MaxBioLength {
		return NewInvalidArgumentError(fmt.Sprintf(
			"bio must be no more than %d characters", MaxBioLength))
	}
	return nil
}

// ValidatePersonaName checks a persona display name against the platform's
// length bounds.
func ValidatePersonaName(name string) *CallError {
	if len(name) < MinPersonaNameLength || len(name) > MaxPersonaNameLength {
		return NewInvalidArgumentError(fmt.Sprintf(
			"persona name must be at least %d characters and no more than %d",
			MinPersonaNameLength, MaxPersonaNameLength))
	}
	return nil
}

// ValidatePersonaDefinition checks a persona definition against the
// platform's length bound. An empty definition is valid.
func ValidatePersonaDefinition(definition string) *CallError {
	if len(definition) > MaxPersonaDefinitionLen {
		return NewInvalidArgumentError(fmt.Sprintf(
			"persona definition must be no more than %d characters",
			MaxPersonaDefinitionLen))
	}
	return nil
}
