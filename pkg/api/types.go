package api

import "encoding/json"

// ---------------------------------------------------------------------------
// Enumerations
// ---------------------------------------------------------------------------

// Visibility controls who can see a persona or character.
type Visibility string

const (
	VisibilityPrivate  Visibility = "PRIVATE"
	VisibilityPublic   Visibility = "PUBLIC"
	VisibilityUnlisted Visibility = "UNLISTED"
)

// AvatarType tells the platform whether an account edit keeps the default
// avatar or points at an uploaded image.
type AvatarType string

const (
	AvatarTypeDefault  AvatarType = "DEFAULT"
	AvatarTypeUploaded AvatarType = "UPLOADED"
)

// ---------------------------------------------------------------------------
// Avatar
// ---------------------------------------------------------------------------

const avatarURLBase = "https://characterai.io/i/400/static/avatars/"

// Avatar identifies an uploaded avatar image by its file name on the
// platform's static image host.
type Avatar struct {
	FileName string `json:"avatar_file_name"`
}

// URL returns the public image URL for the avatar, or an empty string when
// no file name is set.
func (a Avatar) URL() string {
	if a.FileName == "" {
		return ""
	}
	return avatarURLBase + a.FileName + "?webp=true&anim=0"
}

// newAvatar returns nil for an empty file name so optional avatars stay nil.
func newAvatar(fileName string) *Avatar {
	if fileName == "" {
		return nil
	}
	return &Avatar{FileName: fileName}
}

// ---------------------------------------------------------------------------
// Account
// ---------------------------------------------------------------------------

// Account is the authenticated user's own profile. The wire payload nests
// the display name, bio and avatar file name under a secondary "account"
// object; UnmarshalJSON flattens that into the top-level fields.
type Account struct {
	AccountID int64   `json:"account_id"`
	Username  string  `json:"username"`
	Name      string  `json:"name"`
	Bio       string  `json:"bio"`
	Avatar    *Avatar `json:"avatar,omitempty"`
}

// UnmarshalJSON decodes the inner profile object of the /chat/user/ payload.
func (a *Account) UnmarshalJSON(data []byte) error {
	type profile struct {
		Name           string `json:"name"`
		Bio            string `json:"bio"`
		AvatarFileName string `json:"avatar_file_name"`
	}
	type wire struct {
		ID       int64    `json:"id"`
		Username string   `json:"username"`
		Account  *profile `json:"account"`
	}
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	a.AccountID = w.ID
	a.Username = w.Username
	if w.Account != nil {
		a.Name = w.Account.Name
		a.Bio = w.Account.Bio
		a.Avatar = newAvatar(w.Account.AvatarFileName)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Persona
// ---------------------------------------------------------------------------

// Persona is a user-authored stand-in the platform substitutes for the
// user's profile in chats.
type Persona struct {
	PersonaID      string     `json:"persona_id"`
	Name           string     `json:"name"`
	Definition     string     `json:"definition"`
	Greeting       string     `json:"greeting"`
	Avatar         *Avatar    `json:"avatar,omitempty"`
	AuthorUsername string     `json:"author_username"`
	Visibility     Visibility `json:"visibility"`
}

// UnmarshalJSON decodes a persona object. The platform reports the display
// name as participant__name on some endpoints and as name on others, so the
// former is preferred and the latter is the fallback.
func (p *Persona) UnmarshalJSON(data []byte) error {
	type wire struct {
		ExternalID      string     `json:"external_id"`
		ParticipantName string     `json:"participant__name"`
		Name            string     `json:"name"`
		Definition      string     `json:"definition"`
		Greeting        string     `json:"greeting"`
		AvatarFileName  string     `json:"avatar_file_name"`
		UserUsername    string     `json:"user__username"`
		Visibility      Visibility `json:"visibility"`
	}
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	p.PersonaID = w.ExternalID
	p.Name = w.ParticipantName
	if p.Name == "" {
		p.Name = w.Name
	}
	p.Definition = w.Definition
	p.Greeting = w.Greeting
	p.Avatar = newAvatar(w.AvatarFileName)
	p.AuthorUsername = w.UserUsername
	p.Visibility = w.Visibility
	return nil
}

// ---------------------------------------------------------------------------
// CharacterShort
// ---------------------------------------------------------------------------

// CharacterShort is the abbreviated character listing returned by the
// character collection endpoints.
type CharacterShort struct {
	CharacterID    string     `json:"character_id"`
	Title          string     `json:"title"`
	Greeting       string     `json:"greeting"`
	Visibility     Visibility `json:"visibility"`
	AuthorUsername string     `json:"author_username"`
}

// UnmarshalJSON decodes an abbreviated character object.
func (c *CharacterShort) UnmarshalJSON(data []byte) error {
	type wire struct {
		ExternalID   string     `json:"external_id"`
		Title        string     `json:"title"`
		Greeting     string     `json:"greeting"`
		Visibility   Visibility `json:"visibility"`
		UserUsername string     `json:"user__username"`
	}
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	c.CharacterID = w.ExternalID
	c.Title = w.Title
	c.Greeting = w.Greeting
	c.Visibility = w.Visibility
	c.AuthorUsername = w.UserUsername
	return nil
}

// ---------------------------------------------------------------------------
// Voice
// ---------------------------------------------------------------------------

// Voice is a text-to-speech voice owned by the account. The voices endpoint
// lives on a different host from the rest of the API and speaks camelCase.
type Voice struct {
	VoiceID         string     `json:"voice_id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Gender          string     `json:"gender"`
	Visibility      Visibility `json:"visibility"`
	PreviewText     string     `json:"preview_text"`
	PreviewAudioURI string     `json:"preview_audio_uri"`
	CreatorUsername string     `json:"creator_username"`
}

// UnmarshalJSON decodes a voice object, lifting the creator's username out
// of the nested creatorInfo object.
func (v *Voice) UnmarshalJSON(data []byte) error {
	type creatorInfo struct {
		Username string `json:"username"`
	}
	type wire struct {
		ID              string       `json:"id"`
		Name            string       `json:"name"`
		Description     string       `json:"description"`
		Gender          string       `json:"gender"`
		Visibility      Visibility   `json:"visibility"`
		PreviewText     string       `json:"previewText"`
		PreviewAudioURI string       `json:"previewAudioUri"`
		Creator         *creatorInfo `json:"creatorInfo"`
	}
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	v.VoiceID = w.ID
	v.Name = w.Name
	v.Description = w.Description
	v.Gender = w.Gender
	v.Visibility = w.Visibility
	v.PreviewText = w.PreviewText
	v.PreviewAudioURI = w.PreviewAudioURI
	if w.Creator != nil {
		v.CreatorUsername = w.Creator.Username
	}
	return nil
}

// ---------------------------------------------------------------------------
// Settings
// ---------------------------------------------------------------------------

// Settings is the account settings document. The update flow fetches the
// document, patches individual keys and pushes the whole thing back, so
// fields this client does not model must survive the round trip. A map
// keeps them; the accessors below read the keys the client cares about.
type Settings map[string]any

// DefaultPersonaID returns the persona applied to chats with no
// per-character override, or an empty string when none is set.
func (s Settings) DefaultPersonaID() string {
	id, _ := s["default_persona_id"].(string)
	return id
}

// PersonaOverrides returns the per-character persona assignments keyed by
// character identifier. Entries whose value is not a string are skipped.
func (s Settings) PersonaOverrides() map[string]string {
	raw, _ := s["personaOverrides"].(map[string]any)
	overrides := make(map[string]string, len(raw))
	for characterID, personaID := range raw {
		if id, ok := personaID.(string); ok {
			overrides[characterID] = id
		}
	}
	return overrides
}
