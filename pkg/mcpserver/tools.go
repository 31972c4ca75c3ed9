package mcpserver

import "github.com/charai-dev/charai/pkg/api"

// AccountInfo is the tool-facing projection of an account profile.
type AccountInfo struct {
	AccountID int64  `json:"account_id" jsonschema:"numeric platform account identifier"`
	Username  string `json:"username" jsonschema:"unique account username"`
	Name      string `json:"name" jsonschema:"display name"`
	Bio       string `json:"bio,omitempty" jsonschema:"profile bio"`
	AvatarURL string `json:"avatar_url,omitempty" jsonschema:"public avatar image URL"`
}

// PersonaInfo is the tool-facing projection of a persona.
type PersonaInfo struct {
	PersonaID  string `json:"persona_id" jsonschema:"persona identifier, id:<uuid>"`
	Name       string `json:"name" jsonschema:"persona name"`
	Definition string `json:"definition,omitempty" jsonschema:"free-form persona definition"`
	Greeting   string `json:"greeting,omitempty" jsonschema:"greeting line"`
	Visibility string `json:"visibility,omitempty" jsonschema:"PRIVATE, PUBLIC, or UNLISTED"`
	AvatarURL  string `json:"avatar_url,omitempty" jsonschema:"public avatar image URL"`
}

// CharacterInfo is the tool-facing projection of a character summary.
type CharacterInfo struct {
	CharacterID    string `json:"character_id" jsonschema:"character identifier"`
	Title          string `json:"title" jsonschema:"character title"`
	Greeting       string `json:"greeting,omitempty" jsonschema:"greeting line"`
	Visibility     string `json:"visibility,omitempty" jsonschema:"PRIVATE, PUBLIC, or UNLISTED"`
	AuthorUsername string `json:"author_username,omitempty" jsonschema:"username of the character's author"`
}

// VoiceInfo is the tool-facing projection of a text-to-speech voice.
type VoiceInfo struct {
	VoiceID     string `json:"voice_id" jsonschema:"voice identifier"`
	Name        string `json:"name" jsonschema:"voice name"`
	Description string `json:"description,omitempty" jsonschema:"voice description"`
	Gender      string `json:"gender,omitempty" jsonschema:"voice gender label"`
	PreviewText string `json:"preview_text,omitempty" jsonschema:"text spoken in the preview audio"`
}

type personaListResult struct {
	Personas []PersonaInfo `json:"personas" jsonschema:"the account's personas"`
}

type personaGetInput struct {
	PersonaID string `json:"persona_id" jsonschema:"persona identifier, id:<uuid>"`
}

type characterListInput struct {
	Upvoted bool `json:"upvoted,omitempty" jsonschema:"list characters the account upvoted instead of ones it created"`
}

type characterListResult struct {
	Characters []CharacterInfo `json:"characters" jsonschema:"the matching characters"`
}

type voiceListResult struct {
	Voices []VoiceInfo `json:"voices" jsonschema:"voices created by the account"`
}

type personaCreateInput struct {
	Name          string `json:"name" jsonschema:"persona name, 3-20 characters"`
	Definition    string `json:"definition,omitempty" jsonschema:"persona definition, at most 728 characters"`
	AvatarRelPath string `json:"avatar_rel_path,omitempty" jsonschema:"relative path of an uploaded avatar image"`
}

type personaEditInput struct {
	PersonaID     string `json:"persona_id" jsonschema:"persona identifier, id:<uuid>"`
	Name          string `json:"name,omitempty" jsonschema:"new persona name; empty keeps the current one"`
	Definition    string `json:"definition,omitempty" jsonschema:"new persona definition; empty keeps the current one"`
	AvatarRelPath string `json:"avatar_rel_path,omitempty" jsonschema:"relative path of a new avatar image"`
}

type personaDeleteInput struct {
	PersonaID string `json:"persona_id" jsonschema:"identifier of the persona to delete"`
}

type personaDeleteResult struct {
	PersonaID string `json:"persona_id" jsonschema:"identifier of the deleted persona"`
}

type personaSetDefaultInput struct {
	PersonaID string `json:"persona_id,omitempty" jsonschema:"persona to use by default; empty clears the default"`
}

type personaSetDefaultResult struct {
	PersonaID string `json:"persona_id,omitempty" jsonschema:"persona now used by default, empty when cleared"`
}

type personaSetOverrideInput struct {
	CharacterID string `json:"character_id" jsonschema:"character whose chats the persona applies to"`
	PersonaID   string `json:"persona_id,omitempty" jsonschema:"persona to assign; empty clears the assignment"`
}

type personaSetOverrideResult struct {
	CharacterID string `json:"character_id" jsonschema:"character whose assignment changed"`
	PersonaID   string `json:"persona_id,omitempty" jsonschema:"persona now assigned, empty when cleared"`
}

type voiceSetOverrideInput struct {
	CharacterID string `json:"character_id" jsonschema:"character whose chats the voice applies to"`
	VoiceID     string `json:"voice_id" jsonschema:"voice to assign"`
}

type voiceSetOverrideResult struct {
	CharacterID string `json:"character_id" jsonschema:"character whose assignment changed"`
	VoiceID     string `json:"voice_id" jsonschema:"voice now assigned"`
}

type voiceUnsetOverrideInput struct {
	CharacterID string `json:"character_id" jsonschema:"character whose voice assignment to clear"`
}

type voiceUnsetOverrideResult struct {
	CharacterID string `json:"character_id" jsonschema:"character whose assignment was cleared"`
}

func accountInfo(a *api.Account) AccountInfo {
	return AccountInfo{
		AccountID: a.AccountID,
		Username:  a.Username,
		Name:      a.Name,
		Bio:       a.Bio,
		AvatarURL: avatarURL(a.Avatar),
	}
}

func personaInfo(p *api.Persona) PersonaInfo {
	return PersonaInfo{
		PersonaID:  p.PersonaID,
		Name:       p.Name,
		Definition: p.Definition,
		Greeting:   p.Greeting,
		Visibility: string(p.Visibility),
		AvatarURL:  avatarURL(p.Avatar),
	}
}

func personaInfos(personas []api.Persona) []PersonaInfo {
	infos := make([]PersonaInfo, len(personas))
	for i := range personas {
		infos[i] = personaInfo(&personas[i])
	}
	return infos
}

func characterInfos(characters []api.CharacterShort) []CharacterInfo {
	infos := make([]CharacterInfo, len(characters))
	for i, c := range characters {
		infos[i] = CharacterInfo{
			CharacterID:    c.CharacterID,
			Title:          c.Title,
			Greeting:       c.Greeting,
			Visibility:     string(c.Visibility),
			AuthorUsername: c.AuthorUsername,
		}
	}
	return infos
}

func voiceInfos(voices []api.Voice) []VoiceInfo {
	infos := make([]VoiceInfo, len(voices))
	for i, v := range voices {
		infos[i] = VoiceInfo{
			VoiceID:     v.VoiceID,
			Name:        v.Name,
			Description: v.Description,
			Gender:      v.Gender,
			PreviewText: v.PreviewText,
		}
	}
	return infos
}

func avatarURL(a *api.Avatar) string {
	if a == nil {
		return ""
	}
	return a.URL()
}
