package account

import (
	"context"
	"net/http"

	"github.com/charai-dev/charai/pkg/api"
	"github.com/charai-dev/charai/pkg/debug"
)

// settingsPatch names the settings keys a single update may touch. Nil
// pointers mean "leave untouched"; empty strings are meaningful values
// (they clear the assignment server-side).
//
// voiceOverride counts as something to update but is never written into
// the document: voice assignments travel through their own endpoints, so
// a patch carrying only voiceOverride pushes the settings back unchanged.
type settingsPatch struct {
	defaultPersonaID *string
	personaOverride  *string
	voiceOverride    *string
	characterID      string
}

// updateSettings is the shared read-modify-write behind the persona
// setters: fetch the full settings document, patch the requested keys, and
// push the whole document back. There is no concurrency guard; concurrent
// updates can lose writes and callers needing atomicity must serialize.
func (c *Client) updateSettings(ctx context.Context, patch settingsPatch) (api.Settings, error) {
	if patch.defaultPersonaID == nil && patch.personaOverride == nil && patch.voiceOverride == nil {
		return nil, api.NewUpdateError("account settings")
	}

	settings, err := c.Settings(ctx)
	if err != nil {
		return nil, api.NewUpdateError("account settings")
	}

	if patch.defaultPersonaID != nil {
		settings["default_persona_id"] = *patch.defaultPersonaID
	}
	if patch.personaOverride != nil && patch.characterID != "" {
		overrides, _ := settings["personaOverrides"].(map[string]any)
		if overrides == nil {
			overrides = make(map[string]any)
		}
		overrides[patch.characterID] = *patch.personaOverride
		settings["personaOverrides"] = overrides
	}

	debug.Log("account", "update settings",
		"default_persona", patch.defaultPersonaID != nil,
		"persona_override", patch.personaOverride != nil)

	resp, rerr := c.post(ctx, c.baseURL+"/chat/user/update_settings/", settings)
	if rerr != nil || resp.StatusCode != http.StatusOK {
		return nil, api.NewUpdateError("account settings")
	}

	var body struct {
		Success  bool         `json:"success"`
		Settings api.Settings `json:"settings"`
	}
	if resp.JSON(&body) != nil || !body.Success {
		return nil, api.NewUpdateError("account settings")
	}
	return body.Settings, nil
}

// SetDefaultPersona makes the persona the default for all chats without a
// per-character override. Any inner failure surfaces as a set CallError.
func (c *Client) SetDefaultPersona(ctx context.Context, personaID string) (err error) {
	defer func() { observe("set_default_persona", err) }()

	if _, uerr := c.updateSettings(ctx, settingsPatch{defaultPersonaID: &personaID}); uerr != nil {
		return api.AsSetError("default persona", uerr)
	}
	return nil
}

// UnsetDefaultPersona clears the default persona.
func (c *Client) UnsetDefaultPersona(ctx context.Context) error {
	return c.SetDefaultPersona(ctx, "")
}

// SetPersonaOverride assigns the persona to chats with one character,
// overriding the default.
func (c *Client) SetPersonaOverride(ctx context.Context, characterID, personaID string) (err error) {
	defer func() { observe("set_persona_override", err) }()

	patch := settingsPatch{personaOverride: &personaID, characterID: characterID}
	if _, uerr := c.updateSettings(ctx, patch); uerr != nil {
		return api.AsSetError("persona override", uerr)
	}
	return nil
}

// UnsetPersonaOverride clears the per-character persona assignment. Calling
// it for a character with no assignment succeeds; the operation is
// idempotent.
func (c *Client) UnsetPersonaOverride(ctx context.Context, characterID string) error {
	return c.SetPersonaOverride(ctx, characterID, "")
}
