package account

import (
	"context"
	"net/http"

	"github.com/charai-dev/charai/pkg/api"
	"github.com/charai-dev/charai/pkg/debug"
)

// Boilerplate the platform stores on every persona it creates through the
// web client; personas are characters under the hood and these fields fill
// the character-shaped gaps.
const (
	personaDescription = "This is my persona."
	personaGreeting    = "Hello! This is my persona"
)

// personaResponse is the response shape of the persona create/update
// endpoints.
type personaResponse struct {
	Status  string       `json:"status"`
	Error   string       `json:"error"`
	Persona *api.Persona `json:"persona"`
}

// CreatePersona creates a private persona. Definition and avatarRelPath may
// be empty. The identifier is minted client-side; the platform echoes it
// back as the persona's id.
func (c *Client) CreatePersona(ctx context.Context, name, definition, avatarRelPath string) (p *api.Persona, err error) {
	defer func() { observe("create_persona", err) }()

	if verr := api.ValidatePersonaName(name); verr != nil {
		return nil, verr
	}
	if verr := api.ValidatePersonaDefinition(definition); verr != nil {
		return nil, verr
	}

	payload := map[string]any{
		"avatar_file_name":          "",
		"avatar_rel_path":           avatarRelPath,
		"base_img_prompt":           "",
		"categories":                []string{},
		"copyable":                  false,
		"definition":                definition,
		"description":               personaDescription,
		"greeting":                  personaGreeting,
		"identifier":                api.NewPersonaIdentifier(),
		"img_gen_enabled":           false,
		"name":                      name,
		"strip_img_prompt_from_msg": false,
		"title":                     name,
		"visibility":                api.VisibilityPrivate,
		"voice_id":                  "",
	}

	debug.Log("account", "create persona", "name", name)

	resp, rerr := c.post(ctx, c.baseURL+"/chat/character/create/", payload)
	if rerr != nil || resp.StatusCode != http.StatusOK {
		return nil, api.NewCreateError("persona", "")
	}

	var body personaResponse
	if resp.JSON(&body) != nil {
		return nil, api.NewCreateError("persona", "")
	}
	if body.Status != "OK" || body.Persona == nil {
		return nil, api.NewCreateError("persona", body.Error)
	}
	return body.Persona, nil
}

// EditPersona edits a persona in place. Empty name/definition keep the
// fetched values; a non-empty avatarRelPath replaces both avatar fields.
// The persona is fetched first, so an unknown id surfaces as an edit error
// before anything is written.
func (c *Client) EditPersona(ctx context.Context, personaID, name, definition, avatarRelPath string) (p *api.Persona, err error) {
	defer func() { observe("edit_persona", err) }()

	if name != "" {
		if verr := api.ValidatePersonaName(name); verr != nil {
			return nil, verr
		}
	}
	if verr := api.ValidatePersonaDefinition(definition); verr != nil {
		return nil, verr
	}

	old, ferr := c.Persona(ctx, personaID)
	if ferr != nil {
		return nil, api.NewEditError("persona", "")
	}

	avatarFileName := ""
	if old.Avatar != nil {
		avatarFileName = old.Avatar.FileName
	}
	newName := name
	if newName == "" {
		newName = old.Name
	}
	newDefinition := definition
	if newDefinition == "" {
		newDefinition = old.Definition
	}

	payload := map[string]any{
		"avatar_file_name":              avatarFileName,
		"avatar_rel_path":               avatarFileName,
		"copyable":                      false,
		"default_voice_id":              "",
		"definition":                    newDefinition,
		"description":                   personaDescription,
		"enabled":                       false,
		"external_id":                   personaID,
		"greeting":                      personaGreeting,
		"img_gen_enabled":               false,
		"is_persona":                    true,
		"name":                          newName,
		"participant__name":             newName,
		"participant__num_interactions": 0,
		// title is the raw name argument, empty when no rename was requested.
		"title":          name,
		"user__id":       c.creds.AccountID(),
		"user__username": old.AuthorUsername,
		"visibility":     api.VisibilityPrivate,
	}
	if avatarRelPath != "" {
		payload["avatar_file_name"] = avatarRelPath
		payload["avatar_rel_path"] = avatarRelPath
	}

	debug.Log("account", "edit persona", "persona_id", personaID)

	resp, rerr := c.post(ctx, c.baseURL+"/chat/persona/update/", payload)
	if rerr != nil || resp.StatusCode != http.StatusOK {
		return nil, api.NewEditError("persona", "")
	}

	var body personaResponse
	if resp.JSON(&body) != nil {
		return nil, api.NewEditError("persona", "")
	}
	if body.Status != "OK" || body.Persona == nil {
		return nil, api.NewEditError("persona", body.Error)
	}
	return body.Persona, nil
}

// DeletePersona archives a persona. The platform has no hard delete; the
// update endpoint is called with archived set and all content fields
// preserved from the fetched persona.
func (c *Client) DeletePersona(ctx context.Context, personaID string) (err error) {
	defer func() { observe("delete_persona", err) }()

	old, ferr := c.Persona(ctx, personaID)
	if ferr != nil {
		return api.NewDeleteError("persona", "")
	}

	avatarFileName := ""
	if old.Avatar != nil {
		avatarFileName = old.Avatar.FileName
	}

	payload := map[string]any{
		"archived":                      true,
		"avatar_file_name":              avatarFileName,
		"copyable":                      false,
		"default_voice_id":              "",
		"definition":                    old.Definition,
		"description":                   personaDescription,
		"external_id":                   personaID,
		"greeting":                      personaGreeting,
		"img_gen_enabled":               false,
		"is_persona":                    true,
		"name":                          old.Name,
		"participant__name":             old.Name,
		"participant__num_interactions": 0,
		"title":                         old.Name,
		"user__id":                      c.creds.AccountID(),
		"user__username":                old.AuthorUsername,
		"visibility":                    api.VisibilityPrivate,
	}

	debug.Log("account", "delete persona", "persona_id", personaID)

	resp, rerr := c.post(ctx, c.baseURL+"/chat/persona/update/", payload)
	if rerr != nil || resp.StatusCode != http.StatusOK {
		return api.NewDeleteError("persona", "")
	}

	var body personaResponse
	if resp.JSON(&body) != nil {
		return api.NewDeleteError("persona", "")
	}
	if body.Status != "OK" || body.Persona == nil {
		return api.NewDeleteError("persona", body.Error)
	}
	return nil
}
