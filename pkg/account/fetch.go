package account

import (
	"context"
	"net/http"
	"net/url"

	"github.com/charai-dev/charai/pkg/api"
	"github.com/charai-dev/charai/pkg/debug"
)

// Me fetches the authenticated user's own profile. When the credential
// holder can learn the numeric account id (session.Session can), Me hands
// it over so later persona edits can fill their user__id field.
func (c *Client) Me(ctx context.Context) (acct *api.Account, err error) {
	defer func() { observe("me", err) }()

	resp, rerr := c.get(ctx, c.baseURL+"/chat/user/")
	if rerr != nil || resp.StatusCode != http.StatusOK {
		return nil, api.NewFetchError("your account")
	}

	var body struct {
		User struct {
			User api.Account `json:"user"`
		} `json:"user"`
	}
	if resp.JSON(&body) != nil {
		return nil, api.NewFetchError("your account")
	}

	a := body.User.User
	if learner, ok := c.creds.(accountIDLearner); ok && a.AccountID != 0 {
		learner.SetAccountID(a.AccountID)
	}
	return &a, nil
}

// Settings fetches the full account settings document.
func (c *Client) Settings(ctx context.Context) (settings api.Settings, err error) {
	defer func() { observe("settings", err) }()

	resp, rerr := c.get(ctx, c.baseURL+"/chat/user/settings/")
	if rerr != nil || resp.StatusCode != http.StatusOK {
		return nil, api.NewFetchError("your settings")
	}

	var s api.Settings
	if resp.JSON(&s) != nil {
		return nil, api.NewFetchError("your settings")
	}
	return s, nil
}

// Followers fetches the usernames following the account. An empty list is a
// valid result.
func (c *Client) Followers(ctx context.Context) (followers []string, err error) {
	defer func() { observe("followers", err) }()

	resp, rerr := c.get(ctx, c.baseURL+"/chat/user/followers/")
	if rerr != nil || resp.StatusCode != http.StatusOK {
		return nil, api.NewFetchError("your followers")
	}

	var body struct {
		Followers []string `json:"followers"`
	}
	if resp.JSON(&body) != nil {
		return nil, api.NewFetchError("your followers")
	}
	if body.Followers == nil {
		return []string{}, nil
	}
	return body.Followers, nil
}

// Following fetches the usernames the account follows.
func (c *Client) Following(ctx context.Context) (following []string, err error) {
	defer func() { observe("following", err) }()

	resp, rerr := c.get(ctx, c.baseURL+"/chat/user/following/")
	if rerr != nil || resp.StatusCode != http.StatusOK {
		return nil, api.NewFetchError("your following")
	}

	var body struct {
		Following []string `json:"following"`
	}
	if resp.JSON(&body) != nil {
		return nil, api.NewFetchError("your following")
	}
	if body.Following == nil {
		return []string{}, nil
	}
	return body.Following, nil
}

// Persona fetches one of the account's personas by id. A 200 with a missing
// or null persona field still counts as a failed fetch; the persona most
// likely does not exist.
func (c *Client) Persona(ctx context.Context, personaID string) (p *api.Persona, err error) {
	defer func() { observe("persona", err) }()

	resp, rerr := c.get(ctx, c.baseURL+"/chat/persona/?id="+url.QueryEscape(personaID))
	if rerr != nil || resp.StatusCode != http.StatusOK {
		return nil, api.NewFetchError("your persona")
	}

	var body struct {
		Persona *api.Persona `json:"persona"`
	}
	if resp.JSON(&body) != nil || body.Persona == nil {
		return nil, api.NewFetchError("your persona")
	}
	return body.Persona, nil
}

// Personas fetches all of the account's personas.
func (c *Client) Personas(ctx context.Context) (personas []api.Persona, err error) {
	defer func() { observe("personas", err) }()

	resp, rerr := c.get(ctx, c.baseURL+"/chat/personas/?force_refresh=1")
	if rerr != nil || resp.StatusCode != http.StatusOK {
		return nil, api.NewFetchError("your personas")
	}

	var body struct {
		Personas []api.Persona `json:"personas"`
	}
	if resp.JSON(&body) != nil {
		return nil, api.NewFetchError("your personas")
	}
	debug.Log("account", "fetched personas", "count", len(body.Personas))
	if body.Personas == nil {
		return []api.Persona{}, nil
	}
	return body.Personas, nil
}

// Characters fetches the characters the account has authored.
func (c *Client) Characters(ctx context.Context) (characters []api.CharacterShort, err error) {
	defer func() { observe("characters", err) }()
	return c.fetchCharacters(ctx, c.baseURL+"/chat/characters/?scope=user", "your characters")
}

// UpvotedCharacters fetches the characters the account has upvoted.
func (c *Client) UpvotedCharacters(ctx context.Context) (characters []api.CharacterShort, err error) {
	defer func() { observe("upvoted_characters", err) }()
	return c.fetchCharacters(ctx, c.baseURL+"/chat/user/characters/upvoted/", "your upvoted characters")
}

func (c *Client) fetchCharacters(ctx context.Context, url, resource string) ([]api.CharacterShort, error) {
	resp, err := c.get(ctx, url)
	if err != nil || resp.StatusCode != http.StatusOK {
		return nil, api.NewFetchError(resource)
	}

	var body struct {
		Characters []api.CharacterShort `json:"characters"`
	}
	if resp.JSON(&body) != nil {
		return nil, api.NewFetchError(resource)
	}
	if body.Characters == nil {
		return []api.CharacterShort{}, nil
	}
	return body.Characters, nil
}

// Voices fetches the text-to-speech voices the account owns. This is the
// one operation served by the multimodal host.
func (c *Client) Voices(ctx context.Context) (voices []api.Voice, err error) {
	defer func() { observe("voices", err) }()

	resp, rerr := c.get(ctx, c.neoURL+"/multimodal/api/v1/voices/user")
	if rerr != nil || resp.StatusCode != http.StatusOK {
		return nil, api.NewFetchError("your voices")
	}

	var body struct {
		Voices []api.Voice `json:"voices"`
	}
	if resp.JSON(&body) != nil {
		return nil, api.NewFetchError("your voices")
	}
	if body.Voices == nil {
		return []api.Voice{}, nil
	}
	return body.Voices, nil
}
