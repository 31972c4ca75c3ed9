package account

import (
	"context"
	"net/http"
	"net/url"

	"github.com/charai-dev/charai/pkg/api"
	"github.com/charai-dev/charai/pkg/debug"
	"github.com/charai-dev/charai/pkg/requester"
)

// SetVoiceOverride assigns a text-to-speech voice to one character's chats.
// An empty voiceID clears the assignment instead.
func (c *Client) SetVoiceOverride(ctx context.Context, characterID, voiceID string) (err error) {
	if voiceID == "" {
		return c.UnsetVoiceOverride(ctx, characterID)
	}
	defer func() { observe("set_voice_override", err) }()

	debug.Log("account", "set voice override", "character_id", characterID, "voice_id", voiceID)

	u := c.baseURL + "/chat/character/" + url.PathEscape(characterID) + "/voice_override/update/"
	resp, rerr := c.post(ctx, u, map[string]string{"voice_id": voiceID})
	return voiceOverrideResult(resp, rerr)
}

// UnsetVoiceOverride clears the character's voice assignment. The delete
// endpoint takes no body.
func (c *Client) UnsetVoiceOverride(ctx context.Context, characterID string) (err error) {
	defer func() { observe("unset_voice_override", err) }()

	debug.Log("account", "unset voice override", "character_id", characterID)

	u := c.baseURL + "/chat/character/" + url.PathEscape(characterID) + "/voice_override/delete/"
	resp, rerr := c.post(ctx, u, nil)
	return voiceOverrideResult(resp, rerr)
}

// voiceOverrideResult applies the shared success contract of the two voice
// override endpoints: HTTP 200 plus a true success flag.
func voiceOverrideResult(resp *requester.Response, rerr error) error {
	if rerr != nil || resp.StatusCode != http.StatusOK {
		return api.NewSetError("voice override")
	}

	var body struct {
		Success bool `json:"success"`
	}
	if resp.JSON(&body) != nil || !body.Success {
		return api.NewSetError("voice override")
	}
	return nil
}
