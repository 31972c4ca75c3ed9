package account

import (
	"context"
	"net/http"

	"github.com/charai-dev/charai/pkg/api"
	"github.com/charai-dev/charai/pkg/debug"
)

// AccountUpdate carries the profile fields of an account edit. Name and
// Username are required; Bio may be empty. AvatarRelPath, when set, switches
// the avatar to the uploaded image at that path.
type AccountUpdate struct {
	Name          string
	Username      string
	Bio           string
	AvatarRelPath string
}

// UpdateAccount submits new profile fields. Arguments are validated before
// any request is issued; an invalid_argument CallError means nothing was
// sent.
func (c *Client) UpdateAccount(ctx context.Context, update AccountUpdate) (err error) {
	defer func() { observe("update_account", err) }()

	if verr := api.ValidateAccountUpdate(update.Name, update.Username, update.Bio); verr != nil {
		return verr
	}

	payload := map[string]any{
		"avatar_type": api.AvatarTypeDefault,
		"bio":         update.Bio,
		"name":        update.Name,
		"username":    update.Username,
	}
	if update.AvatarRelPath != "" {
		payload["avatar_type"] = api.AvatarTypeUploaded
		payload["avatar_rel_path"] = update.AvatarRelPath
	}

	debug.Log("account", "update account", "username", update.Username)

	resp, rerr := c.post(ctx, c.baseURL+"/chat/user/update/", payload)
	if rerr != nil || resp.StatusCode != http.StatusOK {
		return api.NewEditError("account info", "")
	}

	var body struct {
		Status string `json:"status"`
	}
	if resp.JSON(&body) != nil {
		return api.NewEditError("account info", "")
	}
	if body.Status != "OK" {
		return api.NewEditError("account info", body.Status)
	}
	return nil
}
