// Package mcpserver exposes the account facade as MCP tools.
//
// Each tool wraps one facade operation with typed input and output structs,
// so MCP clients get JSON schemas for both directions. Handlers hold no
// state of their own; everything is delegated to the Account client.
package mcpserver

import (
	"context"

	"github.com/charai-dev/charai/pkg/account"
	"github.com/charai-dev/charai/pkg/api"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	serverName    = "charai"
	serverVersion = "0.1.0"
)

// Client is the slice of the account facade the tools delegate to.
type Client interface {
	Me(ctx context.Context) (*api.Account, error)
	Personas(ctx context.Context) ([]api.Persona, error)
	Persona(ctx context.Context, personaID string) (*api.Persona, error)
	Characters(ctx context.Context) ([]api.CharacterShort, error)
	UpvotedCharacters(ctx context.Context) ([]api.CharacterShort, error)
	Voices(ctx context.Context) ([]api.Voice, error)
	CreatePersona(ctx context.Context, name, definition, avatarRelPath string) (*api.Persona, error)
	EditPersona(ctx context.Context, personaID, name, definition, avatarRelPath string) (*api.Persona, error)
	DeletePersona(ctx context.Context, personaID string) error
	SetDefaultPersona(ctx context.Context, personaID string) error
	UnsetDefaultPersona(ctx context.Context) error
	SetPersonaOverride(ctx context.Context, characterID, personaID string) error
	UnsetPersonaOverride(ctx context.Context, characterID string) error
	SetVoiceOverride(ctx context.Context, characterID, voiceID string) error
	UnsetVoiceOverride(ctx context.Context, characterID string) error
}

// NewServer builds an MCP server with every account tool registered.
func NewServer(client Client) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: serverName, Version: serverVersion},
		nil,
	)

	// Read tools.
	mcp.AddTool(server, &mcp.Tool{
		Name:        "account_me",
		Description: "Fetch the authenticated account's profile",
	}, accountMeHandler(client))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "persona_list",
		Description: "List the account's personas",
	}, personaListHandler(client))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "persona_get",
		Description: "Fetch one persona by its identifier",
	}, personaGetHandler(client))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "character_list",
		Description: "List characters created by the account, or upvoted ones",
	}, characterListHandler(client))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "voice_list",
		Description: "List text-to-speech voices created by the account",
	}, voiceListHandler(client))

	// Write tools.
	mcp.AddTool(server, &mcp.Tool{
		Name:        "persona_create",
		Description: "Create a persona; name must be 3-20 characters, definition at most 728",
	}, personaCreateHandler(client))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "persona_edit",
		Description: "Edit a persona's name, definition, or avatar",
	}, personaEditHandler(client))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "persona_delete",
		Description: "Delete (archive) a persona",
	}, personaDeleteHandler(client))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "persona_set_default",
		Description: "Set the default persona for all chats; empty persona_id clears it",
	}, personaSetDefaultHandler(client))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "persona_set_override",
		Description: "Assign a persona to chats with one character; empty persona_id clears the assignment",
	}, personaSetOverrideHandler(client))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "voice_set_override",
		Description: "Assign a text-to-speech voice to one character's chats",
	}, voiceSetOverrideHandler(client))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "voice_unset_override",
		Description: "Clear a character's voice assignment",
	}, voiceUnsetOverrideHandler(client))

	return server
}

var _ Client = (*account.Client)(nil)
