package mcpserver

import (
	"context"
	"fmt"

	"github.com/charai-dev/charai/pkg/api"
	"github.com/charai-dev/charai/pkg/debug"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// toolError shapes facade failures for tool callers. CallErrors already
// carry a presentable message and pass through unchanged; anything else is
// a transport-level failure and gets a stable prefix.
func toolError(err error) error {
	if api.KindOf(err) != "" {
		return err
	}
	return fmt.Errorf("platform request failed: %w", err)
}

func accountMeHandler(client Client) mcp.ToolHandlerFor[struct{}, AccountInfo] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, AccountInfo, error) {
		debug.Log("mcp", "tool call", "tool", "account_me")
		acct, err := client.Me(ctx)
		if err != nil {
			return nil, AccountInfo{}, toolError(err)
		}
		return nil, accountInfo(acct), nil
	}
}

func personaListHandler(client Client) mcp.ToolHandlerFor[struct{}, personaListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, personaListResult, error) {
		debug.Log("mcp", "tool call", "tool", "persona_list")
		personas, err := client.Personas(ctx)
		if err != nil {
			return nil, personaListResult{}, toolError(err)
		}
		return nil, personaListResult{Personas: personaInfos(personas)}, nil
	}
}

func personaGetHandler(client Client) mcp.ToolHandlerFor[personaGetInput, PersonaInfo] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input personaGetInput) (*mcp.CallToolResult, PersonaInfo, error) {
		debug.Log("mcp", "tool call", "tool", "persona_get", "persona_id", input.PersonaID)
		if input.PersonaID == "" {
			return nil, PersonaInfo{}, fmt.Errorf("persona_id is required")
		}
		persona, err := client.Persona(ctx, input.PersonaID)
		if err != nil {
			return nil, PersonaInfo{}, toolError(err)
		}
		return nil, personaInfo(persona), nil
	}
}

func characterListHandler(client Client) mcp.ToolHandlerFor[characterListInput, characterListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input characterListInput) (*mcp.CallToolResult, characterListResult, error) {
		debug.Log("mcp", "tool call", "tool", "character_list", "upvoted", input.Upvoted)
		list := client.Characters
		if input.Upvoted {
			list = client.UpvotedCharacters
		}
		characters, err := list(ctx)
		if err != nil {
			return nil, characterListResult{}, toolError(err)
		}
		return nil, characterListResult{Characters: characterInfos(characters)}, nil
	}
}

func voiceListHandler(client Client) mcp.ToolHandlerFor[struct{}, voiceListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, voiceListResult, error) {
		debug.Log("mcp", "tool call", "tool", "voice_list")
		voices, err := client.Voices(ctx)
		if err != nil {
			return nil, voiceListResult{}, toolError(err)
		}
		return nil, voiceListResult{Voices: voiceInfos(voices)}, nil
	}
}

func personaCreateHandler(client Client) mcp.ToolHandlerFor[personaCreateInput, PersonaInfo] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input personaCreateInput) (*mcp.CallToolResult, PersonaInfo, error) {
		debug.Log("mcp", "tool call", "tool", "persona_create", "name", input.Name)
		persona, err := client.CreatePersona(ctx, input.Name, input.Definition, input.AvatarRelPath)
		if err != nil {
			return nil, PersonaInfo{}, toolError(err)
		}
		return nil, personaInfo(persona), nil
	}
}

func personaEditHandler(client Client) mcp.ToolHandlerFor[personaEditInput, PersonaInfo] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input personaEditInput) (*mcp.CallToolResult, PersonaInfo, error) {
		debug.Log("mcp", "tool call", "tool", "persona_edit", "persona_id", input.PersonaID)
		if input.PersonaID == "" {
			return nil, PersonaInfo{}, fmt.Errorf("persona_id is required")
		}
		persona, err := client.EditPersona(ctx, input.PersonaID, input.Name, input.Definition, input.AvatarRelPath)
		if err != nil {
			return nil, PersonaInfo{}, toolError(err)
		}
		return nil, personaInfo(persona), nil
	}
}

func personaDeleteHandler(client Client) mcp.ToolHandlerFor[personaDeleteInput, personaDeleteResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input personaDeleteInput) (*mcp.CallToolResult, personaDeleteResult, error) {
		debug.Log("mcp", "tool call", "tool", "persona_delete", "persona_id", input.PersonaID)
		if input.PersonaID == "" {
			return nil, personaDeleteResult{}, fmt.Errorf("persona_id is required")
		}
		if err := client.DeletePersona(ctx, input.PersonaID); err != nil {
			return nil, personaDeleteResult{}, toolError(err)
		}
		return nil, personaDeleteResult{PersonaID: input.PersonaID}, nil
	}
}

func personaSetDefaultHandler(client Client) mcp.ToolHandlerFor[personaSetDefaultInput, personaSetDefaultResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input personaSetDefaultInput) (*mcp.CallToolResult, personaSetDefaultResult, error) {
		debug.Log("mcp", "tool call", "tool", "persona_set_default", "persona_id", input.PersonaID)
		var err error
		if input.PersonaID == "" {
			err = client.UnsetDefaultPersona(ctx)
		} else {
			err = client.SetDefaultPersona(ctx, input.PersonaID)
		}
		if err != nil {
			return nil, personaSetDefaultResult{}, toolError(err)
		}
		return nil, personaSetDefaultResult{PersonaID: input.PersonaID}, nil
	}
}

func personaSetOverrideHandler(client Client) mcp.ToolHandlerFor[personaSetOverrideInput, personaSetOverrideResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input personaSetOverrideInput) (*mcp.CallToolResult, personaSetOverrideResult, error) {
		debug.Log("mcp", "tool call", "tool", "persona_set_override",
			"character_id", input.CharacterID, "persona_id", input.PersonaID)
		if input.CharacterID == "" {
			return nil, personaSetOverrideResult{}, fmt.Errorf("character_id is required")
		}
		var err error
		if input.PersonaID == "" {
			err = client.UnsetPersonaOverride(ctx, input.CharacterID)
		} else {
			err = client.SetPersonaOverride(ctx, input.CharacterID, input.PersonaID)
		}
		if err != nil {
			return nil, personaSetOverrideResult{}, toolError(err)
		}
		return nil, personaSetOverrideResult{CharacterID: input.CharacterID, PersonaID: input.PersonaID}, nil
	}
}

func voiceSetOverrideHandler(client Client) mcp.ToolHandlerFor[voiceSetOverrideInput, voiceSetOverrideResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input voiceSetOverrideInput) (*mcp.CallToolResult, voiceSetOverrideResult, error) {
		debug.Log("mcp", "tool call", "tool", "voice_set_override",
			"character_id", input.CharacterID, "voice_id", input.VoiceID)
		if input.CharacterID == "" {
			return nil, voiceSetOverrideResult{}, fmt.Errorf("character_id is required")
		}
		if input.VoiceID == "" {
			return nil, voiceSetOverrideResult{}, fmt.Errorf("voice_id is required; use voice_unset_override to clear")
		}
		if err := client.SetVoiceOverride(ctx, input.CharacterID, input.VoiceID); err != nil {
			return nil, voiceSetOverrideResult{}, toolError(err)
		}
		return nil, voiceSetOverrideResult{CharacterID: input.CharacterID, VoiceID: input.VoiceID}, nil
	}
}

func voiceUnsetOverrideHandler(client Client) mcp.ToolHandlerFor[voiceUnsetOverrideInput, voiceUnsetOverrideResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input voiceUnsetOverrideInput) (*mcp.CallToolResult, voiceUnsetOverrideResult, error) {
		debug.Log("mcp", "tool call", "tool", "voice_unset_override", "character_id", input.CharacterID)
		if input.CharacterID == "" {
			return nil, voiceUnsetOverrideResult{}, fmt.Errorf("character_id is required")
		}
		if err := client.UnsetVoiceOverride(ctx, input.CharacterID); err != nil {
			return nil, voiceUnsetOverrideResult{}, toolError(err)
		}
		return nil, voiceUnsetOverrideResult{CharacterID: input.CharacterID}, nil
	}
}
