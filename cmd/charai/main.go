// Command charai is a command line client for the account API. Fetch
// commands print indented JSON; mutations print a one line confirmation.
//
// The session token comes from the config file or CHARAI_TOKEN. Debug
// logging follows CHARAI_DEBUG and CHARAI_LOG_LEVEL.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charai-dev/charai/pkg/account"
	"github.com/charai-dev/charai/pkg/config"
	"github.com/charai-dev/charai/pkg/debug"
	"github.com/charai-dev/charai/pkg/requester"
	"github.com/charai-dev/charai/pkg/session"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("charai", flag.ExitOnError)
	fs.Usage = usage
	configPath := fs.String("config", "", "path to a YAML config file")
	fs.Parse(args)

	rest := fs.Args()
	if len(rest) == 0 {
		usage()
		os.Exit(2)
	}
	cmd, rest := rest[0], rest[1:]

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	debug.Init(cfg.Debug.Categories, cfg.Debug.Level)

	var sessOpts []session.Option
	if cfg.Session.WebNextAuth != "" {
		sessOpts = append(sessOpts, session.WithWebNextAuth(cfg.Session.WebNextAuth))
	}
	sess := session.New(cfg.Session.Token, sessOpts...)

	// token-info decodes the session offline; no client needed.
	if cmd == "token-info" {
		return tokenInfo(sess)
	}

	client := account.New(sess, requester.New(requester.WithTimeout(cfg.HTTP.Timeout)),
		account.WithBaseURL(cfg.Endpoints.BaseURL),
		account.WithNeoURL(cfg.Endpoints.NeoURL),
	)
	ctx := context.Background()

	switch cmd {
	case "me":
		return printResult(client.Me(ctx))
	case "settings":
		return printResult(client.Settings(ctx))
	case "followers":
		return printResult(client.Followers(ctx))
	case "following":
		return printResult(client.Following(ctx))
	case "personas":
		return printResult(client.Personas(ctx))
	case "persona":
		if len(rest) != 1 {
			return usageError("persona <persona-id>")
		}
		return printResult(client.Persona(ctx, rest[0]))
	case "characters":
		return printResult(client.Characters(ctx))
	case "upvoted":
		return printResult(client.UpvotedCharacters(ctx))
	case "voices":
		return printResult(client.Voices(ctx))
	case "create-persona":
		return createPersona(ctx, client, rest)
	case "edit-persona":
		return editPersona(ctx, client, rest)
	case "delete-persona":
		if len(rest) != 1 {
			return usageError("delete-persona <persona-id>")
		}
		if err := client.DeletePersona(ctx, rest[0]); err != nil {
			return err
		}
		fmt.Println("persona archived")
		return nil
	case "set-default-persona":
		if len(rest) != 1 {
			return usageError("set-default-persona <persona-id>")
		}
		if err := client.SetDefaultPersona(ctx, rest[0]); err != nil {
			return err
		}
		fmt.Println("default persona set")
		return nil
	case "unset-default-persona":
		if err := client.UnsetDefaultPersona(ctx); err != nil {
			return err
		}
		fmt.Println("default persona cleared")
		return nil
	case "set-persona":
		if len(rest) != 2 {
			return usageError("set-persona <character-id> <persona-id>")
		}
		if err := client.SetPersonaOverride(ctx, rest[0], rest[1]); err != nil {
			return err
		}
		fmt.Println("persona override set")
		return nil
	case "unset-persona":
		if len(rest) != 1 {
			return usageError("unset-persona <character-id>")
		}
		if err := client.UnsetPersonaOverride(ctx, rest[0]); err != nil {
			return err
		}
		fmt.Println("persona override cleared")
		return nil
	case "set-voice":
		if len(rest) != 2 {
			return usageError("set-voice <character-id> <voice-id>")
		}
		if err := client.SetVoiceOverride(ctx, rest[0], rest[1]); err != nil {
			return err
		}
		fmt.Println("voice override set")
		return nil
	case "unset-voice":
		if len(rest) != 1 {
			return usageError("unset-voice <character-id>")
		}
		if err := client.UnsetVoiceOverride(ctx, rest[0]); err != nil {
			return err
		}
		fmt.Println("voice override cleared")
		return nil
	case "update-account":
		return updateAccount(ctx, client, rest)
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func createPersona(ctx context.Context, client *account.Client, args []string) error {
	fs := flag.NewFlagSet("create-persona", flag.ExitOnError)
	name := fs.String("name", "", "persona name (required)")
	definition := fs.String("definition", "", "persona definition text")
	avatar := fs.String("avatar", "", "uploaded avatar path, e.g. uploaded/me.webp")
	fs.Parse(args)
	if *name == "" {
		return usageError("create-persona -name <name> [-definition text] [-avatar path]")
	}
	return printResult(client.CreatePersona(ctx, *name, *definition, *avatar))
}

func editPersona(ctx context.Context, client *account.Client, args []string) error {
	if len(args) < 1 || args[0] == "" {
		return usageError("edit-persona <persona-id> [-name n] [-definition text] [-avatar path]")
	}
	fs := flag.NewFlagSet("edit-persona", flag.ExitOnError)
	name := fs.String("name", "", "new name (empty keeps the current one)")
	definition := fs.String("definition", "", "new definition (empty keeps the current one)")
	avatar := fs.String("avatar", "", "new uploaded avatar path")
	fs.Parse(args[1:])
	return printResult(client.EditPersona(ctx, args[0], *name, *definition, *avatar))
}

func updateAccount(ctx context.Context, client *account.Client, args []string) error {
	fs := flag.NewFlagSet("update-account", flag.ExitOnError)
	username := fs.String("username", "", "account handle (required)")
	name := fs.String("name", "", "display name (required)")
	bio := fs.String("bio", "", "profile bio")
	avatar := fs.String("avatar", "", "uploaded avatar path")
	fs.Parse(args)
	if *username == "" || *name == "" {
		return usageError("update-account -username <u> -name <n> [-bio text] [-avatar path]")
	}
	err := client.UpdateAccount(ctx, account.AccountUpdate{
		Name:          *name,
		Username:      *username,
		Bio:           *bio,
		AvatarRelPath: *avatar,
	})
	if err != nil {
		return err
	}
	fmt.Println("account updated")
	return nil
}

func tokenInfo(sess *session.Session) error {
	info := map[string]any{
		"account_id": sess.AccountID(),
		"expired":    sess.Expired(),
	}
	if exp, ok := sess.TokenExpiry(); ok {
		info["expires_at"] = exp.Format(time.RFC3339)
	}
	return printJSON(info)
}

func usageError(form string) error {
	return fmt.Errorf("usage: charai %s", form)
}

func printResult(v any, err error) error {
	if err != nil {
		return err
	}
	return printJSON(v)
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func usage() {
	fmt.Print(`charai - command line client for the account API

Usage:
  charai [-config file] <command> [arguments]

Account:
  me                         show the signed-in profile
  settings                   dump the raw settings document
  followers                  list followers
  following                  list followed accounts
  update-account -username u -name n [-bio text] [-avatar path]
  token-info                 decode the session token offline

Personas:
  personas                   list personas
  persona <id>               fetch one persona
  create-persona -name n [-definition text] [-avatar path]
  edit-persona <id> [-name n] [-definition text] [-avatar path]
  delete-persona <id>        archive a persona
  set-default-persona <id>
  unset-default-persona
  set-persona <character-id> <persona-id>
  unset-persona <character-id>

Characters and voices:
  characters                 list characters you authored
  upvoted                    list characters you upvoted
  voices                     list voices you created
  set-voice <character-id> <voice-id>
  unset-voice <character-id>

Configuration is read from charai.yaml (or -config/CHARAI_CONFIG) with
CHARAI_* environment overrides; CHARAI_TOKEN is the session token.
`)
}
