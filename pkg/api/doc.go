// Package api defines the domain types for the Character.AI private web API.
//
// This package provides the value objects the client reshapes wire JSON into
// (Account, Persona, CharacterShort, Voice, Settings), the typed error
// taxonomy for failed operations, argument validation, and persona
// identifier generation.
//
// The platform's endpoints are undocumented; field mappings here follow the
// payloads the official web client exchanges. Types are immutable snapshots
// of server state; nothing in this package performs I/O or caches.
//
// Core types:
//   - [Account]: the authenticated user's profile
//   - [Persona]: a reusable identity profile owned by the account
//   - [CharacterShort]: lightweight character listing entry
//   - [Voice]: a synthesized voice asset
//   - [Settings]: loosely-typed account settings mapping, pushed back wholesale
//   - [CallError]: structured operation error with a kind and resource name
package api
