// Package mockplatform serves an in-memory double of the platform's
// private account API. Both production hosts are collapsed onto one
// listener: the chat endpoints at their usual paths and the multimodal
// voice listing under /multimodal/. State is mutable, so create, edit
// and archive flows behave like the real service within a single
// process lifetime.
//
// Construct with New, mount Handler on an http.Server or
// httptest.Server, and authenticate with any non-empty "Token ..."
// Authorization header.
package mockplatform

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
)

// Server holds the mutable platform state. All handlers and accessors
// are safe for concurrent use.
type Server struct {
	mu sync.Mutex

	accountID  int64
	username   string
	name       string
	bio        string
	avatarFile string

	settings map[string]any

	personas map[string]*personaRecord
	order    []string

	characters []characterWire
	upvoted    []characterWire
	voices     []voiceWire

	followers []string
	following []string

	voiceOverrides map[string]string

	rejectUsername string
}

type personaRecord struct {
	name       string
	definition string
	greeting   string
	avatarFile string
	visibility string
	archived   bool
}

// New returns a platform seeded with one account, one persona, a few
// characters and a voice, enough for every read endpoint to answer with
// something.
func New() *Server {
	s := &Server{
		accountID:  711243,
		username:   "kira",
		name:       "Kira",
		bio:        "Exploring worlds.",
		avatarFile: "uploaded/kira.webp",
		settings: map[string]any{
			"default_persona_id": "",
			"personaOverrides":   map[string]any{},
			"enable_tts":         true,
		},
		personas:       make(map[string]*personaRecord),
		voiceOverrides: make(map[string]string),
		followers:      []string{"rhea"},
		following:      []string{"rhea", "tomas"},
	}

	s.addPersona("id:wanderer", &personaRecord{
		name:       "Wanderer",
		definition: "Travels a lot.",
		greeting:   "Well met.",
		visibility: "PRIVATE",
	})

	s.characters = []characterWire{
		{ExternalID: "char-aria", Title: "Aria", Greeting: "Hi, I am Aria.", Visibility: "PUBLIC", AuthorUsername: "kira"},
		{ExternalID: "char-brinn", Title: "Brinn", Greeting: "Brinn here.", Visibility: "PRIVATE", AuthorUsername: "kira"},
	}
	s.upvoted = []characterWire{
		{ExternalID: "char-sage", Title: "Sage", Greeting: "Ask away.", Visibility: "PUBLIC", AuthorUsername: "tomas"},
	}
	s.voices = []voiceWire{
		{
			ID:              "voice-dawn",
			Name:            "Dawn",
			Description:     "Soft morning voice.",
			Gender:          "female",
			Visibility:      "public",
			PreviewText:     "Good morning.",
			PreviewAudioURI: "https://voice.invalid/dawn.mp3",
			CreatorInfo:     creatorWire{Username: "kira"},
		},
	}
	return s
}

func (s *Server) addPersona(id string, rec *personaRecord) {
	s.personas[id] = rec
	s.order = append(s.order, id)
}

// Handler routes every endpoint the account API exposes. All routes sit
// behind the token check.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// --- chat host ---
	mux.HandleFunc("GET /chat/user/{$}", s.handleMe)
	mux.HandleFunc("GET /chat/user/settings/{$}", s.handleSettings)
	mux.HandleFunc("GET /chat/user/followers/{$}", s.handleFollowers)
	mux.HandleFunc("GET /chat/user/following/{$}", s.handleFollowing)
	mux.HandleFunc("GET /chat/persona/{$}", s.handlePersonaFetch)
	mux.HandleFunc("GET /chat/personas/{$}", s.handlePersonaList)
	mux.HandleFunc("GET /chat/characters/{$}", s.handleCharacters)
	mux.HandleFunc("GET /chat/user/characters/upvoted/{$}", s.handleUpvoted)
	mux.HandleFunc("POST /chat/user/update/{$}", s.handleAccountUpdate)
	mux.HandleFunc("POST /chat/user/update_settings/{$}", s.handleSettingsUpdate)
	mux.HandleFunc("POST /chat/character/create/{$}", s.handlePersonaCreate)
	mux.HandleFunc("POST /chat/persona/update/{$}", s.handlePersonaUpdate)
	mux.HandleFunc("POST /chat/character/{id}/voice_override/update/{$}", s.handleVoiceOverrideSet)
	mux.HandleFunc("POST /chat/character/{id}/voice_override/delete/{$}", s.handleVoiceOverrideClear)

	// --- multimodal host ---
	mux.HandleFunc("GET /multimodal/api/v1/voices/user", s.handleVoices)

	return s.authenticated(mux)
}

// RejectUsername makes later profile updates to the given username fail
// the way the platform refuses a taken handle.
func (s *Server) RejectUsername(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejectUsername = username
}

// VoiceOverride reports the voice override recorded for a character.
// Overrides are write-only on the wire, so tests read them back here.
func (s *Server) VoiceOverride(characterID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.voiceOverrides[characterID]
	return id, ok
}

func (s *Server) authenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Token ") || strings.TrimPrefix(auth, "Token ") == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"detail": "Authentication credentials were not provided.",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
