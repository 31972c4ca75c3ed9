package mockplatform

import (
	"encoding/json"
	"net/http"
)

// --- wire types ---

type accountWire struct {
	ID       int64       `json:"id"`
	Username string      `json:"username"`
	Account  profileWire `json:"account"`
}

type profileWire struct {
	Name           string `json:"name"`
	Bio            string `json:"bio"`
	AvatarFileName string `json:"avatar_file_name,omitempty"`
}

type personaWire struct {
	ExternalID      string `json:"external_id"`
	Name            string `json:"name"`
	ParticipantName string `json:"participant__name"`
	Definition      string `json:"definition"`
	Greeting        string `json:"greeting"`
	AvatarFileName  string `json:"avatar_file_name,omitempty"`
	AuthorUsername  string `json:"user__username"`
	Visibility      string `json:"visibility"`
}

type characterWire struct {
	ExternalID     string `json:"external_id"`
	Title          string `json:"title"`
	Greeting       string `json:"greeting"`
	Visibility     string `json:"visibility"`
	AuthorUsername string `json:"user__username"`
}

type voiceWire struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	Gender          string      `json:"gender"`
	Visibility      string      `json:"visibility"`
	PreviewText     string      `json:"previewText"`
	PreviewAudioURI string      `json:"previewAudioUri"`
	CreatorInfo     creatorWire `json:"creatorInfo"`
}

type creatorWire struct {
	Username string `json:"username"`
}

type accountUpdateRequest struct {
	Username      string `json:"username"`
	Name          string `json:"name"`
	Bio           string `json:"bio"`
	AvatarType    string `json:"avatar_type"`
	AvatarRelPath string `json:"avatar_rel_path"`
}

type personaCreateRequest struct {
	Identifier    string `json:"identifier"`
	Name          string `json:"name"`
	Definition    string `json:"definition"`
	Greeting      string `json:"greeting"`
	AvatarRelPath string `json:"avatar_rel_path"`
	Visibility    string `json:"visibility"`
}

type personaUpdateRequest struct {
	ExternalID     string `json:"external_id"`
	Name           string `json:"name"`
	Definition     string `json:"definition"`
	Greeting       string `json:"greeting"`
	Archived       bool   `json:"archived"`
	AvatarFileName string `json:"avatar_file_name"`
	Visibility     string `json:"visibility"`
}

type voiceOverrideRequest struct {
	VoiceID string `json:"voice_id"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type personaResponse struct {
	Status  string       `json:"status"`
	Error   string       `json:"error,omitempty"`
	Persona *personaWire `json:"persona"`
}

type settingsResponse struct {
	Success  bool           `json:"success"`
	Settings map[string]any `json:"settings"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func (s *Server) personaWire(id string, rec *personaRecord) *personaWire {
	return &personaWire{
		ExternalID:      id,
		Name:            rec.name,
		ParticipantName: rec.name,
		Definition:      rec.definition,
		Greeting:        rec.greeting,
		AvatarFileName:  rec.avatarFile,
		AuthorUsername:  s.username,
		Visibility:      rec.visibility,
	}
}

// --- read endpoints ---

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"user": map[string]any{
			"user": accountWire{
				ID:       s.accountID,
				Username: s.username,
				Account: profileWire{
					Name:           s.name,
					Bio:            s.bio,
					AvatarFileName: s.avatarFile,
				},
			},
		},
	})
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.settings)
}

func (s *Server) handleFollowers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"followers": s.followers})
}

func (s *Server) handleFollowing(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"following": s.following})
}

func (s *Server) handlePersonaFetch(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := r.URL.Query().Get("id")
	rec, ok := s.personas[id]
	if !ok || rec.archived {
		// The platform answers 200 with a null persona for unknown ids.
		writeJSON(w, http.StatusOK, personaResponse{Status: "OK"})
		return
	}
	writeJSON(w, http.StatusOK, personaResponse{Status: "OK", Persona: s.personaWire(id, rec)})
}

func (s *Server) handlePersonaList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	personas := []personaWire{}
	for _, id := range s.order {
		rec := s.personas[id]
		if rec.archived {
			continue
		}
		personas = append(personas, *s.personaWire(id, rec))
	}
	writeJSON(w, http.StatusOK, map[string]any{"personas": personas})
}

func (s *Server) handleCharacters(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"characters": s.characters})
}

func (s *Server) handleUpvoted(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"characters": s.upvoted})
}

func (s *Server) handleVoices(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"voices": s.voices})
}

// --- write endpoints ---

func (s *Server) handleAccountUpdate(w http.ResponseWriter, r *http.Request) {
	var req accountUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, statusResponse{Status: "malformed body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rejectUsername != "" && req.Username == s.rejectUsername && req.Username != s.username {
		writeJSON(w, http.StatusOK, statusResponse{Status: "username is not available"})
		return
	}

	s.username = req.Username
	s.name = req.Name
	s.bio = req.Bio
	if req.AvatarType == "UPLOADED" && req.AvatarRelPath != "" {
		s.avatarFile = req.AvatarRelPath
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "OK"})
}

func (s *Server) handleSettingsUpdate(w http.ResponseWriter, r *http.Request) {
	var doc map[string]any
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeJSON(w, http.StatusBadRequest, statusResponse{Status: "malformed body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Clients push the whole document, so the stored one is replaced.
	s.settings = doc
	writeJSON(w, http.StatusOK, settingsResponse{Success: true, Settings: s.settings})
}

func (s *Server) handlePersonaCreate(w http.ResponseWriter, r *http.Request) {
	var req personaCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, statusResponse{Status: "malformed body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if req.Identifier == "" || req.Name == "" {
		writeJSON(w, http.StatusOK, personaResponse{Status: "ERROR", Error: "identifier and name are required"})
		return
	}
	if _, exists := s.personas[req.Identifier]; exists {
		writeJSON(w, http.StatusOK, personaResponse{Status: "ERROR", Error: "persona already exists"})
		return
	}

	rec := &personaRecord{
		name:       req.Name,
		definition: req.Definition,
		greeting:   req.Greeting,
		avatarFile: req.AvatarRelPath,
		visibility: req.Visibility,
	}
	s.addPersona(req.Identifier, rec)
	writeJSON(w, http.StatusOK, personaResponse{Status: "OK", Persona: s.personaWire(req.Identifier, rec)})
}

func (s *Server) handlePersonaUpdate(w http.ResponseWriter, r *http.Request) {
	var req personaUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, statusResponse{Status: "malformed body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.personas[req.ExternalID]
	if !ok || rec.archived {
		writeJSON(w, http.StatusOK, personaResponse{Status: "ERROR", Error: "persona not found"})
		return
	}

	if req.Archived {
		rec.archived = true
	} else {
		rec.name = req.Name
		rec.definition = req.Definition
		rec.greeting = req.Greeting
		rec.avatarFile = req.AvatarFileName
		if req.Visibility != "" {
			rec.visibility = req.Visibility
		}
	}
	writeJSON(w, http.StatusOK, personaResponse{Status: "OK", Persona: s.personaWire(req.ExternalID, rec)})
}

func (s *Server) handleVoiceOverrideSet(w http.ResponseWriter, r *http.Request) {
	var req voiceOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, successResponse{Success: false})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if req.VoiceID == "" {
		writeJSON(w, http.StatusOK, successResponse{Success: false})
		return
	}
	s.voiceOverrides[r.PathValue("id")] = req.VoiceID
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) handleVoiceOverrideClear(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.voiceOverrides, r.PathValue("id"))
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}
