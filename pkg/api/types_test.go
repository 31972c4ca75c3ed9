package api

import (
	"encoding/json"
	"testing"
)

func TestAvatarURL(t *testing.T) {
	a := Avatar{FileName: "uploaded/2024/avatar-42.webp"}
	want := "https://characterai.io/i/400/static/avatars/uploaded/2024/avatar-42.webp?webp=true&anim=0"
	if got := a.URL(); got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}

	if got := (Avatar{}).URL(); got != "" {
		t.Errorf("URL() on empty avatar = %q, want empty", got)
	}
}

func TestAccountUnmarshal(t *testing.T) {
	raw := `{
		"username": "jdoe",
		"id": 711243,
		"account": {
			"name": "Jane Doe",
			"bio": "exploring",
			"avatar_file_name": "uploaded/jane.webp"
		}
	}`

	var got Account
	if err := json.Unmarshal([]byte(raw), &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if got.AccountID != 711243 {
		t.Errorf("AccountID = %d, want 711243", got.AccountID)
	}
	if got.Username != "jdoe" {
		t.Errorf("Username = %q, want %q", got.Username, "jdoe")
	}
	if got.Name != "Jane Doe" {
		t.Errorf("Name = %q, want %q", got.Name, "Jane Doe")
	}
	if got.Bio != "exploring" {
		t.Errorf("Bio = %q, want %q", got.Bio, "exploring")
	}
	if got.Avatar == nil || got.Avatar.FileName != "uploaded/jane.webp" {
		t.Errorf("Avatar = %+v, want file name %q", got.Avatar, "uploaded/jane.webp")
	}
}

func TestAccountUnmarshalMissingProfile(t *testing.T) {
	var got Account
	if err := json.Unmarshal([]byte(`{"username": "jdoe", "id": 5}`), &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Name != "" || got.Bio != "" || got.Avatar != nil {
		t.Errorf("profile fields should stay empty, got %+v", got)
	}
}

func TestPersonaUnmarshal(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantName   string
		wantAvatar bool
	}{
		{
			"participant name preferred",
			`{"external_id": "id:aaa", "participant__name": "Wanderer", "name": "stale", "avatar_file_name": "p.webp"}`,
			"Wanderer",
			true,
		},
		{
			"falls back to name",
			`{"external_id": "id:bbb", "name": "Wanderer"}`,
			"Wanderer",
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Persona
			if err := json.Unmarshal([]byte(tt.raw), &got); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if got.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", got.Name, tt.wantName)
			}
			if (got.Avatar != nil) != tt.wantAvatar {
				t.Errorf("Avatar = %+v, want present %v", got.Avatar, tt.wantAvatar)
			}
		})
	}
}

func TestPersonaUnmarshalFull(t *testing.T) {
	raw := `{
		"external_id": "id:bb5c2a95-99ce-4b3e-8f3a-7aa1e2cb5e10",
		"participant__name": "Wanderer",
		"definition": "Likes long walks.",
		"greeting": "Hello! This is my persona",
		"avatar_file_name": "uploaded/wanderer.webp",
		"user__username": "jdoe",
		"visibility": "PRIVATE"
	}`

	var got Persona
	if err := json.Unmarshal([]byte(raw), &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if got.PersonaID != "id:bb5c2a95-99ce-4b3e-8f3a-7aa1e2cb5e10" {
		t.Errorf("PersonaID = %q", got.PersonaID)
	}
	if got.Definition != "Likes long walks." {
		t.Errorf("Definition = %q", got.Definition)
	}
	if got.AuthorUsername != "jdoe" {
		t.Errorf("AuthorUsername = %q, want %q", got.AuthorUsername, "jdoe")
	}
	if got.Visibility != VisibilityPrivate {
		t.Errorf("Visibility = %q, want %q", got.Visibility, VisibilityPrivate)
	}
}

func TestCharacterShortUnmarshal(t *testing.T) {
	raw := `{
		"external_id": "char-abc123",
		"title": "Tour Guide",
		"greeting": "Welcome!",
		"visibility": "PUBLIC",
		"user__username": "jdoe"
	}`

	var got CharacterShort
	if err := json.Unmarshal([]byte(raw), &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if got.CharacterID != "char-abc123" {
		t.Errorf("CharacterID = %q, want %q", got.CharacterID, "char-abc123")
	}
	if got.Title != "Tour Guide" {
		t.Errorf("Title = %q, want %q", got.Title, "Tour Guide")
	}
	if got.Visibility != VisibilityPublic {
		t.Errorf("Visibility = %q, want %q", got.Visibility, VisibilityPublic)
	}
	if got.AuthorUsername != "jdoe" {
		t.Errorf("AuthorUsername = %q, want %q", got.AuthorUsername, "jdoe")
	}
}

func TestVoiceUnmarshal(t *testing.T) {
	raw := `{
		"id": "voice-9f2",
		"name": "Calm Narrator",
		"description": "Soft and even.",
		"gender": "neutral",
		"visibility": "private",
		"previewText": "Hello there.",
		"previewAudioUri": "https://voice.example/preview/9f2.mp3",
		"creatorInfo": {"id": 711243, "username": "jdoe"}
	}`

	var got Voice
	if err := json.Unmarshal([]byte(raw), &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if got.VoiceID != "voice-9f2" {
		t.Errorf("VoiceID = %q, want %q", got.VoiceID, "voice-9f2")
	}
	if got.Name != "Calm Narrator" {
		t.Errorf("Name = %q, want %q", got.Name, "Calm Narrator")
	}
	if got.PreviewAudioURI != "https://voice.example/preview/9f2.mp3" {
		t.Errorf("PreviewAudioURI = %q", got.PreviewAudioURI)
	}
	if got.CreatorUsername != "jdoe" {
		t.Errorf("CreatorUsername = %q, want %q", got.CreatorUsername, "jdoe")
	}
}

func TestVoiceUnmarshalNoCreator(t *testing.T) {
	var got Voice
	if err := json.Unmarshal([]byte(`{"id": "voice-1"}`), &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.CreatorUsername != "" {
		t.Errorf("CreatorUsername = %q, want empty", got.CreatorUsername)
	}
}

func TestSettingsAccessors(t *testing.T) {
	var s Settings
	if err := json.Unmarshal([]byte(`{
		"default_persona_id": "id:default",
		"personaOverrides": {"char-1": "id:override", "char-2": 7},
		"voiceOverrides": {"char-1": "voice-9f2"}
	}`), &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if got := s.DefaultPersonaID(); got != "id:default" {
		t.Errorf("DefaultPersonaID() = %q, want %q", got, "id:default")
	}

	overrides := s.PersonaOverrides()
	if len(overrides) != 1 {
		t.Fatalf("PersonaOverrides() = %v, want one valid entry", overrides)
	}
	if overrides["char-1"] != "id:override" {
		t.Errorf("PersonaOverrides()[char-1] = %q, want %q", overrides["char-1"], "id:override")
	}

	// Fields the client does not model stay in the map for the round trip.
	if _, ok := s["voiceOverrides"]; !ok {
		t.Error("unmodelled settings key was dropped")
	}
}

func TestSettingsAccessorsEmpty(t *testing.T) {
	s := Settings{}
	if got := s.DefaultPersonaID(); got != "" {
		t.Errorf("DefaultPersonaID() = %q, want empty", got)
	}
	if got := s.PersonaOverrides(); len(got) != 0 {
		t.Errorf("PersonaOverrides() = %v, want empty", got)
	}
}
