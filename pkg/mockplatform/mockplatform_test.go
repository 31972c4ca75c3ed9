package mockplatform

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	platform := New()
	ts := httptest.NewServer(platform.Handler())
	t.Cleanup(ts.Close)
	return platform, ts
}

func do(t *testing.T, ts *httptest.Server, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, ts.URL+path, &buf)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Authorization", "Token test-token")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestRejectsMissingToken(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/chat/user/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

func TestMeEnvelope(t *testing.T) {
	_, ts := newTestServer(t)

	resp := do(t, ts, http.MethodGet, "/chat/user/", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	body := decode[map[string]map[string]accountWire](t, resp)
	acct := body["user"]["user"]
	if acct.Username != "kira" {
		t.Errorf("username = %q, want kira", acct.Username)
	}
	if acct.ID != 711243 {
		t.Errorf("id = %d, want 711243", acct.ID)
	}
	if acct.Account.Name != "Kira" {
		t.Errorf("profile name = %q, want Kira", acct.Account.Name)
	}
}

func TestPersonaLifecycle(t *testing.T) {
	_, ts := newTestServer(t)

	create := do(t, ts, http.MethodPost, "/chat/character/create/", personaCreateRequest{
		Identifier: "id:test-1",
		Name:       "Scholar",
		Definition: "Reads everything.",
		Visibility: "PRIVATE",
	})
	created := decode[personaResponse](t, create)
	if created.Status != "OK" || created.Persona == nil {
		t.Fatalf("create = %+v", created)
	}
	if created.Persona.ExternalID != "id:test-1" {
		t.Errorf("external_id = %q, want the minted identifier", created.Persona.ExternalID)
	}

	fetched := decode[personaResponse](t, do(t, ts, http.MethodGet, "/chat/persona/?id=id:test-1", nil))
	if fetched.Persona == nil || fetched.Persona.Name != "Scholar" {
		t.Fatalf("fetch after create = %+v", fetched)
	}

	archive := decode[personaResponse](t, do(t, ts, http.MethodPost, "/chat/persona/update/", personaUpdateRequest{
		ExternalID: "id:test-1",
		Name:       "Scholar",
		Archived:   true,
	}))
	if archive.Status != "OK" {
		t.Fatalf("archive = %+v", archive)
	}

	gone := decode[personaResponse](t, do(t, ts, http.MethodGet, "/chat/persona/?id=id:test-1", nil))
	if gone.Persona != nil {
		t.Errorf("archived persona still fetchable: %+v", gone.Persona)
	}

	again := decode[personaResponse](t, do(t, ts, http.MethodPost, "/chat/persona/update/", personaUpdateRequest{
		ExternalID: "id:test-1",
		Name:       "Scholar",
	}))
	if again.Status == "OK" || again.Error != "persona not found" {
		t.Errorf("update of archived persona = %+v", again)
	}

	var list struct {
		Personas []personaWire `json:"personas"`
	}
	listResp := do(t, ts, http.MethodGet, "/chat/personas/?force_refresh=1", nil)
	if err := json.NewDecoder(listResp.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Personas) != 1 || list.Personas[0].ExternalID != "id:wanderer" {
		t.Errorf("listing = %+v, want only the seeded persona", list.Personas)
	}
}

func TestSettingsReplace(t *testing.T) {
	_, ts := newTestServer(t)

	pushed := decode[settingsResponse](t, do(t, ts, http.MethodPost, "/chat/user/update_settings/", map[string]any{
		"default_persona_id": "id:wanderer",
		"personaOverrides":   map[string]any{"char-aria": "id:wanderer"},
	}))
	if !pushed.Success {
		t.Fatalf("update_settings success = false")
	}

	stored := decode[map[string]any](t, do(t, ts, http.MethodGet, "/chat/user/settings/", nil))
	if stored["default_persona_id"] != "id:wanderer" {
		t.Errorf("default_persona_id = %v", stored["default_persona_id"])
	}
	if _, kept := stored["enable_tts"]; kept {
		t.Errorf("settings were merged, want a full replace")
	}
}

func TestVoiceOverrideRoundTrip(t *testing.T) {
	platform, ts := newTestServer(t)

	set := decode[successResponse](t, do(t, ts, http.MethodPost, "/chat/character/char-aria/voice_override/update/", voiceOverrideRequest{VoiceID: "voice-dawn"}))
	if !set.Success {
		t.Fatalf("set override success = false")
	}
	if id, ok := platform.VoiceOverride("char-aria"); !ok || id != "voice-dawn" {
		t.Fatalf("recorded override = %q, %v", id, ok)
	}

	cleared := decode[successResponse](t, do(t, ts, http.MethodPost, "/chat/character/char-aria/voice_override/delete/", nil))
	if !cleared.Success {
		t.Fatalf("clear override success = false")
	}
	if _, ok := platform.VoiceOverride("char-aria"); ok {
		t.Errorf("override survived delete")
	}
}

func TestRejectUsername(t *testing.T) {
	platform, ts := newTestServer(t)
	platform.RejectUsername("taken")

	resp := decode[statusResponse](t, do(t, ts, http.MethodPost, "/chat/user/update/", accountUpdateRequest{
		Username: "taken",
		Name:     "Someone",
	}))
	if resp.Status == "OK" {
		t.Fatalf("update to a rejected username succeeded")
	}

	me := decode[map[string]map[string]accountWire](t, do(t, ts, http.MethodGet, "/chat/user/", nil))
	if me["user"]["user"].Username != "kira" {
		t.Errorf("username changed despite the rejection")
	}
}
