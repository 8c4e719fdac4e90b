package chat

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/nahcub/call-bot/internal/db"
	"github.com/nahcub/call-bot/internal/extract"
	"github.com/nahcub/call-bot/internal/outbound"
	"github.com/nahcub/call-bot/internal/session"
)

func newTestRouter(t *testing.T, vendor *httptest.Server) (chi.Router, *Engine) {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	engine := NewEngine(session.NewStore(database), &mockProvider{reply: "How can I help?"}, "gpt-3.5-turbo")

	cfg := outbound.Config{APIKey: "k", AgentID: "a", PhoneNumberID: "p"}
	if vendor != nil {
		cfg.BaseURL = vendor.URL
	}

	r := chi.NewRouter()
	RegisterRoutes(r, engine, outbound.NewClient(cfg))
	return r, engine
}

func postJSON(t *testing.T, r chi.Router, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshalling request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestChatEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	w := postJSON(t, r, "/chat", map[string]any{
		"message": "book a table for 4 at a pizzeria",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		OK           bool               `json:"ok"`
		SessionID    string             `json:"session_id"`
		Response     string             `json:"response"`
		Fields       session.FieldState `json:"fields"`
		OrderContent string             `json:"order_content"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !resp.OK || resp.SessionID == "" {
		t.Errorf("response = %+v", resp)
	}
	if resp.Fields.Purpose != extract.PurposeReservation || resp.Fields.People != 4 {
		t.Errorf("fields = %+v", resp.Fields)
	}
	if resp.OrderContent == "" {
		t.Error("order_content empty")
	}
}

func TestChatEndpointEmptyMessage(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	w := postJSON(t, r, "/chat", map[string]any{"message": "   "})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestChatEndpointErrorBodyIsValidJSON(t *testing.T) {
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	// Provider failure whose message carries quotes and a backslash; the
	// error body must still decode.
	provider := &mockProvider{err: errors.New(`backend said "no" \ again`)}
	engine := NewEngine(session.NewStore(database), provider, "gpt-3.5-turbo")

	r := chi.NewRouter()
	RegisterRoutes(r, engine, outbound.NewClient(outbound.Config{}))

	w := postJSON(t, r, "/chat", map[string]any{"message": "hello"})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}

	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error body is not valid JSON: %v (body = %s)", err, w.Body.String())
	}
	if !strings.Contains(resp.Error, `"no"`) {
		t.Errorf("error message lost in transit: %q", resp.Error)
	}
}

func TestCallEndpointMissingBusinessNumber(t *testing.T) {
	vendorHit := false
	vendor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		vendorHit = true
	}))
	defer vendor.Close()

	r, _ := newTestRouter(t, vendor)

	w := postJSON(t, r, "/call", map[string]any{
		"fields": session.FieldState{Purpose: extract.PurposeReservation},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if vendorHit {
		t.Error("vendor called despite missing business number")
	}
}

func TestCallEndpointFromSession(t *testing.T) {
	vendor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"callSid": "CA42"})
	}))
	defer vendor.Close()

	r, engine := newTestRouter(t, vendor)

	sess, err := engine.Store().Create(t.Context())
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	fields := session.FieldState{BusinessNumber: "+15559876543", Query: "pizzeria"}
	if err := engine.Store().SaveFields(t.Context(), sess.ID, fields); err != nil {
		t.Fatalf("SaveFields() error: %v", err)
	}

	w := postJSON(t, r, "/call", map[string]any{"session_id": sess.ID})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		OK     bool   `json:"ok"`
		CallID string `json:"call_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !resp.OK || resp.CallID != "CA42" {
		t.Errorf("response = %+v", resp)
	}
}

func TestCallEndpointVendorFailure(t *testing.T) {
	vendor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer vendor.Close()

	r, _ := newTestRouter(t, vendor)

	w := postJSON(t, r, "/call", map[string]any{
		"fields": session.FieldState{BusinessNumber: "+15559876543"},
	})
	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", w.Code)
	}
}

func TestSessionEndpoints(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	w := postJSON(t, r, "/sessions", map[string]any{})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d", w.Code)
	}
	var sess session.Session
	if err := json.Unmarshal(w.Body.Bytes(), &sess); err != nil {
		t.Fatalf("decoding session: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/sessions/"+sess.ID, nil)
	got := httptest.NewRecorder()
	r.ServeHTTP(got, req)
	if got.Code != http.StatusOK {
		t.Errorf("get status = %d", got.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/sessions/does-not-exist", nil)
	got = httptest.NewRecorder()
	r.ServeHTTP(got, req)
	if got.Code != http.StatusNotFound {
		t.Errorf("missing session status = %d, want 404", got.Code)
	}
}
