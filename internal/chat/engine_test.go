package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/nahcub/call-bot/internal/db"
	"github.com/nahcub/call-bot/internal/llm"
	"github.com/nahcub/call-bot/internal/session"
)

// mockProvider implements llm.Provider for testing.
type mockProvider struct {
	reply    string
	err      error
	lastReq  llm.CompletionRequest
	numCalls int
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) Complete(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	m.lastReq = req
	m.numCalls++
	if m.err != nil {
		return nil, m.err
	}
	return &llm.CompletionResponse{Content: m.reply}, nil
}

func newTestEngine(t *testing.T, provider llm.Provider) *Engine {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewEngine(session.NewStore(database), provider, "gpt-3.5-turbo")
}

func TestProcessTurnCreatesSessionAndExtracts(t *testing.T) {
	provider := &mockProvider{reply: "Got it! What time works for you?"}
	engine := newTestEngine(t, provider)

	result, err := engine.ProcessTurn(context.Background(), "", nil,
		"I'd like to book a table for 4, the restaurant's number is 555-987-6543")
	if err != nil {
		t.Fatalf("ProcessTurn() error: %v", err)
	}

	if result.SessionID == "" {
		t.Error("no session ID assigned")
	}
	if result.Reply != "Got it! What time works for you?" {
		t.Errorf("Reply = %q", result.Reply)
	}
	if !result.FieldsUpdated {
		t.Error("FieldsUpdated = false")
	}
	if result.Fields.People != 4 || result.Fields.BusinessNumber != "+15559876543" {
		t.Errorf("Fields = %+v", result.Fields)
	}

	// State must be persisted under the returned session ID.
	sess, err := engine.Store().Get(context.Background(), result.SessionID)
	if err != nil || sess == nil {
		t.Fatalf("Get() = %v, %v", sess, err)
	}
	if sess.Fields != result.Fields {
		t.Errorf("persisted fields = %+v, want %+v", sess.Fields, result.Fields)
	}
}

func TestProcessTurnAccumulatesAcrossTurns(t *testing.T) {
	provider := &mockProvider{reply: "ok"}
	engine := newTestEngine(t, provider)
	ctx := context.Background()

	first, err := engine.ProcessTurn(ctx, "", nil, "I want to book a sushi place")
	if err != nil {
		t.Fatalf("first turn: %v", err)
	}

	second, err := engine.ProcessTurn(ctx, first.SessionID, nil, "call me back at 555-123-4567")
	if err != nil {
		t.Fatalf("second turn: %v", err)
	}

	if second.Fields.Query != "sushi restaurant" {
		t.Errorf("query lost across turns: %+v", second.Fields)
	}
	if second.Fields.CallbackNumber != "+15551234567" {
		t.Errorf("callback = %q", second.Fields.CallbackNumber)
	}
}

func TestProcessTurnUnknownSession(t *testing.T) {
	engine := newTestEngine(t, &mockProvider{reply: "ok"})
	if _, err := engine.ProcessTurn(context.Background(), "missing", nil, "hello"); err == nil {
		t.Error("expected error for unknown session")
	}
}

func TestProcessTurnLLMFailureKeepsFields(t *testing.T) {
	provider := &mockProvider{err: errors.New("backend down")}
	engine := newTestEngine(t, provider)
	ctx := context.Background()

	sess, err := engine.Store().Create(ctx)
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	_, err = engine.ProcessTurn(ctx, sess.ID, nil, "table for 2 at a pizza place")
	if err == nil {
		t.Fatal("expected error from failing provider")
	}

	got, err := engine.Store().Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Fields.People != 2 || got.Fields.Query != "pizzeria" {
		t.Errorf("fields not persisted before LLM call: %+v", got.Fields)
	}
}

func TestProcessTurnSendsHistory(t *testing.T) {
	provider := &mockProvider{reply: "ok"}
	engine := newTestEngine(t, provider)

	history := []Turn{
		{Role: "assistant", Text: "What is your purpose?"},
		{Role: "user", Text: "a reservation"},
	}
	_, err := engine.ProcessTurn(context.Background(), "", history, "for tonight")
	if err != nil {
		t.Fatalf("ProcessTurn() error: %v", err)
	}

	msgs := provider.lastReq.Messages
	// system + 2 history + current input
	if len(msgs) != 4 {
		t.Fatalf("got %d messages, want 4", len(msgs))
	}
	if msgs[0].Role != llm.RoleSystem {
		t.Errorf("first message role = %q", msgs[0].Role)
	}
	if msgs[3].Content != "for tonight" {
		t.Errorf("last message = %q", msgs[3].Content)
	}
}

func TestEngineCallbackSideChannel(t *testing.T) {
	engine := newTestEngine(t, &mockProvider{reply: "ok"})

	var gotSession, gotNumber string
	engine.OnCallbackNumber = func(sessionID, number string) {
		gotSession, gotNumber = sessionID, number
	}

	result, err := engine.ProcessTurn(context.Background(), "", nil, "reach me at 555-123-4567")
	if err != nil {
		t.Fatalf("ProcessTurn() error: %v", err)
	}
	if gotSession != result.SessionID || gotNumber != "+15551234567" {
		t.Errorf("side channel = (%q, %q)", gotSession, gotNumber)
	}
}
