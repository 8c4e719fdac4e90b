// Package chat runs one conversation turn end to end: extract order fields
// from the user's utterance, fold them into the session state, and produce
// the assistant's next reply.
package chat

import (
	"context"
	"fmt"
	"log"

	"github.com/nahcub/call-bot/internal/extract"
	"github.com/nahcub/call-bot/internal/llm"
	"github.com/nahcub/call-bot/internal/session"
)

// systemPrompt steers the assistant toward gathering call details one
// question at a time, mirroring the agent's opening question in the UI.
const systemPrompt = `You are a helpful assistant that helps users fill out information for making phone calls.
Your role is to ask questions one by one to gather the necessary information.
Be friendly and helpful. Keep responses concise and clear.`

// Turn is one utterance in the conversation history supplied by the caller.
// History is request-scoped; the engine does not persist it.
type Turn struct {
	Role string `json:"role"` // "user" or "assistant"
	Text string `json:"text"`
}

// TurnResult is the outcome of processing one user turn.
type TurnResult struct {
	SessionID     string             `json:"session_id"`
	Reply         string             `json:"response"`
	Fields        session.FieldState `json:"fields"`
	FieldsUpdated bool               `json:"fields_updated"`
	OrderContent  string             `json:"order_content"`
}

// Engine drives the extraction, merge and reply for each user turn.
type Engine struct {
	store    *session.Store
	provider llm.Provider
	model    string

	// OnCallbackNumber, when set, observes callback-number updates per
	// session so callers can track the active dial-back number.
	OnCallbackNumber func(sessionID, number string)
}

// NewEngine creates a chat engine.
func NewEngine(store *session.Store, provider llm.Provider, model string) *Engine {
	return &Engine{
		store:    store,
		provider: provider,
		model:    model,
	}
}

// Store exposes the session store for route handlers.
func (e *Engine) Store() *session.Store { return e.store }

// ProcessTurn handles one user utterance. Extraction and merge always run
// and persist before the completion call, so a failing LLM backend never
// loses collected fields. An empty sessionID starts a new session. Turns
// against the same session must not run concurrently.
func (e *Engine) ProcessTurn(ctx context.Context, sessionID string, history []Turn, input string) (*TurnResult, error) {
	var sess *session.Session
	var err error

	if sessionID == "" {
		sess, err = e.store.Create(ctx)
		if err != nil {
			return nil, fmt.Errorf("creating session: %w", err)
		}
		sessionID = sess.ID
	} else {
		sess, err = e.store.Get(ctx, sessionID)
		if err != nil {
			return nil, fmt.Errorf("loading session: %w", err)
		}
		if sess == nil {
			return nil, fmt.Errorf("session not found: %s", sessionID)
		}
	}

	upd := extract.ExtractFields(input)
	state := sess.Fields

	merger := session.Merger{}
	if e.OnCallbackNumber != nil {
		merger.OnCallbackNumber = func(n string) { e.OnCallbackNumber(sessionID, n) }
	}
	changed := merger.Apply(&state, upd)

	if changed {
		if err := e.store.SaveFields(ctx, sessionID, state); err != nil {
			return nil, fmt.Errorf("saving fields: %w", err)
		}
	}

	reply, err := e.complete(ctx, history, input)
	if err != nil {
		// Fields are already persisted; the reply is what failed.
		return nil, fmt.Errorf("generating reply: %w", err)
	}

	return &TurnResult{
		SessionID:     sessionID,
		Reply:         reply,
		Fields:        state,
		FieldsUpdated: changed,
		OrderContent:  session.OrderContent(state),
	}, nil
}

func (e *Engine) complete(ctx context.Context, history []Turn, input string) (string, error) {
	messages := []llm.Message{{Role: llm.RoleSystem, Content: systemPrompt}}
	for _, turn := range history {
		switch turn.Role {
		case "user":
			messages = append(messages, llm.Message{Role: llm.RoleUser, Content: turn.Text})
		case "assistant":
			messages = append(messages, llm.Message{Role: llm.RoleAssistant, Content: turn.Text})
		default:
			log.Printf("chat: skipping history turn with role %q", turn.Role)
		}
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: input})

	resp, err := e.provider.Complete(ctx, llm.CompletionRequest{
		Model:       e.model,
		Messages:    messages,
		MaxTokens:   150,
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}
