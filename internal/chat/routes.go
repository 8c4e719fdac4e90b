package chat

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/nahcub/call-bot/internal/extract"
	"github.com/nahcub/call-bot/internal/outbound"
	"github.com/nahcub/call-bot/internal/session"
)

// RegisterRoutes mounts the chat and call-placement API.
func RegisterRoutes(r chi.Router, engine *Engine, dialer *outbound.Client) {
	r.Post("/chat", handleChat(engine))
	r.Post("/call", handleCall(engine, dialer))
	r.Post("/sessions", handleCreateSession(engine))
	r.Get("/sessions/{id}", handleGetSession(engine))
	r.Get("/ws", handleWebSocket(engine))
}

// writeError sends a JSON error body. Messages go through the encoder so
// quotes and control characters in wrapped errors stay escaped.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

type chatHTTPRequest struct {
	SessionID           string `json:"session_id"`
	Message             string `json:"message"`
	ConversationHistory []Turn `json:"conversation_history"`
}

func handleChat(engine *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatHTTPRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(req.Message) == "" {
			writeError(w, http.StatusBadRequest, "message is required")
			return
		}

		result, err := engine.ProcessTurn(r.Context(), req.SessionID, req.ConversationHistory, req.Message)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"ok":             true,
			"session_id":     result.SessionID,
			"response":       result.Reply,
			"fields":         result.Fields,
			"fields_updated": result.FieldsUpdated,
			"order_content":  result.OrderContent,
		})
	}
}

// callHTTPRequest accepts either an explicit order (to_number + fields, the
// wire shape the frontend composes) or a session_id to dial from stored
// state.
type callHTTPRequest struct {
	SessionID string              `json:"session_id"`
	ToNumber  string              `json:"to_number"`
	Fields    *session.FieldState `json:"fields"`
}

func handleCall(engine *Engine, dialer *outbound.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req callHTTPRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		fields := req.Fields
		if fields == nil {
			if req.SessionID == "" {
				writeError(w, http.StatusBadRequest, "fields or session_id is required")
				return
			}
			sess, err := engine.Store().Get(r.Context(), req.SessionID)
			if err != nil {
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			if sess == nil {
				writeError(w, http.StatusNotFound, "session not found")
				return
			}
			fields = &sess.Fields
		}

		toNumber := req.ToNumber
		if toNumber == "" {
			toNumber = fields.BusinessNumber
		}
		// Advisory validation from the extractor becomes binding here:
		// nothing is dialed without a plausible business number.
		if !extract.ValidPhone(toNumber) {
			writeError(w, http.StatusBadRequest, "business phone number is missing or invalid")
			return
		}

		result, err := dialer.PlaceCall(r.Context(), outbound.CallRequest{
			ToNumber: toNumber,
			Fields:   *fields,
		})
		if err != nil {
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"ok":       true,
			"call_id":  result.CallID,
			"response": json.RawMessage(result.Response),
		})
	}
}

func handleCreateSession(engine *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := engine.Store().Create(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(sess)
	}
}

func handleGetSession(engine *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		sess, err := engine.Store().Get(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if sess == nil {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":            sess.ID,
			"fields":        sess.Fields,
			"order_content": session.OrderContent(sess.Fields),
			"created_at":    sess.CreatedAt,
			"updated_at":    sess.UpdatedAt,
		})
	}
}
