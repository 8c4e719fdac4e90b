package chat

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/nahcub/call-bot/internal/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest is the incoming WebSocket message format.
type wsRequest struct {
	Type      string `json:"type"`       // "message"
	SessionID string `json:"session_id"` // empty for new sessions
	Content   string `json:"content"`
}

// wsResponse is the outgoing WebSocket message format.
type wsResponse struct {
	Type         string              `json:"type"` // "response" or "error"
	SessionID    string              `json:"session_id"`
	Content      string              `json:"content"`
	Fields       *session.FieldState `json:"fields,omitempty"`
	OrderContent string              `json:"order_content,omitempty"`
}

// handleWebSocket runs a chat conversation over one WebSocket connection.
// The conversation history lives only as long as the connection.
func handleWebSocket(engine *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("chat: websocket upgrade: %v", err)
			return
		}
		defer conn.Close()

		var history []Turn
		sessionID := ""

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("chat: websocket read: %v", err)
				}
				return
			}

			var req wsRequest
			if err := json.Unmarshal(msg, &req); err != nil {
				sendWSError(conn, sessionID, "invalid message format")
				continue
			}
			if req.Content == "" {
				sendWSError(conn, req.SessionID, "content is required")
				continue
			}
			if req.Type != "message" {
				sendWSError(conn, req.SessionID, "unknown message type: "+req.Type)
				continue
			}
			if req.SessionID != "" {
				sessionID = req.SessionID
			}

			result, err := engine.ProcessTurn(r.Context(), sessionID, history, req.Content)
			if err != nil {
				sendWSError(conn, sessionID, "processing failed: "+err.Error())
				continue
			}
			sessionID = result.SessionID

			history = append(history,
				Turn{Role: "user", Text: req.Content},
				Turn{Role: "assistant", Text: result.Reply},
			)

			sendWS(conn, wsResponse{
				Type:         "response",
				SessionID:    result.SessionID,
				Content:      result.Reply,
				Fields:       &result.Fields,
				OrderContent: result.OrderContent,
			})
		}
	}
}

func sendWS(conn *websocket.Conn, resp wsResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("chat: websocket write: %v", err)
	}
}

func sendWSError(conn *websocket.Conn, sessionID, message string) {
	sendWS(conn, wsResponse{
		Type:      "error",
		SessionID: sessionID,
		Content:   message,
	})
}
