// Package outbound places phone calls through the ElevenLabs conversational
// agent API. The agent receives the collected order fields as dynamic
// variables and speaks to the business on the user's behalf.
package outbound

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/nahcub/call-bot/internal/session"
)

const (
	defaultBaseURL = "https://api.elevenlabs.io"
	callPath       = "/v1/convai/twilio/outbound-call"
	callTimeout    = 30 * time.Second
)

// Config holds the ElevenLabs agent credentials.
type Config struct {
	APIKey        string
	AgentID       string
	PhoneNumberID string
	// BaseURL overrides the API host, mainly for tests.
	BaseURL string
}

// Client places outbound agent calls.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates an outbound call client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: callTimeout},
	}
}

// CallRequest describes one call to place.
type CallRequest struct {
	ToNumber string
	Fields   session.FieldState
}

// CallResult is the vendor's acknowledgement of a placed call.
type CallResult struct {
	CallID   string          `json:"call_id"`
	Response json.RawMessage `json:"response"`
}

type convaiRequest struct {
	AgentID                          string     `json:"agent_id"`
	AgentPhoneNumberID               string     `json:"agent_phone_number_id"`
	ToNumber                         string     `json:"to_number"`
	ConversationInitiationClientData clientData `json:"conversation_initiation_client_data"`
}

type clientData struct {
	Type             string            `json:"type"`
	DynamicVariables map[string]string `json:"dynamic_variables"`
}

// PlaceCall requests an outbound agent call. A non-2xx vendor response is
// returned as an error carrying the status and body.
func (c *Client) PlaceCall(ctx context.Context, req CallRequest) (*CallResult, error) {
	body := convaiRequest{
		AgentID:            c.cfg.AgentID,
		AgentPhoneNumberID: c.cfg.PhoneNumberID,
		ToNumber:           req.ToNumber,
		ConversationInitiationClientData: clientData{
			Type:             "conversation_initiation_client_data",
			DynamicVariables: DynamicVariables(req.Fields),
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshalling call request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+callPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building call request: %w", err)
	}
	httpReq.Header.Set("xi-api-key", c.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("placing call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading call response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("call request rejected: status %d: %s", resp.StatusCode, respBody)
	}

	var ack struct {
		CallSid        string `json:"callSid"`
		ConversationID string `json:"conversation_id"`
	}
	if err := json.Unmarshal(respBody, &ack); err != nil {
		return nil, fmt.Errorf("parsing call response: %w", err)
	}

	callID := ack.CallSid
	if callID == "" {
		callID = ack.ConversationID
	}

	return &CallResult{CallID: callID, Response: respBody}, nil
}

// DynamicVariables maps the field state onto the agent's dynamic variables,
// substituting the agent-side defaults for unset slots.
func DynamicVariables(f session.FieldState) map[string]string {
	vars := map[string]string{
		"NAME":             "default name",
		"CALLBACK_NUMBER":  "default callback number",
		"SPECIAL_REQUESTS": "default notes",
		"PURPOSE":          "default purpose",
		"QUERY":            "default query",
		"TIME":             "default time",
		"PEOPLE":           "default people",
		"BUSINESS_NUMBER":  "default business number",
	}
	if f.Name != "" {
		vars["NAME"] = f.Name
	}
	if f.CallbackNumber != "" {
		vars["CALLBACK_NUMBER"] = f.CallbackNumber
	}
	if f.SpecialRequests != "" {
		vars["SPECIAL_REQUESTS"] = f.SpecialRequests
	}
	if f.Purpose != "" {
		vars["PURPOSE"] = string(f.Purpose)
	}
	if f.Query != "" {
		vars["QUERY"] = f.Query
	}
	if f.Time != "" {
		vars["TIME"] = f.Time
	}
	if f.People != 0 {
		vars["PEOPLE"] = strconv.Itoa(f.People)
	}
	if f.BusinessNumber != "" {
		vars["BUSINESS_NUMBER"] = f.BusinessNumber
	}
	return vars
}
