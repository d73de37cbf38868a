package fulfill

// Event is the inbound fulfillment hook payload, mirroring the Lex V2
// event shape.
type Event struct {
	SessionID       string `json:"sessionId"`
	InputTranscript string `json:"inputTranscript"`
	SessionState    struct {
		SessionAttributes map[string]string `json:"sessionAttributes"`
		Intent            struct {
			Name string `json:"name"`
		} `json:"intent"`
	} `json:"sessionState"`
}

// Envelope is the Lex V2 close response returned to the bot platform.
type Envelope struct {
	SessionState EnvelopeState     `json:"sessionState"`
	Messages     []EnvelopeMessage `json:"messages"`
}

type EnvelopeState struct {
	SessionAttributes map[string]string `json:"sessionAttributes"`
	DialogAction      DialogAction      `json:"dialogAction"`
	Intent            IntentResult      `json:"intent"`
}

type DialogAction struct {
	Type string `json:"type"`
}

type IntentResult struct {
	Name  string `json:"name"`
	State string `json:"state"`
}

type EnvelopeMessage struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// CloseResponse formats a close envelope carrying a single plain-text
// message.
func CloseResponse(attrs map[string]string, intentName, state, message string) Envelope {
	if attrs == nil {
		attrs = map[string]string{}
	}
	return Envelope{
		SessionState: EnvelopeState{
			SessionAttributes: attrs,
			DialogAction:      DialogAction{Type: "Close"},
			Intent:            IntentResult{Name: intentName, State: state},
		},
		Messages: []EnvelopeMessage{
			{ContentType: "PlainText", Content: message},
		},
	}
}
