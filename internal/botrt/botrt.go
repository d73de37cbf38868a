package botrt

import "context"

// Reply is the bot's answer to one recognized utterance.
type Reply struct {
	Message     string
	Intent      string
	IntentState string
}

// Runtime turns a raw utterance into a fulfilled bot reply. The
// gateway is written against this interface so it can proxy either to
// a remote Lex bot or to the in-process engine.
type Runtime interface {
	Recognize(ctx context.Context, sessionID, text string) (Reply, error)
}
