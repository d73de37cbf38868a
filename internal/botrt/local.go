package botrt

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"chatkb/internal/fulfill"
)

// intentPattern maps trigger phrases to an intent name. Patterns are
// evaluated in order; the first hit wins, anything unmatched is the
// fallback intent.
type intentPattern struct {
	phrases []string
	intent  string
}

var intentPatterns = []intentPattern{
	{phrases: []string{" hello", " hi ", " hey ", " good morning", " good afternoon", " good evening"}, intent: fulfill.IntentGreeting},
	{phrases: []string{" status", " how are you"}, intent: fulfill.IntentCheckStatus},
}

func recognizeIntent(text string) string {
	lower := " " + strings.ToLower(strings.TrimSpace(text)) + " "
	for _, p := range intentPatterns {
		for _, phrase := range p.phrases {
			if strings.Contains(lower, phrase) {
				return p.intent
			}
		}
	}
	return fulfill.IntentFallback
}

// LocalRuntime answers utterances with the in-process fulfillment
// engine, standing in for a remote bot. Intent recognition here is a
// deliberately small pattern match; the real NLU lives in the bot
// platform.
type LocalRuntime struct {
	Engine *fulfill.Engine
}

func (l *LocalRuntime) Recognize(ctx context.Context, sessionID, text string) (Reply, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	intent := recognizeIntent(text)
	res := l.Engine.Handle(ctx, fulfill.Request{
		SessionID:       sessionID,
		IntentName:      intent,
		InputTranscript: text,
	})
	return Reply{Message: res.Message, Intent: intent, IntentState: res.State}, nil
}
