package botrt

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lexruntimev2"
)

const msgNoReply = "Sorry, I encountered a problem. Please try again."

// LexRuntime proxies utterances to an Amazon Lex V2 bot.
type LexRuntime struct {
	Client     *lexruntimev2.Client
	BotID      string
	BotAliasID string
	LocaleID   string
}

func (l *LexRuntime) Recognize(ctx context.Context, sessionID, text string) (Reply, error) {
	out, err := l.Client.RecognizeText(ctx, &lexruntimev2.RecognizeTextInput{
		BotId:      aws.String(l.BotID),
		BotAliasId: aws.String(l.BotAliasID),
		LocaleId:   aws.String(l.LocaleID),
		SessionId:  aws.String(sessionID),
		Text:       aws.String(text),
	})
	if err != nil {
		return Reply{}, err
	}

	reply := Reply{Message: msgNoReply, Intent: "Unknown", IntentState: "Unknown"}
	if len(out.Messages) > 0 && out.Messages[0].Content != nil && *out.Messages[0].Content != "" {
		reply.Message = *out.Messages[0].Content
	}
	if out.SessionState != nil && out.SessionState.Intent != nil {
		if out.SessionState.Intent.Name != nil {
			reply.Intent = *out.SessionState.Intent.Name
		}
		if s := string(out.SessionState.Intent.State); s != "" {
			reply.IntentState = s
		}
	}
	return reply, nil
}
