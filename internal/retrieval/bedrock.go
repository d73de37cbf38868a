package retrieval

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	bartypes "github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/types"
	"github.com/aws/smithy-go"
)

// Generator produces a generated answer for a question from a managed
// knowledge base using the given model.
type Generator interface {
	RetrieveAndGenerate(ctx context.Context, text, knowledgeBaseID, modelARN string) (string, error)
}

// BedrockGenerator implements Generator over the Bedrock agent runtime.
type BedrockGenerator struct {
	Client *bedrockagentruntime.Client
}

func (g *BedrockGenerator) RetrieveAndGenerate(ctx context.Context, text, knowledgeBaseID, modelARN string) (string, error) {
	out, err := g.Client.RetrieveAndGenerate(ctx, &bedrockagentruntime.RetrieveAndGenerateInput{
		Input: &bartypes.RetrieveAndGenerateInput{Text: aws.String(text)},
		RetrieveAndGenerateConfiguration: &bartypes.RetrieveAndGenerateConfiguration{
			Type: bartypes.RetrieveAndGenerateTypeKnowledgeBase,
			KnowledgeBaseConfiguration: &bartypes.KnowledgeBaseRetrieveAndGenerateConfiguration{
				KnowledgeBaseId: aws.String(knowledgeBaseID),
				ModelArn:        aws.String(modelARN),
			},
		},
	})
	if err != nil {
		return "", err
	}
	if out.Output == nil || out.Output.Text == nil {
		return "", nil
	}
	return *out.Output.Text, nil
}

// ClientErrCode reports the error code of a recognized service client
// error. Unrecognized failures return false and must not be retried.
func ClientErrCode(err error) (string, bool) {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode(), true
	}
	return "", false
}
