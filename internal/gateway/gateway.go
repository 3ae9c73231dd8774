// Package gateway is the boundary between the pipeline and the
// completion service. The pipeline only sees the Completer interface.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"github.com/kpauljoseph/ankigen/pkg/logger"
)

// ErrService wraps every completion-service failure: transport, auth,
// rate limits, timeouts, and replies with no choices.
var ErrService = errors.New("completion service error")

type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type OpenAIGateway struct {
	client  openai.Client
	model   string
	timeout time.Duration
	logger  *logger.Logger
}

func NewOpenAIGateway(apiKey, organizationID, model string, timeout time.Duration, log *logger.Logger, opts ...option.RequestOption) *OpenAIGateway {
	clientOpts := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithOrganization(organizationID),
	}, opts...)

	return &OpenAIGateway{
		client:  openai.NewClient(clientOpts...),
		model:   model,
		timeout: timeout,
		logger:  log,
	}
}

// Complete sends the prompt as a single user message and returns the
// first choice's text. The call is bounded by the configured timeout;
// a hung service surfaces as ErrService, not a hung run.
func (g *OpenAIGateway) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	g.logger.Debug("Requesting completion from model %s (prompt length %d)", g.model, len(prompt))

	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: request timed out after %s", ErrService, g.timeout)
		}
		return "", fmt.Errorf("%w: %w", ErrService, err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: reply contained no choices", ErrService)
	}

	return completion.Choices[0].Message.Content, nil
}
