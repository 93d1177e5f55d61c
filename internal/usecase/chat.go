package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/xHiades/presidentestic/internal/credentials"
	"github.com/xHiades/presidentestic/internal/domain"
)

// KeySource yields the provider API key for one invocation.
type KeySource interface {
	APIKey(ctx context.Context) (string, error)
}

// Completer issues a single chat completion. ok is false when the provider
// answered without usable content.
type Completer interface {
	Complete(ctx context.Context, apiKey string, in domain.CompletionRequest) (content string, ok bool, err error)
}

type ChatService struct {
	keys KeySource
	llm  Completer
}

// AskInput is the raw request body as delivered by the hosting platform.
type AskInput struct {
	Body          string
	Base64Encoded bool
}

type AskOutput struct {
	Answer string
}

func NewChatService(keys KeySource, llm Completer) (*ChatService, error) {
	if keys == nil {
		return nil, errors.New("usecase: key source must not be nil")
	}
	if llm == nil {
		return nil, errors.New("usecase: llm client must not be nil")
	}
	return &ChatService{keys: keys, llm: llm}, nil
}

// Ask runs one chat call: resolve the key, decode the body, validate, call
// the provider and extract the answer. Every failure is an *Error.
func (s *ChatService) Ask(ctx context.Context, in AskInput) (AskOutput, error) {
	apiKey, err := s.keys.APIKey(ctx)
	if err != nil {
		if errors.Is(err, credentials.ErrMissing) {
			return AskOutput{}, newError(ErrorConfig, ReasonMissingAPIKey, err)
		}
		return AskOutput{}, newError(ErrorConfig, ReasonAPIKeyLookup, err)
	}

	req, err := decodeChatRequest(in.Body, in.Base64Encoded)
	if err != nil {
		if errors.Is(err, errInvalidFieldType) {
			return AskOutput{}, newError(ErrorInvalidInput, ReasonInvalidFieldType, err)
		}
		return AskOutput{}, newError(ErrorInternal, ReasonMalformedBody, err)
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		return AskOutput{}, newError(ErrorInvalidInput, ReasonEmptyQuestion, nil)
	}

	content, ok, err := s.llm.Complete(ctx, apiKey, buildCompletionRequest(req.SystemPrompt, question))
	if err != nil {
		if _, isStatus := upstreamStatusCode(err); isStatus {
			return AskOutput{}, newError(ErrorUpstream, ReasonProviderStatus, err)
		}
		return AskOutput{}, newError(ErrorInternal, ReasonProviderRequest, err)
	}

	return AskOutput{Answer: extractAnswer(content, ok)}, nil
}
