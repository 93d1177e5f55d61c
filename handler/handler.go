package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"github.com/xHiades/presidentestic/internal/domain"
	"github.com/xHiades/presidentestic/internal/usecase"
)

const correlationHeader = "X-Correlation-Id"

// User-facing error messages.
const (
	msgMethodNotAllowed = "Método no permitido"
	msgMissingAPIKey    = "No está configurada la clave de OpenAI (OPENAI_API_KEY)."
	msgMissingQuestion  = "Falta la pregunta."
	msgInvalidFields    = "Los campos question y systemPrompt deben ser texto."
	msgUpstream         = "La API de OpenAI devolvió un error."
	msgInternal         = "Ocurrió un error interno en la función."
)

type ChatUseCase interface {
	Ask(ctx context.Context, in usecase.AskInput) (usecase.AskOutput, error)
}

type Handler struct {
	uc     ChatUseCase
	logger *slog.Logger
}

type Option func(*Handler)

// WithLogger overrides slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

func NewHandler(uc ChatUseCase, opts ...Option) (*Handler, error) {
	if uc == nil {
		return nil, errors.New("handler: use case must not be nil")
	}
	h := &Handler{uc: uc, logger: slog.Default()}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Handle serves one API Gateway proxy event. The returned error is always
// nil: every failure is reported as a JSON response.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (resp events.APIGatewayProxyResponse, err error) {
	start := time.Now()
	correlationID := correlationIDFrom(req.Headers)
	logger := h.logger.With("correlation_id", correlationID)

	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, "chat handler panicked", "panic", r)
			resp, err = jsonResponse(http.StatusInternalServerError, correlationID, domain.ChatResponse{Error: msgInternal}), nil
		}
	}()

	switch {
	case strings.EqualFold(req.HTTPMethod, http.MethodOptions):
		return preflightResponse(correlationID), nil
	case !strings.EqualFold(req.HTTPMethod, http.MethodPost):
		logger.InfoContext(ctx, "method not allowed", "method", req.HTTPMethod)
		return jsonResponse(http.StatusMethodNotAllowed, correlationID, domain.ChatResponse{Error: msgMethodNotAllowed}), nil
	}

	out, askErr := h.uc.Ask(ctx, usecase.AskInput{Body: req.Body, Base64Encoded: req.IsBase64Encoded})
	if askErr != nil {
		return h.errorResponse(ctx, logger, correlationID, askErr), nil
	}

	logger.InfoContext(ctx, "chat answered", "latency_ms", time.Since(start).Milliseconds())
	resp = jsonResponse(http.StatusOK, correlationID, domain.ChatResponse{Answer: out.Answer})
	resp.Headers["Access-Control-Allow-Origin"] = "*"
	return resp, nil
}

func (h *Handler) errorResponse(ctx context.Context, logger *slog.Logger, correlationID string, err error) events.APIGatewayProxyResponse {
	var ucErr *usecase.Error
	if !errors.As(err, &ucErr) {
		logger.ErrorContext(ctx, "chat request failed", "err", err)
		return jsonResponse(http.StatusInternalServerError, correlationID, domain.ChatResponse{Error: msgInternal})
	}

	switch ucErr.Code {
	case usecase.ErrorInvalidInput:
		logger.InfoContext(ctx, "chat request rejected", "reason", ucErr.Reason)
		msg := msgMissingQuestion
		if ucErr.Reason == usecase.ReasonInvalidFieldType {
			msg = msgInvalidFields
		}
		return jsonResponse(http.StatusBadRequest, correlationID, domain.ChatResponse{Error: msg})

	case usecase.ErrorConfig:
		logger.ErrorContext(ctx, "OPENAI_API_KEY is not available", "reason", ucErr.Reason, "err", ucErr.Err)
		return jsonResponse(http.StatusInternalServerError, correlationID, domain.ChatResponse{Error: msgMissingAPIKey})

	case usecase.ErrorUpstream:
		status, _ := ucErr.UpstreamStatus()
		logger.ErrorContext(ctx, "openai returned an error", "status", status, "body", ucErr.UpstreamBody())
		return jsonResponse(http.StatusInternalServerError, correlationID, domain.ChatResponse{Error: msgUpstream, Status: status})

	default:
		logger.ErrorContext(ctx, "chat request failed", "reason", ucErr.Reason, "err", ucErr.Err)
		return jsonResponse(http.StatusInternalServerError, correlationID, domain.ChatResponse{Error: msgInternal})
	}
}

func preflightResponse(correlationID string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Access-Control-Allow-Origin":  "*",
			"Access-Control-Allow-Headers": "Content-Type",
			"Access-Control-Allow-Methods": "POST, OPTIONS",
			correlationHeader:              correlationID,
		},
		Body: "",
	}
}

func jsonResponse(status int, correlationID string, body domain.ChatResponse) events.APIGatewayProxyResponse {
	raw, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		raw = []byte(`{"error":"` + msgInternal + `"}`)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":    "application/json",
			correlationHeader: correlationID,
		},
		Body: string(raw),
	}
}

func correlationIDFrom(headers map[string]string) string {
	for k, v := range headers {
		if strings.EqualFold(k, correlationHeader) && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return newUUID()
}

var newUUID = func() string {
	return uuid.NewString()
}
