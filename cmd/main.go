package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"

	"github.com/xHiades/presidentestic/handler"
	"github.com/xHiades/presidentestic/internal/config"
	"github.com/xHiades/presidentestic/internal/credentials"
	"github.com/xHiades/presidentestic/internal/integrations/openai"
	"github.com/xHiades/presidentestic/internal/integrations/paramstore"
	"github.com/xHiades/presidentestic/internal/usecase"
)

func main() {
	ctx := context.Background()

	// ---- Configuration (read only here) ----
	cfg := config.Load(os.Getenv)
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	// ---- Clients ----
	keys, err := newKeySource(ctx, cfg)
	if err != nil {
		slog.Error("failed to create key source", "err", err)
		os.Exit(1)
	}

	openaiClient, err := openai.NewClient(openai.WithBaseURL(cfg.BaseURL))
	if err != nil {
		slog.Error("failed to create OpenAI client", "err", err)
		os.Exit(1)
	}

	// ---- Handler ----
	chatService, err := usecase.NewChatService(keys, openaiClient)
	if err != nil {
		slog.Error("failed to create chat service", "err", err)
		os.Exit(1)
	}

	h, err := handler.NewHandler(chatService)
	if err != nil {
		slog.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}

// newKeySource picks where the provider key comes from. With neither setting
// present the handler still starts and every chat call reports the missing key.
func newKeySource(ctx context.Context, cfg config.Config) (usecase.KeySource, error) {
	if !cfg.UsesParamStore() {
		if cfg.APIKey == "" {
			slog.Warn("OPENAI_API_KEY is not set; chat requests will fail until it is configured")
		}
		return credentials.Static(cfg.APIKey), nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	store, err := paramstore.New(awsssm.NewFromConfig(awsCfg))
	if err != nil {
		return nil, err
	}
	keys, err := credentials.NewParamStore(store, cfg.APIKeyParam)
	if err != nil {
		return nil, err
	}
	slog.Info("provider key will be read from SSM", "parameter", cfg.APIKeyParam)
	return keys, nil
}
