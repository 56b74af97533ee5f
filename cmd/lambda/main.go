package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"

	"github.com/rogerjeasy/bav-roger/handler"
	"github.com/rogerjeasy/bav-roger/internal/config"
	"github.com/rogerjeasy/bav-roger/internal/integrations/anthropic"
	"github.com/rogerjeasy/bav-roger/internal/integrations/googleai"
	"github.com/rogerjeasy/bav-roger/internal/integrations/openai"
	"github.com/rogerjeasy/bav-roger/internal/integrations/paramstore"
	"github.com/rogerjeasy/bav-roger/internal/provider"
	"github.com/rogerjeasy/bav-roger/internal/repository"
	"github.com/rogerjeasy/bav-roger/internal/usecase"
)

func main() {
	ctx := context.Background()

	// ---- Configuration (read only here) ----
	stateTable := mustEnv("STATE_TABLE")
	paramPrefix := os.Getenv("PARAM_PREFIX")

	// ---- AWS SDK config ----
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		slog.Error("failed to load AWS config", "err", err)
		os.Exit(1)
	}

	// ---- Credentials (fatal if incomplete) ----
	var creds config.Credentials
	if paramPrefix != "" {
		ssmClient, psErr := paramstore.New(awsssm.NewFromConfig(cfg))
		if psErr != nil {
			slog.Error("failed to create SSM client", "err", psErr)
			os.Exit(1)
		}
		creds, err = config.FromParamStore(ctx, ssmClient, paramPrefix)
	} else {
		creds, err = config.FromEnv()
	}
	if err != nil {
		slog.Error("failed to load provider credentials", "err", err)
		os.Exit(1)
	}

	// ---- Clients ----
	stateClient, err := repository.New(awsdynamodb.NewFromConfig(cfg), stateTable)
	if err != nil {
		slog.Error("failed to create state client", "err", err)
		os.Exit(1)
	}

	registry, err := buildRegistry(creds)
	if err != nil {
		slog.Error("failed to build provider registry", "err", err)
		os.Exit(1)
	}

	// ---- Handler ----
	chatService, err := usecase.NewChatService(registry, stateClient)
	if err != nil {
		slog.Error("failed to create chat service", "err", err)
		os.Exit(1)
	}
	contactService, err := usecase.NewContactService(stateClient)
	if err != nil {
		slog.Error("failed to create contact service", "err", err)
		os.Exit(1)
	}

	h, err := handler.NewHandler(chatService, contactService)
	if err != nil {
		slog.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}

func buildRegistry(creds config.Credentials) (*provider.Registry, error) {
	gpt4, err := openai.NewClient(creds.OpenAIKey, openai.ModelGPT4Turbo)
	if err != nil {
		return nil, err
	}
	gpt35, err := openai.NewClient(creds.OpenAIKey, openai.ModelGPT35)
	if err != nil {
		return nil, err
	}
	claude, err := anthropic.NewClient(creds.AnthropicKey)
	if err != nil {
		return nil, err
	}
	gemini, err := googleai.NewClient(creds.GoogleKey)
	if err != nil {
		return nil, err
	}
	return provider.NewRegistry(map[string]provider.Generator{
		provider.ModelGPT4:   gpt4,
		provider.ModelGPT35:  gpt35,
		provider.ModelClaude: claude,
		provider.ModelGemini: gemini,
	})
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		slog.Error("required environment variable is not set", "key", key)
		os.Exit(1)
	}
	return v
}
