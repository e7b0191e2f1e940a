// Package bootstrap wires providers, clients and handlers from Runtime
// settings. It is the only place outside cmd/ that touches AWS config.
package bootstrap

import (
	"context"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"

	"lsrc-api/handler"
	"lsrc-api/internal/config"
	"lsrc-api/internal/integrations/openai"
	"lsrc-api/internal/integrations/paramstore"
	"lsrc-api/internal/logger"
	"lsrc-api/internal/usecase"
)

// Provider returns the process environment, layered under SSM secrets when
// rt.ParamPrefix is set.
func Provider(ctx context.Context, rt config.Runtime) (config.Provider, error) {
	if strings.TrimSpace(rt.ParamPrefix) == "" {
		return config.OSProvider{}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: load AWS config: %w", err)
	}
	ssmClient, err := paramstore.New(awsssm.NewFromConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("bootstrap: create SSM client: %w", err)
	}
	secrets, err := paramstore.NewSecretsProvider(ssmClient, rt.ParamPrefix, nil)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: create secrets provider: %w", err)
	}
	return config.Layered(config.OSProvider{}, secrets)
}

// ClientFactory builds Assistants clients pointed at rt.OpenAIBaseURL.
func ClientFactory(rt config.Runtime) usecase.ClientFactory {
	return func(apiKey string) (usecase.AssistantAPI, error) {
		return openai.NewClient(apiKey,
			openai.WithBaseURL(rt.OpenAIBaseURL),
			openai.WithTimeout(rt.OpenAIHTTPTimeout),
		)
	}
}

func ChatHandler(p config.Provider, rt config.Runtime, m usecase.MetricsRecorder, log *logger.Logger) (*handler.ChatHandler, error) {
	svc, err := usecase.NewChatService(p, ClientFactory(rt), usecase.RealSleeper{}, m)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: create chat service: %w", err)
	}
	return handler.NewChatHandler(svc, log)
}

func ConfigHandler(p config.Provider, log *logger.Logger) (*handler.ConfigHandler, error) {
	svc, err := usecase.NewConfigService(p)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: create config service: %w", err)
	}
	return handler.NewConfigHandler(svc, log)
}
