// Package config loads the provider credentials the AI dispatch subsystem
// refuses to start without.
package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rogerjeasy/bav-roger/internal/integrations/paramstore"
)

// Environment variables holding the provider credentials.
const (
	EnvOpenAIKey    = "OPENAI_API_KEY"
	EnvAnthropicKey = "ANTHROPIC_API_KEY"
	EnvGoogleKey    = "GOOGLE_API_KEY"
)

// SSM parameter names under the configured prefix.
const (
	paramOpenAIToken    = "/openai-token"
	paramAnthropicToken = "/anthropic-token"
	paramGoogleToken    = "/google-token"
)

// Credentials holds the three provider API keys. All fields are required;
// loading fails rather than returning a partially usable value.
type Credentials struct {
	OpenAIKey    string
	AnthropicKey string
	GoogleKey    string
}

// FromEnv reads the credentials from the process environment. A missing or
// blank variable is an error so startup can fail fast.
func FromEnv() (Credentials, error) {
	c := Credentials{
		OpenAIKey:    strings.TrimSpace(os.Getenv(EnvOpenAIKey)),
		AnthropicKey: strings.TrimSpace(os.Getenv(EnvAnthropicKey)),
		GoogleKey:    strings.TrimSpace(os.Getenv(EnvGoogleKey)),
	}
	for _, v := range []struct {
		key, val string
	}{
		{EnvOpenAIKey, c.OpenAIKey},
		{EnvAnthropicKey, c.AnthropicKey},
		{EnvGoogleKey, c.GoogleKey},
	} {
		if v.val == "" {
			return Credentials{}, fmt.Errorf("config: required environment variable %s is not set", v.key)
		}
	}
	return c, nil
}

// FromParamStore resolves the credentials from SSM Parameter Store under
// prefix. Resolution is eager so a missing parameter is a startup failure,
// matching the env path.
func FromParamStore(ctx context.Context, secrets paramstore.SecretGetter, prefix string) (Credentials, error) {
	if secrets == nil {
		return Credentials{}, fmt.Errorf("config: secret getter must not be nil")
	}
	prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return Credentials{}, fmt.Errorf("config: parameter prefix must not be empty")
	}

	var c Credentials
	var err error
	if c.OpenAIKey, err = secrets.GetSecret(ctx, prefix+paramOpenAIToken); err != nil {
		return Credentials{}, fmt.Errorf("config: load openai credential: %w", err)
	}
	if c.AnthropicKey, err = secrets.GetSecret(ctx, prefix+paramAnthropicToken); err != nil {
		return Credentials{}, fmt.Errorf("config: load anthropic credential: %w", err)
	}
	if c.GoogleKey, err = secrets.GetSecret(ctx, prefix+paramGoogleToken); err != nil {
		return Credentials{}, fmt.Errorf("config: load google credential: %w", err)
	}
	return c, nil
}
