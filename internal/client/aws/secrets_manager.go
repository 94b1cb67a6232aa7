package aws

import (
	"context"
	"encoding/json"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"keepup-api/internal/logger"
)

// SecretsManagerClient wraps the AWS Secrets Manager client used to load
// billing credentials (Stripe secret key, webhook signing secret) at startup.
type SecretsManagerClient struct {
	svc *secretsmanager.Client
}

// NewSecretsManagerClient builds a client from the default AWS configuration
// chain (environment, shared config, IAM role).
func NewSecretsManagerClient(ctx context.Context) (*SecretsManagerClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to load AWS SDK config")
	}

	return &SecretsManagerClient{
		svc: secretsmanager.NewFromConfig(cfg),
	}, nil
}

// GetSecretString resolves a secret value. If the environment variable named by
// arnEnvVar holds a Secrets Manager ARN, the secret is fetched from AWS; a
// secret stored as a single-key JSON object is unwrapped to its value.
// When the ARN is absent or the fetch fails, the value of fallbackEnvVar is
// used instead. Returns an error only if both paths come up empty.
func (c *SecretsManagerClient) GetSecretString(ctx context.Context, arnEnvVar string, fallbackEnvVar string) (string, error) {
	secretArn := os.Getenv(arnEnvVar)

	if secretArn != "" {
		input := &secretsmanager.GetSecretValueInput{
			SecretId: aws.String(secretArn),
		}

		result, err := c.svc.GetSecretValue(ctx, input)
		if err == nil && result.SecretString != nil && *result.SecretString != "" {
			raw := *result.SecretString

			var asJSON map[string]string
			if jsonErr := json.Unmarshal([]byte(raw), &asJSON); jsonErr == nil && len(asJSON) == 1 {
				for key, value := range asJSON {
					logger.Log.Info("Fetched secret from Secrets Manager (single-key JSON)",
						zap.String("arnEnvVar", arnEnvVar),
						zap.String("jsonKey", key),
					)
					return value, nil
				}
			}

			logger.Log.Info("Fetched secret from Secrets Manager", zap.String("arnEnvVar", arnEnvVar))
			return raw, nil
		}

		logger.Log.Warn("Failed to fetch secret from Secrets Manager, falling back to env var",
			zap.String("arnEnvVar", arnEnvVar),
			zap.String("fallbackEnvVar", fallbackEnvVar),
			zap.Error(err),
		)
	}

	if value := os.Getenv(fallbackEnvVar); value != "" {
		return value, nil
	}

	return "", errors.Errorf("secret not found via ARN env var %q or direct env var %q", arnEnvVar, fallbackEnvVar)
}
