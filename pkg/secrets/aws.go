package secrets

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// DefaultRegion is used when AWSConfig.Region is empty.
const DefaultRegion = "us-east-1"

// AWSConfig holds Secrets Manager connection settings.
type AWSConfig struct {
	// Region is the AWS region (default: us-east-1).
	Region string

	// AccessKey and SecretKey are static credentials (required).
	AccessKey string
	SecretKey string

	// Endpoint overrides the service URL (optional, for LocalStack or tests).
	Endpoint string
}

func (c *AWSConfig) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
}

func (c AWSConfig) validate() error {
	if c.AccessKey == "" || c.SecretKey == "" {
		return errors.Join(ErrInvalidConfig, errors.New("access key and secret key are required"))
	}
	return nil
}

// AWS reads secrets from AWS Secrets Manager.
type AWS struct {
	client *secretsmanager.Client
}

// NewAWS creates a Secrets Manager backed store.
func NewAWS(cfg AWSConfig) (*AWS, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	opts := []func(*secretsmanager.Options){
		func(o *secretsmanager.Options) {
			o.Region = cfg.Region
			o.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
		},
	}

	if cfg.Endpoint != "" {
		opts = append(opts, func(o *secretsmanager.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	return &AWS{client: secretsmanager.New(secretsmanager.Options{}, opts...)}, nil
}

// SecretJSON returns the SecretString of the current version of name.
func (s *AWS) SecretJSON(ctx context.Context, name string) ([]byte, error) {
	out, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		return nil, wrapAWSError(err)
	}

	if out.SecretString == nil || *out.SecretString == "" {
		return nil, errors.Join(ErrEmpty, errors.New(name))
	}

	return []byte(*out.SecretString), nil
}
