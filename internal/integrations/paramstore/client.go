package paramstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// ssmAPI is the minimal AWS SSM interface required by Store.
// *ssm.Client from aws-sdk-go-v2 satisfies this interface.
type ssmAPI interface {
	GetParameter(ctx context.Context, in *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// Store reads secrets from AWS SSM Parameter Store.
type Store struct {
	api     ssmAPI
	decrypt bool
}

type Option func(*Store)

// WithDecryption controls whether SecureString values are decrypted.
// Decryption is on by default.
func WithDecryption(decrypt bool) Option {
	return func(s *Store) {
		s.decrypt = decrypt
	}
}

// New creates a Store backed by the given SSM API implementation.
func New(api ssmAPI, opts ...Option) (*Store, error) {
	if api == nil {
		return nil, errors.New("paramstore: api must not be nil")
	}
	s := &Store{api: api, decrypt: true}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// GetParameter returns the value of the named parameter.
func (s *Store) GetParameter(ctx context.Context, name string) (string, error) {
	if s.api == nil {
		return "", errors.New("paramstore: store not initialized")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("paramstore: name is required")
	}

	out, err := s.api.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(s.decrypt),
	})
	if err != nil {
		return "", fmt.Errorf("paramstore: get parameter %q: %w", name, err)
	}
	if out == nil || out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("paramstore: parameter %q has no value", name)
	}
	return *out.Parameter.Value, nil
}
