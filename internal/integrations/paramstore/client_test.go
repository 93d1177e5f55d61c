package paramstore

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/require"
)

// fakeAPI is a simple fake implementing ssmAPI for tests.
type fakeAPI struct {
	getOut *ssm.GetParameterOutput
	getErr error
	lastIn *ssm.GetParameterInput
}

func (f *fakeAPI) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.lastIn = in
	return f.getOut, f.getErr
}

func paramOutput(value *string) *ssm.GetParameterOutput {
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{
		Name:  aws.String("/presidentes/openai-key"),
		Type:  types.ParameterTypeSecureString,
		Value: value,
	}}
}

func TestGetParameter_SecureString(t *testing.T) {
	api := &fakeAPI{getOut: paramOutput(aws.String("sk-secret"))}
	store, err := New(api)
	require.NoError(t, err)

	v, err := store.GetParameter(context.Background(), " /presidentes/openai-key ")
	require.NoError(t, err)
	require.Equal(t, "sk-secret", v)
	require.Equal(t, "/presidentes/openai-key", aws.ToString(api.lastIn.Name))
	require.True(t, aws.ToBool(api.lastIn.WithDecryption))
}

func TestGetParameter_WithoutDecryption(t *testing.T) {
	api := &fakeAPI{getOut: paramOutput(aws.String("plain"))}
	store, err := New(api, WithDecryption(false))
	require.NoError(t, err)

	_, err = store.GetParameter(context.Background(), "/p")
	require.NoError(t, err)
	require.False(t, aws.ToBool(api.lastIn.WithDecryption))
}

func TestGetParameter_MissingValue(t *testing.T) {
	cases := map[string]*ssm.GetParameterOutput{
		"nil output":    nil,
		"nil parameter": {},
		"nil value":     paramOutput(nil),
	}
	for name, out := range cases {
		t.Run(name, func(t *testing.T) {
			store, err := New(&fakeAPI{getOut: out})
			require.NoError(t, err)
			_, err = store.GetParameter(context.Background(), "/p")
			require.Error(t, err)
			require.Contains(t, err.Error(), "has no value")
		})
	}
}

func TestGetParameter_APIError(t *testing.T) {
	store, err := New(&fakeAPI{getErr: errors.New("boom")})
	require.NoError(t, err)
	_, err = store.GetParameter(context.Background(), "/p")
	require.ErrorContains(t, err, "boom")
	require.ErrorContains(t, err, `"/p"`)
}

func TestGetParameter_StoreNotInitialized(t *testing.T) {
	_, err := (&Store{}).GetParameter(context.Background(), "/p")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not initialized")
}

func TestGetParameter_EmptyName(t *testing.T) {
	store, err := New(&fakeAPI{})
	require.NoError(t, err)
	_, err = store.GetParameter(context.Background(), "  ")
	require.Error(t, err)
	require.Contains(t, err.Error(), "required")
}

func TestNew_NilAPI(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "must not be nil")
}
