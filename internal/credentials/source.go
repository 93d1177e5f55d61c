package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrMissing reports that no provider API key is configured.
var ErrMissing = errors.New("credentials: provider api key is not configured")

// Getter is the interface that wraps GetParameter.
// *paramstore.Store satisfies it.
type Getter interface {
	GetParameter(ctx context.Context, name string) (string, error)
}

// Static is a key supplied directly through configuration. An empty key
// yields ErrMissing on every lookup.
type Static string

func (s Static) APIKey(context.Context) (string, error) {
	key := strings.TrimSpace(string(s))
	if key == "" {
		return "", ErrMissing
	}
	return key, nil
}

// ParamStore resolves the key from an SSM parameter. The first successful
// lookup is reused for the lifetime of the process; failed lookups are
// retried on the next call.
type ParamStore struct {
	getter Getter
	name   string

	mu  sync.Mutex
	key string
}

func NewParamStore(g Getter, name string) (*ParamStore, error) {
	if g == nil {
		return nil, errors.New("credentials: paramstore getter must not be nil")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("credentials: parameter name must not be empty")
	}
	return &ParamStore{getter: g, name: name}, nil
}

func (p *ParamStore) APIKey(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.key != "" {
		return p.key, nil
	}

	raw, err := p.getter.GetParameter(ctx, p.name)
	if err != nil {
		return "", fmt.Errorf("credentials: fetch %q: %w", p.name, err)
	}
	key, err := parseKey(raw)
	if err != nil {
		return "", err
	}
	p.key = key
	return key, nil
}

// tokenPayload is the JSON shape accepted for stored keys.
type tokenPayload struct {
	Token string `json:"token"`
}

// parseKey accepts either the bare key or {"token": "<key>"}.
func parseKey(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "{") {
		if raw == "" {
			return "", ErrMissing
		}
		return raw, nil
	}
	var tp tokenPayload
	if err := json.Unmarshal([]byte(raw), &tp); err != nil {
		return "", fmt.Errorf("credentials: unmarshal stored token as JSON: %w", err)
	}
	if strings.TrimSpace(tp.Token) == "" {
		return "", ErrMissing
	}
	return strings.TrimSpace(tp.Token), nil
}
