package identity

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// StaticProvider is an in-process Provider for local runs and tests. Tokens
// are the literal string "token-<uid>".
type StaticProvider struct {
	mu      sync.Mutex
	emails  map[string]string
	revoked map[string]bool
	seq     int
}

func NewStaticProvider() *StaticProvider {
	return &StaticProvider{emails: map[string]string{}, revoked: map[string]bool{}}
}

// TokenFor returns the token StaticProvider accepts for uid.
func TokenFor(uid string) string { return "token-" + uid }

func (p *StaticProvider) CreateUser(_ context.Context, email, _, _ string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range p.emails {
		if e == email {
			return "", ErrEmailExists
		}
	}
	p.seq++
	uid := fmt.Sprintf("user%d", p.seq)
	p.emails[uid] = email
	return uid, nil
}

// Register makes uid known without going through CreateUser and lifts any
// earlier revocation.
func (p *StaticProvider) Register(uid, email string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.emails[uid] = email
	delete(p.revoked, uid)
}

func (p *StaticProvider) VerifyIDToken(_ context.Context, idToken string) (*Token, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	const prefix = "token-"
	if len(idToken) <= len(prefix) || idToken[:len(prefix)] != prefix {
		return nil, ErrInvalidToken
	}
	uid := idToken[len(prefix):]
	email, ok := p.emails[uid]
	if !ok || p.revoked[uid] {
		return nil, ErrInvalidToken
	}
	return &Token{UID: uid, Email: email, Expires: time.Now().Add(time.Hour)}, nil
}

func (p *StaticProvider) RevokeRefreshTokens(_ context.Context, uid string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.revoked[uid] = true
	return nil
}
