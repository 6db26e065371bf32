package catalog

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"
)

// ChangeKind names an admin catalog command awaiting confirmation.
type ChangeKind string

const (
	ChangeRename ChangeKind = "rename"
	ChangeDelete ChangeKind = "delete"
)

// Change is a proposed admin edit. It is applied only by Confirm.
type Change struct {
	Token       string     `json:"token"`
	Kind        ChangeKind `json:"kind"`
	ProductID   int        `json:"productId"`
	ProductName string     `json:"productName"`
	NewName     string     `json:"newName,omitempty"`
	ExpiresAt   time.Time  `json:"expiresAt"`
}

type pendingChanges struct {
	mu      sync.Mutex
	changes map[string]Change
	now     func() time.Time
}

func newPendingChanges(now func() time.Time) *pendingChanges {
	return &pendingChanges{
		changes: make(map[string]Change),
		now:     now,
	}
}

func (p *pendingChanges) Add(c Change, ttl time.Duration) (Change, error) {
	token, err := randomToken()
	if err != nil {
		return Change{}, err
	}
	c.Token = token
	c.ExpiresAt = p.now().Add(ttl).UTC()
	p.mu.Lock()
	p.changes[token] = c
	p.mu.Unlock()
	return c, nil
}

// Take removes and returns the change for token. Expired changes are dropped
// and reported as missing.
func (p *pendingChanges) Take(token string) (Change, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sweep()
	c, ok := p.changes[token]
	if !ok {
		return Change{}, false
	}
	delete(p.changes, token)
	return c, true
}

// Restore puts back a change taken by a confirm that failed to apply. It keeps
// the original token and expiry.
func (p *pendingChanges) Restore(c Change) {
	p.mu.Lock()
	p.changes[c.Token] = c
	p.mu.Unlock()
}

func (p *pendingChanges) sweep() {
	now := p.now()
	for token, c := range p.changes {
		if now.After(c.ExpiresAt) {
			delete(p.changes, token)
		}
	}
}

func randomToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
