package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"lemongrove/internal/domain"
	tokenrepo "lemongrove/internal/repository/token"
	"lemongrove/internal/snapshot"
)

func TestIssueAndLookup(t *testing.T) {
	store := snapshot.NewMemory()
	svc := New(tokenrepo.NewSnapshot(store, nil), nil)
	ctx := context.Background()

	token, sessionID, err := svc.Issue(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	_, err = uuid.Parse(sessionID)
	require.NoError(t, err)

	got, err := svc.Lookup(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, sessionID, got)

	// A fresh service over the same store still resolves the token.
	again, err := New(tokenrepo.NewSnapshot(store, nil), nil).Lookup(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, sessionID, again)

	_, err = svc.Lookup(ctx, "bogus")
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.Lookup(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Equal(t, 30*24*3600, svc.TTLSeconds())
}

func TestLookup_Expired(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := tokenrepo.NewSnapshot(snapshot.NewMemory(), nil)
	svc := New(repo, nil)
	svc.tokens = newTokenManager(repo, func() time.Time { return now }, zap.NewNop())

	token, _, err := svc.Issue(context.Background())
	require.NoError(t, err)

	now = now.Add(DefaultTTL + time.Second)
	_, err = svc.Lookup(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = repo.Get(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

type collidingRepo struct {
	tokenrepo.Repository
	collisions int
}

func (c *collidingRepo) Create(ctx context.Context, t tokenrepo.Token) error {
	if c.collisions > 0 {
		c.collisions--
		return domain.ErrAlreadyExists
	}
	return c.Repository.Create(ctx, t)
}

func TestIssue_RetriesCollisions(t *testing.T) {
	repo := &collidingRepo{Repository: tokenrepo.NewSnapshot(snapshot.NewMemory(), nil), collisions: 2}
	_, _, err := New(repo, nil).Issue(context.Background())
	require.NoError(t, err)

	repo.collisions = 5
	_, _, err = New(repo, nil).Issue(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrAlreadyExists))
}

type brokenRepo struct {
	tokenrepo.Repository
	getErr    error
	deleteErr error
}

func (b *brokenRepo) Get(ctx context.Context, token string) (*tokenrepo.Token, error) {
	if b.getErr != nil {
		return nil, b.getErr
	}
	return b.Repository.Get(ctx, token)
}

func (b *brokenRepo) Delete(ctx context.Context, token string) error {
	if b.deleteErr != nil {
		return b.deleteErr
	}
	return b.Repository.Delete(ctx, token)
}

func TestLookup_StoreFailureIsNotInvalidToken(t *testing.T) {
	repo := &brokenRepo{Repository: tokenrepo.NewSnapshot(snapshot.NewMemory(), nil)}
	svc := New(repo, nil)
	token, _, err := svc.Issue(context.Background())
	require.NoError(t, err)

	storeErr := errors.New("connection refused")
	repo.getErr = storeErr
	_, err = svc.Lookup(context.Background(), token)
	require.ErrorIs(t, err, storeErr)
	assert.False(t, errors.Is(err, ErrInvalidToken))
}

func TestLookup_ExpiredWithFailingDelete(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := &brokenRepo{Repository: tokenrepo.NewSnapshot(snapshot.NewMemory(), nil)}
	svc := New(repo, nil)
	svc.tokens = newTokenManager(repo, func() time.Time { return now }, zap.NewNop())

	token, _, err := svc.Issue(context.Background())
	require.NoError(t, err)

	now = now.Add(DefaultTTL + time.Second)
	repo.deleteErr = errors.New("read only")
	_, err = svc.Lookup(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
