package service

import (
	"context"
	"testing"

	"shopchat-be/internal/config"
	"shopchat-be/internal/dto"
	"shopchat-be/internal/entity"
	"shopchat-be/pkg/directory"

	"github.com/stretchr/testify/assert"
)

func newRoster(store directory.Store, fallback []config.FallbackUser) IRosterService {
	return NewRosterService(store, fallback, testLogger{})
}

func TestRosterExcludesCaller(t *testing.T) {
	store := directory.NewMemoryStore()
	svc := newRoster(store, nil)
	ctx := context.Background()

	svc.PublishSelf(ctx, entity.DirectoryUser{UserID: "u1", Name: "One", Email: "one@example.com"})
	svc.PublishSelf(ctx, entity.DirectoryUser{UserID: "u2", Name: "Two", Email: "two@example.com"})

	roster, err := svc.Roster(ctx, "u1")
	assert.NoError(t, err)
	assert.Len(t, roster, 1)
	assert.Equal(t, "u2", roster[0].UserID)
}

func TestRosterNameFallbacks(t *testing.T) {
	store := directory.NewMemoryStore()
	svc := newRoster(store, nil)
	ctx := context.Background()

	svc.PublishSelf(ctx, entity.DirectoryUser{UserID: "aaaabbbb-1111", Name: "", Email: "carol@example.com"})
	svc.PublishSelf(ctx, entity.DirectoryUser{UserID: "ccccdddd-2222", Name: "   ", Email: ""})

	roster, err := svc.Roster(ctx, "someone-else")
	assert.NoError(t, err)
	assert.Len(t, roster, 2)

	byID := map[string]dto.RosterEntry{}
	for _, r := range roster {
		byID[r.UserID] = r
	}
	assert.Equal(t, "carol", byID["aaaabbbb-1111"].Name, "email local-part")
	assert.Equal(t, "User ccccdddd", byID["ccccdddd-2222"].Name, "synthesized placeholder")
}

func TestRosterFallbackSeedWhenEmpty(t *testing.T) {
	store := directory.NewMemoryStore()
	fallback := []config.FallbackUser{
		{UserID: "seed1", Name: "Seed One", Email: "seed1@example.com"},
		{UserID: "seed2", Name: "", Email: "seed2@example.com"},
		{UserID: "me", Name: "Me", Email: "me@example.com"},
	}
	svc := newRoster(store, fallback)
	ctx := context.Background()

	roster, err := svc.Roster(ctx, "me")
	assert.NoError(t, err)
	assert.Len(t, roster, 2, "caller is excluded from the fallback too")
	assert.Equal(t, "seed1", roster[0].UserID)
	assert.Equal(t, "Seed One", roster[0].Name)
	assert.Equal(t, "seed2", roster[1].Name, "fallback names get the same derivation")
}

func TestRosterStoreWinsOverFallback(t *testing.T) {
	store := directory.NewMemoryStore()
	fallback := []config.FallbackUser{
		{UserID: "u1", Name: "Fallback One", Email: ""},
	}
	svc := newRoster(store, fallback)
	ctx := context.Background()

	svc.PublishSelf(ctx, entity.DirectoryUser{UserID: "u1", Name: "Store One", Email: "one@example.com"})

	roster, err := svc.Roster(ctx, "someone-else")
	assert.NoError(t, err)
	assert.Len(t, roster, 1)
	assert.Equal(t, "Store One", roster[0].Name)
}

func TestSubscribeRosterDeliversUpdates(t *testing.T) {
	store := directory.NewMemoryStore()
	svc := newRoster(store, nil)
	ctx := context.Background()

	var updates [][]dto.RosterEntry
	handle, err := svc.SubscribeRoster("me", func(r []dto.RosterEntry) {
		updates = append(updates, r)
	}, nil)
	assert.NoError(t, err)
	defer handle.Cancel()

	assert.Len(t, updates, 1, "initial delivery")

	svc.PublishSelf(ctx, entity.DirectoryUser{UserID: "u1", Name: "One", Email: "one@example.com"})
	assert.Len(t, updates, 2)
	assert.Len(t, updates[1], 1)

	// The caller's own publish does not appear in their roster.
	svc.PublishSelf(ctx, entity.DirectoryUser{UserID: "me", Name: "Me", Email: "me@example.com"})
	assert.Len(t, updates, 3)
	assert.Len(t, updates[2], 1)
}

func TestSubscribeRosterCancelsPriorSubscription(t *testing.T) {
	store := directory.NewMemoryStore()
	svc := newRoster(store, nil)
	ctx := context.Background()

	var firstCount, secondCount int
	_, err := svc.SubscribeRoster("me", func([]dto.RosterEntry) { firstCount++ }, nil)
	assert.NoError(t, err)

	handle, err := svc.SubscribeRoster("me", func([]dto.RosterEntry) { secondCount++ }, nil)
	assert.NoError(t, err)
	defer handle.Cancel()

	firstAfterResub := firstCount

	svc.PublishSelf(ctx, entity.DirectoryUser{UserID: "u1", Name: "One", Email: "one@example.com"})

	assert.Equal(t, firstAfterResub, firstCount, "stale subscription must not keep delivering")
	assert.Equal(t, 2, secondCount)
}
