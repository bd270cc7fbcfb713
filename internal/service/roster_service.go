package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"shopchat-be/internal/config"
	"shopchat-be/internal/dto"
	"shopchat-be/internal/entity"
	"shopchat-be/internal/pkg/logger"
	"shopchat-be/pkg/directory"
)

const usersPath = "users"

type IRosterService interface {
	// PublishSelf upserts the caller's profile into the shared directory.
	// Failure is logged, not returned; the roster still loads without it.
	PublishSelf(ctx context.Context, user entity.DirectoryUser)

	// Roster returns every other known user, with fallback seeding when the
	// directory is empty.
	Roster(ctx context.Context, excludeUserID string) ([]dto.RosterEntry, error)

	// SubscribeRoster pushes a freshly computed roster on every directory
	// change. Any prior subscription for the same excludeUserID is cancelled
	// first so a reconnecting client never gets duplicate deliveries.
	SubscribeRoster(excludeUserID string, onUpdate func([]dto.RosterEntry), onError func(error)) (directory.Handle, error)
}

type rosterService struct {
	store    directory.Store
	fallback []config.FallbackUser
	logger   logger.ILogger

	mu     sync.Mutex
	active map[string]directory.Handle
}

func NewRosterService(store directory.Store, fallback []config.FallbackUser, log logger.ILogger) IRosterService {
	return &rosterService{
		store:    store,
		fallback: fallback,
		logger:   log,
		active:   make(map[string]directory.Handle),
	}
}

func (s *rosterService) PublishSelf(ctx context.Context, user entity.DirectoryUser) {
	if user.UserID == "" {
		return
	}
	if err := s.store.Write(ctx, usersPath, user.UserID, user); err != nil {
		s.logger.Warn("RosterService", "Failed to publish profile to directory", map[string]interface{}{
			"user_id": user.UserID,
			"error":   err.Error(),
		})
	}
}

func (s *rosterService) Roster(ctx context.Context, excludeUserID string) ([]dto.RosterEntry, error) {
	snap, err := s.store.Read(ctx, usersPath)
	if err != nil {
		return nil, err
	}
	return s.buildRoster(snap, excludeUserID), nil
}

func (s *rosterService) SubscribeRoster(excludeUserID string, onUpdate func([]dto.RosterEntry), onError func(error)) (directory.Handle, error) {
	s.mu.Lock()
	if prev, ok := s.active[excludeUserID]; ok {
		prev.Cancel()
		delete(s.active, excludeUserID)
	}
	s.mu.Unlock()

	handle, err := s.store.Subscribe(usersPath, func(snap directory.Snapshot) {
		onUpdate(s.buildRoster(snap, excludeUserID))
	}, onError)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.active[excludeUserID] = handle
	s.mu.Unlock()

	return directory.NewHandle(func() {
		handle.Cancel()
		s.mu.Lock()
		if s.active[excludeUserID] == handle {
			delete(s.active, excludeUserID)
		}
		s.mu.Unlock()
	}), nil
}

// buildRoster materializes a snapshot into the displayed user list: the
// caller is dropped, missing names are derived, and an empty result is
// seeded from the configured fallback list (directory entries win on id
// collision).
func (s *rosterService) buildRoster(snap directory.Snapshot, excludeUserID string) []dto.RosterEntry {
	roster := make([]dto.RosterEntry, 0, len(snap))
	seen := make(map[string]bool, len(snap))

	for _, e := range snap {
		var u entity.DirectoryUser
		if err := json.Unmarshal(e.Value, &u); err != nil {
			continue
		}
		if u.UserID == "" {
			u.UserID = e.Key
		}
		if u.UserID == excludeUserID {
			continue
		}
		u.Name = displayName(u)
		seen[u.UserID] = true
		roster = append(roster, dto.RosterEntry{UserID: u.UserID, Name: u.Name, Email: u.Email})
	}

	if len(roster) == 0 {
		for _, f := range s.fallback {
			if f.UserID == excludeUserID || seen[f.UserID] {
				continue
			}
			entry := entity.DirectoryUser{UserID: f.UserID, Name: f.Name, Email: f.Email}
			entry.Name = displayName(entry)
			roster = append(roster, dto.RosterEntry{UserID: entry.UserID, Name: entry.Name, Email: entry.Email})
		}
	}

	return roster
}

// displayName falls back to the email local-part, then a synthesized
// placeholder, when the stored name is unusable.
func displayName(u entity.DirectoryUser) string {
	name := strings.TrimSpace(u.Name)
	if name != "" {
		return name
	}
	if at := strings.Index(u.Email, "@"); at > 0 {
		return u.Email[:at]
	}
	if len(u.UserID) >= 8 {
		return "User " + u.UserID[:8]
	}
	return "User " + u.UserID
}
