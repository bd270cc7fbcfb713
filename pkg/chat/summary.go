package chat

import (
	"context"
	"encoding/json"

	"shopchat-be/pkg/directory"
)

// Summary is one participant's "most recent message" pointer for a
// conversation. Field names match the wire layout of the userChats tree.
type Summary struct {
	LastMessage string `json:"lastMessage"`
	Timestamp   int64  `json:"timestamp"`
	ReceiverID  string `json:"receiverId"`
}

// OwnedSummary pairs a Summary with the conversation it belongs to.
type OwnedSummary struct {
	ConversationID string
	Summary
}

// SummaryIndex maintains per-owner conversation summaries in the directory
// store, one subtree per owner. The two per-send writes are independent;
// there is no atomicity across owners and a failed write leaves that owner's
// entry stale until the next message repairs it.
type SummaryIndex struct {
	store directory.Store
}

func NewSummaryIndex(store directory.Store) *SummaryIndex {
	return &SummaryIndex{store: store}
}

func ownerPath(ownerUserID string) string {
	return "userChats/" + ownerUserID
}

// Touch upserts one owner's summary for a conversation.
func (i *SummaryIndex) Touch(ctx context.Context, conversationID, ownerUserID, otherUserID, lastText string, atMillis int64) error {
	return i.store.Write(ctx, ownerPath(ownerUserID), conversationID, Summary{
		LastMessage: lastText,
		Timestamp:   atMillis,
		ReceiverID:  otherUserID,
	})
}

// List returns the owner's summaries in store key order.
func (i *SummaryIndex) List(ctx context.Context, ownerUserID string) ([]OwnedSummary, error) {
	snap, err := i.store.Read(ctx, ownerPath(ownerUserID))
	if err != nil {
		return nil, err
	}
	return summariesFromSnapshot(snap), nil
}

// Subscribe delivers the owner's summaries on every change.
func (i *SummaryIndex) Subscribe(ownerUserID string, onUpdate func([]OwnedSummary), onError func(error)) (directory.Handle, error) {
	return i.store.Subscribe(ownerPath(ownerUserID), func(snap directory.Snapshot) {
		onUpdate(summariesFromSnapshot(snap))
	}, onError)
}

func summariesFromSnapshot(snap directory.Snapshot) []OwnedSummary {
	summaries := make([]OwnedSummary, 0, len(snap))
	for _, entry := range snap {
		var s Summary
		if err := json.Unmarshal(entry.Value, &s); err != nil {
			continue
		}
		summaries = append(summaries, OwnedSummary{ConversationID: entry.Key, Summary: s})
	}
	return summaries
}
