package chat

// ResolveConversationID derives the canonical key both participants use to
// address the same 1:1 message stream. The lower id (lexicographic) always
// comes first, so ResolveConversationID(a, b) == ResolveConversationID(b, a).
func ResolveConversationID(userIDA, userIDB string) string {
	if userIDA < userIDB {
		return userIDA + "_" + userIDB
	}
	return userIDB + "_" + userIDA
}
