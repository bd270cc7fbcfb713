package chat

import (
	"testing"
)

func TestResolveConversationID(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want string
	}{
		{
			name: "already ordered",
			a:    "alice",
			b:    "bob",
			want: "alice_bob",
		},
		{
			name: "reversed arguments",
			a:    "bob",
			b:    "alice",
			want: "alice_bob",
		},
		{
			name: "uuid style ids",
			a:    "f47ac10b-58cc-4372-a567-0e02b2c3d479",
			b:    "0e02b2c3-d479-4372-a567-f47ac10b58cc",
			want: "0e02b2c3-d479-4372-a567-f47ac10b58cc_f47ac10b-58cc-4372-a567-0e02b2c3d479",
		},
		{
			name: "prefix of the other",
			a:    "user1",
			b:    "user10",
			want: "user1_user10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveConversationID(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("ResolveConversationID(%q, %q) = %q, want %q", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestResolveConversationIDCommutative(t *testing.T) {
	pairs := [][2]string{
		{"alice", "bob"},
		{"zed", "amy"},
		{"1", "2"},
		{"aaa", "aab"},
	}
	for _, p := range pairs {
		ab := ResolveConversationID(p[0], p[1])
		ba := ResolveConversationID(p[1], p[0])
		if ab != ba {
			t.Errorf("resolve(%q, %q) = %q but resolve(%q, %q) = %q", p[0], p[1], ab, p[1], p[0], ba)
		}
	}
}

func TestResolveConversationIDDistinctPairs(t *testing.T) {
	seen := map[string][2]string{}
	pairs := [][2]string{
		{"alice", "bob"},
		{"alice", "carol"},
		{"bob", "carol"},
	}
	for _, p := range pairs {
		id := ResolveConversationID(p[0], p[1])
		if prev, ok := seen[id]; ok {
			t.Errorf("pairs %v and %v collide on %q", prev, p, id)
		}
		seen[id] = p
	}
}
