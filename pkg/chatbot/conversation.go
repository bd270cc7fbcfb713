package chatbot

// Conversation is the per-user prompt buffer kept in memory. The preamble is
// seeded once, then every exchange is appended so the model keeps context.
type Conversation struct {
	UserID  string `json:"user_id"`
	Context string `json:"context"`
}

func (c *Conversation) AppendExchange(userMessage, assistantReply string) {
	c.Context += "\nUser: " + userMessage + "\nAssistant: " + assistantReply
}

// Prompt returns the full text to send for the next user message.
func (c *Conversation) Prompt(userMessage string) string {
	return c.Context + "\nUser: " + userMessage + "\nAssistant:"
}
