package models

// Role identifies the sender of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one turn of a conversation. The inbound request body for
// POST /api/chat is a JSON array of these, oldest first, with the newest
// user message last.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Valid reports whether the message carries a known role and non-empty content.
func (m ChatMessage) Valid() bool {
	switch m.Role {
	case RoleSystem, RoleUser, RoleAssistant:
	default:
		return false
	}
	return m.Content != ""
}
