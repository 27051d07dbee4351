package models

// Message is a single role-tagged entry in a game's conversation history.
// The ordered message list is resent to the model on every turn.

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
