package model

// ChatMember represents a chat workspace member holding a role. Two members
// are never assumed equal unless the identity matcher says so.
type ChatMember struct {
	Handle      string // login name, e.g. "jdoe"
	DisplayName string // human name, e.g. "Jane Doe"
}

// ChatRole represents a role in the chat workspace.
type ChatRole struct {
	ID          string
	Name        string
	MemberCount int
}
