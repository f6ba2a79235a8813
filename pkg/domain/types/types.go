package types

// UserID is the directory's opaque, stable user identifier. It is the only
// reliable join key once an identity match has been made.
type UserID string

// String returns the string representation of UserID
func (x UserID) String() string {
	return string(x)
}

// GroupID is the directory's group identifier.
type GroupID string

// String returns the string representation of GroupID
func (x GroupID) String() string {
	return string(x)
}
