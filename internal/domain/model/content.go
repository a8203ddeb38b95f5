package model

import "time"

type User struct {
	ID          string
	Username    string
	DisplayName string
	Status      string
}

type Rule struct {
	ID          string
	Title       string
	Description string
}

// TargetContent is the reported object. Positions fill Statement/Category/Author,
// chat logs fill Messages.
type TargetContent struct {
	ID        string
	Statement string
	Category  string
	Author    *User
	Messages  []ChatMessage
}

type ChatMessage struct {
	Sender  User
	Content string
	SentAt  time.Time
}
