// Package models defines the rows the server persists in Postgres.
package models

import "time"

type User struct {
	ID              string
	Name            string
	Slug            string
	Email           string
	Salt            []byte
	PasswordHash    []byte
	IsModerator     bool
	IsAdministrator bool
	JoinedAt        time.Time
}

// CanModerate reports whether u may close, open, move or delete threads.
func (u *User) CanModerate() bool {
	return u != nil && (u.IsModerator || u.IsAdministrator)
}
