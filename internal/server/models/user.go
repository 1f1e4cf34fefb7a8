package models

import "time"

type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	Role         string
	CreatedAt    time.Time
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == "admin"
}
