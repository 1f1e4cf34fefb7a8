package models

import "time"

type PageView struct {
	ID        string
	UserEmail string
	PageName  string
	CreatedAt time.Time
}
