package model

import "time"

type Announcement struct {
	Enabled   bool
	ImageURL  string
	UpdatedAt time.Time
}
