package site

import "time"

// Site is a geofenced work location belonging to a branch.
type Site struct {
	ID        string
	BranchID  string
	Name      string
	Address   string
	Latitude  float64
	Longitude float64
	CreatedAt time.Time
	UpdatedAt time.Time
}
