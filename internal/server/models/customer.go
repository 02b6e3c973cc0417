// Package models defines server-side data models persisted in the database.
package models

import "time"

// Customer is an end user of the note-taking application.
type Customer struct {
	ID             string
	Email          string
	PasswordHash   string
	FirstName      string
	LastName       string
	UserType       string
	ProfilePicture string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Profile is the public projection of a Customer. It never carries the
// password hash.
type Profile struct {
	ID             string `json:"_id"`
	Email          string `json:"email"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	UserType       string `json:"userType"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

func (c *Customer) Profile() Profile {
	return Profile{
		ID:             c.ID,
		Email:          c.Email,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		UserType:       c.UserType,
		ProfilePicture: c.ProfilePicture,
	}
}
