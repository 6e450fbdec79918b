package model

import "time"

type User struct {
	ID           int64      `json:"id"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Gender       string     `json:"gender,omitempty"`
	DateOfBirth  time.Time  `json:"dateOfBirth"`
	Phone        string     `json:"phone,omitempty"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // never JSON-encode
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}
