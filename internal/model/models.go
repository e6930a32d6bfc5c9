// Package model defines the shared data structures for the KodJobs backend.
package model

// User is a stored account profile. The backing store keeps passwords in
// plain text and compares them by string equality; that is the contract of
// the persisted users document, not an oversight to "fix" in a handler.
type User struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Password    string `json:"password"`
	Email       string `json:"email"`
	DateOfBirth string `json:"dateOfBirth,omitempty"` // YYYY-MM-DD
	Age         int    `json:"age,omitempty"`         // derived at signup
}

// Job mirrors a single posting from The Muse public jobs API. Fetched
// records are read-only: the backend annotates them for display but never
// persists them.
type Job struct {
	ID              int        `json:"id"`
	Name            string     `json:"name"`
	Company         Company    `json:"company"`
	Locations       []Location `json:"locations"`
	Levels          []Level    `json:"levels"`
	Refs            Refs       `json:"refs"`
	PublicationDate string     `json:"publication_date"`
	Contents        string     `json:"contents"` // HTML description
}

type Company struct {
	Name string `json:"name"`
}

type Location struct {
	Name string `json:"name"`
}

type Level struct {
	Name string `json:"name"`
}

type Refs struct {
	LandingPage string `json:"landing_page"`
}
