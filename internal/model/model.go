package model

import "time"

const (
	RolePatient = "PATIENT"
	RoleAdmin   = "ADMIN"
)

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Slot is a fixed bookable time window. Immutable once created.
type Slot struct {
	ID        string
	StartAt   time.Time
	EndAt     time.Time
	CreatedAt time.Time
}

// Booking ties one user to one slot. Slot and User are filled on joined reads.
type Booking struct {
	ID        string
	SlotID    string
	UserID    string
	CreatedAt time.Time

	Slot *Slot
	User *User
}
