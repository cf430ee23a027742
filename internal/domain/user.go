// Package domain contains the core business entities for the profile service.
package domain

import "time"

// User represents a user account as seen by the profile contract.
// Accounts are created and destroyed by the identity service; this
// service only reads them and mutates profile-owned fields.
type User struct {
	ID             int64
	Username       string
	Email          string
	FriendCode     *string
	ProfilePicture *string
	Banner         *string
	// Biography distinguishes "never set" (nil) from "cleared" (empty string).
	Biography *string
	CreatedAt time.Time
}
