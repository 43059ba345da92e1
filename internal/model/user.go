package model

import "time"

// User mirrors the `users` table.  PasswordHash holds the bcrypt digest
// stored in the `password` column and is never serialized; handlers build
// dedicated response types for anything user-facing.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	FullName     – display name given at registration.
//	Email        – unique email address, stored lower-cased.
//	PasswordHash – bcrypt hashed password.
//	Role         – either "user" or "admin".
//	Preferences  – raw JSON blob of notification/newsletter settings (nullable).
//	CreatedAt    – timestamp of creation.
//	UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	FullName     string    // users.full_name
	Email        string    // users.email
	PasswordHash string    // users.password
	Role         string    // users.role
	Preferences  *string   // users.preferences (nullable JSON)
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
