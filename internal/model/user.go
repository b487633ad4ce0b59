package model

import "time"

// User represents an account record as stored in the `users` table.
// Passwords are never stored in plain text; only the bcrypt hash is
// persisted. Handlers define separate response types with JSON tags so
// that PasswordHash cannot leak into an API response.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address (domain segment lower-cased).
//  PasswordHash – bcrypt hashed password.
//  FirstName    – given name, may be empty.
//  LastName     – family name, may be empty.
//  IsActive     – whether the account may authenticate.
//  IsStaff      – staff flag, set for administratively created accounts.
//  IsSuperuser  – superuser flag, set for administratively created accounts.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	FirstName    string    // users.first_name
	LastName     string    // users.last_name
	IsActive     bool      // users.is_active
	IsStaff      bool      // users.is_staff
	IsSuperuser  bool      // users.is_superuser
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// AuthToken models an entry in the `auth_tokens` table. Each token belongs
// to a user and acts as the sole bearer credential after login. The plain
// token is not stored; only its SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  CreatedAt – timestamp of issuance.
type AuthToken struct {
	ID        uint64    // auth_tokens.id
	UserID    uint64    // auth_tokens.user_id
	TokenHash string    // auth_tokens.token_hash
	CreatedAt time.Time // auth_tokens.created_at
}
