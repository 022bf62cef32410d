package model

import "time"

// Role names stored on user rows and embedded in access tokens.
const (
    RoleUser  = "User"
    RoleAdmin = "Admin"
)

// User represents an account row in the `users` table.  Local accounts carry
// a bcrypt password hash; Google-federated accounts instead carry the
// external uid and an empty hash.  The json tags are omitted because these
// structs are used by the repository layer; handlers define separate
// response types with appropriate JSON tags.
//
// Fields:
//  ID             – primary key identifier of the user.
//  Email          – unique email address.
//  Username       – display name chosen at registration (1–20 chars).
//  PasswordHash   – bcrypt hashed password; empty for federated accounts.
//  GoogleUID      – external identity key for Google signups (nullable).
//  Role           – role name (User or Admin).
//  BasketID       – back-reference to the basket created at registration.
//  Firstname/Lastname/Surname/Phone – optional profile fields.
//  Birthday       – optional profile field (nullable).
//  ResetToken     – outstanding password-recovery token; empty when none.
//  ResetExpiresAt – expiry of the recovery token (nullable).
//  CreatedAt      – timestamp of creation.
//  UpdatedAt      – timestamp of last update.
type User struct {
    ID             uint64     // users.id
    Email          string     // users.email
    Username       string     // users.username
    PasswordHash   string     // users.password_hash
    GoogleUID      string     // users.google_uid (empty for local accounts)
    Role           string     // users.role
    BasketID       uint64     // users.basket_id
    Firstname      string     // users.firstname
    Lastname       string     // users.lastname
    Surname        string     // users.surname
    Phone          string     // users.phone
    Birthday       *time.Time // users.birthday (nullable)
    ResetToken     string     // users.reset_token
    ResetExpiresAt *time.Time // users.reset_expires_at (nullable)
    CreatedAt      time.Time  // users.created_at
    UpdatedAt      time.Time  // users.updated_at
}

// Profile is the subset of user fields a client may read and patch through
// the profile endpoints.  Password and recovery fields are never exposed.
type Profile struct {
    Username  string     `json:"username"`
    Email     string     `json:"email"`
    Firstname string     `json:"firstname"`
    Lastname  string     `json:"lastname"`
    Surname   string     `json:"surname"`
    Phone     string     `json:"phone,omitempty"`
    Birthday  *time.Time `json:"birthday"`
}

// PasswordHistoryEntry records a hash that was replaced during password
// recovery.  Rows are append-only.
type PasswordHistoryEntry struct {
    ID           uint64    // password_history.id
    UserID       uint64    // password_history.user_id
    PasswordHash string    // password_history.password_hash
    ReplacedAt   time.Time // password_history.replaced_at
}
