package models

import "time"

// User represents a member profile. Accounts are created and deleted by the
// identity service; this backend only reads and updates them.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	KnownAs      string    `json:"known_as"`
	Gender       string    `json:"gender"`
	DateOfBirth  time.Time `json:"date_of_birth"`
	City         string    `json:"city"`
	Country      string    `json:"country"`
	Introduction string    `json:"introduction"`
	LookingFor   string    `json:"looking_for"`
	Interests    string    `json:"interests"`
	CreatedAt    time.Time `json:"created_at"`
}

// Like represents a directed "source likes target" edge. At most one edge
// exists per ordered pair; edges are never updated once created.
type Like struct {
	SourceUserID int64     `json:"source_user_id"`
	LikedUserID  int64     `json:"liked_user_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// LikedUser is the outbound view of a user the caller has liked.
type LikedUser struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	KnownAs      string `json:"known_as"`
	Age          int    `json:"age"`
	Gender       string `json:"gender"`
	City         string `json:"city"`
	Country      string `json:"country"`
	Introduction string `json:"introduction"`
	LookingFor   string `json:"looking_for"`
	Interests    string `json:"interests"`
	PhotoURL     string `json:"photo_url,omitempty"`
}

// Member is a browsable profile with display fields resolved.
type Member struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	KnownAs      string `json:"known_as"`
	Age          int    `json:"age"`
	Gender       string `json:"gender"`
	City         string `json:"city"`
	Country      string `json:"country"`
	Introduction string `json:"introduction"`
	LookingFor   string `json:"looking_for"`
	Interests    string `json:"interests"`
	PhotoURL     string `json:"photo_url,omitempty"`
}

// UserWithPhoto is a user row joined with their main photo URL, empty when
// the user has no main photo.
type UserWithPhoto struct {
	User
	PhotoURL string
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	Introduction string `json:"introduction"`
	LookingFor   string `json:"looking_for"`
	Interests    string `json:"interests"`
	City         string `json:"city"`
	Country      string `json:"country"`
}

// Photo represents a photo record owned by a single user. The bytes live in
// blob storage under Key; URL is the absolute retrievable location.
type Photo struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"-"`
	Key       string    `json:"-"`
	URL       string    `json:"url"`
	IsMain    bool      `json:"is_main"`
	CreatedAt time.Time `json:"created_at"`
}
