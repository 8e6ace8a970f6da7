package entity

import "time"

// Profile is the public identity record for an account. Its ID always
// equals the Firebase Auth UID, so provisioning the same account twice
// writes the same document.
type Profile struct {
	ID        string    `json:"id" firestore:"id"`
	FullName  string    `json:"full_name,omitempty" firestore:"fullName,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty" firestore:"avatarURL,omitempty"`
	Bio       string    `json:"bio,omitempty" firestore:"bio,omitempty"`
	Email     string    `json:"email,omitempty" firestore:"email,omitempty"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
