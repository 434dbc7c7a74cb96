package domain

import "time"

// User is the acting identity resolved from an access token.
type User struct {
	Id UserId
}

// UserProfile is owned by the identity store; hoots only keep its id.
type UserProfile struct {
	Id        UserId    `json:"id"`
	Username  Username  `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
