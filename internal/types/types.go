package types

import "time"

const ContextUserKey = "user"

type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// UserBrief is the short form used for task assignees and creators.
type UserBrief struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type TokenResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
}
