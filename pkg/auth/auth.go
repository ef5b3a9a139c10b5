package auth

import (
	"errors"
	"time"
)

// Token is an opaque bearer credential stored server-side with an expiry.
type Token struct {
	Id        int
	Value     string
	UserId    int
	ExpiresAt time.Time
	CreatedAt time.Time
}

var ErrInvalidCredentials = errors.New("invalid username or password")
var ErrInvalidToken = errors.New("invalid or expired token")
