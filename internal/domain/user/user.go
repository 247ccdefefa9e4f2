package user

import "errors"

type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Password string `json:"-"` // bcrypt hash, never serialized
}

// Messages on these two are part of the API contract, do not reword them.

var ErrNotFound = errors.New("user doesn't exist")

var ErrEmailTaken = errors.New("email is taken")
