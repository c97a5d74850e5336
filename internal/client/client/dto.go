package client

import "github.com/dmitrijs2005/gobarber/internal/client/models"

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type userResponse struct {
	User models.User `json:"user"`
}
