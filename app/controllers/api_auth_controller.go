package controllers

import (
	"errors"
	"net/http"

	"github.com/aferchichi/stockshop/app/services"
	"github.com/aferchichi/stockshop/pkg/auth"
	"github.com/aferchichi/stockshop/pkg/bind"
	"github.com/aferchichi/stockshop/pkg/response"
)

// APIAuthController issues and refreshes JWT pairs for the admin API.
type APIAuthController struct {
	auth *services.AuthService
}

func NewAPIAuthController() *APIAuthController {
	return &APIAuthController{auth: services.NewAuthService()}
}

type tokenRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// Token exchanges admin credentials for an access/refresh token pair.
func (c *APIAuthController) Token(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	access, refresh, err := c.auth.AdminToken(req.Email, req.Password)
	if errors.Is(err, services.ErrEmailNotFound) || errors.Is(err, services.ErrBadPassword) {
		response.Unauthorized(w)
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not issue token")
		return
	}

	response.Success(w, tokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Refresh trades a valid refresh token for a fresh pair.
func (c *APIAuthController) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	claims, err := auth.ValidateToken(req.RefreshToken)
	if err != nil {
		response.Unauthorized(w)
		return
	}

	access, err := auth.GenerateToken(claims.UserID, claims.Role)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not issue token")
		return
	}
	refresh, err := auth.GenerateRefreshToken(claims.UserID, claims.Role)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not issue token")
		return
	}

	response.Success(w, tokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
	})
}
