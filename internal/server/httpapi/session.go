package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/dmitrijs2005/notekeeper/internal/server/services"
)

type AccountRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	UserType       string `json:"userType"`
	ProfilePicture string `json:"profilePicture"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Envelope
	Customer     models.Profile `json:"customer"`
	AccessToken  string         `json:"accessToken"`
	RefreshToken string         `json:"refreshToken"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type RefreshResponse struct {
	Envelope
	AccessToken string `json:"accessToken"`
}

func (a *API) CreateAccount(w http.ResponseWriter, r *http.Request) {
	req := AccountRequest{}
	if ok := decodeRequest(&req, w, r); !ok {
		return
	}

	err := a.sessions.CreateAccount(r.Context(), services.AccountInput{
		Email:          req.Email,
		Password:       req.Password,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		UserType:       req.UserType,
		ProfilePicture: req.ProfilePicture,
	})
	a.observer.ObserveSession("create_account", err)
	if err != nil {
		a.fail(w, r, err, messages{
			common.KindValidation: "All fields are required",
			common.KindInternal:   "Server error while creating account",
		})
		return
	}

	returnJson(w, http.StatusOK, Envelope{Success: true, Message: "Account created successfully"})
}

func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	req := LoginRequest{}
	if ok := decodeRequest(&req, w, r); !ok {
		return
	}

	res, err := a.sessions.Login(r.Context(), req.Email, req.Password)
	a.observer.ObserveSession("login", err)
	if err != nil {
		a.fail(w, r, err, messages{
			common.KindValidation:   "Email and password are required",
			common.KindNotFound:     "Customer not found",
			common.KindUnauthorized: "Invalid password",
			common.KindInternal:     "Server error during login",
		})
		return
	}

	returnJson(w, http.StatusOK, LoginResponse{
		Envelope:     Envelope{Success: true, Message: "Login successful"},
		Customer:     res.Customer,
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
	})
}

func (a *API) Refresh(w http.ResponseWriter, r *http.Request) {
	req := RefreshRequest{}
	if ok := decodeRequest(&req, w, r); !ok {
		return
	}

	access, err := a.sessions.Refresh(r.Context(), req.RefreshToken)
	a.observer.ObserveSession("refresh", err)
	if err != nil {
		a.fail(w, r, err, messages{
			common.KindValidation:   "Refresh token is required",
			common.KindRevoked:      "This refresh token has been revoked (logged out)",
			common.KindInvalidToken: "Invalid or expired refresh token",
			common.KindInternal:     "Server error while refreshing token",
		})
		return
	}

	returnJson(w, http.StatusOK, RefreshResponse{
		Envelope:    Envelope{Success: true, Message: "Access token refreshed successfully"},
		AccessToken: access,
	})
}

func (a *API) Logout(w http.ResponseWriter, r *http.Request) {
	req := RefreshRequest{}
	if ok := decodeRequest(&req, w, r); !ok {
		return
	}

	err := a.sessions.Logout(r.Context(), req.RefreshToken)
	a.observer.ObserveSession("logout", err)
	if err != nil {
		a.fail(w, r, err, messages{
			common.KindValidation: "Refresh token is required for logout",
		})
		return
	}

	returnJson(w, http.StatusOK, Envelope{Success: true, Message: "Logout successful. Token invalidated."})
}
