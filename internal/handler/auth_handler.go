package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"microboard/internal/models"
	"microboard/internal/repository"
	"microboard/internal/service"
	"microboard/internal/session"
	"microboard/internal/view"
)

type RegisterRequest struct {
	Name     string `validate:"required,min=3"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8,max=72,ascii"`
}

type SignInRequest struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

const (
	invalidCredentialsMessage = "Invalid email or password."
	passwordTooLongMessage    = "Password must be at most 72 characters."
)

// NewUser renders the registration form.
func (h *Handlers) NewUser(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "users/new", view.Data{})
}

// CreateUser registers a user and signs them in.
func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	req := RegisterRequest{
		Name:     strings.TrimSpace(r.PostFormValue("name")),
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
	form := map[string]string{"name": req.Name, "email": req.Email}

	user, err := h.register(r.Context(), req)
	if err != nil {
		message, ok := registrationMessage(err)
		if !ok {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("Failed to create user")
		}
		h.redirectWithFlash(w, r, "/users/new", session.FlashError, message, form)
		return
	}

	if err := h.Sessions.SignIn(w, user.ID); err != nil {
		h.ServerError(w, r, err)
		return
	}

	zerolog.Ctx(r.Context()).Info().Int64("user_id", user.ID).Msg("User registered")
	h.redirectWithFlash(w, r, "/", session.FlashNotice, "Welcome, "+user.Name+"!", nil)
}

// register checks the name, then the email, then the password, and stops at
// the first failure. The insert repeats the uniqueness checks in a transaction.
func (h *Handlers) register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	checks := []func() error{
		func() error { return h.Validate.StructPartial(req, "Name") },
		func() error { return h.AuthService.CheckName(ctx, req.Name) },
		func() error { return h.Validate.StructPartial(req, "Email") },
		func() error { return h.AuthService.CheckEmail(ctx, req.Email) },
		func() error { return h.Validate.StructPartial(req, "Password") },
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return nil, err
		}
	}

	return h.AuthService.Register(ctx, repository.CreateUserRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
}

// registrationMessage reports false for errors the visitor cannot fix.
func registrationMessage(err error) (string, bool) {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return validationMessage(err), true
	case errors.Is(err, repository.ErrNameTaken):
		return "Name is already taken.", true
	case errors.Is(err, repository.ErrEmailTaken):
		return "Email is already taken.", true
	case errors.Is(err, service.ErrPasswordTooLong):
		return passwordTooLongMessage, true
	}
	return "Failed to create user.", false
}

// SignInForm renders the sign-in form.
func (h *Handlers) SignInForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "sign_in", view.Data{})
}

// SignIn never tells the visitor which of email or password was wrong.
func (h *Handlers) SignIn(w http.ResponseWriter, r *http.Request) {
	req := SignInRequest{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
	form := map[string]string{"email": req.Email}

	if err := h.Validate.Struct(req); err != nil {
		h.redirectWithFlash(w, r, "/sign_in", session.FlashError, invalidCredentialsMessage, form)
		return
	}

	user, err := h.AuthService.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.redirectWithFlash(w, r, "/sign_in", session.FlashError, invalidCredentialsMessage, form)
			return
		}
		h.ServerError(w, r, err)
		return
	}

	if err := h.Sessions.SignIn(w, user.ID); err != nil {
		h.ServerError(w, r, err)
		return
	}

	h.redirectWithFlash(w, r, "/", session.FlashNotice, "Signed in.", nil)
}

// SignOut is idempotent.
func (h *Handlers) SignOut(w http.ResponseWriter, r *http.Request) {
	h.Sessions.SignOut(w)
	redirect(w, r, "/")
}
