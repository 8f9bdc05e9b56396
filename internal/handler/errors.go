package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"microboard/internal/session"
	"microboard/internal/view"
)

func writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// render shows a page with the current user and any pending flashes.
func (h *Handlers) render(w http.ResponseWriter, r *http.Request, status int, name string, data view.Data) {
	data.CurrentUser = session.UserFromContext(r.Context())

	pending, err := h.Sessions.Pop(w, r)
	if err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("Failed to read flash messages")
	}
	data.Flashes = pending.Flashes
	if data.Form == nil {
		data.Form = pending.Form
	}

	if err := h.Views.Render(w, status, name, data); err != nil {
		h.ServerError(w, r, err)
	}
}

// ServerError logs err and renders a generic 500 page.
func (h *Handlers) ServerError(w http.ResponseWriter, r *http.Request, err error) {
	zerolog.Ctx(r.Context()).Error().
		Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("Request failed")

	h.errorPage(w, r, http.StatusInternalServerError, "Something went wrong. Please try again later.")
}

func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.errorPage(w, r, http.StatusNotFound, "The page you were looking for doesn't exist.")
}

func (h *Handlers) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.errorPage(w, r, http.StatusMethodNotAllowed, "Method not allowed.")
}

func (h *Handlers) errorPage(w http.ResponseWriter, r *http.Request, status int, message string) {
	data := view.Data{
		CurrentUser: session.UserFromContext(r.Context()),
		Status:      status,
		Message:     message,
	}
	if err := h.Views.Render(w, status, "error", data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Failed to render error page")
		http.Error(w, http.StatusText(status), status)
	}
}

func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// redirectWithFlash stores a flash for the next page and redirects. form
// holds values to refill and may be nil.
func (h *Handlers) redirectWithFlash(w http.ResponseWriter, r *http.Request, to, kind, message string, form map[string]string) {
	if err := h.Sessions.AddFlashWithForm(w, r, kind, message, form); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("Failed to save flash message")
	}
	redirect(w, r, to)
}

// validationMessage turns the first failed rule into a message for the form.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid form submission."
	}

	fe := verrs[0]
	switch fe.Field() + "." + fe.Tag() {
	case "Name.required", "Name.min":
		return "Name must be at least 3 characters."
	case "Email.required", "Email.email":
		return "Email is not valid."
	case "Password.required", "Password.min":
		return "Password must be at least 8 characters."
	case "Password.max":
		return passwordTooLongMessage
	case "Password.ascii":
		return "Password must contain only ASCII characters."
	case "Content.required":
		return "Content can't be blank."
	}

	return "Invalid " + strings.ToLower(fe.Field()) + "."
}
