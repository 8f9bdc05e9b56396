package router

import (
	"net/http"

	"github.com/gorilla/mux"

	handlers "microboard/internal/handler"
	"microboard/internal/middleware"
	"microboard/internal/service"
	"microboard/internal/session"
)

// New registers the board routes and wraps them in the middleware stack.
func New(h *handlers.Handlers, users service.UserService, sessions *session.Manager) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", h.Index).Methods(http.MethodGet)
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	r.HandleFunc("/users/new", h.NewUser).Methods(http.MethodGet)
	r.HandleFunc("/users", h.CreateUser).Methods(http.MethodPost)

	r.HandleFunc("/sign_in", h.SignInForm).Methods(http.MethodGet)
	r.HandleFunc("/sign_in", h.SignIn).Methods(http.MethodPost)
	r.HandleFunc("/sign_out", h.SignOut).Methods(http.MethodDelete)

	r.HandleFunc("/posts/new", h.NewPost).Methods(http.MethodGet)
	r.HandleFunc("/posts", h.CreatePost).Methods(http.MethodPost)
	r.HandleFunc("/posts/{id:[0-9]+}/edit", h.EditPost).Methods(http.MethodGet)
	r.HandleFunc("/posts/{id:[0-9]+}", h.UpdatePost).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(h.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(h.MethodNotAllowed)

	return middleware.Chain(r,
		middleware.SessionMiddleware(sessions, users, h.ServerError),
		middleware.MethodOverrideMiddleware,
		middleware.RecoverMiddleware(h.ServerError),
		middleware.LoggingMiddleware,
	)
}
