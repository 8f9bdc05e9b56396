package handlers

import (
	"github.com/go-playground/validator/v10"

	"microboard/internal/service"
	"microboard/internal/session"
	"microboard/internal/view"
)

type Handlers struct {
	AuthService   service.AuthService
	PostService   service.PostService
	TablesService service.TablesService
	Sessions      *session.Manager
	Views         *view.Renderer
	Validate      *validator.Validate
}

func NewHandlers(service *service.Service, sessions *session.Manager, views *view.Renderer) *Handlers {
	return &Handlers{
		AuthService:   service.Auth,
		PostService:   service.Post,
		TablesService: service.Tables,
		Sessions:      sessions,
		Views:         views,
		Validate:      validator.New(validator.WithRequiredStructEnabled()),
	}
}
