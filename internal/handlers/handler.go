package handlers

import (
	"github.com/taskflow-dev/taskflow/internal/access"
	"github.com/taskflow-dev/taskflow/internal/auth"
	"github.com/taskflow-dev/taskflow/internal/store"
)

// Handler carries the lifecycle managers' dependencies; every route is a
// method on it.
type Handler struct {
	store  *store.Store
	access *access.Checker
	tokens *auth.TokenService
}

func New(st *store.Store, checker *access.Checker, tokens *auth.TokenService) *Handler {
	return &Handler{
		store:  st,
		access: checker,
		tokens: tokens,
	}
}
