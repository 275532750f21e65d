package handler

import (
	"github.com/deppfellow/zombies/internal/server"
	"github.com/deppfellow/zombies/internal/service"
)

// Handlers groups every HTTP handler for router setup.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	People  *PeopleHandler
	Zombies *ZombieHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		People:  NewPeopleHandler(s, services.People),
		Zombies: NewZombieHandler(s, services.People),
	}
}
