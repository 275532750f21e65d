package handler

import (
	"net/http"

	"github.com/deppfellow/zombies/internal/model"
	"github.com/deppfellow/zombies/internal/respond"
	"github.com/deppfellow/zombies/internal/server"
	"github.com/deppfellow/zombies/internal/service"
	"github.com/deppfellow/zombies/internal/view"
	"github.com/labstack/echo/v4"
)

// ZombieHandler serves the read-only zombie listing.
type ZombieHandler struct {
	Handler
	people *service.PeopleService
}

func NewZombieHandler(s *server.Server, people *service.PeopleService) *ZombieHandler {
	return &ZombieHandler{
		Handler: NewHandler(s),
		people:  people,
	}
}

// List handles GET /zombies.
func (h *ZombieHandler) List() echo.HandlerFunc {
	return Handle(h.Handler, Route[*model.EmptyRequest]{
		Name:       "zombies.list",
		Offers:     htmlOrJSON,
		NewRequest: func() *model.EmptyRequest { return &model.EmptyRequest{} },
	}, func(c echo.Context, in Input[*model.EmptyRequest]) (respond.Response, error) {
		zombies, err := h.people.ListZombies(c.Request().Context())
		if err != nil {
			return nil, err
		}

		if in.Format == respond.JSON {
			return respond.JSONBody{Status: http.StatusOK, Body: zombies}, nil
		}
		return respond.View{
			Name: view.ListZombies,
			Data: map[string]any{"zombies": zombies},
		}, nil
	})
}
