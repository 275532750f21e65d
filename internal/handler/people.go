package handler

import (
	"fmt"
	"net/http"

	"github.com/deppfellow/zombies/internal/flash"
	"github.com/deppfellow/zombies/internal/middleware"
	"github.com/deppfellow/zombies/internal/model"
	"github.com/deppfellow/zombies/internal/respond"
	"github.com/deppfellow/zombies/internal/server"
	"github.com/deppfellow/zombies/internal/service"
	"github.com/deppfellow/zombies/internal/view"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Flash texts shown after people mutations.
const (
	msgEatenMissing   = "No person or zombie id was given!"
	msgEatenNobody    = "There is no person to be eaten."
	msgEatenSuccess   = "The person was entirely (not only the brain) swallowed."
	msgEatenUnknown   = "Unknown error. Description: %s"
	msgCreateMissing  = "No name was given!"
	msgCreateTooLong  = "The name is too long, %d characters at most!"
	msgCreateSuccess  = "A new person moved into the garden: %s"
	msgCreateFailure  = "An unexpected error happened while creating!"
	msgDeleteMissing  = "No person was given!"
	msgDeleteSuccess  = "A person was removed from the garden"
	msgDeleteFailure  = "An unexpected error happened while deleting!"
	pathRoot          = "/"
	pathPeople        = "/people"
	pathNewPerson     = "/people/new/"
	countChangeCreate = "+1"
	countChangeDelete = "-1"
)

var (
	htmlOrJSON = []string{respond.HTML, respond.JSON}
	htmlOnly   = []string{respond.HTML}
)

// PeopleHandler serves the /people resource.
type PeopleHandler struct {
	Handler
	people *service.PeopleService
}

func NewPeopleHandler(s *server.Server, people *service.PeopleService) *PeopleHandler {
	return &PeopleHandler{
		Handler: NewHandler(s),
		people:  people,
	}
}

// Home sends visitors to the people listing.
func (h *PeopleHandler) Home(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/people/")
}

// List handles GET /people.
func (h *PeopleHandler) List() echo.HandlerFunc {
	return Handle(h.Handler, Route[*model.EmptyRequest]{
		Name:       "people.list",
		Offers:     htmlOrJSON,
		NewRequest: func() *model.EmptyRequest { return &model.EmptyRequest{} },
	}, h.list)
}

func (h *PeopleHandler) list(c echo.Context, in Input[*model.EmptyRequest]) (respond.Response, error) {
	ctx := c.Request().Context()

	rows, err := h.people.ListPeople(ctx)
	if err != nil {
		return nil, err
	}

	if in.Format == respond.JSON {
		return respond.JSONBody{Status: http.StatusOK, Body: rows}, nil
	}

	zombies, err := h.people.ListZombies(ctx)
	if err != nil {
		return nil, err
	}

	f := middleware.GetFlash(c)
	return respond.View{
		Name: view.ListPeople,
		Data: map[string]any{
			"people":            rows,
			"zombies":           zombies,
			"success":           f.Get(ctx, flash.KeySuccess),
			"error":             f.Get(ctx, flash.KeyError),
			"peopleCountChange": f.Get(ctx, flash.KeyPeopleCountChange),
		},
	}, nil
}

// MarkEaten handles PUT /people/eaten. It always redirects to /.
func (h *PeopleHandler) MarkEaten() echo.HandlerFunc {
	return Handle(h.Handler, Route[*model.MarkEatenRequest]{
		Name:       "people.eaten",
		Offers:     htmlOnly,
		NewRequest: func() *model.MarkEatenRequest { return &model.MarkEatenRequest{} },
	}, h.markEaten)
}

func (h *PeopleHandler) markEaten(c echo.Context, in Input[*model.MarkEatenRequest]) (respond.Response, error) {
	ctx := c.Request().Context()
	f := middleware.GetFlash(c)

	if in.Err != nil {
		h.people.Rejected(service.OpEaten)
		f.Set(ctx, flash.KeyError, msgEatenMissing)
		return respond.Redirect{Location: pathRoot}, nil
	}

	eaten, err := h.people.MarkEaten(ctx, in.Req.Person, in.Req.Zombie)
	switch {
	case err != nil:
		middleware.GetLogger(c).Error().Err(err).Msg("failed to mark person eaten")
		f.Set(ctx, flash.KeyError, fmt.Sprintf(msgEatenUnknown, errors.Cause(err)))
	case !eaten:
		f.Set(ctx, flash.KeyError, msgEatenNobody)
	default:
		f.Set(ctx, flash.KeySuccess, msgEatenSuccess)
	}

	return respond.Redirect{Location: pathRoot}, nil
}

// NewForm handles GET /people/new.
func (h *PeopleHandler) NewForm() echo.HandlerFunc {
	return Handle(h.Handler, Route[*model.EmptyRequest]{
		Name:       "people.new",
		Offers:     htmlOnly,
		NewRequest: func() *model.EmptyRequest { return &model.EmptyRequest{} },
	}, h.newForm)
}

func (h *PeopleHandler) newForm(c echo.Context, _ Input[*model.EmptyRequest]) (respond.Response, error) {
	ctx := c.Request().Context()
	f := middleware.GetFlash(c)

	return respond.View{
		Name: view.NewPerson,
		Data: map[string]any{
			"success": f.Get(ctx, flash.KeySuccess),
			"error":   f.Get(ctx, flash.KeyError),
		},
	}, nil
}

// Create handles POST /people.
func (h *PeopleHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, Route[*model.CreatePersonRequest]{
		Name:       "people.create",
		Offers:     htmlOrJSON,
		NewRequest: func() *model.CreatePersonRequest { return &model.CreatePersonRequest{} },
	}, h.create)
}

func (h *PeopleHandler) create(c echo.Context, in Input[*model.CreatePersonRequest]) (respond.Response, error) {
	ctx := c.Request().Context()
	html := in.Format == respond.HTML
	f := middleware.GetFlash(c)

	if in.Err != nil {
		h.people.Rejected(service.OpCreate)
		if !html {
			return respond.Status{Code: http.StatusBadRequest}, nil
		}
		if in.Req.NameTooLong() {
			f.Set(ctx, flash.KeyError, fmt.Sprintf(msgCreateTooLong, model.MaxNameLength))
		} else {
			f.Set(ctx, flash.KeyError, msgCreateMissing)
		}
		return respond.Redirect{Location: pathNewPerson}, nil
	}

	person, err := h.people.CreatePerson(ctx, in.Req.Name)
	if err != nil {
		middleware.GetLogger(c).Error().Err(err).Msg("failed to create person")
		if !html {
			return respond.Status{Code: http.StatusInternalServerError}, nil
		}
		f.Set(ctx, flash.KeyError, msgCreateFailure)
		return respond.Redirect{Location: pathNewPerson}, nil
	}

	if !html {
		return respond.Status{Code: http.StatusCreated}, nil
	}
	f.Set(ctx, flash.KeyPeopleCountChange, countChangeCreate)
	f.Set(ctx, flash.KeySuccess, fmt.Sprintf(msgCreateSuccess, person.Name))
	return respond.Redirect{Location: pathPeople}, nil
}

// Delete handles DELETE /people/:id. A non-numeric id counts as missing.
func (h *PeopleHandler) Delete() echo.HandlerFunc {
	return Handle(h.Handler, Route[*model.DeletePersonRequest]{
		Name:       "people.delete",
		Offers:     htmlOrJSON,
		NewRequest: func() *model.DeletePersonRequest { return &model.DeletePersonRequest{} },
	}, h.delete)
}

func (h *PeopleHandler) delete(c echo.Context, in Input[*model.DeletePersonRequest]) (respond.Response, error) {
	ctx := c.Request().Context()
	html := in.Format == respond.HTML
	f := middleware.GetFlash(c)

	if in.Err != nil {
		h.people.Rejected(service.OpDelete)
		if !html {
			return respond.Status{Code: http.StatusBadRequest}, nil
		}
		f.Set(ctx, flash.KeyError, msgDeleteMissing)
		return respond.Redirect{Location: pathPeople}, nil
	}

	if err := h.people.DeletePerson(ctx, in.Req.ID); err != nil {
		middleware.GetLogger(c).Error().Err(err).Msg("failed to delete person")
		if !html {
			return respond.Status{Code: http.StatusInternalServerError}, nil
		}
		f.Set(ctx, flash.KeyError, msgDeleteFailure)
		return respond.Redirect{Location: pathPeople}, nil
	}

	if !html {
		return respond.Status{Code: http.StatusNoContent}, nil
	}
	f.Set(ctx, flash.KeyPeopleCountChange, countChangeDelete)
	f.Set(ctx, flash.KeySuccess, msgDeleteSuccess)
	return respond.Redirect{Location: pathPeople}, nil
}
