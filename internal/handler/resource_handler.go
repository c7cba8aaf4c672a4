package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/dafibh/fortuna/fortuna-web/internal/resource"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// CSRFContextKey is where echo's CSRF middleware stores the form token
const CSRFContextKey = "csrf"

const confirmDeleteTemplate = "confirm_delete"

var errInvalidID = errors.New("invalid resource id")

// ResourceConfig describes how one resource is listed and edited. I is the
// form input struct bound from the request and checked by the validator.
type ResourceConfig[T resource.Item, I any] struct {
	// Name prefixes the list and form templates ("categories" -> categories_list)
	Name      string
	BasePath  string
	ListTitle string
	Remote    resource.Remote[T]
	New       func() T
	Titles    resource.Titles[T]
	// Label names an item on the delete confirmation page
	Label   func(T) string
	ToInput func(T) I
	// Apply copies validated input into target and returns field errors
	// for values the validator cannot check
	Apply     func(in *I, target T) map[string]string
	ListExtra func(ctx context.Context) any
	FormExtra func(ctx context.Context) any
}

// ListPage is the data of a list template
type ListPage[T resource.Item] struct {
	Title    string
	BasePath string
	Items    []T
	Toast    *resource.Toast
	Extra    any
	CSRF     string
}

// FormPage is the data of a form template
type FormPage[T resource.Item, I any] struct {
	Title               string
	Action              string
	BasePath            string
	IsNew               bool
	Resource            T
	Input               I
	FieldErrors         map[string]string
	ServerErrorMessages []string
	Toast               *resource.Toast
	Extra               any
	CSRF                string
}

// ConfirmPage is the data of the delete confirmation template
type ConfirmPage struct {
	Title    string
	Prompt   string
	Label    string
	Action   string
	BasePath string
	Toast    *resource.Toast
	CSRF     string
}

// ResourceHandler serves the list, form and delete pages of one resource
type ResourceHandler[T resource.Item, I any] struct {
	cfg   ResourceConfig[T, I]
	flash *Flash
}

// NewResourceHandler creates a new ResourceHandler
func NewResourceHandler[T resource.Item, I any](cfg ResourceConfig[T, I], flash *Flash) *ResourceHandler[T, I] {
	cfg.BasePath = "/" + strings.Trim(cfg.BasePath, "/")
	if cfg.ListTitle == "" {
		cfg.ListTitle = cfg.Name
	}
	if flash == nil {
		flash = NewFlash("", false)
	}
	return &ResourceHandler[T, I]{cfg: cfg, flash: flash}
}

// BasePath returns the UI path of the resource
func (h *ResourceHandler[T, I]) BasePath() string {
	return h.cfg.BasePath
}

// Register mounts the resource pages on g
func (h *ResourceHandler[T, I]) Register(g *echo.Group) {
	g.GET("", h.List)
	g.GET("/"+resource.SegmentNew, h.ShowForm)
	g.POST("/"+resource.SegmentNew, h.Submit)
	g.GET("/:id/edit", h.ShowForm)
	g.POST("/:id/edit", h.Submit)
	g.GET("/:id/delete", h.ConfirmDelete)
	g.POST("/:id/delete", h.Delete)
}

// List handles GET {base}
func (h *ResourceHandler[T, I]) List(c echo.Context) error {
	ctx := c.Request().Context()

	page := ListPage[T]{
		Title:    h.cfg.ListTitle,
		BasePath: h.cfg.BasePath,
		Toast:    h.flash.Pop(c),
		CSRF:     csrfToken(c),
	}

	status := http.StatusOK
	list := resource.NewList(h.cfg.Remote)
	if err := list.Load(ctx); err != nil {
		status = http.StatusBadGateway
		page.Toast = list.Toast
	}
	page.Items = list.Items()
	if h.cfg.ListExtra != nil {
		page.Extra = h.cfg.ListExtra(ctx)
	}

	return c.Render(status, h.cfg.Name+"_list", page)
}

// ShowForm handles GET {base}/new and GET {base}/:id/edit
func (h *ResourceHandler[T, I]) ShowForm(c echo.Context) error {
	form, err := h.initForm(c)
	if err != nil {
		return h.formLoadError(c, err)
	}
	return h.renderForm(c, http.StatusOK, form, h.cfg.ToInput(form.Resource), nil, h.flash.Pop(c))
}

// Submit handles POST {base}/new and POST {base}/:id/edit. Invalid input
// is answered with 422 without calling the REST API; a successful save
// redirects to the edit page of the saved resource.
func (h *ResourceHandler[T, I]) Submit(c echo.Context) error {
	form, err := h.initForm(c)
	if err != nil {
		return h.formLoadError(c, err)
	}

	var in I
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form data")
	}

	var fieldErrors map[string]string
	if err := c.Validate(&in); err != nil {
		fieldErrors = FieldErrors(err)
		if fieldErrors == nil {
			return err
		}
	}
	if len(fieldErrors) == 0 {
		fieldErrors = h.cfg.Apply(&in, form.Resource)
	}
	if len(fieldErrors) > 0 {
		return h.renderForm(c, http.StatusUnprocessableEntity, form, in, fieldErrors, nil)
	}

	result := form.Submit(c.Request().Context(), form.Resource)
	if !result.OK {
		status := http.StatusBadGateway
		if resource.IsValidationError(result.Err) {
			status = http.StatusUnprocessableEntity
		}
		return h.renderForm(c, status, form, in, nil, result.Toast)
	}

	h.flash.Set(c, result.Toast)
	return c.Redirect(http.StatusSeeOther, result.Redirect)
}

// ConfirmDelete handles GET {base}/:id/delete
func (h *ResourceHandler[T, I]) ConfirmDelete(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return NewNotFoundError(c, "Item not found")
	}

	item, err := h.cfg.Remote.GetByID(c.Request().Context(), id)
	if err != nil {
		return h.formLoadError(c, err)
	}

	label := ""
	if h.cfg.Label != nil {
		label = h.cfg.Label(item)
	}
	return c.Render(http.StatusOK, confirmDeleteTemplate, ConfirmPage{
		Title:    "Delete",
		Prompt:   resource.MsgConfirmDelete,
		Label:    label,
		Action:   c.Request().URL.Path,
		BasePath: h.cfg.BasePath,
		CSRF:     csrfToken(c),
	})
}

// Delete handles POST {base}/:id/delete. The item is only deleted when the
// confirmation page answered confirm=yes.
func (h *ResourceHandler[T, I]) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c.Param("id"))
	if err != nil {
		return NewNotFoundError(c, "Item not found")
	}

	list := resource.NewList(h.cfg.Remote)
	if err := list.Load(ctx); err != nil {
		h.flash.Set(c, list.Toast)
		return c.Redirect(http.StatusSeeOther, h.cfg.BasePath)
	}

	item, ok := list.Find(id)
	if !ok {
		return NewNotFoundError(c, "Item not found")
	}

	confirmed := resource.ConfirmFunc(func(string) bool {
		return c.FormValue("confirm") == "yes"
	})
	deleted, err := list.Delete(ctx, item, confirmed)
	if err == nil && !deleted {
		return c.Redirect(http.StatusSeeOther, h.cfg.BasePath)
	}

	h.flash.Set(c, list.Toast)
	return c.Redirect(http.StatusSeeOther, h.cfg.BasePath)
}

// initForm builds the form of the current request. The route segment that
// follows the base path ("new" or the id) selects the mode.
func (h *ResourceHandler[T, I]) initForm(c echo.Context) (*resource.Form[T], error) {
	segment := h.routeSegment(c)

	var id int32
	if resource.ModeFromSegment(segment) == resource.ModeEdit {
		parsed, err := parseID(segment)
		if err != nil {
			return nil, err
		}
		id = parsed
	}

	form := resource.NewForm(h.cfg.Remote, h.cfg.BasePath, h.cfg.New, h.cfg.Titles)
	if err := form.Init(c.Request().Context(), segment, id); err != nil {
		return nil, err
	}
	return form, nil
}

func (h *ResourceHandler[T, I]) routeSegment(c echo.Context) string {
	rest := strings.TrimPrefix(c.Request().URL.Path, h.cfg.BasePath)
	segment, _, _ := strings.Cut(strings.TrimPrefix(rest, "/"), "/")
	return segment
}

func (h *ResourceHandler[T, I]) renderForm(c echo.Context, status int, form *resource.Form[T], in I, fieldErrors map[string]string, toast *resource.Toast) error {
	page := FormPage[T, I]{
		Title:               form.PageTitle(),
		Action:              form.Action(),
		BasePath:            h.cfg.BasePath,
		IsNew:               form.IsNew(),
		Resource:            form.Resource,
		Input:               in,
		FieldErrors:         fieldErrors,
		ServerErrorMessages: form.ServerErrorMessages,
		Toast:               toast,
		CSRF:                csrfToken(c),
	}
	if h.cfg.FormExtra != nil {
		page.Extra = h.cfg.FormExtra(c.Request().Context())
	}
	return c.Render(status, h.cfg.Name+"_form", page)
}

func (h *ResourceHandler[T, I]) formLoadError(c echo.Context, err error) error {
	if errors.Is(err, errInvalidID) || resource.IsNotFound(err) {
		return NewNotFoundError(c, "Item not found")
	}
	log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("Failed to load item")
	return NewBadGatewayError(c, resource.MsgConnectivity)
}

func parseID(s string) (int32, error) {
	id, err := strconv.ParseInt(s, 10, 32)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return int32(id), nil
}

func csrfToken(c echo.Context) string {
	token, _ := c.Get(CSRFContextKey).(string)
	return token
}
