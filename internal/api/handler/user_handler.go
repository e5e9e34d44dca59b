package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/psikobank/user-registry/internal/api/metrics"
	"github.com/psikobank/user-registry/internal/core/domain"
	"github.com/psikobank/user-registry/internal/core/ports"
)

// UserHandler exposes the user registry over HTTP. Every route expects the
// Auth and Requester middleware to have run.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /users.
//
// @Summary      List visible users
// @Description  super_admin sees everyone, admin everyone but super_admin users, user only themself.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "Page number (10 users per page)"
// @Success      200   {object}  userPageEnvelope
// @Failure      401   {object}  messageEnvelope
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	req, err := requester(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	res, err := h.service.List(c.Request().Context(), req, page)
	metrics.Observe("list", domain.ActionList, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success(toUserPage(res)))
}

// Create handles POST /users.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      ports.CreateUserInput  true  "New user"
// @Success      201   {object}  userEnvelope
// @Failure      400   {object}  messageEnvelope
// @Failure      403   {object}  messageEnvelope
// @Failure      422   {object}  validationEnvelope
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	req, err := requester(c)
	if err != nil {
		return err
	}

	var in ports.CreateUserInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.Create(c.Request().Context(), req, in)
	metrics.Observe("create", domain.ActionCreate, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, successMessage("User created successfully", toUserResponse(user)))
}

// Show handles GET /users/:id.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userEnvelope
// @Failure      403  {object}  messageEnvelope
// @Failure      404  {object}  messageEnvelope
// @Router       /users/{id} [get]
func (h *UserHandler) Show(c echo.Context) error {
	req, err := requester(c)
	if err != nil {
		return err
	}

	user, err := h.service.Show(c.Request().Context(), req, c.Param("id"))
	metrics.Observe("show", domain.ActionView, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success(toUserResponse(user)))
}

// Update handles PUT and PATCH /users/:id. Only supplied fields change.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "User id"
// @Param        body  body      ports.UpdateUserInput  true  "Fields to change"
// @Success      200   {object}  userEnvelope
// @Failure      400   {object}  messageEnvelope
// @Failure      403   {object}  messageEnvelope
// @Failure      404   {object}  messageEnvelope
// @Failure      422   {object}  validationEnvelope
// @Router       /users/{id} [put]
// @Router       /users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	req, err := requester(c)
	if err != nil {
		return err
	}

	var in ports.UpdateUserInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.Update(c.Request().Context(), req, c.Param("id"), in)
	metrics.Observe("update", domain.ActionUpdate, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successMessage("User updated successfully", toUserResponse(user)))
}

// Delete handles DELETE /users/:id.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  messageEnvelope
// @Failure      403  {object}  messageEnvelope
// @Failure      404  {object}  messageEnvelope
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	req, err := requester(c)
	if err != nil {
		return err
	}

	err = h.service.Delete(c.Request().Context(), req, c.Param("id"))
	metrics.Observe("delete", domain.ActionDelete, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successMessage("User deleted successfully", nil))
}
