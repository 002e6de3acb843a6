package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medscript/clinical-records/internal/core/domain"
	"github.com/medscript/clinical-records/internal/core/ports"
)

// UserHandler serves the admin user ledger.
type UserHandler struct {
	records ports.RecordService
}

func NewUserHandler(records ports.RecordService) *UserHandler {
	return &UserHandler{records: records}
}

// List returns the user ledger in insertion order.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        search  query     string  false  "Case-insensitive match on name or email"
// @Success      200     {object}  listUsersResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users := h.records.ListUsers(c.QueryParam("search"))

	data := make([]userResponse, 0, len(users))
	for _, u := range users {
		data = append(data, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, listUsersResponse{Data: data, Total: len(data)})
}

// Create adds a user to the ledger.
//
// @Summary      Add a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      addUserRequest  true  "User details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req addUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.records.AddUser(c.Request().Context(), ports.AddUserInput{
		Name:      req.Name,
		Email:     req.Email,
		Role:      domain.Role(req.Role),
		Specialty: req.Specialty,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toUserResponse(*user))
}

// Delete removes a user. Deleting an unknown id succeeds (idempotent).
//
// @Summary      Delete a user
// @Tags         users
// @Param        id  path  string  true  "User id"
// @Success      204
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.records.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
