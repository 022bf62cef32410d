package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/linstore/linstore-api/internal/middleware"
	"github.com/linstore/linstore-api/internal/model"
	"github.com/linstore/linstore-api/internal/repository"
	"github.com/linstore/linstore-api/internal/utils"
)

// ProfileHandler serves the authenticated user's profile. The identity is
// taken from the context value attached by the JWT middleware.
type ProfileHandler struct {
	Users *repository.UserRepo
}

func NewProfileHandler(u *repository.UserRepo) *ProfileHandler {
	return &ProfileHandler{Users: u}
}

// profileUpdateReq carries the patchable profile fields. Pointer fields
// distinguish "not sent" from "set to empty" so a partial patch leaves the
// other fields untouched.
type profileUpdateReq struct {
	Username  *string    `json:"username"`
	Firstname *string    `json:"firstname"`
	Lastname  *string    `json:"lastname"`
	Surname   *string    `json:"surname"`
	Phone     *string    `json:"phone"`
	Birthday  *time.Time `json:"birthday"`
}

// Get returns the profile fields of the authenticated user.
func (h *ProfileHandler) Get(c echo.Context) error {
	id, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id.UserID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, model.Profile{
		Username:  u.Username,
		Email:     u.Email,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Surname:   u.Surname,
		Phone:     u.Phone,
		Birthday:  u.Birthday,
	})
}

// Update patches profile fields after per-field validation. Fields absent
// from the request keep their stored values; the email and password cannot
// be changed here.
func (h *ProfileHandler) Update(c echo.Context) error {
	id, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req profileUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id.UserID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	p := model.Profile{
		Username:  u.Username,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Surname:   u.Surname,
		Phone:     u.Phone,
		Birthday:  u.Birthday,
	}
	if req.Username != nil {
		username, ok := utils.ValidUsername(*req.Username)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "username must be 1-20 characters"})
		}
		p.Username = username
	}
	if req.Firstname != nil {
		p.Firstname = utils.SanitizeText(*req.Firstname)
	}
	if req.Lastname != nil {
		p.Lastname = utils.SanitizeText(*req.Lastname)
	}
	if req.Surname != nil {
		p.Surname = utils.SanitizeText(*req.Surname)
	}
	if req.Phone != nil {
		p.Phone = utils.SanitizeText(*req.Phone)
	}
	if req.Birthday != nil {
		p.Birthday = req.Birthday
	}

	if err := h.Users.UpdateProfile(ctx, id.UserID, p); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, "ok")
}
