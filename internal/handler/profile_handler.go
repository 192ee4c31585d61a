package handler

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"picklesaathi/internal/errors"
	"picklesaathi/internal/model"
	"picklesaathi/internal/service"
)

// ProfileHandler handles profile and photo endpoints.
type ProfileHandler struct {
	identity service.IdentityService
	profiles service.ProfileService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(identity service.IdentityService, profiles service.ProfileService) *ProfileHandler {
	return &ProfileHandler{identity: identity, profiles: profiles}
}

// UpdateProfileRequest represents a profile edit. Absent fields stay unchanged.
type UpdateProfileRequest struct {
	Name         *string `json:"name" validate:"omitempty,max=255"`
	Bio          *string `json:"bio" validate:"omitempty,max=2000"`
	Phone        *string `json:"phone" validate:"omitempty,max=32"`
	Location     *string `json:"location" validate:"omitempty,max=128"`
	PlayingStyle *string `json:"playing_style" validate:"omitempty,max=128"`
	SkillLevel   *string `json:"skill_level" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED PROFESSIONAL"`
}

// AddPhotoRequest represents a photo upload (by URL).
type AddPhotoRequest struct {
	ImageURL string `json:"image_url" validate:"required,url,max=512"`
}

// Me godoc
// @Summary Resolve the signed-in player, creating the local row on first login
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /me [get]
func (h *ProfileHandler) Me(c echo.Context) error {
	user, err := resolveCaller(c, h.identity)
	if err != nil {
		// Read path: a store failure degrades to the signed-out view
		// instead of breaking the page.
		log.Printf("identity reconcile failed: %v", err)
		return c.JSON(http.StatusOK, echo.Map{"user": nil})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

// GetProfile godoc
// @Summary Get a player's public profile
// @Tags profile
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} service.Profile
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{username} [get]
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	profile, err := h.profiles.GetProfile(c.Request().Context(), c.Param("username"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateProfile godoc
// @Summary Update the signed-in player's profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /me/profile [put]
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	caller, err := resolveCaller(c, h.identity)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	upd := service.ProfileUpdate{
		Name:         req.Name,
		Bio:          req.Bio,
		Phone:        req.Phone,
		Location:     req.Location,
		PlayingStyle: req.PlayingStyle,
	}
	if req.SkillLevel != nil {
		level := model.SkillLevel(*req.SkillLevel)
		upd.SkillLevel = &level
	}

	user, err := h.profiles.UpdateProfile(c.Request().Context(), caller, upd)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}

// AddPhoto godoc
// @Summary Add a photo to the signed-in player's profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddPhotoRequest true "Photo data"
// @Success 201 {object} model.UserPhoto
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /me/photos [post]
func (h *ProfileHandler) AddPhoto(c echo.Context) error {
	var req AddPhotoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	caller, err := resolveCaller(c, h.identity)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	photo, err := h.profiles.AddPhoto(c.Request().Context(), caller, req.ImageURL)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, photo)
}

// DeletePhoto godoc
// @Summary Delete one of the signed-in player's photos
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param id path string true "Photo ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /me/photos/{id} [delete]
func (h *ProfileHandler) DeletePhoto(c echo.Context) error {
	photoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid photo id",
			Code:  "INVALID_UUID",
		})
	}

	caller, err := resolveCaller(c, h.identity)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	if err := h.profiles.DeletePhoto(c.Request().Context(), caller, photoID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.NoContent(http.StatusNoContent)
}
