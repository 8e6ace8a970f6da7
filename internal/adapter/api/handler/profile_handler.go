package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/Hari-385/bookbridge-ai-connect/internal/usecase"
	"github.com/Hari-385/bookbridge-ai-connect/pkg/response"
)

type ProfileHandler struct {
	profileUseCase *usecase.ProfileUseCase
}

func NewProfileHandler(profileUseCase *usecase.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
	}
}

type updateProfileRequest struct {
	FullName  string `json:"full_name" validate:"omitempty,min=2,max=100"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
	Bio       string `json:"bio" validate:"omitempty,max=500"`
}

// GetProfile serves any user's public profile; no authentication required.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	profile, err := h.profileUseCase.GetProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profile)
}

func (h *ProfileHandler) GetMyProfile(c echo.Context) error {
	uid := c.Get("uid").(string)

	profile, err := h.profileUseCase.GetProfile(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profile)
}

func (h *ProfileHandler) UpdateMyProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	profile, err := h.profileUseCase.UpdateProfile(c.Request().Context(), uid, uid, usecase.UpdateProfileInput{
		FullName:  req.FullName,
		AvatarURL: req.AvatarURL,
		Bio:       req.Bio,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profile)
}
