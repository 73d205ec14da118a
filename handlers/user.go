package handlers

import (
	"fmt"
	"net/http"

	"studybuddy/middleware"
	"studybuddy/models"
	"studybuddy/services/user"
	"studybuddy/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	UserService user.UserService
}

func NewUserHandler(us user.UserService) *UserHandler {
	return &UserHandler{UserService: us}
}

// GetMeHandler handles GET /api/users/me.
func (h *UserHandler) GetMeHandler(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	u, err := h.UserService.GetProfile(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, u)
}

// SaveProfileHandler handles POST /api/users.
func (h *UserHandler) SaveProfileHandler(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var in user.ProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	u, err := h.UserService.SaveProfile(c.Request.Context(), uid, c.GetString(middleware.ContextEmail), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, u)
}

// UpdateMeHandler handles PUT /api/users/me.
func (h *UserHandler) UpdateMeHandler(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var patch models.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}
	u, err := h.UserService.UpdateProfile(c.Request.Context(), uid, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, u)
}

// GetUserHandler handles GET /api/users/:uid and returns the public view.
func (h *UserHandler) GetUserHandler(c *gin.Context) {
	u, err := h.UserService.GetProfile(c.Request.Context(), c.Param("uid"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, u.Public())
}

// UploadPhotoHandler handles POST /api/users/me/photo (multipart field "photo").
func (h *UserHandler) UploadPhotoHandler(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	fh, err := c.FormFile("photo")
	if err != nil {
		badRequest(c, fmt.Errorf("photo file is required: %w", err))
		return
	}
	if fh.Size > utils.MaxPhotoSize {
		badRequest(c, fmt.Errorf("photo exceeds %d bytes", utils.MaxPhotoSize))
		return
	}
	f, err := fh.Open()
	if err != nil {
		badRequest(c, err)
		return
	}
	defer f.Close()

	u, err := h.UserService.UploadPhoto(c.Request.Context(), uid, f)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, u)
}
