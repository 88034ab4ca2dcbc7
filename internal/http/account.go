package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gymboost-server/internal/service"
)

// avatar bodies above this are cut off before multipart parsing
const maxUploadBytes = service.MaxAvatarBytes + 1<<20

func (h *Handler) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	user, err := h.svc.Users.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"userId":  user.ID,
	})
}

func (h *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	res, err := h.svc.Users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	firstLogin := 0
	if res.FirstLogin {
		firstLogin = 1
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Login successful",
		"token":      res.Token,
		"userId":     res.UserID,
		"firstLogin": firstLogin,
	})
}

func (h *Handler) logout(c *gin.Context) {
	if err := h.svc.Users.Logout(c.Request.Context(), currentUserID(c)); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *Handler) profile(c *gin.Context) {
	user, err := h.svc.Users.GetByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{
		Username:  user.Username,
		AvatarURL: user.AvatarURL,
	})
}

func (h *Handler) uploadAvatar(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	header, err := c.FormFile("avatar")
	if err != nil {
		badRequest(c, "No file uploaded")
		return
	}

	file, err := header.Open()
	if err != nil {
		badRequest(c, "Could not read uploaded file")
		return
	}
	defer file.Close()

	url, err := h.svc.Avatars.Upload(c.Request.Context(), currentUserID(c), file, header.Size)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatarUrl": url})
}

func (h *Handler) getSettings(c *gin.Context) {
	settings, err := h.svc.Settings.Get(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dark_mode": settings.DarkMode})
}

func (h *Handler) updateDarkMode(c *gin.Context) {
	var req darkModeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.DarkMode == nil {
		badRequest(c, "dark_mode must be a boolean")
		return
	}

	if err := h.svc.Settings.SetDarkMode(c.Request.Context(), currentUserID(c), *req.DarkMode); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Dark mode preference updated.",
	})
}
