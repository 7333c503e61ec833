package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/recipe-app-api/internal/application"
	"github.com/oksasatya/recipe-app-api/internal/domain/entity"
	"github.com/oksasatya/recipe-app-api/pkg/response"
	"github.com/oksasatya/recipe-app-api/pkg/validation"
)

type UserHandler struct {
	Svc    *userapp.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *userapp.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Name     string `json:"name"`
}

type tokenRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	Name     string `json:"name"`
	Password string `json:"password" binding:"omitempty,pwd"`
}

type resetInitRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetConfirmRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,pwd"`
}

func profileJSON(u *entity.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"avatar_url": u.AvatarURL,
		"is_staff":   u.IsStaff,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}

// Register POST /api/users (public)
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		switch err {
		case userapp.ErrEmailTaken:
			response.Error[any](c, http.StatusBadRequest, "registration failed", map[string]string{"email": "already registered"})
		case userapp.ErrEmailRequired:
			response.Error[any](c, http.StatusBadRequest, "registration failed", map[string]string{"email": "is required"})
		default:
			h.Logger.WithError(err).Error("register failed")
			response.Error[any](c, http.StatusInternalServerError, "registration failed", nil)
		}
		return
	}
	response.Success(c, http.StatusCreated, profileJSON(u), "user created", nil)
}

// Token POST /api/users/token (public). Invalid credentials map to 400,
// not 401: the caller supplied a well-formed but wrong payload.
func (h *UserHandler) Token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "unable to authenticate with provided credentials", nil)
		return
	}
	t, err := h.Svc.IssueToken(c.Request.Context(), u)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "token issue failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"token": t.Key}, "token issued", nil)
}

// Me GET /api/users/me
func (h *UserHandler) Me(c *gin.Context) {
	uid := c.GetString("userID")
	u, err := h.Svc.GetProfile(uid)
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
		return
	}
	response.Success(c, http.StatusOK, profileJSON(u), "profile", nil)
}

// UpdateMe PATCH /api/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	uid := c.GetString("userID")
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), uid, userapp.UpdateProfileInput{Name: req.Name, Password: req.Password})
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "failed to update profile", nil)
		return
	}
	response.Success(c, http.StatusOK, profileJSON(u), "profile updated", nil)
}

// UploadAvatar POST /api/users/me/avatar (multipart field "avatar")
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	uid := c.GetString("userID")
	fh, err := c.FormFile("avatar")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"avatar": "is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "cannot read upload", nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadAvatar(c.Request.Context(), uid, f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		h.Logger.WithError(err).Error("avatar upload failed")
		response.Error[any](c, http.StatusInternalServerError, "avatar upload failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"avatar_url": url}, "avatar uploaded", nil)
}

// Search GET /api/users/search?q= (staff only)
func (h *UserHandler) Search(c *gin.Context) {
	if !c.GetBool("isStaff") {
		response.Error[any](c, http.StatusForbidden, "staff only", nil)
		return
	}
	q := c.Query("q")
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	res, err := h.Svc.SearchUsers(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("user search failed")
		response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, res, "search results", gin.H{"count": len(res)})
}

// ResetInit POST /api/users/reset/init. Always 200 to avoid account
// enumeration.
func (h *UserHandler) ResetInit(c *gin.Context) {
	var req resetInitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.InitPasswordReset(c.Request.Context(), req.Email); err != nil {
		h.Logger.WithError(err).Error("reset init failed")
		response.Error[any](c, http.StatusInternalServerError, "reset failed", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"sent": true}, "if the address exists, a reset email has been sent", nil)
}

// ResetConfirm POST /api/users/reset/confirm
func (h *UserHandler) ResetConfirm(c *gin.Context) {
	var req resetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ConfirmPasswordReset(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid or expired token", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"reset": true}, "password updated", nil)
}
