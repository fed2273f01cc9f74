package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"chhapai.in/app/internal/http/middleware"
	"chhapai.in/app/internal/http/validation"
	"chhapai.in/app/internal/modules/users"
	"chhapai.in/app/internal/shared/apperr"
)

type AuthHandler struct {
	DB      *gorm.DB
	Users   *users.Service
	Session middleware.SessionCfg
}

func NewAuthHandler(db *gorm.DB, svc *users.Service, session middleware.SessionCfg) *AuthHandler {
	return &AuthHandler{DB: db, Users: svc, Session: session}
}

type registerReq struct {
	Email     string  `json:"email" binding:"required,email,max=255"`
	Password  string  `json:"password" binding:"required,min=8,max=72"`
	FirstName *string `json:"first_name" binding:"omitempty,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,max=100"`
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &req)))
		return
	}

	u, err := h.Users.Register(c.Request.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			middleware.Fail(c, apperr.ConflictErr("That email is already registered."))
			return
		}
		middleware.Fail(c, err)
		return
	}

	sess, err := middleware.CreateSession(h.Session, u.ID)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	h.setSessionCookie(c, sess.ID)

	c.JSON(http.StatusCreated, gin.H{"user": userJSON(u)})
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &req)))
		return
	}

	u, err := h.Users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			middleware.Fail(c, apperr.UnauthorizedErr("Email or password is incorrect."))
			return
		}
		middleware.Fail(c, err)
		return
	}

	sess, err := middleware.CreateSession(h.Session, u.ID)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	h.setSessionCookie(c, sess.ID)

	c.JSON(http.StatusOK, gin.H{"user": userJSON(u)})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	if sessionID, err := c.Cookie(h.Session.CookieName); err == nil && sessionID != "" {
		_ = middleware.DeleteSession(h.Session, sessionID)
	}
	c.SetCookie(h.Session.CookieName, "", -1, "/", "", h.Session.Secure, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	cu, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.Fail(c, apperr.UnauthorizedErr("Not signed in."))
		return
	}
	u, err := h.Users.Get(c.Request.Context(), cu.ID)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": userJSON(u)})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, sessionID string) {
	maxAge := int(h.Session.TTL.Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.Session.CookieName, sessionID, maxAge, "/", "", h.Session.Secure, true)
}

func userJSON(u users.User) gin.H {
	out := gin.H{
		"id":    u.ID,
		"email": u.Email,
		"role":  u.Role,
	}
	if u.FirstName != nil {
		out["first_name"] = *u.FirstName
	}
	if u.LastName != nil {
		out["last_name"] = *u.LastName
	}
	return out
}
