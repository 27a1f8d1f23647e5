package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/foodtrace/backend/internal/auth"
	"github.com/pageza/foodtrace/backend/internal/middleware"
	"github.com/pageza/foodtrace/backend/internal/service"
	"github.com/pageza/foodtrace/backend/internal/types"
)

// AccountHandler serves /api/account.
type AccountHandler struct {
	accounts service.IAccountService
	authn    auth.Authenticator
}

// NewAccountHandler creates an AccountHandler issuing credentials with authn.
func NewAccountHandler(accounts service.IAccountService, authn auth.Authenticator) *AccountHandler {
	return &AccountHandler{accounts: accounts, authn: authn}
}

// RegisterRoutes mounts the account routes. login is passed separately so
// the caller can put a rate limiter in front of it.
func (h *AccountHandler) RegisterRoutes(rg *gin.RouterGroup, loginMiddleware ...gin.HandlerFunc) {
	account := rg.Group("/account")
	{
		account.POST("/register", h.Register)
		account.POST("/login", append(loginMiddleware, h.Login)...)
		account.GET("/profile", h.Profile)
		account.POST("/change-password", h.ChangePassword)
		account.POST("/delete-user", h.DeleteUser)
		account.POST("/logout", h.Logout)
	}
}

func (h *AccountHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, ErrMalformedBody)
		return
	}

	user, err := h.accounts.Register(c.Request.Context(), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, types.ProfileResponse{UserID: user.ID, Email: user.Email})
}

func (h *AccountHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, ErrMalformedBody)
		return
	}

	id, err := h.accounts.Login(c.Request.Context(), &req)
	if err != nil {
		RespondError(c, err)
		return
	}

	token, err := h.authn.Issue(c.Writer, c.Request, *id)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.LoginResponse{Token: token})
}

func (h *AccountHandler) Profile(c *gin.Context) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		RespondError(c, types.ErrUnauthorized)
		return
	}

	profile, err := h.accounts.Profile(c.Request.Context(), id.UserID)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *AccountHandler) ChangePassword(c *gin.Context) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		RespondError(c, types.ErrUnauthorized)
		return
	}
	var req types.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, ErrMalformedBody)
		return
	}

	if err := h.accounts.ChangePassword(c.Request.Context(), id.UserID, &req); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteUser removes the caller's account and revokes the credential used.
func (h *AccountHandler) DeleteUser(c *gin.Context) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		RespondError(c, types.ErrUnauthorized)
		return
	}
	var req types.DeleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, ErrMalformedBody)
		return
	}

	if err := h.accounts.DeleteAccount(c.Request.Context(), id.UserID, &req); err != nil {
		RespondError(c, err)
		return
	}
	if err := h.authn.Revoke(c.Writer, c.Request); err != nil {
		middleware.Logger(c).WarnContext(c.Request.Context(), "revoke after account deletion failed", "error", err)
	}
	c.Status(http.StatusNoContent)
}

func (h *AccountHandler) Logout(c *gin.Context) {
	if err := h.authn.Revoke(c.Writer, c.Request); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
