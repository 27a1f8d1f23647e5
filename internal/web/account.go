package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/foodtrace/backend/internal/api"
	"github.com/pageza/foodtrace/backend/internal/auth"
	"github.com/pageza/foodtrace/backend/internal/middleware"
	"github.com/pageza/foodtrace/backend/internal/service"
	"github.com/pageza/foodtrace/backend/internal/types"
)

// AccountController serves /Account.
type AccountController struct {
	accounts service.IAccountService
	authn    auth.Authenticator
}

func NewAccountController(accounts service.IAccountService, authn auth.Authenticator) *AccountController {
	return &AccountController{accounts: accounts, authn: authn}
}

func (ac *AccountController) LoginForm(c *gin.Context) {
	view(c, http.StatusOK, nil)
}

// Login starts a session and sends the browser to the item list.
func (ac *AccountController) Login(c *gin.Context) {
	var req types.LoginRequest
	if !bindForm(c, &req) {
		return
	}

	id, err := ac.accounts.Login(c.Request.Context(), &req)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	if _, err := ac.authn.Issue(c.Writer, c.Request, *id); err != nil {
		api.RespondError(c, err)
		return
	}
	redirect(c, IndexPath)
}

func (ac *AccountController) RegisterForm(c *gin.Context) {
	view(c, http.StatusOK, nil)
}

func (ac *AccountController) Register(c *gin.Context) {
	var req types.RegisterRequest
	if !bindForm(c, &req) {
		return
	}

	if _, err := ac.accounts.Register(c.Request.Context(), &req); err != nil {
		api.RespondError(c, err)
		return
	}
	redirect(c, LoginPath)
}

func (ac *AccountController) Logout(c *gin.Context) {
	if err := ac.authn.Revoke(c.Writer, c.Request); err != nil {
		api.RespondError(c, err)
		return
	}
	redirect(c, LoginPath)
}

func (ac *AccountController) Profile(c *gin.Context) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		api.RespondError(c, types.ErrUnauthorized)
		return
	}

	profile, err := ac.accounts.Profile(c.Request.Context(), id.UserID)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	view(c, http.StatusOK, gin.H{"profile": profile})
}

func (ac *AccountController) ChangePassword(c *gin.Context) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		api.RespondError(c, types.ErrUnauthorized)
		return
	}
	var req types.ChangePasswordRequest
	if !bindForm(c, &req) {
		return
	}

	if err := ac.accounts.ChangePassword(c.Request.Context(), id.UserID, &req); err != nil {
		api.RespondError(c, err)
		return
	}
	redirect(c, ProfilePath)
}

// DeleteUser removes the account and ends the session.
func (ac *AccountController) DeleteUser(c *gin.Context) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		api.RespondError(c, types.ErrUnauthorized)
		return
	}
	var req types.DeleteUserRequest
	if !bindForm(c, &req) {
		return
	}

	if err := ac.accounts.DeleteAccount(c.Request.Context(), id.UserID, &req); err != nil {
		api.RespondError(c, err)
		return
	}
	if err := ac.authn.Revoke(c.Writer, c.Request); err != nil {
		middleware.Logger(c).WarnContext(c.Request.Context(), "revoke after account deletion failed", "error", err)
	}
	redirect(c, LoginPath)
}
