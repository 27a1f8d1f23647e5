// Package web is the cookie-session surface under /Account and /Home. Form
// posts redirect on success; GET actions return their view model as JSON.
package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"

	"github.com/pageza/foodtrace/backend/internal/api"
	"github.com/pageza/foodtrace/backend/internal/auth"
	"github.com/pageza/foodtrace/backend/internal/middleware"
	"github.com/pageza/foodtrace/backend/internal/service"
	"github.com/pageza/foodtrace/backend/internal/store"
)

// Paths of the cookie surface.
const (
	LoginPath    = "/Account/Login"
	RegisterPath = "/Account/Register"
	ProfilePath  = "/Account/Profile"
	IndexPath    = "/Home/Index"
)

// Deps are the collaborators of the cookie surface. CSRF is optional.
type Deps struct {
	Accounts     service.IAccountService
	Items        store.ItemStore
	Authn        auth.Authenticator
	CSRF         gin.HandlerFunc
	LoginLimiter gin.HandlerFunc
}

// SetupWeb mounts /Account and /Home on router.
func SetupWeb(router *gin.Engine, d Deps) {
	var chain []gin.HandlerFunc
	if d.CSRF != nil {
		chain = append(chain, d.CSRF)
	}
	chain = append(chain, middleware.RequireIdentity(d.Authn, middleware.DenyRedirect(LoginPath), LoginPath, RegisterPath))

	account := NewAccountController(d.Accounts, d.Authn)
	home := NewHomeController(d.Items)

	a := router.Group("/Account", chain...)
	{
		a.GET("/Login", account.LoginForm)
		if d.LoginLimiter != nil {
			a.POST("/Login", d.LoginLimiter, account.Login)
		} else {
			a.POST("/Login", account.Login)
		}
		a.GET("/Register", account.RegisterForm)
		a.POST("/Register", account.Register)
		a.POST("/Logout", account.Logout)
		a.GET("/Profile", account.Profile)
		a.POST("/ChangePassword", account.ChangePassword)
		a.POST("/DeleteUser", account.DeleteUser)
	}

	h := router.Group("/Home", chain...)
	{
		h.GET("", home.Index)
		h.GET("/Index", home.Index)
		h.GET("/Details/:id", home.Details)
		h.GET("/Create", home.CreateForm)
		h.POST("/Create", home.Create)
		h.GET("/Edit/:id", home.EditForm)
		h.POST("/Edit/:id", home.Edit)
		h.GET("/Delete/:id", home.DeleteConfirm)
		h.POST("/Delete/:id", home.Delete)
	}
}

// view renders a view model with the CSRF token for the next form post.
func view(c *gin.Context, status int, model gin.H) {
	if model == nil {
		model = gin.H{}
	}
	model["csrfToken"] = csrf.Token(c.Request)
	if id, ok := middleware.CurrentIdentity(c); ok {
		model["user"] = id
	}
	c.JSON(status, model)
}

func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

// bindForm binds a form post. Fields posted empty are dropped first so an
// empty optional number stays absent instead of becoming zero.
func bindForm(c *gin.Context, obj interface{}) bool {
	if err := c.Request.ParseForm(); err == nil {
		for k, vs := range c.Request.PostForm {
			if allEmpty(vs) {
				delete(c.Request.PostForm, k)
				delete(c.Request.Form, k)
			}
		}
	}
	if err := c.ShouldBind(obj); err != nil {
		api.RespondError(c, api.ErrMalformedBody)
		return false
	}
	return true
}

func allEmpty(vs []string) bool {
	for _, v := range vs {
		if v != "" {
			return false
		}
	}
	return true
}
