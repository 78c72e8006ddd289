package controllers

import (
	"errors"
	"net/http"

	"github.com/aferchichi/stockshop/app/services"
	"github.com/aferchichi/stockshop/app/views"
	"github.com/aferchichi/stockshop/app/web"
	"github.com/aferchichi/stockshop/pkg/bind"
	"github.com/aferchichi/stockshop/pkg/response"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController() *AuthController {
	return &AuthController{auth: services.NewAuthService()}
}

// SigninForm renders the sign-in page.
func (c *AuthController) SigninForm(w http.ResponseWriter, r *http.Request) {
	state := web.FromRequest(r)
	if _, in := state.ClientID(); in {
		saveState(w, r, state)
		response.Redirect(w, r, "/")
		return
	}
	data := page(state, "Sign in")
	data.Props["Email"] = ""
	saveState(w, r, state)
	views.Render(w, http.StatusOK, "signin", data)
}

// Signin authenticates against admins first, then clients. The error
// messages mirror the distinct outcomes the service reports.
func (c *AuthController) Signin(w http.ResponseWriter, r *http.Request) {
	state := web.FromRequest(r)
	if err := r.ParseForm(); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid form")
		return
	}
	email := r.FormValue("email")

	identity, err := c.auth.Login(state, email, r.FormValue("password"))
	if err != nil {
		msg := "Something went wrong, please try again."
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, services.ErrRateLimited):
			msg = "Too many failed attempts. Please wait before trying again."
			status = http.StatusTooManyRequests
		case errors.Is(err, services.ErrEmailNotFound):
			msg = "No account found with that email."
			status = http.StatusUnprocessableEntity
		case errors.Is(err, services.ErrBadPassword):
			msg = "Incorrect password."
			status = http.StatusUnprocessableEntity
		}
		data := page(state, "Sign in")
		data.Errors = []string{msg}
		data.Props["Email"] = email
		saveState(w, r, state)
		views.Render(w, status, "signin", data)
		return
	}

	if identity.Role == "admin" {
		state.SignInAdmin(identity.Admin.ID, identity.Admin.Superadmin)
	} else {
		state.SignInClient(identity.Client.ID)
	}
	saveState(w, r, state)
	response.Redirect(w, r, "/")
}

// SignupForm renders the registration page.
func (c *AuthController) SignupForm(w http.ResponseWriter, r *http.Request) {
	state := web.FromRequest(r)
	saveState(w, r, state)
	views.Render(w, http.StatusOK, "signup", page(state, "Sign up"))
}

// Signup registers a client and signs them straight in.
func (c *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	state := web.FromRequest(r)

	var input services.SignUpInput
	fieldErrs, err := bind.Form(r, &input)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid form")
		return
	}

	rerender := func(status int, msgs []string) {
		data := page(state, "Sign up")
		data.Errors = msgs
		data.Props["Name"] = input.Name
		data.Props["Surname"] = input.Surname
		data.Props["Email"] = input.Email
		data.Props["Phone"] = input.Phone
		saveState(w, r, state)
		views.Render(w, status, "signup", data)
	}

	if len(fieldErrs) > 0 {
		var msgs []string
		for _, m := range fieldErrs {
			msgs = append(msgs, m)
		}
		rerender(http.StatusUnprocessableEntity, msgs)
		return
	}

	client, err := c.auth.SignUp(input)
	if errors.Is(err, services.ErrEmailTaken) {
		rerender(http.StatusUnprocessableEntity, []string{"That email is already registered."})
		return
	}
	if err != nil {
		rerender(http.StatusInternalServerError, []string{"Something went wrong, please try again."})
		return
	}

	state.SignInClient(client.ID)
	saveState(w, r, state)
	response.Redirect(w, r, "/")
}

// Logout wipes the session and returns to the shop.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	state := web.FromRequest(r)
	state.SignOut()
	saveState(w, r, state)
	response.Redirect(w, r, "/")
}
