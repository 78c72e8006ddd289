package controllers

import (
	"errors"
	"net/http"

	"github.com/aferchichi/stockshop/app/services"
	"github.com/aferchichi/stockshop/app/views"
	"github.com/aferchichi/stockshop/app/web"
	"github.com/aferchichi/stockshop/pkg/bind"
	"github.com/aferchichi/stockshop/pkg/response"
	"github.com/aferchichi/stockshop/pkg/storage"
	"github.com/aferchichi/stockshop/pkg/upload"
)

type ProfileController struct {
	profile *services.ProfileService
}

func NewProfileController() *ProfileController {
	return &ProfileController{profile: services.NewProfileService()}
}

// requireClient resolves the signed-in client or redirects to sign-in.
func requireClient(w http.ResponseWriter, r *http.Request, state *web.State) (uint, bool) {
	id, ok := state.ClientID()
	if !ok {
		saveState(w, r, state)
		response.Redirect(w, r, "/signin")
		return 0, false
	}
	return id, true
}

func (c *ProfileController) render(w http.ResponseWriter, r *http.Request, state *web.State, clientID uint, status int, msgs []string) {
	client, err := c.profile.Get(clientID)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "profile unavailable")
		return
	}
	data := page(state, "My account")
	data.Errors = msgs
	data.Props["Client"] = client
	if client.Image != "" {
		data.Props["ImageURL"] = storage.URL(client.Image)
	}
	saveState(w, r, state)
	views.Render(w, status, "profile", data)
}

// Show renders the account page.
func (c *ProfileController) Show(w http.ResponseWriter, r *http.Request) {
	state := web.FromRequest(r)
	clientID, ok := requireClient(w, r, state)
	if !ok {
		return
	}
	c.render(w, r, state, clientID, http.StatusOK, nil)
}

// Update saves the contact details form.
func (c *ProfileController) Update(w http.ResponseWriter, r *http.Request) {
	state := web.FromRequest(r)
	clientID, ok := requireClient(w, r, state)
	if !ok {
		return
	}

	var input services.ProfileInput
	fieldErrs, err := bind.Form(r, &input)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid form")
		return
	}
	if len(fieldErrs) > 0 {
		var msgs []string
		for _, m := range fieldErrs {
			msgs = append(msgs, m)
		}
		c.render(w, r, state, clientID, http.StatusUnprocessableEntity, msgs)
		return
	}

	if _, err := c.profile.UpdateContact(clientID, input); err != nil {
		c.render(w, r, state, clientID, http.StatusInternalServerError,
			[]string{"Could not save your details, please try again."})
		return
	}
	saveState(w, r, state)
	response.Redirect(w, r, "/profile")
}

// Image accepts a new profile picture. Upload failures leave the account
// untouched and re-render with the reason.
func (c *ProfileController) Image(w http.ResponseWriter, r *http.Request) {
	state := web.FromRequest(r)
	clientID, ok := requireClient(w, r, state)
	if !ok {
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		c.render(w, r, state, clientID, http.StatusBadRequest, []string{"Please choose an image to upload."})
		return
	}
	defer file.Close()

	if _, err := c.profile.SaveImage(clientID, file, header); err != nil {
		msg := "Could not save the image, please try again."
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, upload.ErrTooLarge):
			msg = "That image is too large."
			status = http.StatusUnprocessableEntity
		case errors.Is(err, upload.ErrBadType), errors.Is(err, upload.ErrNotImage):
			msg = "Please upload a JPEG, PNG, or GIF image."
			status = http.StatusUnprocessableEntity
		}
		c.render(w, r, state, clientID, status, []string{msg})
		return
	}
	saveState(w, r, state)
	response.Redirect(w, r, "/profile")
}

// Password handles the change-password form.
func (c *ProfileController) Password(w http.ResponseWriter, r *http.Request) {
	state := web.FromRequest(r)
	clientID, ok := requireClient(w, r, state)
	if !ok {
		return
	}

	var input services.PasswordInput
	fieldErrs, err := bind.Form(r, &input)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid form")
		return
	}
	if len(fieldErrs) > 0 {
		var msgs []string
		for _, m := range fieldErrs {
			msgs = append(msgs, m)
		}
		c.render(w, r, state, clientID, http.StatusUnprocessableEntity, msgs)
		return
	}

	err = c.profile.ChangePassword(clientID, input)
	if errors.Is(err, services.ErrWrongPassword) {
		c.render(w, r, state, clientID, http.StatusUnprocessableEntity,
			[]string{"Your current password is incorrect."})
		return
	}
	if err != nil {
		c.render(w, r, state, clientID, http.StatusInternalServerError,
			[]string{"Could not change the password, please try again."})
		return
	}
	saveState(w, r, state)
	response.Redirect(w, r, "/profile")
}

// Orders renders the client's order history.
func (c *ProfileController) Orders(w http.ResponseWriter, r *http.Request) {
	state := web.FromRequest(r)
	clientID, ok := requireClient(w, r, state)
	if !ok {
		return
	}

	orders, err := c.profile.Orders(clientID)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "orders unavailable")
		return
	}
	data := page(state, "Order history")
	data.Props["Orders"] = orders
	saveState(w, r, state)
	views.Render(w, http.StatusOK, "orders", data)
}

// OrderDetail renders one past order, scoped to its owner.
func (c *ProfileController) OrderDetail(w http.ResponseWriter, r *http.Request) {
	state := web.FromRequest(r)
	clientID, ok := requireClient(w, r, state)
	if !ok {
		return
	}

	orderID, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}
	order, err := c.profile.OrderDetail(clientID, orderID)
	if err != nil {
		response.NotFound(w)
		return
	}

	data := page(state, "Order detail")
	data.Props["Order"] = order
	saveState(w, r, state)
	views.Render(w, http.StatusOK, "order_detail", data)
}
