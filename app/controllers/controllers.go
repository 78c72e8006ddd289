// Package controllers wires HTTP requests to the service layer. Storefront
// controllers render embedded templates; the admin API controllers under
// api_*.go speak the JSON envelope.
package controllers

import (
	"net/http"
	"strconv"

	"github.com/aferchichi/stockshop/app/views"
	"github.com/aferchichi/stockshop/app/web"
	"github.com/aferchichi/stockshop/pkg/logger"
	"github.com/aferchichi/stockshop/pkg/router"
)

// saveState persists the session. A failed write means the mutation this
// request made (cart, identity, draft) is lost, so it is logged rather than
// silently discarded.
func saveState(w http.ResponseWriter, r *http.Request, state *web.State) {
	if err := state.Save(w); err != nil {
		logger.WithCtx(r.Context()).Error("controllers: session save failed", "error", err)
	}
}

// page builds the common template payload from the session state.
func page(state *web.State, title string) views.Data {
	_, signedIn := state.ClientID()
	return views.Data{
		Title:     title,
		SignedIn:  signedIn,
		CartCount: len(state.Cart()),
		Props:     map[string]interface{}{},
	}
}

// paramUint reads a numeric route parameter; ok is false on anything that
// is not a positive integer.
func paramUint(r *http.Request, key string) (uint, bool) {
	n, err := strconv.ParseUint(router.Param(r, key), 10, 32)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// formUint reads a numeric form field.
func formUint(r *http.Request, key string) (uint, bool) {
	n, err := strconv.ParseUint(r.FormValue(key), 10, 32)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// formInt reads an integer form field, falling back to def.
func formInt(r *http.Request, key string, def int) int {
	n, err := strconv.Atoi(r.FormValue(key))
	if err != nil {
		return def
	}
	return n
}
