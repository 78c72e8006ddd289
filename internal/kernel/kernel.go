// Package kernel assembles the HTTP stack: global middleware, application
// routes, and the operational endpoints.
package kernel

import (
	"net/http"
	"time"

	"github.com/aferchichi/stockshop/app/feed"
	"github.com/aferchichi/stockshop/app/routes"
	"github.com/aferchichi/stockshop/config"
	"github.com/aferchichi/stockshop/pkg/metrics"
	"github.com/aferchichi/stockshop/pkg/middleware"
	"github.com/aferchichi/stockshop/pkg/reqid"
	"github.com/aferchichi/stockshop/pkg/router"
)

type HTTPKernel struct {
	router *router.Router
}

// NewHTTPKernel builds the router with the full middleware stack and all
// routes mounted.
func NewHTTPKernel(stockFeed *feed.InventoryFeed) *HTTPKernel {
	r := router.New()

	r.Use(
		reqid.Middleware(),
		metrics.Middleware(),
		middleware.Recovery,
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
	)

	routes.Web(r, stockFeed)
	routes.API(r)

	r.Get("/metrics", "ops.metrics", metrics.Handler())
	r.Get("/healthz", "ops.healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok")) //nolint:errcheck
	})

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("public"))))
	// Locally stored uploads; the S3 disk serves absolute URLs instead.
	r.Handle("/storage/*", http.StripPrefix("/storage/", http.FileServer(http.Dir(config.StorageLocalRoot()))))

	return &HTTPKernel{router: r}
}

func (k *HTTPKernel) Handler() http.Handler {
	return k.router.Handler()
}

// Routes exposes the named route table for the routes CLI command.
func (k *HTTPKernel) Routes() []router.RouteInfo {
	return k.router.Routes()
}
