package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "pacsbooking/docs"
	"pacsbooking/internal/delivery/http/controllers"
	"pacsbooking/internal/delivery/http/helpers"
	"pacsbooking/internal/delivery/http/middleware"
	"pacsbooking/internal/domain"
)

// Controllers bundles the controllers the router wires up.
type Controllers struct {
	Auth      *controllers.AuthController
	Slots     *controllers.SlotController
	Orders    *controllers.OrderController
	Profile   *controllers.ProfileController
	Directory *controllers.DirectoryController
	Admin     *controllers.AdminController
}

// NewRouter initializes the HTTP router with all application routes.
// authn wraps handlers that require a valid Bearer token.
func NewRouter(c Controllers, authn func(http.HandlerFunc) http.HandlerFunc) *http.ServeMux {
	mux := http.NewServeMux()
	admin := middleware.RequireRole(domain.RoleAdmin)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"ok": true})
	})

	// Auth
	mux.HandleFunc("POST /auth/send-otp", c.Auth.SendOTP)
	mux.HandleFunc("POST /auth/verify-otp", c.Auth.VerifyOTP)

	// Slots
	mux.HandleFunc("GET /slots/{date}/availability", c.Slots.GetAvailability)
	mux.HandleFunc("POST /slots/bookings", authn(c.Slots.BookSlot))

	// Orders
	mux.HandleFunc("POST /orders", authn(c.Orders.PlaceOrder))
	mux.HandleFunc("GET /orders", authn(c.Orders.ListMyOrders))

	// Profile
	mux.HandleFunc("GET /profile", authn(c.Profile.GetProfile))
	mux.HandleFunc("PUT /profile", authn(c.Profile.UpdateProfile))

	// Directory
	mux.HandleFunc("GET /pacs", c.Directory.ListCenters)
	mux.HandleFunc("GET /schemes/eligible", authn(c.Directory.ListEligibleSchemes))
	mux.HandleFunc("POST /requests", authn(c.Directory.SubmitRequest))

	// Admin
	mux.HandleFunc("GET /admin/requests", authn(admin(c.Admin.ListRequests)))
	mux.HandleFunc("GET /admin/users", authn(admin(c.Admin.ListUsers)))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
