package handlers

// AppHandlers holds every handler the router mounts.
type AppHandlers struct {
	AuthHandler    *AuthHandler
	UserHandler    *UserHandler
	TourHandler    *TourHandler
	ReviewHandler  *ReviewHandler
	BookingHandler *BookingHandler
	ViewHandler    *ViewHandler
	HealthHandler  *HealthHandler
}
