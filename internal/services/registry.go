package services

import "tourhub_backend/internal/email"

// ServiceContainer holds every service the handlers depend on.
type ServiceContainer struct {
	AuthService    AuthService
	UserService    UserService
	TourService    TourService
	ReviewService  ReviewService
	BookingService BookingService
	Notifier       Notifier
	EmailProvider  email.Provider
}

// Close releases the email provider.
func (c *ServiceContainer) Close() error {
	if c.EmailProvider == nil {
		return nil
	}
	return c.EmailProvider.Close()
}
