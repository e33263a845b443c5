// @title           Tourhub API
// @version         1.0
// @description     Tour booking API: tours, reviews, bookings and account management.
// @contact.name    Tourhub support
// @contact.email   support@tourhub.io
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:3000
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization

package main

import (
	_ "tourhub_backend/docs"
	"tourhub_backend/internal/app"
)

func main() {
	app.Run()
}
