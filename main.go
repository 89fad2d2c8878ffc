package main

import "campusfix/internal/app"

// @title           CampusFix API
// @version         1.0
// @description     Campus maintenance request tracking service.
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
