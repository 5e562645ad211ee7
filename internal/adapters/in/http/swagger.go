package http

import (
	_ "checkout/internal/adapters/in/http/docs"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RegisterDocs serves the Swagger UI under /swagger/.
func RegisterDocs(e *echo.Echo) {
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
