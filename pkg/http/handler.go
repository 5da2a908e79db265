package http

import "github.com/labstack/echo/v4"

// Handler registers its routes on the /api group.
type Handler interface {
	RegisterRoutes(g *echo.Group)
}
