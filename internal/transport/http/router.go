package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/JonathanDVZ/CRMGraphQL/internal/auth"
	"github.com/JonathanDVZ/CRMGraphQL/internal/graph"
)

type Deps struct {
	GraphQLHandler *graph.Handler
	JWTSecret      []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	e.POST("/graphql", d.GraphQLHandler.ServeGraphQL, auth.Middleware(d.JWTSecret))
}
