package graph

import (
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	Schema graphql.Schema
}

// ServeGraphQL executes one GraphQL operation per POST body. Resolver
// failures come back in the standard errors array with a 200, the way
// GraphQL servers report them; only a malformed envelope is an HTTP
// error.
func (h *Handler) ServeGraphQL(c echo.Context) error {
	var req struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query is required")
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.Schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        c.Request().Context(),
	})

	return c.JSON(http.StatusOK, result)
}
