package graph

import (
	"fmt"
	"strconv"
	"time"

	"github.com/graphql-go/graphql"

	"github.com/JonathanDVZ/CRMGraphQL/internal/auth"
	"github.com/JonathanDVZ/CRMGraphQL/internal/models"
	"github.com/JonathanDVZ/CRMGraphQL/internal/service"
)

var statusEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "StatusOrder",
	Values: graphql.EnumValueConfigMap{
		models.OrderStatusPending:   &graphql.EnumValueConfig{Value: models.OrderStatusPending},
		models.OrderStatusCompleted: &graphql.EnumValueConfig{Value: models.OrderStatusCompleted},
		models.OrderStatusCancelled: &graphql.EnumValueConfig{Value: models.OrderStatusCancelled},
	},
})

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"id":           &graphql.Field{Type: graphql.ID},
		"name":         &graphql.Field{Type: graphql.String},
		"lastname":     &graphql.Field{Type: graphql.String},
		"email":        &graphql.Field{Type: graphql.String},
		"creationDate": creationDateField(func(src any) time.Time { return src.(models.User).CreatedAt }),
	},
})

var tokenType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Token",
	Fields: graphql.Fields{
		"token": &graphql.Field{Type: graphql.String},
	},
})

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":           &graphql.Field{Type: graphql.ID},
		"name":         &graphql.Field{Type: graphql.String},
		"stock":        &graphql.Field{Type: graphql.Int},
		"price":        &graphql.Field{Type: graphql.Float},
		"creationDate": creationDateField(func(src any) time.Time { return src.(models.Product).CreatedAt }),
	},
})

var clientType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Client",
	Fields: graphql.Fields{
		"id":       &graphql.Field{Type: graphql.ID},
		"name":     &graphql.Field{Type: graphql.String},
		"lastname": &graphql.Field{Type: graphql.String},
		"company":  &graphql.Field{Type: graphql.String},
		"email":    &graphql.Field{Type: graphql.String},
		"phone":    &graphql.Field{Type: graphql.String},
		"seller": &graphql.Field{
			Type: graphql.ID,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(models.Client).SellerID, nil
			},
		},
		"creationDate": creationDateField(func(src any) time.Time { return src.(models.Client).CreatedAt }),
	},
})

var orderLineType = graphql.NewObject(graphql.ObjectConfig{
	Name: "OrderGroup",
	Fields: graphql.Fields{
		"id": &graphql.Field{
			Type: graphql.ID,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(models.OrderLine).ProductID, nil
			},
		},
		"quantity": &graphql.Field{Type: graphql.Int},
		"name":     &graphql.Field{Type: graphql.String},
		"price":    &graphql.Field{Type: graphql.Float},
	},
})

var userInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "UserInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"lastname": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
	},
})

var authenticateInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "AuthenticateInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
	},
})

var productInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ProductInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"stock": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
		"price": &graphql.InputObjectFieldConfig{Type: graphql.Float},
	},
})

var clientInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ClientInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"lastname": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"company":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"phone":    &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var orderProductInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "OrderProductInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"id":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
		"quantity": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
		"name":     &graphql.InputObjectFieldConfig{Type: graphql.String},
		"price":    &graphql.InputObjectFieldConfig{Type: graphql.Float},
	},
})

var orderInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "OrderInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"order":  &graphql.InputObjectFieldConfig{Type: graphql.NewList(orderProductInput)},
		"client": &graphql.InputObjectFieldConfig{Type: graphql.ID},
		"status": &graphql.InputObjectFieldConfig{Type: statusEnum},
	},
})

func creationDateField(pick func(src any) time.Time) *graphql.Field {
	return &graphql.Field{
		Type: graphql.String,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return pick(p.Source).Format(time.RFC3339), nil
		},
	}
}

func parseID(v interface{}) (uint, error) {
	switch t := v.(type) {
	case string:
		n, err := strconv.ParseUint(t, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid id %q", service.ErrValidation, t)
		}
		return uint(n), nil
	case int:
		return uint(t), nil
	case float64:
		return uint(t), nil
	}
	return 0, fmt.Errorf("%w: invalid id", service.ErrValidation)
}

func inputMap(p graphql.ResolveParams) (map[string]interface{}, error) {
	m, ok := p.Args["input"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: input is required", service.ErrValidation)
	}
	return m, nil
}

func stringArg(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func floatArg(m map[string]interface{}, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func intArg(m map[string]interface{}, key string) int {
	switch v := m[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

// requester returns the verified caller identity or refuses the
// operation outright.
func requester(p graphql.ResolveParams) (*auth.Claims, error) {
	claims := auth.FromContext(p.Context)
	if claims == nil {
		return nil, fmt.Errorf("%w: authentication required", service.ErrUnauthorized)
	}
	return claims, nil
}
