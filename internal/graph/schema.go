package graph

import (
	"time"

	"github.com/graphql-go/graphql"

	"github.com/JonathanDVZ/CRMGraphQL/internal/models"
	"github.com/JonathanDVZ/CRMGraphQL/internal/service"
)

// Resolver holds the services the schema delegates to. One instance
// backs the whole schema.
type Resolver struct {
	Users    *service.UserService
	Products *service.ProductService
	Clients  *service.ClientService
	Orders   *service.OrderService
}

func NewSchema(r *Resolver) (graphql.Schema, error) {
	orderType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Order",
		Fields: graphql.Fields{
			"id": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"order": &graphql.Field{
				Type: graphql.NewList(orderLineType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(models.Order).Lines, nil
				},
			},
			"total": &graphql.Field{Type: graphql.Float},
			"client": &graphql.Field{
				Type:    clientType,
				Resolve: r.resolveOrderClient,
			},
			"seller": &graphql.Field{
				Type: graphql.ID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(models.Order).SellerID, nil
				},
			},
			"status":       &graphql.Field{Type: statusEnum},
			"creationDate": creationDateField(func(src any) time.Time { return src.(models.Order).CreatedAt }),
		},
	})

	topClientType := graphql.NewObject(graphql.ObjectConfig{
		Name: "TopClient",
		Fields: graphql.Fields{
			"total": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(service.TopClient).Total, nil
				},
			},
			"client": &graphql.Field{
				Type: clientType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(service.TopClient).Client, nil
				},
			},
		},
	})

	topSellerType := graphql.NewObject(graphql.ObjectConfig{
		Name: "TopSeller",
		Fields: graphql.Fields{
			"total": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(service.TopSeller).Total, nil
				},
			},
			"seller": &graphql.Field{
				Type: userType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(service.TopSeller).Seller, nil
				},
			},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"getUser": &graphql.Field{
				Type:    userType,
				Resolve: r.resolveGetUser,
			},
			"getProducts": &graphql.Field{
				Type:    graphql.NewList(productType),
				Resolve: r.resolveGetProducts,
			},
			"getProduct": &graphql.Field{
				Type:    productType,
				Args:    idArgs(),
				Resolve: r.resolveGetProduct,
			},
			"getClients": &graphql.Field{
				Type:    graphql.NewList(clientType),
				Resolve: r.resolveGetClients,
			},
			"getClientsSeller": &graphql.Field{
				Type:    graphql.NewList(clientType),
				Resolve: r.resolveGetClientsSeller,
			},
			"getClient": &graphql.Field{
				Type:    clientType,
				Args:    idArgs(),
				Resolve: r.resolveGetClient,
			},
			"getOrders": &graphql.Field{
				Type:    graphql.NewList(orderType),
				Resolve: r.resolveGetOrders,
			},
			"getOrdersSeller": &graphql.Field{
				Type:    graphql.NewList(orderType),
				Resolve: r.resolveGetOrdersSeller,
			},
			"getOrder": &graphql.Field{
				Type:    orderType,
				Args:    idArgs(),
				Resolve: r.resolveGetOrder,
			},
			"getOrderByStatus": &graphql.Field{
				Type: graphql.NewList(orderType),
				Args: graphql.FieldConfigArgument{
					"status": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveGetOrderByStatus,
			},
			"bestClients": &graphql.Field{
				Type:    graphql.NewList(topClientType),
				Resolve: r.resolveBestClients,
			},
			"bestSellers": &graphql.Field{
				Type:    graphql.NewList(topSellerType),
				Resolve: r.resolveBestSellers,
			},
			"searchProduct": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"text": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveSearchProduct,
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"newUser": &graphql.Field{
				Type:    userType,
				Args:    inputArgs(userInput),
				Resolve: r.resolveNewUser,
			},
			"authenticateUser": &graphql.Field{
				Type:    tokenType,
				Args:    inputArgs(authenticateInput),
				Resolve: r.resolveAuthenticateUser,
			},
			"newProduct": &graphql.Field{
				Type:    productType,
				Args:    inputArgs(productInput),
				Resolve: r.resolveNewProduct,
			},
			"updateProduct": &graphql.Field{
				Type:    productType,
				Args:    idInputArgs(productInput),
				Resolve: r.resolveUpdateProduct,
			},
			"deleteProduct": &graphql.Field{
				Type:    graphql.String,
				Args:    idArgs(),
				Resolve: r.resolveDeleteProduct,
			},
			"newClient": &graphql.Field{
				Type:    clientType,
				Args:    inputArgs(clientInput),
				Resolve: r.resolveNewClient,
			},
			"updateClient": &graphql.Field{
				Type:    clientType,
				Args:    idInputArgs(clientInput),
				Resolve: r.resolveUpdateClient,
			},
			"deleteClient": &graphql.Field{
				Type:    graphql.String,
				Args:    idArgs(),
				Resolve: r.resolveDeleteClient,
			},
			"newOrder": &graphql.Field{
				Type:    orderType,
				Args:    inputArgs(orderInput),
				Resolve: r.resolveNewOrder,
			},
			"updateOrder": &graphql.Field{
				Type:    orderType,
				Args:    idInputArgs(orderInput),
				Resolve: r.resolveUpdateOrder,
			},
			"deleteOrder": &graphql.Field{
				Type:    graphql.String,
				Args:    idArgs(),
				Resolve: r.resolveDeleteOrder,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

func idArgs() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
	}
}

func inputArgs(input *graphql.InputObject) graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(input)},
	}
}

func idInputArgs(input *graphql.InputObject) graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
		"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(input)},
	}
}
