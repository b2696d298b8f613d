package graph

import (
	"github.com/graphql-go/graphql"

	"github.com/JonathanDVZ/CRMGraphQL/internal/service"
)

func (r *Resolver) resolveGetClients(p graphql.ResolveParams) (interface{}, error) {
	return r.Clients.List(p.Context)
}

func (r *Resolver) resolveGetClientsSeller(p graphql.ResolveParams) (interface{}, error) {
	claims, err := requester(p)
	if err != nil {
		return nil, err
	}
	return r.Clients.ListBySeller(p.Context, claims.ID)
}

func (r *Resolver) resolveGetClient(p graphql.ResolveParams) (interface{}, error) {
	claims, err := requester(p)
	if err != nil {
		return nil, err
	}
	id, err := parseID(p.Args["id"])
	if err != nil {
		return nil, err
	}
	client, err := r.Clients.Get(p.Context, claims.ID, id)
	if err != nil {
		return nil, err
	}
	return *client, nil
}

func (r *Resolver) resolveNewClient(p graphql.ResolveParams) (interface{}, error) {
	claims, err := requester(p)
	if err != nil {
		return nil, err
	}
	input, err := inputMap(p)
	if err != nil {
		return nil, err
	}

	client, err := r.Clients.Create(p.Context, claims.ID, clientInputFrom(input))
	if err != nil {
		return nil, err
	}
	return *client, nil
}

func (r *Resolver) resolveUpdateClient(p graphql.ResolveParams) (interface{}, error) {
	claims, err := requester(p)
	if err != nil {
		return nil, err
	}
	id, err := parseID(p.Args["id"])
	if err != nil {
		return nil, err
	}
	input, err := inputMap(p)
	if err != nil {
		return nil, err
	}

	client, err := r.Clients.Update(p.Context, claims.ID, id, clientInputFrom(input))
	if err != nil {
		return nil, err
	}
	return *client, nil
}

func (r *Resolver) resolveDeleteClient(p graphql.ResolveParams) (interface{}, error) {
	claims, err := requester(p)
	if err != nil {
		return nil, err
	}
	id, err := parseID(p.Args["id"])
	if err != nil {
		return nil, err
	}
	if err := r.Clients.Delete(p.Context, claims.ID, id); err != nil {
		return nil, err
	}
	return "Client deleted!", nil
}

func clientInputFrom(m map[string]interface{}) service.ClientInput {
	return service.ClientInput{
		Name:     stringArg(m, "name"),
		LastName: stringArg(m, "lastname"),
		Company:  stringArg(m, "company"),
		Email:    stringArg(m, "email"),
		Phone:    stringArg(m, "phone"),
	}
}
