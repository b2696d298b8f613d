package graph

import (
	"github.com/graphql-go/graphql"

	"github.com/JonathanDVZ/CRMGraphQL/internal/service"
)

func (r *Resolver) resolveGetUser(p graphql.ResolveParams) (interface{}, error) {
	claims, err := requester(p)
	if err != nil {
		return nil, err
	}
	user, err := r.Users.Get(p.Context, claims.ID)
	if err != nil {
		return nil, err
	}
	return *user, nil
}

func (r *Resolver) resolveNewUser(p graphql.ResolveParams) (interface{}, error) {
	input, err := inputMap(p)
	if err != nil {
		return nil, err
	}

	user, err := r.Users.Register(p.Context, service.RegisterInput{
		Name:     stringArg(input, "name"),
		LastName: stringArg(input, "lastname"),
		Email:    stringArg(input, "email"),
		Password: stringArg(input, "password"),
	})
	if err != nil {
		return nil, err
	}
	return *user, nil
}

func (r *Resolver) resolveAuthenticateUser(p graphql.ResolveParams) (interface{}, error) {
	input, err := inputMap(p)
	if err != nil {
		return nil, err
	}

	token, err := r.Users.Authenticate(p.Context, stringArg(input, "email"), stringArg(input, "password"))
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"token": token}, nil
}
