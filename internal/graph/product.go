package graph

import (
	"github.com/graphql-go/graphql"

	"github.com/JonathanDVZ/CRMGraphQL/internal/service"
)

func (r *Resolver) resolveGetProducts(p graphql.ResolveParams) (interface{}, error) {
	return r.Products.List(p.Context)
}

func (r *Resolver) resolveGetProduct(p graphql.ResolveParams) (interface{}, error) {
	id, err := parseID(p.Args["id"])
	if err != nil {
		return nil, err
	}
	product, err := r.Products.Get(p.Context, id)
	if err != nil {
		return nil, err
	}
	return *product, nil
}

func (r *Resolver) resolveSearchProduct(p graphql.ResolveParams) (interface{}, error) {
	text, _ := p.Args["text"].(string)
	return r.Products.SearchProducts(p.Context, text)
}

func (r *Resolver) resolveNewProduct(p graphql.ResolveParams) (interface{}, error) {
	if _, err := requester(p); err != nil {
		return nil, err
	}
	input, err := inputMap(p)
	if err != nil {
		return nil, err
	}

	product, err := r.Products.Create(p.Context, productInputFrom(input))
	if err != nil {
		return nil, err
	}
	return *product, nil
}

func (r *Resolver) resolveUpdateProduct(p graphql.ResolveParams) (interface{}, error) {
	if _, err := requester(p); err != nil {
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

	product, err := r.Products.Update(p.Context, id, productInputFrom(input))
	if err != nil {
		return nil, err
	}
	return *product, nil
}

func (r *Resolver) resolveDeleteProduct(p graphql.ResolveParams) (interface{}, error) {
	if _, err := requester(p); err != nil {
		return nil, err
	}
	id, err := parseID(p.Args["id"])
	if err != nil {
		return nil, err
	}
	if err := r.Products.Delete(p.Context, id); err != nil {
		return nil, err
	}
	return "Product deleted!", nil
}

func productInputFrom(m map[string]interface{}) service.ProductInput {
	return service.ProductInput{
		Name:  stringArg(m, "name"),
		Price: floatArg(m, "price"),
		Stock: uint(intArg(m, "stock")),
	}
}
