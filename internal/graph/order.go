package graph

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/JonathanDVZ/CRMGraphQL/internal/models"
	"github.com/JonathanDVZ/CRMGraphQL/internal/service"
)

func (r *Resolver) resolveGetOrders(p graphql.ResolveParams) (interface{}, error) {
	return r.Orders.List(p.Context)
}

func (r *Resolver) resolveGetOrdersSeller(p graphql.ResolveParams) (interface{}, error) {
	claims, err := requester(p)
	if err != nil {
		return nil, err
	}
	return r.Orders.ListBySeller(p.Context, claims.ID)
}

func (r *Resolver) resolveGetOrder(p graphql.ResolveParams) (interface{}, error) {
	claims, err := requester(p)
	if err != nil {
		return nil, err
	}
	id, err := parseID(p.Args["id"])
	if err != nil {
		return nil, err
	}
	order, err := r.Orders.Get(p.Context, claims.ID, id)
	if err != nil {
		return nil, err
	}
	return *order, nil
}

func (r *Resolver) resolveGetOrderByStatus(p graphql.ResolveParams) (interface{}, error) {
	claims, err := requester(p)
	if err != nil {
		return nil, err
	}
	status, _ := p.Args["status"].(string)
	return r.Orders.ListByStatus(p.Context, claims.ID, status)
}

func (r *Resolver) resolveOrderClient(p graphql.ResolveParams) (interface{}, error) {
	order, ok := p.Source.(models.Order)
	if !ok {
		return nil, fmt.Errorf("unexpected order source %T", p.Source)
	}
	client, err := r.Clients.GetByID(p.Context, order.ClientID)
	if err != nil {
		return nil, err
	}
	return *client, nil
}

func (r *Resolver) resolveNewOrder(p graphql.ResolveParams) (interface{}, error) {
	claims, err := requester(p)
	if err != nil {
		return nil, err
	}
	input, err := inputMap(p)
	if err != nil {
		return nil, err
	}

	clientID, err := parseID(input["client"])
	if err != nil {
		return nil, err
	}
	lines, err := orderLinesFrom(input)
	if err != nil {
		return nil, err
	}

	order, err := r.Orders.PlaceOrder(p.Context, claims.ID, clientID, lines)
	if err != nil {
		return nil, err
	}
	return *order, nil
}

func (r *Resolver) resolveUpdateOrder(p graphql.ResolveParams) (interface{}, error) {
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

	var update service.UpdateOrderInput
	if raw, ok := input["client"]; ok && raw != nil {
		clientID, err := parseID(raw)
		if err != nil {
			return nil, err
		}
		update.ClientID = &clientID
	}
	if raw, ok := input["status"].(string); ok {
		update.Status = &raw
	}

	order, err := r.Orders.Update(p.Context, claims.ID, id, update)
	if err != nil {
		return nil, err
	}
	return *order, nil
}

func (r *Resolver) resolveDeleteOrder(p graphql.ResolveParams) (interface{}, error) {
	claims, err := requester(p)
	if err != nil {
		return nil, err
	}
	id, err := parseID(p.Args["id"])
	if err != nil {
		return nil, err
	}
	if err := r.Orders.Delete(p.Context, claims.ID, id); err != nil {
		return nil, err
	}
	return "Order deleted!", nil
}

func (r *Resolver) resolveBestClients(p graphql.ResolveParams) (interface{}, error) {
	return r.Orders.TopClients(p.Context)
}

func (r *Resolver) resolveBestSellers(p graphql.ResolveParams) (interface{}, error) {
	return r.Orders.TopSellers(p.Context)
}

func orderLinesFrom(input map[string]interface{}) ([]service.LineInput, error) {
	raw, ok := input["order"].([]interface{})
	if !ok || len(raw) == 0 {
		return nil, fmt.Errorf("%w: order needs at least one line", service.ErrValidation)
	}

	lines := make([]service.LineInput, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: malformed order line", service.ErrValidation)
		}
		productID, err := parseID(m["id"])
		if err != nil {
			return nil, err
		}
		quantity := intArg(m, "quantity")
		if quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", service.ErrValidation)
		}
		lines = append(lines, service.LineInput{ProductID: productID, Quantity: uint(quantity)})
	}
	return lines, nil
}
