package controllers

import (
	"fmt"
	"time"

	gql "github.com/graphql-go/graphql"

	"github.com/infernolabs/scmflow/app/models"
	"github.com/infernolabs/scmflow/app/services"
	"github.com/infernolabs/scmflow/pkg/graphql"
)

// orderType mirrors the order wire shape for GraphQL reads.
var orderType = gql.NewObject(gql.ObjectConfig{
	Name: "Order",
	Fields: gql.Fields{
		"product":        orderField(func(o models.Order) any { return o.Product }),
		"productId":      orderField(func(o models.Order) any { return o.ProductID }),
		"shipper":        orderField(func(o models.Order) any { return o.Shipper }),
		"customer":       orderField(func(o models.Order) any { return o.Customer }),
		"customerId":     orderField(func(o models.Order) any { return o.CustomerID }),
		"house":          orderField(func(o models.Order) any { return o.House }),
		"city":           orderField(func(o models.Order) any { return o.City }),
		"state":          orderField(func(o models.Order) any { return o.State }),
		"pincode":        orderField(func(o models.Order) any { return o.Pincode }),
		"country":        orderField(func(o models.Order) any { return o.Country }),
		"deliveryStatus": orderField(func(o models.Order) any { return o.DeliveryStatus }),
		"quantity":       orderField(func(o models.Order) any { return o.Quantity }),
		"date": {
			Type: gql.String,
			Resolve: func(p gql.ResolveParams) (any, error) {
				o, ok := p.Source.(models.Order)
				if !ok {
					return nil, fmt.Errorf("unexpected source %T", p.Source)
				}
				if o.Date.IsZero() {
					return "", nil
				}
				return o.Date.UTC().Format(time.RFC3339), nil
			},
		},
	},
})

var productType = gql.NewObject(gql.ObjectConfig{
	Name: "Product",
	Fields: gql.Fields{
		"productId": productField(func(p models.Product) any { return p.ProductID }),
		"name":      productField(func(p models.Product) any { return p.Name }),
		"price": {
			Type:    gql.Float,
			Resolve: resolveProduct(func(p models.Product) any { return p.Price }),
		},
		"stock": {
			Type:    gql.Int,
			Resolve: resolveProduct(func(p models.Product) any { return p.Stock }),
		},
	},
})

func orderField(pick func(models.Order) any) *gql.Field {
	return &gql.Field{
		Type: gql.String,
		Resolve: func(p gql.ResolveParams) (any, error) {
			o, ok := p.Source.(models.Order)
			if !ok {
				return nil, fmt.Errorf("unexpected source %T", p.Source)
			}
			return pick(o), nil
		},
	}
}

func productField(pick func(models.Product) any) *gql.Field {
	return &gql.Field{Type: gql.String, Resolve: resolveProduct(pick)}
}

func resolveProduct(pick func(models.Product) any) gql.FieldResolveFn {
	return func(p gql.ResolveParams) (any, error) {
		product, ok := p.Source.(models.Product)
		if !ok {
			return nil, fmt.Errorf("unexpected source %T", p.Source)
		}
		return pick(product), nil
	}
}

// NewQuerySchema builds the read-only root query over orders and
// products. Both fields accept optional page/limit arguments with the
// same semantics as the REST list endpoints.
func NewQuerySchema(orders *services.OrderService, inventory *services.InventoryService) (gql.Schema, error) {
	pageArgs := gql.FieldConfigArgument{
		"page":  &gql.ArgumentConfig{Type: gql.Int},
		"limit": &gql.ArgumentConfig{Type: gql.Int},
	}

	query := gql.NewObject(gql.ObjectConfig{
		Name: "Query",
		Fields: gql.Fields{
			"orders": &gql.Field{
				Type: gql.NewList(orderType),
				Args: pageArgs,
				Resolve: func(p gql.ResolveParams) (any, error) {
					page, _ := p.Args["page"].(int)
					limit, _ := p.Args["limit"].(int)
					return orders.List(p.Context, page, limit)
				},
			},
			"products": &gql.Field{
				Type: gql.NewList(productType),
				Args: pageArgs,
				Resolve: func(p gql.ResolveParams) (any, error) {
					page, _ := p.Args["page"].(int)
					limit, _ := p.Args["limit"].(int)
					return inventory.List(p.Context, page, limit)
				},
			},
		},
	})

	return graphql.NewSchema(query)
}
