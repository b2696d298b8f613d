package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/JonathanDVZ/CRMGraphQL/internal/events"
	"github.com/JonathanDVZ/CRMGraphQL/internal/logging"
	"github.com/JonathanDVZ/CRMGraphQL/internal/models"
)

type OrderService struct {
	DB       *gorm.DB
	Producer *events.Producer
}

type LineInput struct {
	ProductID uint
	Quantity  uint
}

type UpdateOrderInput struct {
	ClientID *uint
	Status   *string
}

// PlaceOrder validates the client, authorizes the seller, reserves stock
// for every line and creates the order. The whole sequence runs in one
// transaction: a failure on any line rolls back every decrement, so no
// order ever leaves inventory half-applied. The stock check itself is a
// conditional UPDATE, which closes the read-check-write race between
// concurrent orders for the same product.
func (s *OrderService) PlaceOrder(ctx context.Context, sellerID, clientID uint, lines []LineInput) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: order needs at least one line", ErrValidation)
	}

	var order models.Order
	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var client models.Client
		if err := tx.First(&client, clientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: client not found", ErrNotFound)
			}
			return err
		}
		if err := authorizeOwner(sellerID, client.SellerID); err != nil {
			return err
		}

		var total float64
		orderLines := make([]models.OrderLine, 0, len(lines))
		for _, line := range lines {
			if line.Quantity == 0 {
				return fmt.Errorf("%w: quantity must be positive", ErrValidation)
			}

			var product models.Product
			if err := tx.First(&product, line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: product not found", ErrNotFound)
				}
				return err
			}

			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", line.ProductID, line.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", line.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: not enough %s items", ErrInsufficientStock, product.Name)
			}

			total += product.Price * float64(line.Quantity)
			orderLines = append(orderLines, models.OrderLine{
				ProductID: product.ID,
				Quantity:  line.Quantity,
				Name:      product.Name,
				Price:     product.Price,
			})
		}

		order = models.Order{
			ClientID: client.ID,
			SellerID: sellerID,
			Total:    total,
			Status:   models.OrderStatusPending,
			Lines:    orderLines,
		}
		return tx.Create(&order).Error
	})
	if txErr != nil {
		return nil, txErr
	}

	s.publish(ctx, map[string]any{
		"type":     "order_created",
		"orderID":  order.ID,
		"sellerID": order.SellerID,
		"clientID": order.ClientID,
		"total":    order.Total,
	})

	return &order, nil
}

func (s *OrderService) Get(ctx context.Context, requesterID, id uint) (*models.Order, error) {
	var order models.Order
	if err := s.DB.WithContext(ctx).Preload("Lines").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order not found", ErrNotFound)
		}
		return nil, err
	}
	if err := authorizeOwner(requesterID, order.SellerID); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := s.DB.WithContext(ctx).Preload("Lines").Order("id ASC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrderService) ListBySeller(ctx context.Context, sellerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.WithContext(ctx).
		Preload("Lines").
		Where("seller_id = ?", sellerID).
		Order("id ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrderService) ListByStatus(ctx context.Context, sellerID uint, status string) ([]models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	var orders []models.Order
	err := s.DB.WithContext(ctx).
		Preload("Lines").
		Where("seller_id = ? AND status = ?", sellerID, status).
		Order("id ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// Update changes an order's client reference or status. Moving to
// CANCELLED restores every line's quantity back to stock; a cancelled
// order is terminal and cannot transition again.
func (s *OrderService) Update(ctx context.Context, requesterID, id uint, input UpdateOrderInput) (*models.Order, error) {
	var order models.Order
	cancelled := false

	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Lines").First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order not found", ErrNotFound)
			}
			return err
		}
		if err := authorizeOwner(requesterID, order.SellerID); err != nil {
			return err
		}

		updates := map[string]any{}

		if input.ClientID != nil {
			var client models.Client
			if err := tx.First(&client, *input.ClientID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: client not found", ErrNotFound)
				}
				return err
			}
			if err := authorizeOwner(requesterID, client.SellerID); err != nil {
				return err
			}
			updates["client_id"] = client.ID
			order.ClientID = client.ID
		}

		if input.Status != nil {
			next := *input.Status
			if !models.ValidOrderStatus(next) {
				return fmt.Errorf("%w: unknown status %q", ErrValidation, next)
			}
			if order.Status == models.OrderStatusCancelled && next != models.OrderStatusCancelled {
				return fmt.Errorf("%w: order is already cancelled", ErrConflict)
			}
			if next == models.OrderStatusCancelled && order.Status != models.OrderStatusCancelled {
				if err := restock(tx, order.Lines); err != nil {
					return err
				}
				cancelled = true
			}
			updates["status"] = next
			order.Status = next
		}

		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(updates).Error
	})
	if txErr != nil {
		return nil, txErr
	}

	if cancelled {
		s.publish(ctx, map[string]any{
			"type":     "order_cancelled",
			"orderID":  order.ID,
			"sellerID": order.SellerID,
		})
	}

	return &order, nil
}

func (s *OrderService) Delete(ctx context.Context, requesterID, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order not found", ErrNotFound)
			}
			return err
		}
		if err := authorizeOwner(requesterID, order.SellerID); err != nil {
			return err
		}

		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderLine{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
}

func restock(tx *gorm.DB, lines []models.OrderLine) error {
	for _, line := range lines {
		res := tx.Model(&models.Product{}).
			Where("id = ?", line.ProductID).
			UpdateColumn("stock", gorm.Expr("stock + ?", line.Quantity))
		if res.Error != nil {
			return res.Error
		}
	}
	return nil
}

type TopClient struct {
	Client models.Client `json:"client"`
	Total  float64       `json:"total"`
}

type TopSeller struct {
	Seller models.User `json:"seller"`
	Total  float64     `json:"total"`
}

// TopClients ranks clients by the sum of their completed order totals,
// best first, at most ten.
func (s *OrderService) TopClients(ctx context.Context) ([]TopClient, error) {
	var rows []struct {
		ClientID uint
		Total    float64
	}
	err := s.DB.WithContext(ctx).
		Model(&models.Order{}).
		Select("client_id, SUM(total) AS total").
		Where("status = ?", models.OrderStatusCompleted).
		Group("client_id").
		Order("total DESC").
		Limit(10).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	top := make([]TopClient, 0, len(rows))
	for _, row := range rows {
		var client models.Client
		if err := s.DB.WithContext(ctx).First(&client, row.ClientID).Error; err != nil {
			return nil, err
		}
		top = append(top, TopClient{Client: client, Total: row.Total})
	}
	return top, nil
}

// TopSellers is the same ranking grouped by seller, at most three.
func (s *OrderService) TopSellers(ctx context.Context) ([]TopSeller, error) {
	var rows []struct {
		SellerID uint
		Total    float64
	}
	err := s.DB.WithContext(ctx).
		Model(&models.Order{}).
		Select("seller_id, SUM(total) AS total").
		Where("status = ?", models.OrderStatusCompleted).
		Group("seller_id").
		Order("total DESC").
		Limit(3).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	top := make([]TopSeller, 0, len(rows))
	for _, row := range rows {
		var seller models.User
		if err := s.DB.WithContext(ctx).First(&seller, row.SellerID).Error; err != nil {
			return nil, err
		}
		top = append(top, TopSeller{Seller: seller, Total: row.Total})
	}
	return top, nil
}

func (s *OrderService) publish(ctx context.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(ctx, events.TopicOrderEvents, fmt.Sprint(event["orderID"]), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "err", err)
	}
}
