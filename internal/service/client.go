package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/JonathanDVZ/CRMGraphQL/internal/models"
)

type ClientService struct {
	DB *gorm.DB
}

type ClientInput struct {
	Name     string
	LastName string
	Company  string
	Email    string
	Phone    string
}

func (s *ClientService) Create(ctx context.Context, sellerID uint, input ClientInput) (*models.Client, error) {
	if input.Email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}

	var existing models.Client
	err := s.DB.WithContext(ctx).Where("email = ?", input.Email).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: client already exists", ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	client := models.Client{
		Name:     input.Name,
		LastName: input.LastName,
		Company:  input.Company,
		Email:    input.Email,
		Phone:    input.Phone,
		SellerID: sellerID,
	}
	if err := s.DB.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (s *ClientService) Get(ctx context.Context, requesterID, id uint) (*models.Client, error) {
	var client models.Client
	if err := s.DB.WithContext(ctx).First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: client not found", ErrNotFound)
		}
		return nil, err
	}
	if err := authorizeOwner(requesterID, client.SellerID); err != nil {
		return nil, err
	}
	return &client, nil
}

// GetByID skips the ownership guard. It serves embedded views (an order
// exposing its client) where access was already decided on the parent.
func (s *ClientService) GetByID(ctx context.Context, id uint) (*models.Client, error) {
	var client models.Client
	if err := s.DB.WithContext(ctx).First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: client not found", ErrNotFound)
		}
		return nil, err
	}
	return &client, nil
}

func (s *ClientService) List(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (s *ClientService) ListBySeller(ctx context.Context, sellerID uint) ([]models.Client, error) {
	var clients []models.Client
	err := s.DB.WithContext(ctx).Where("seller_id = ?", sellerID).Order("id ASC").Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}

func (s *ClientService) Update(ctx context.Context, requesterID, id uint, input ClientInput) (*models.Client, error) {
	client, err := s.Get(ctx, requesterID, id)
	if err != nil {
		return nil, err
	}

	client.Name = input.Name
	client.LastName = input.LastName
	client.Company = input.Company
	client.Email = input.Email
	client.Phone = input.Phone

	if err := s.DB.WithContext(ctx).Save(client).Error; err != nil {
		return nil, err
	}
	return client, nil
}

func (s *ClientService) Delete(ctx context.Context, requesterID, id uint) error {
	client, err := s.Get(ctx, requesterID, id)
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Delete(client).Error
}

// authorizeOwner is the access-control guard: strict equality of the
// requester and the recorded owner, nothing more.
func authorizeOwner(requesterID, ownerID uint) error {
	if requesterID != ownerID {
		return fmt.Errorf("%w: resource belongs to another seller", ErrForbidden)
	}
	return nil
}
