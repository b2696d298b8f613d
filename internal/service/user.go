package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/JonathanDVZ/CRMGraphQL/internal/auth"
	"github.com/JonathanDVZ/CRMGraphQL/internal/events"
	"github.com/JonathanDVZ/CRMGraphQL/internal/hash"
	"github.com/JonathanDVZ/CRMGraphQL/internal/logging"
	"github.com/JonathanDVZ/CRMGraphQL/internal/models"
)

const tokenTTL = 24 * time.Hour

type UserService struct {
	DB        *gorm.DB
	Producer  *events.Producer
	JWTSecret []byte
}

type RegisterInput struct {
	Name     string
	LastName string
	Email    string
	Password string
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if input.Email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	var existing models.User
	err := s.DB.WithContext(ctx).Where("email = ?", input.Email).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: the user already exists", ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	passwordHash, err := hash.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         input.Name,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: passwordHash,
	}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	s.publish(ctx, map[string]any{
		"type":   "user_registered",
		"userID": user.ID,
		"email":  user.Email,
	})

	return &user, nil
}

// Authenticate verifies credentials and issues a signed token the API
// boundary later verifies on every guarded operation.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (string, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: the user doesn't exist", ErrNotFound)
		}
		return "", err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		return "", fmt.Errorf("%w: password is incorrect", ErrUnauthorized)
	}

	token, err := auth.SignToken(&user, s.JWTSecret, tokenTTL)
	if err != nil {
		return "", err
	}

	s.publish(ctx, map[string]any{
		"type":   "user_logged_in",
		"userID": user.ID,
	})

	return token, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: the user doesn't exist", ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) publish(ctx context.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(ctx, events.TopicUserEvents, fmt.Sprint(event["userID"]), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "err", err)
	}
}
