package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/JonathanDVZ/CRMGraphQL/internal/models"
)

func TestSignAndParseToken(t *testing.T) {
	secret := []byte("test_secret")
	user := &models.User{
		ID:       7,
		Name:     "Jonathan",
		LastName: "Vaz",
		Email:    "jonathan@test.com",
	}

	token, err := SignToken(user, secret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token, secret)
	require.NoError(t, err)
	require.Equal(t, uint(7), claims.ID)
	require.Equal(t, "jonathan@test.com", claims.Email)
	require.Equal(t, "Jonathan", claims.Name)
	require.Equal(t, "Vaz", claims.LastName)
}

func TestParseTokenWrongSecret(t *testing.T) {
	user := &models.User{ID: 7, Email: "jonathan@test.com"}

	token, err := SignToken(user, []byte("right_secret"), time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, []byte("wrong_secret"))
	require.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	secret := []byte("test_secret")
	user := &models.User{ID: 7, Email: "jonathan@test.com"}

	token, err := SignToken(user, secret, -time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, secret)
	require.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("not-a-token", []byte("test_secret"))
	require.Error(t, err)
}
