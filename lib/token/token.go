package token

import (
	"fmt"
	"time"

	"github.com/MOHITVYASJI/Mithaas-Delights/lib/models"

	"github.com/dgrijalva/jwt-go"
	"github.com/spf13/viper"
)

const RoleAdmin = "admin"

type Claims struct {
	UserName string `json:"user_name"`
	Role     string `json:"role"`
	jwt.StandardClaims
}

// jwtKey is read lazily so the secret picked up by config.LoadConfig is
// the one actually used.
func jwtKey() []byte {
	return []byte(viper.GetString("JWT_SECRET"))
}

// GenerateToken generates a JWT for the user; role is "admin" for tokens
// allowed through the admin middleware.
func GenerateToken(userID, userName, role string) (string, error) {
	expirationTime := time.Now().Add(72 * time.Hour)
	claims := &Claims{
		UserName: userName,
		Role:     role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
			Subject:   userID,
			Issuer:    "mithaas-delights",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtKey())
	if err != nil {
		return "", fmt.Errorf("error signing token: %v", err)
	}

	return tokenString, nil
}

// ValidateToken validates the provided JWT token
func ValidateToken(tokenString string) (bool, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtKey(), nil
	})
	if err != nil {
		return false, fmt.Errorf("error parsing token: %v", err)
	}

	return token.Valid, nil
}

// GetUserFromToken extracts user information from the token
func GetUserFromToken(tokenString string) (models.UserRequest, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtKey(), nil
	})
	if err != nil {
		return models.UserRequest{}, fmt.Errorf("error parsing token: %v", err)
	}

	user := models.UserRequest{
		UserID:   claims.Subject,
		UserName: claims.UserName,
		Role:     claims.Role,
	}

	return user, nil
}
