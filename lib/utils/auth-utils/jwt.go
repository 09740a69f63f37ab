package authutils

import (
	"hirex-backend/config"
	"hirex-backend/models"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// GetToken issues an HS256 token with the claims the API reads (sub, role).
func GetToken(userID, name string, role models.UserRole) (tokenString string, err error) {
	return SignToken(config.Conf.Auth.JWTSecret, userID, name, role, time.Second*time.Duration(config.Conf.Auth.JWTExpireInSec))
}

func SignToken(secret, userID, name string, role models.UserRole, ttl time.Duration) (tokenString string, err error) {
	claims := jwt.MapClaims{
		"name": name,
		"sub":  userID,
		"role": string(role),
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func GetClaims(ctx *fiber.Ctx) jwt.MapClaims {
	token, ok := ctx.Locals("user").(*jwt.Token)
	if !ok {
		return jwt.MapClaims{}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return jwt.MapClaims{}
	}
	return claims
}
