package serverutils

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	LocalUserID    = "user_id"
	LocalShopperID = "shopper_id"
)

// NewJwtMiddleware verifies HMAC tokens issued by the identity service. The
// token must carry a user_id UUID and may carry a numeric shopper_id linking
// the caller to the catalog's users table.
func NewJwtMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing token"})
		}

		claims, err := ParseToken(authHeader[7:], secret)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
		}

		userID, shopperID, err := IdentityFromClaims(claims)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid claims"})
		}

		ctx.Locals(LocalUserID, userID)
		if shopperID != nil {
			ctx.Locals(LocalShopperID, *shopperID)
		}
		return ctx.Next()
	}
}

func ParseToken(tokenStr, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrUnauthorized
	}
	return claims, nil
}

// IdentityFromClaims accepts shopper_id as a JSON number or a numeric string.
func IdentityFromClaims(claims jwt.MapClaims) (uuid.UUID, *int64, error) {
	rawUserID, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, nil, ErrUnauthorized
	}
	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		return uuid.Nil, nil, ErrUnauthorized
	}

	var shopperID *int64
	switch v := claims["shopper_id"].(type) {
	case float64:
		id := int64(v)
		shopperID = &id
	case string:
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			shopperID = &id
		}
	}
	return userID, shopperID, nil
}

func UserID(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, ok := ctx.Locals(LocalUserID).(uuid.UUID)
	if !ok {
		return uuid.Nil, ErrUnauthorized
	}
	return id, nil
}

func ShopperID(ctx *fiber.Ctx) *int64 {
	id, ok := ctx.Locals(LocalShopperID).(int64)
	if !ok || id <= 0 {
		return nil
	}
	return &id
}
