package serverutils

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func sign(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestIdentityFromClaims(t *testing.T) {
	userID := uuid.New()

	id, shopper, err := IdentityFromClaims(jwt.MapClaims{"user_id": userID.String(), "shopper_id": float64(457)})
	require.NoError(t, err)
	assert.Equal(t, userID, id)
	require.NotNil(t, shopper)
	assert.Equal(t, int64(457), *shopper)

	_, shopper, err = IdentityFromClaims(jwt.MapClaims{"user_id": userID.String(), "shopper_id": "12"})
	require.NoError(t, err)
	assert.Equal(t, int64(12), *shopper)

	_, shopper, err = IdentityFromClaims(jwt.MapClaims{"user_id": userID.String()})
	require.NoError(t, err)
	assert.Nil(t, shopper)

	_, _, err = IdentityFromClaims(jwt.MapClaims{"user_id": "not-a-uuid"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestParseToken_RejectsWrongSecretAndExpired(t *testing.T) {
	claims := jwt.MapClaims{"user_id": uuid.NewString(), "exp": time.Now().Add(time.Hour).Unix()}

	_, err := ParseToken(sign(t, claims, "other"), testSecret)
	assert.ErrorIs(t, err, ErrUnauthorized)

	expired := jwt.MapClaims{"user_id": uuid.NewString(), "exp": time.Now().Add(-time.Hour).Unix()}
	_, err = ParseToken(sign(t, expired, testSecret), testSecret)
	assert.ErrorIs(t, err, ErrUnauthorized)

	parsed, err := ParseToken(sign(t, claims, testSecret), testSecret)
	require.NoError(t, err)
	assert.Equal(t, claims["user_id"], parsed["user_id"])
}

func TestJwtMiddleware(t *testing.T) {
	userID := uuid.New()
	app := fiber.New()
	app.Get("/me", NewJwtMiddleware(testSecret), func(ctx *fiber.Ctx) error {
		id, err := UserID(ctx)
		if err != nil {
			return err
		}
		shopper := ShopperID(ctx)
		return ctx.JSON(fiber.Map{"user_id": id, "has_shopper": shopper != nil})
	})

	req := httptest.NewRequest("GET", "/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+sign(t, jwt.MapClaims{"user_id": userID.String(), "shopper_id": 7}, testSecret))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
