package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stylista-be/internal/dto"
	"stylista-be/internal/pkg/serverutils"
	"stylista-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testUserID    = uuid.MustParse("5f0c7a52-2b7e-4c38-9d8a-0f8f8d1f6a11")
	testShopperID = int64(4021)
)

func fakeAuth(ctx *fiber.Ctx) error {
	ctx.Locals(serverutils.LocalUserID, testUserID)
	ctx.Locals(serverutils.LocalShopperID, testShopperID)
	return ctx.Next()
}

func newApp(register func(r fiber.Router, auth fiber.Handler)) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	register(app.Group("/api"), fakeAuth)
	return app
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	return resp.StatusCode, body
}

type fakeChatbot struct {
	service.IChatbotService

	sendUser    uuid.UUID
	sendShopper *int64
	sendReq     *dto.SendChatRequest
	historyErr  error
	deleted     uuid.UUID
}

func (f *fakeChatbot) SendChat(_ context.Context, userId uuid.UUID, shopperId *int64, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	f.sendUser, f.sendShopper, f.sendReq = userId, shopperId, req
	return &dto.SendChatResponse{ChatSessionId: uuid.New(), ChatSessionTitle: req.Chat, Stage: "model"}, nil
}

func (f *fakeChatbot) CreateSession(_ context.Context, userId uuid.UUID, _ *int64) (*dto.CreateSessionResponse, error) {
	return &dto.CreateSessionResponse{Id: uuid.New(), Title: "New conversation"}, nil
}

func (f *fakeChatbot) GetChatHistory(context.Context, uuid.UUID, uuid.UUID) ([]*dto.GetChatHistoryResponse, error) {
	return nil, f.historyErr
}

func (f *fakeChatbot) DeleteSession(_ context.Context, _ uuid.UUID, sessionId uuid.UUID) error {
	f.deleted = sessionId
	return nil
}

func TestChatbotController_SendChat(t *testing.T) {
	svc := &fakeChatbot{}
	app := newApp(NewChatbotController(svc).RegisterRoutes)

	req := httptest.NewRequest(http.MethodPost, "/api/chat/v1/send", strings.NewReader(`{"chat":"any linen shirts?"}`))
	req.Header.Set("Content-Type", "application/json")
	status, body := do(t, app, req)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "any linen shirts?", body["data"].(map[string]any)["title"])
	assert.Equal(t, testUserID, svc.sendUser)
	require.NotNil(t, svc.sendShopper)
	assert.Equal(t, testShopperID, *svc.sendShopper)
	assert.Nil(t, svc.sendReq.ChatSessionId)
}

func TestChatbotController_SendChatValidation(t *testing.T) {
	app := newApp(NewChatbotController(&fakeChatbot{}).RegisterRoutes)

	req := httptest.NewRequest(http.MethodPost, "/api/chat/v1/send", strings.NewReader(`{"chat":""}`))
	req.Header.Set("Content-Type", "application/json")
	status, body := do(t, app, req)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["errors"], "chat")

	req = httptest.NewRequest(http.MethodPost, "/api/chat/v1/send", strings.NewReader(`{"chat":`))
	req.Header.Set("Content-Type", "application/json")
	status, _ = do(t, app, req)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestChatbotController_CreateSession(t *testing.T) {
	app := newApp(NewChatbotController(&fakeChatbot{}).RegisterRoutes)

	status, body := do(t, app, httptest.NewRequest(http.MethodPost, "/api/chat/v1/session", nil))
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "New conversation", body["data"].(map[string]any)["title"])
}

func TestChatbotController_HistoryErrors(t *testing.T) {
	svc := &fakeChatbot{historyErr: service.ErrSessionNotFound}
	app := newApp(NewChatbotController(svc).RegisterRoutes)

	status, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/api/chat/v1/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/api/chat/v1/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "chat session not found", body["message"])
}

func TestChatbotController_DeleteSession(t *testing.T) {
	svc := &fakeChatbot{}
	app := newApp(NewChatbotController(svc).RegisterRoutes)
	id := uuid.New()

	status, _ := do(t, app, httptest.NewRequest(http.MethodDelete, "/api/chat/v1/"+id.String(), nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, id, svc.deleted)
}

type fakeProducts struct {
	search       *dto.SearchProductsRequest
	trending     *dto.TrendingProductsRequest
	availability int64
}

func (f *fakeProducts) Search(_ context.Context, req *dto.SearchProductsRequest) (*dto.SearchProductsResponse, error) {
	f.search = req
	return &dto.SearchProductsResponse{Products: []dto.ProductResponse{}, Suggestions: []string{}}, nil
}

func (f *fakeProducts) Trending(_ context.Context, req *dto.TrendingProductsRequest) (*dto.TrendingProductsResponse, error) {
	f.trending = req
	return &dto.TrendingProductsResponse{Timeframe: "7 days"}, nil
}

func (f *fakeProducts) Availability(_ context.Context, id int64) (*dto.AvailabilityResponse, error) {
	f.availability = id
	if id == 404 {
		return nil, service.ErrProductNotFound
	}
	return &dto.AvailabilityResponse{ProductId: id, Availability: "in_stock"}, nil
}

func TestProductController_SearchBindsQuery(t *testing.T) {
	svc := &fakeProducts{}
	app := newApp(NewProductController(svc).RegisterRoutes)

	status, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/api/products/v1/search?category=Jeans&brand=Levi&min_price=20&max_price=80&q=slim&limit=5", nil))
	assert.Equal(t, http.StatusOK, status)
	require.NotNil(t, svc.search)
	assert.Equal(t, "Jeans", svc.search.Category)
	assert.Equal(t, "Levi", svc.search.Brand)
	assert.Equal(t, "slim", svc.search.Query)
	assert.Equal(t, 5, svc.search.Limit)
	require.NotNil(t, svc.search.MinPrice)
	assert.Equal(t, 20.0, *svc.search.MinPrice)
}

func TestProductController_SearchRejectsLimit(t *testing.T) {
	app := newApp(NewProductController(&fakeProducts{}).RegisterRoutes)

	status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/api/products/v1/search?limit=500", nil))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["errors"], "limit")
}

func TestProductController_Trending(t *testing.T) {
	svc := &fakeProducts{}
	app := newApp(NewProductController(svc).RegisterRoutes)

	status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/api/products/v1/trending?timeframe=7&category=Active", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "7", svc.trending.Timeframe)
	assert.Equal(t, "7 days", body["data"].(map[string]any)["timeframe"])
}

func TestProductController_Availability(t *testing.T) {
	svc := &fakeProducts{}
	app := newApp(NewProductController(svc).RegisterRoutes)

	status, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/api/products/v1/31/availability", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(31), svc.availability)

	status, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/api/products/v1/abc/availability", nil))
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/api/products/v1/404/availability", nil))
	assert.Equal(t, http.StatusNotFound, status)
}

type fakeShopper struct {
	service.IShopperService
	got *int64
}

func (f *fakeShopper) GetPreferences(_ context.Context, id *int64) (*dto.ShopperPreferencesResponse, error) {
	f.got = id
	return &dto.ShopperPreferencesResponse{Message: "No order history found"}, nil
}

func TestShopperController_Preferences(t *testing.T) {
	svc := &fakeShopper{}
	app := newApp(NewShopperController(svc).RegisterRoutes)

	status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/api/shopper/v1/preferences", nil))
	assert.Equal(t, http.StatusOK, status)
	require.NotNil(t, svc.got)
	assert.Equal(t, testShopperID, *svc.got)
	assert.Equal(t, "No order history found", body["data"].(map[string]any)["message"])
}
