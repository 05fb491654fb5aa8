package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"stylista-be/internal/entity"
	"stylista-be/internal/repository/specification"
	"stylista-be/internal/repository/unitofwork"
	"stylista-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormConnection(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn, false)
	require.NoError(t, err, "connect to DB")

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Ping())

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	ctx := context.Background()

	t.Run("Catalog tables are readable", func(t *testing.T) {
		uow := uowFactory.NewUnitOfWork(ctx)

		count, err := uow.ProductRepository().Count(ctx)
		assert.NoError(t, err)
		t.Logf("Product count: %d", count)

		top, err := uow.ProductRepository().TopCategories(ctx, 5)
		assert.NoError(t, err)
		t.Logf("Top categories: %v", top)

		_, err = uow.OrderItemRepository().TrendingProducts(ctx, time.Now().AddDate(0, 0, -30), "", 5)
		assert.NoError(t, err)

		_, err = uow.InventoryRepository().CountUnsold(ctx, []int64{1, 2, 3})
		assert.NoError(t, err)
	})

	t.Run("Chat session round trip in a transaction", func(t *testing.T) {
		userID := uuid.New()
		session := &entity.ChatSession{Id: uuid.New(), UserId: userID, Title: "Integration session", CreatedAt: time.Now()}

		uow := uowFactory.NewUnitOfWork(ctx)
		require.NoError(t, uow.Begin(ctx))
		defer uow.Rollback()

		require.NoError(t, uow.ChatSessionRepository().Create(ctx, session))
		require.NoError(t, uow.ChatMessageRepository().Create(ctx, &entity.ChatMessage{
			Id:            uuid.New(),
			Chat:          "integration hello",
			Role:          entity.ChatMessageRoleUser,
			ChatSessionId: session.Id,
			CreatedAt:     time.Now(),
		}))

		found, err := uow.ChatSessionRepository().FindOne(ctx,
			specification.ByID{ID: session.Id},
			specification.UserOwnedBy{UserID: userID},
		)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Integration session", found.Title)

		other, err := uow.ChatSessionRepository().FindOne(ctx,
			specification.ByID{ID: session.Id},
			specification.UserOwnedBy{UserID: uuid.New()},
		)
		require.NoError(t, err)
		assert.Nil(t, other)

		require.NoError(t, uow.ChatMessageRepository().DeleteByChatSessionId(ctx, session.Id))
		require.NoError(t, uow.ChatSessionRepository().Delete(ctx, session.Id))
		require.NoError(t, uow.Commit())
	})
}
