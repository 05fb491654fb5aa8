package unitofwork

import (
	"context"

	"stylista-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository

	ProductRepository() contract.ProductRepository
	InventoryRepository() contract.InventoryRepository
	OrderItemRepository() contract.OrderItemRepository
	ShopperRepository() contract.ShopperRepository
}
