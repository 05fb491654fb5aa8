package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"stylista-be/internal/dto"
	"stylista-be/internal/entity"
	"stylista-be/internal/repository/contract"
	"stylista-be/internal/repository/specification"
	"stylista-be/internal/repository/unitofwork"
	"stylista-be/pkg/events"

	"github.com/google/uuid"
)

// memStore backs every fake repository. It understands the handful of
// specifications the services build and ignores the rest.
type memStore struct {
	mu sync.Mutex

	sessions map[uuid.UUID]*entity.ChatSession
	messages []*entity.ChatMessage
	shoppers map[int64]*entity.Shopper
	orders   []*entity.OrderItem
	products []*entity.Product
	topCats  []entity.CategoryCount

	shopperErr     error
	shopperLookups int
	commits        int
}

func newMemStore() *memStore {
	return &memStore{
		sessions: map[uuid.UUID]*entity.ChatSession{},
		shoppers: map[int64]*entity.Shopper{},
	}
}

type fakeFactory struct{ store *memStore }

func (f fakeFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork {
	return &fakeUoW{store: f.store}
}

type fakeUoW struct {
	store *memStore
	open  bool
}

func (u *fakeUoW) Begin(context.Context) error { u.open = true; return nil }
func (u *fakeUoW) Commit() error {
	u.open = false
	u.store.commits++
	return nil
}
func (u *fakeUoW) Rollback() error { u.open = false; return nil }

func (u *fakeUoW) ChatSessionRepository() contract.ChatSessionRepository {
	return fakeSessions{u.store}
}
func (u *fakeUoW) ChatMessageRepository() contract.ChatMessageRepository {
	return fakeMessages{u.store}
}
func (u *fakeUoW) ProductRepository() contract.ProductRepository {
	return fakeProducts{u.store}
}
func (u *fakeUoW) InventoryRepository() contract.InventoryRepository {
	panic("inventory repository not used by these tests")
}
func (u *fakeUoW) OrderItemRepository() contract.OrderItemRepository {
	return fakeOrders{u.store}
}
func (u *fakeUoW) ShopperRepository() contract.ShopperRepository {
	return fakeShoppers{u.store}
}

type fakeSessions struct{ s *memStore }

func (r fakeSessions) Create(_ context.Context, session *entity.ChatSession) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *session
	r.s.sessions[session.Id] = &cp
	return nil
}

func (r fakeSessions) Update(ctx context.Context, session *entity.ChatSession) error {
	return r.Create(ctx, session)
}

func (r fakeSessions) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.sessions, id)
	return nil
}

func (r fakeSessions) FindOne(_ context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var id, owner uuid.UUID
	for _, spec := range specs {
		switch v := spec.(type) {
		case specification.ByID:
			id = v.ID
		case specification.UserOwnedBy:
			owner = v.UserID
		}
	}
	sess, ok := r.s.sessions[id]
	if !ok || (owner != uuid.Nil && sess.UserId != owner) {
		return nil, nil
	}
	cp := *sess
	return &cp, nil
}

func (r fakeSessions) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var owner uuid.UUID
	for _, spec := range specs {
		if v, ok := spec.(specification.UserOwnedBy); ok {
			owner = v.UserID
		}
	}
	var out []*entity.ChatSession
	for _, sess := range r.s.sessions {
		if sess.UserId == owner {
			cp := *sess
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r fakeSessions) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

type fakeMessages struct{ s *memStore }

func (r fakeMessages) Create(_ context.Context, message *entity.ChatMessage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *message
	r.s.messages = append(r.s.messages, &cp)
	return nil
}

func (r fakeMessages) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.messages[:0]
	for _, m := range r.s.messages {
		if m.Id != id {
			kept = append(kept, m)
		}
	}
	r.s.messages = kept
	return nil
}

func (r fakeMessages) DeleteByChatSessionId(_ context.Context, sessionId uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.messages[:0]
	for _, m := range r.s.messages {
		if m.ChatSessionId != sessionId {
			kept = append(kept, m)
		}
	}
	r.s.messages = kept
	return nil
}

func (r fakeMessages) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r fakeMessages) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var session uuid.UUID
	desc := false
	limit := 0
	for _, spec := range specs {
		switch v := spec.(type) {
		case specification.ByChatSessionID:
			session = v.ChatSessionID
		case specification.OrderBy:
			desc = v.Desc
		case specification.Pagination:
			limit = v.Limit
		}
	}
	var out []*entity.ChatMessage
	for _, m := range r.s.messages {
		if m.ChatSessionId == session {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r fakeMessages) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

type fakeProducts struct{ s *memStore }

func (r fakeProducts) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r fakeProducts) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Product, error) {
	var categories []string
	excluded := map[int64]bool{}
	limit := 0
	for _, spec := range specs {
		switch v := spec.(type) {
		case specification.CategoryIn:
			categories = v.Categories
		case specification.ExcludeIDs:
			for _, id := range v.IDs {
				excluded[id] = true
			}
		case specification.Pagination:
			limit = v.Limit
		}
	}
	var out []*entity.Product
	for _, p := range r.s.products {
		if excluded[p.Id] || (len(categories) > 0 && !contains(categories, p.Category)) {
			continue
		}
		out = append(out, p)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r fakeProducts) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

func (r fakeProducts) TopCategories(_ context.Context, limit int) ([]entity.CategoryCount, error) {
	if len(r.s.topCats) > limit {
		return r.s.topCats[:limit], nil
	}
	return r.s.topCats, nil
}

func (r fakeProducts) CreateBulk(context.Context, []*entity.Product) error { return nil }

type fakeOrders struct{ s *memStore }

func (r fakeOrders) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.OrderItem, error) {
	var shopper int64
	for _, spec := range specs {
		if v, ok := spec.(specification.OrderedBy); ok {
			shopper = v.ShopperID
		}
	}
	var out []*entity.OrderItem
	for _, o := range r.s.orders {
		if o.UserId == shopper {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r fakeOrders) TrendingProducts(context.Context, time.Time, string, int) ([]entity.ProductCount, error) {
	return nil, nil
}

func (r fakeOrders) FavoriteCategories(context.Context, int64, int) ([]entity.CategoryCount, error) {
	return nil, nil
}

func (r fakeOrders) CreateBulk(context.Context, []*entity.OrderItem) error { return nil }

type fakeShoppers struct{ s *memStore }

func (r fakeShoppers) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Shopper, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.shopperLookups++
	if r.s.shopperErr != nil {
		return nil, r.s.shopperErr
	}
	for _, spec := range specs {
		if v, ok := spec.(specification.ByNumericID); ok {
			return r.s.shoppers[v.ID], nil
		}
	}
	return nil, nil
}

func (r fakeShoppers) CreateBulk(context.Context, []*entity.Shopper) error { return nil }

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

type recordingPublisher struct {
	mu    sync.Mutex
	turns []dto.TurnCompletedMessage
	err   error
}

func (p *recordingPublisher) PublishTurnCompleted(_ context.Context, payload dto.TurnCompletedMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.turns = append(p.turns, payload)
	return p.err
}

type sentFrame struct {
	userID    uuid.UUID
	eventType string
	payload   any
}

type recordingDelivery struct {
	mu     sync.Mutex
	frames []sentFrame
}

func (d *recordingDelivery) Send(userID uuid.UUID, eventType string, payload any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frames = append(d.frames, sentFrame{userID, eventType, payload})
}

func (d *recordingDelivery) sent() []sentFrame {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]sentFrame(nil), d.frames...)
}

type recordingEvents struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (e *recordingEvents) Publish(_ context.Context, evt events.Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, evt)
	return e.err
}

func (e *recordingEvents) published() []events.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]events.Event(nil), e.events...)
}
