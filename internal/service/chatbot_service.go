package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"stylista-be/internal/dto"
	"stylista-be/internal/entity"
	"stylista-be/internal/pkg/logger"
	"stylista-be/internal/pkg/serverutils"
	"stylista-be/internal/repository/specification"
	"stylista-be/internal/repository/unitofwork"
	"stylista-be/pkg/assistant"
	"stylista-be/pkg/assistant/action"
	"stylista-be/pkg/llm"

	"github.com/google/uuid"
)

const (
	defaultSessionTitle = "New conversation"
	sessionTitleRunes   = 60
)

var ErrSessionNotFound = fmt.Errorf("chat session %w", serverutils.ErrNotFound)

// Responder runs one assistant turn.
type Responder interface {
	Respond(ctx context.Context, req assistant.Request) assistant.Reply
}

type IChatbotService interface {
	CreateSession(ctx context.Context, userId uuid.UUID, shopperId *int64) (*dto.CreateSessionResponse, error)
	GetAllSessions(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllSessionsResponse, error)
	GetChatHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.GetChatHistoryResponse, error)
	SendChat(ctx context.Context, userId uuid.UUID, shopperId *int64, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	DeleteSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error
}

type chatbotService struct {
	uowFactory     unitofwork.RepositoryFactory
	assistant      Responder
	shopperService IShopperService
	publisher      IPublisherService
	historyWindow  int
	logger         logger.ILogger
	now            func() time.Time
}

func NewChatbotService(
	uowFactory unitofwork.RepositoryFactory,
	assistant Responder,
	shopperService IShopperService,
	publisher IPublisherService,
	historyWindow int,
	logger logger.ILogger,
) IChatbotService {
	return &chatbotService{
		uowFactory:     uowFactory,
		assistant:      assistant,
		shopperService: shopperService,
		publisher:      publisher,
		historyWindow:  historyWindow,
		logger:         logger,
		now:            time.Now,
	}
}

func (cs *chatbotService) CreateSession(ctx context.Context, userId uuid.UUID, shopperId *int64) (*dto.CreateSessionResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	chatSession, err := cs.newSession(ctx, uow, userId, shopperId)
	if err != nil {
		return nil, err
	}

	return &dto.CreateSessionResponse{Id: chatSession.Id, Title: chatSession.Title}, nil
}

func (cs *chatbotService) newSession(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, shopperId *int64) (*entity.ChatSession, error) {
	chatSession := &entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		ShopperId: shopperId,
		Title:     defaultSessionTitle,
		CreatedAt: cs.now(),
	}
	if err := uow.ChatSessionRepository().Create(ctx, chatSession); err != nil {
		return nil, err
	}
	return chatSession, nil
}

func (cs *chatbotService) GetAllSessions(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllSessionsResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	chatSessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.GetAllSessionsResponse, 0, len(chatSessions))
	for _, s := range chatSessions {
		response = append(response, &dto.GetAllSessionsResponse{
			Id:        s.Id,
			Title:     s.Title,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		})
	}
	return response, nil
}

func (cs *chatbotService) GetChatHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.GetChatHistoryResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	if _, err := cs.ownedSession(ctx, uow, userId, sessionId); err != nil {
		return nil, err
	}

	chatMessages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	resp := make([]*dto.GetChatHistoryResponse, 0, len(chatMessages))
	for _, msg := range chatMessages {
		item := &dto.GetChatHistoryResponse{
			Id:        msg.Id,
			Role:      string(msg.Role),
			Chat:      msg.Chat,
			CreatedAt: msg.CreatedAt,
		}
		if msg.Metadata != nil {
			item.Action = msg.Metadata.Action
			item.ProductIds = msg.Metadata.ProductIds
		}
		resp = append(resp, item)
	}
	return resp, nil
}

// SendChat runs one turn. The model call happens outside the transaction;
// only the two new messages and the title change are written atomically.
func (cs *chatbotService) SendChat(ctx context.Context, userId uuid.UUID, shopperId *int64, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	var chatSession *entity.ChatSession
	if request.ChatSessionId == nil {
		s, err := cs.newSession(ctx, uow, userId, shopperId)
		if err != nil {
			return nil, err
		}
		chatSession = s
	} else {
		s, err := cs.ownedSession(ctx, uow, userId, *request.ChatSessionId)
		if err != nil {
			return nil, err
		}
		chatSession = s
	}

	previous, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: chatSession.Id},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: cs.historyWindow},
	)
	if err != nil {
		return nil, err
	}

	reply := cs.assistant.Respond(ctx, assistant.Request{
		Text:    request.Chat,
		History: toLLMHistory(previous),
		Shopper: cs.shopperService.ShopperContext(ctx, shopperId),
	})

	now := cs.now()
	userMessage := entity.ChatMessage{
		Id:            uuid.New(),
		Chat:          request.Chat,
		Role:          entity.ChatMessageRoleUser,
		ChatSessionId: chatSession.Id,
		CreatedAt:     now,
	}
	commandJSON := action.Marshal(reply.Command)
	productIds := reply.Outcome.ProductIDs()
	aiMessage := entity.ChatMessage{
		Id:            uuid.New(),
		Chat:          reply.Text,
		Role:          entity.ChatMessageRoleAI,
		ChatSessionId: chatSession.Id,
		Metadata: &entity.ChatMessageMetadata{
			Action:     commandJSON,
			Stage:      string(reply.Stage),
			Status:     string(reply.Outcome.Status),
			ProductIds: productIds,
		},
		// Replies sort after the message they answer.
		CreatedAt: now.Add(time.Millisecond),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().Create(ctx, &userMessage); err != nil {
		return nil, err
	}
	if err := uow.ChatMessageRepository().Create(ctx, &aiMessage); err != nil {
		return nil, err
	}

	if len(previous) == 0 {
		chatSession.Title = sessionTitle(request.Chat)
		chatSession.UpdatedAt = &now
		if err := uow.ChatSessionRepository().Update(ctx, chatSession); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if err := cs.publisher.PublishTurnCompleted(ctx, dto.TurnCompletedMessage{
		UserId:        userId,
		ChatSessionId: chatSession.Id,
		ShopperId:     shopperId,
		MessageId:     aiMessage.Id,
		Chat:          request.Chat,
		Reply:         reply.Text,
		Action:        commandJSON,
		Stage:         string(reply.Stage),
		Status:        string(reply.Outcome.Status),
		Attempts:      reply.Attempts,
		Degraded:      reply.Outcome.Degraded,
		ProductIds:    productIds,
		OccurredAt:    now,
	}); err != nil {
		cs.logger.Warn("CHATBOT", "Failed to publish turn event", map[string]interface{}{
			"chat_session_id": chatSession.Id.String(),
			"error":           err.Error(),
		})
	}

	products := make([]dto.ProductResponse, 0, len(reply.Outcome.Products)+1)
	for _, p := range reply.Outcome.Products {
		products = append(products, catalogProductResponse(p))
	}
	if reply.Outcome.Product != nil && len(reply.Outcome.Products) == 0 {
		products = append(products, catalogProductResponse(*reply.Outcome.Product))
	}

	return &dto.SendChatResponse{
		ChatSessionId:    chatSession.Id,
		ChatSessionTitle: chatSession.Title,
		Sent: &dto.SendChatResponseChat{
			Id:        userMessage.Id,
			Chat:      userMessage.Chat,
			Role:      string(userMessage.Role),
			CreatedAt: userMessage.CreatedAt,
		},
		Reply: &dto.SendChatResponseChat{
			Id:        aiMessage.Id,
			Chat:      aiMessage.Chat,
			Role:      string(aiMessage.Role),
			CreatedAt: aiMessage.CreatedAt,
		},
		Action:   commandJSON,
		Stage:    string(reply.Stage),
		Products: products,
	}, nil
}

func (cs *chatbotService) DeleteSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	if _, err := cs.ownedSession(ctx, uow, userId, sessionId); err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteByChatSessionId(ctx, sessionId); err != nil {
		return err
	}
	if err := uow.ChatSessionRepository().Delete(ctx, sessionId); err != nil {
		return err
	}
	return uow.Commit()
}

func (cs *chatbotService) ownedSession(ctx context.Context, uow unitofwork.UnitOfWork, userId, sessionId uuid.UUID) (*entity.ChatSession, error) {
	sess, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// toLLMHistory takes messages newest first and returns them oldest first.
func toLLMHistory(messages []*entity.ChatMessage) []llm.Message {
	history := make([]llm.Message, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		role := llm.RoleUser
		if messages[i].Role == entity.ChatMessageRoleAI {
			role = llm.RoleAssistant
		}
		history = append(history, llm.Message{Role: role, Content: messages[i].Chat})
	}
	return history
}

func sessionTitle(chat string) string {
	chat = strings.TrimSpace(chat)
	if utf8.RuneCountInString(chat) <= sessionTitleRunes {
		return chat
	}
	runes := []rune(chat)
	return string(runes[:sessionTitleRunes]) + "..."
}
