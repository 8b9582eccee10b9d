package chat

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/sentinai/sentinai/internal/app/agentflow"
	"github.com/sentinai/sentinai/internal/domain"
	"github.com/sentinai/sentinai/internal/observability"
)

// historyLimit caps how much conversation history is handed to the agent.
const historyLimit = 20

// DefaultConversationID is used when a caller does not name a conversation.
const DefaultConversationID = domain.ConversationID("default")

// Service mediates between the API surface and the orchestrator,
// maintaining per-conversation message history in the configured store.
type Service struct {
	store domain.ConversationStore
	orch  *agentflow.Orchestrator
	now   func() time.Time
	newID func() string
}

func NewService(store domain.ConversationStore, orch *agentflow.Orchestrator) *Service {
	return &Service{
		store: store,
		orch:  orch,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

type ProcessInput struct {
	ConversationID domain.ConversationID
	Kind           agentflow.InputKind
	Query          string
	FilePath       string
	FileName       string
}

type ProcessOutput struct {
	UserMessage       *domain.Message
	AssistantMessage  *domain.Message
	Response          string
	IntermediateSteps string
}

// Process records the user input, runs the agent workflow with recent
// history as context, and records the reply.
func (s *Service) Process(ctx context.Context, in ProcessInput) (*ProcessOutput, error) {
	convID := in.ConversationID
	if convID == "" {
		convID = DefaultConversationID
	}

	log := observability.LoggerFromContext(ctx).With(
		"conversation_id", convID,
		"kind", in.Kind,
	)

	if err := s.ensureConversation(ctx, convID, in.Query); err != nil {
		log.Errorw("failed to ensure conversation", "error", err)
		return nil, err
	}

	userMsg := &domain.Message{
		ID:             domain.MessageID(s.newID()),
		ConversationID: convID,
		Role:           domain.RoleUser,
		Content:        in.Query,
		CreatedAt:      s.now(),
		FileName:       in.FileName,
	}
	if err := s.store.AppendMessage(ctx, userMsg); err != nil {
		log.Errorw("failed to append user message", "error", err)
		return nil, err
	}

	history, err := s.store.ListMessages(ctx, convID, historyLimit)
	if err != nil {
		log.Errorw("failed to load history", "error", err)
		return nil, err
	}

	result, err := s.orch.Run(ctx, agentflow.Input{
		Kind:     in.Kind,
		Query:    in.Query,
		FilePath: in.FilePath,
		FileName: in.FileName,
	}, domain.ConversationContext{
		ConversationID: convID,
		History:        history,
	})
	if err != nil {
		return nil, err
	}

	assistantMsg := &domain.Message{
		ID:             domain.MessageID(s.newID()),
		ConversationID: convID,
		Role:           domain.RoleAssistant,
		Content:        result.Response,
		CreatedAt:      s.now(),
	}
	if err := s.store.AppendMessage(ctx, assistantMsg); err != nil {
		log.Errorw("failed to append assistant message", "error", err)
		return nil, err
	}

	if err := s.touchConversation(ctx, convID); err != nil {
		log.Warnw("failed to update conversation", "error", err)
	}

	log.Infow("process completed")

	return &ProcessOutput{
		UserMessage:       userMsg,
		AssistantMessage:  assistantMsg,
		Response:          result.Response,
		IntermediateSteps: result.IntermediateSteps,
	}, nil
}

// Chat is the text-only variant used by the simpler chat endpoint.
func (s *Service) Chat(ctx context.Context, convID domain.ConversationID, message string) (*ProcessOutput, error) {
	return s.Process(ctx, ProcessInput{
		ConversationID: convID,
		Kind:           agentflow.KindText,
		Query:          message,
	})
}

func (s *Service) ensureConversation(ctx context.Context, id domain.ConversationID, title string) error {
	_, err := s.store.GetConversation(ctx, id)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrConversationNotFound) {
		return err
	}

	now := s.now()
	if len(title) > 40 {
		title = title[:40]
	}
	return s.store.CreateConversation(ctx, &domain.Conversation{
		ID:        id,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *Service) touchConversation(ctx context.Context, id domain.ConversationID) error {
	conv, err := s.store.GetConversation(ctx, id)
	if err != nil {
		return err
	}
	conv.UpdatedAt = s.now()
	return s.store.UpdateConversation(ctx, conv)
}
