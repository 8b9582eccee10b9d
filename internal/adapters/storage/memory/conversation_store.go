package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/sentinai/sentinai/internal/domain"
)

type ConversationStore struct {
	mu            sync.RWMutex
	conversations map[domain.ConversationID]*domain.Conversation
	messages      map[domain.ConversationID][]*domain.Message
}

func NewConversationStore() *ConversationStore {
	return &ConversationStore{
		conversations: make(map[domain.ConversationID]*domain.Conversation),
		messages:      make(map[domain.ConversationID][]*domain.Message),
	}
}

func (s *ConversationStore) CreateConversation(ctx context.Context, conv *domain.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.conversations[conv.ID]; exists {
		return errors.New("conversation already exists")
	}

	cp := *conv
	s.conversations[conv.ID] = &cp
	return nil
}

func (s *ConversationStore) UpdateConversation(ctx context.Context, conv *domain.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.conversations[conv.ID]; !exists {
		return domain.ErrConversationNotFound
	}

	cp := *conv
	s.conversations[conv.ID] = &cp
	return nil
}

func (s *ConversationStore) GetConversation(ctx context.Context, id domain.ConversationID) (*domain.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.conversations[id]
	if !ok {
		return nil, domain.ErrConversationNotFound
	}

	cp := *conv
	return &cp, nil
}

func (s *ConversationStore) AppendMessage(ctx context.Context, msg *domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages[msg.ConversationID] = append(s.messages[msg.ConversationID], msg)
	return nil
}

func (s *ConversationStore) ListMessages(ctx context.Context, id domain.ConversationID, limit int) ([]*domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.messages[id]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return append([]*domain.Message(nil), msgs...), nil
}
