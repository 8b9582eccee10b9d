package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sentinai/sentinai/internal/domain"
)

const keyPrefix = "sentinai:conv:"

// Store keeps conversations as JSON values and their messages as JSON
// lists in Redis.
type Store struct {
	rdb *redis.Client
}

func NewStore(addr string) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Store{rdb: rdb}, nil
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

func convKey(id domain.ConversationID) string {
	return keyPrefix + string(id)
}

func messagesKey(id domain.ConversationID) string {
	return keyPrefix + string(id) + ":messages"
}

type conversationDoc struct {
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type messageDoc struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	FileName  string    `json:"file_name,omitempty"`
}

func (s *Store) CreateConversation(ctx context.Context, conv *domain.Conversation) error {
	doc, err := json.Marshal(conversationDoc{
		Title:     conv.Title,
		CreatedAt: conv.CreatedAt,
		UpdatedAt: conv.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("encode conversation: %w", err)
	}

	ok, err := s.rdb.SetNX(ctx, convKey(conv.ID), doc, 0).Result()
	if err != nil {
		return fmt.Errorf("redis CreateConversation: %w", err)
	}
	if !ok {
		return errors.New("conversation already exists")
	}
	return nil
}

func (s *Store) UpdateConversation(ctx context.Context, conv *domain.Conversation) error {
	exists, err := s.rdb.Exists(ctx, convKey(conv.ID)).Result()
	if err != nil {
		return fmt.Errorf("redis UpdateConversation: %w", err)
	}
	if exists == 0 {
		return domain.ErrConversationNotFound
	}

	doc, err := json.Marshal(conversationDoc{
		Title:     conv.Title,
		CreatedAt: conv.CreatedAt,
		UpdatedAt: conv.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("encode conversation: %w", err)
	}
	if err := s.rdb.Set(ctx, convKey(conv.ID), doc, 0).Err(); err != nil {
		return fmt.Errorf("redis UpdateConversation: %w", err)
	}
	return nil
}

func (s *Store) GetConversation(ctx context.Context, id domain.ConversationID) (*domain.Conversation, error) {
	raw, err := s.rdb.Get(ctx, convKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrConversationNotFound
		}
		return nil, fmt.Errorf("redis GetConversation: %w", err)
	}

	var doc conversationDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode conversation: %w", err)
	}

	return &domain.Conversation{
		ID:        id,
		Title:     doc.Title,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

func (s *Store) AppendMessage(ctx context.Context, msg *domain.Message) error {
	doc, err := json.Marshal(messageDoc{
		ID:        string(msg.ID),
		Role:      string(msg.Role),
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
		FileName:  msg.FileName,
	})
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	if err := s.rdb.RPush(ctx, messagesKey(msg.ConversationID), doc).Err(); err != nil {
		return fmt.Errorf("redis AppendMessage: %w", err)
	}
	return nil
}

func (s *Store) ListMessages(ctx context.Context, id domain.ConversationID, limit int) ([]*domain.Message, error) {
	start := int64(0)
	if limit > 0 {
		start = int64(-limit)
	}

	raws, err := s.rdb.LRange(ctx, messagesKey(id), start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis ListMessages: %w", err)
	}

	out := make([]*domain.Message, 0, len(raws))
	for _, raw := range raws {
		var doc messageDoc
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, fmt.Errorf("decode message: %w", err)
		}
		out = append(out, &domain.Message{
			ID:             domain.MessageID(doc.ID),
			ConversationID: id,
			Role:           domain.Role(doc.Role),
			Content:        doc.Content,
			CreatedAt:      doc.CreatedAt,
			FileName:       doc.FileName,
		})
	}
	return out, nil
}
