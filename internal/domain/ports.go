package domain

import (
	"context"
	"errors"
)

// ErrConversationNotFound is returned by stores when a conversation id is
// unknown.
var ErrConversationNotFound = errors.New("conversation not found")

// LLMClient defines how the application interacts with an LLM service.
type LLMClient interface {
	GenerateReply(ctx context.Context, prompt string, convCtx ConversationContext) (string, error)
}

// ConversationContext gives the LLM minimal context about the conversation.
type ConversationContext struct {
	ConversationID ConversationID
	History        []*Message // last N interactions
}

// Transcript is the result of transcribing an audio file.
type Transcript struct {
	Text     string
	Language string
}

// Transcriber converts speech in an audio file to text.
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (*Transcript, error)
}

// DocumentReader extracts the text content of a document file (PDF or image).
type DocumentReader interface {
	ExtractText(ctx context.Context, path string) (string, error)
}

// ConversationStore defines conversation and message persistence.
type ConversationStore interface {
	CreateConversation(ctx context.Context, conv *Conversation) error
	UpdateConversation(ctx context.Context, conv *Conversation) error
	GetConversation(ctx context.Context, id ConversationID) (*Conversation, error)
	AppendMessage(ctx context.Context, msg *Message) error
	// ListMessages returns the last `limit` messages in insertion order.
	// limit <= 0 means all.
	ListMessages(ctx context.Context, id ConversationID, limit int) ([]*Message, error)
}

// ProcessRequest is what the client controller sends to the processing
// endpoint: text, or a file plus text.
type ProcessRequest struct {
	Query    string
	FileName string
	FileType string // declared media type, e.g. "audio/mpeg"
	Data     []byte
}

// ProcessResult mirrors the processing endpoint's response body. Only
// Response and IntermediateSteps are interpreted by the controller.
type ProcessResult struct {
	Status            string
	Response          string
	FileProcessed     string
	IntermediateSteps string
}

// AgentGateway is the controller's view of the backend.
type AgentGateway interface {
	Process(ctx context.Context, req ProcessRequest) (*ProcessResult, error)
}
