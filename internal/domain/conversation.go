package domain

import "time"

// Message represents any message in a timeline (user or assistant).
// Messages are immutable once created and ordered by insertion.
type Message struct {
	ID             MessageID
	ConversationID ConversationID
	Role           Role
	Content        string
	CreatedAt      Timestamp

	// FileName references an attached upload by name only; the bytes are
	// sent once and never retained in the message.
	FileName string
}

// ThinkingStep is a UI-facing record of one unit of (possibly synthetic)
// backend work, shown as a timeline entry.
type ThinkingStep struct {
	ID          StepID
	Type        StepType
	Title       string
	Description string
	Status      StepStatus

	// Duration is display-only jitter, not telemetry.
	Duration time.Duration
}

// Conversation groups messages on the backend side so the agent can be
// given recent history as context.
type Conversation struct {
	ID        ConversationID
	Title     string
	CreatedAt Timestamp
	UpdatedAt Timestamp
}
