package domain

import "time"

type ConversationID string
type MessageID string
type StepID string

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// AgentStatus is the coarse, process-wide phase of the client controller.
// Transitions are serialized because only one request is in flight at a time.
type AgentStatus string

const (
	StatusReady     AgentStatus = "ready"
	StatusThinking  AgentStatus = "thinking"  // preparing a request
	StatusExecuting AgentStatus = "executing" // request issued, waiting on the backend
	StatusError     AgentStatus = "error"     // last request failed, auto-reverts to ready
)

type StepType string

const (
	StepAudio     StepType = "audio"
	StepDocument  StepType = "document"
	StepClassify  StepType = "classify"
	StepReasoning StepType = "reasoning"
	StepGeneral   StepType = "general"
)

type StepStatus string

const (
	StepPending   StepStatus = "pending"
	StepRunning   StepStatus = "running"
	StepCompleted StepStatus = "completed"
	StepError     StepStatus = "error"
)

type Timestamp = time.Time
