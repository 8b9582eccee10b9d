package console

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sentinai/sentinai/internal/domain"
	"github.com/sentinai/sentinai/internal/observability"
)

const (
	defaultFileQuery = "Analyze this file"
	errorReply       = "Sorry, something went wrong while processing your request. Please make sure the backend is running and try again."

	// defaultResetDelay is how long the controller stays in the error
	// state before reverting to ready on its own.
	defaultResetDelay = 3 * time.Second

	// displayStepDuration is the fixed display duration assigned to the
	// in-flight step once the request completes.
	displayStepDuration = 1200 * time.Millisecond
)

// FileUpload describes a file the user attached to a submission. Only the
// name survives into the message history; the bytes are send-once.
type FileUpload struct {
	Name      string
	MediaType string
	Data      []byte
}

// Snapshot is a read-only copy of the controller state for rendering.
type Snapshot struct {
	Messages   []domain.Message
	Steps      []domain.ThinkingStep
	Status     domain.AgentStatus
	Processing bool
}

// Controller owns the conversation shown to the user: the message history,
// the thinking-step timeline and the agent status. It issues at most one
// request at a time to the backend; submissions attempted while a request
// is in flight are dropped. All state lives behind one mutex so the
// single-writer invariant holds by construction.
type Controller struct {
	gateway domain.AgentGateway

	mu         sync.Mutex
	messages   []domain.Message
	steps      []domain.ThinkingStep
	status     domain.AgentStatus
	processing bool
	resetTimer *time.Timer

	resetDelay time.Duration
	now        func() time.Time
	newID      func() string
}

type Option func(*Controller)

// WithResetDelay overrides the error -> ready auto-reset delay.
func WithResetDelay(d time.Duration) Option {
	return func(c *Controller) { c.resetDelay = d }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func NewController(gateway domain.AgentGateway, opts ...Option) *Controller {
	c := &Controller{
		gateway:    gateway,
		status:     domain.StatusReady,
		resetDelay: defaultResetDelay,
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SubmitText sends a plain-text query to the processing endpoint. Empty or
// whitespace-only content is a silent no-op, as is a submission while
// another request is in flight.
func (c *Controller) SubmitText(ctx context.Context, content string) {
	content = strings.TrimSpace(content)
	if content == "" {
		return
	}

	stepID, ok := c.begin(content, "", domain.StepReasoning, "Reasoning", "Analyzing your request")
	if !ok {
		return
	}

	c.markExecuting()
	res, err := c.gateway.Process(ctx, domain.ProcessRequest{Query: content})
	c.finish(ctx, stepID, res, err)
}

// SubmitFile sends a file plus an optional query to the processing
// endpoint. A nil file or an in-flight request makes it a no-op. The file's
// declared media type only picks the thinking-step category; the backend
// does its own routing by extension.
func (c *Controller) SubmitFile(ctx context.Context, file *FileUpload, query string) {
	if file == nil {
		return
	}

	query = strings.TrimSpace(query)
	if query == "" {
		query = defaultFileQuery
	}

	stepType := categorizeMediaType(file.MediaType)
	stepID, ok := c.begin(query, file.Name, stepType, stepTitle(stepType), "Processing "+file.Name)
	if !ok {
		return
	}

	c.markExecuting()
	res, err := c.gateway.Process(ctx, domain.ProcessRequest{
		Query:    query,
		FileName: file.Name,
		FileType: file.MediaType,
		Data:     file.Data,
	})
	c.finish(ctx, stepID, res, err)
}

// Clear empties the message and step sequences. It does not touch an
// in-flight request; the no-op guard on submissions is the only needed
// safety. Calling it twice is the same as calling it once.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.messages = nil
	c.steps = nil
}

// Snapshot returns a copy of the current state for rendering.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		Messages:   append([]domain.Message(nil), c.messages...),
		Steps:      append([]domain.ThinkingStep(nil), c.steps...),
		Status:     c.status,
		Processing: c.processing,
	}
}

// Status returns the current agent status.
func (c *Controller) Status() domain.AgentStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// begin applies the optimistic part of a submission: it takes the
// in-flight gate, appends the user message and the running step, and moves
// the status to thinking. Returns false when a request is already in
// flight.
func (c *Controller) begin(content, fileName string, stepType domain.StepType, title, description string) (domain.StepID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.processing {
		return "", false
	}

	// A submission during the error window cancels the pending auto-reset
	// so the two transitions cannot race.
	if c.resetTimer != nil {
		c.resetTimer.Stop()
		c.resetTimer = nil
	}

	c.processing = true
	c.status = domain.StatusThinking

	c.messages = append(c.messages, domain.Message{
		ID:        domain.MessageID(c.newID()),
		Role:      domain.RoleUser,
		Content:   content,
		CreatedAt: c.now(),
		FileName:  fileName,
	})

	stepID := domain.StepID(c.newID())
	c.steps = append(c.steps, domain.ThinkingStep{
		ID:          stepID,
		Type:        stepType,
		Title:       title,
		Description: description,
		Status:      domain.StepRunning,
	})

	return stepID, true
}

func (c *Controller) markExecuting() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = domain.StatusExecuting
}

// finish applies the outcome of a request and always clears the in-flight
// gate.
func (c *Controller) finish(ctx context.Context, stepID domain.StepID, res *domain.ProcessResult, err error) {
	log := observability.LoggerFromContext(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	defer func() { c.processing = false }()

	if err != nil || res == nil {
		log.Warnw("process request failed", "error", err)

		c.updateStep(stepID, domain.StepError, 0)
		c.messages = append(c.messages, domain.Message{
			ID:        domain.MessageID(c.newID()),
			Role:      domain.RoleAssistant,
			Content:   errorReply,
			CreatedAt: c.now(),
		})
		c.status = domain.StatusError
		c.resetTimer = time.AfterFunc(c.resetDelay, c.resetFromError)
		return
	}

	c.updateStep(stepID, domain.StepCompleted, displayStepDuration)
	c.steps = append(c.steps, SynthesizeSteps(res.IntermediateSteps, c.newID)...)

	reply := res.Response
	if reply == "" {
		reply = "Request processed."
	}
	c.messages = append(c.messages, domain.Message{
		ID:        domain.MessageID(c.newID()),
		Role:      domain.RoleAssistant,
		Content:   reply,
		CreatedAt: c.now(),
	})
	c.status = domain.StatusReady
}

func (c *Controller) resetFromError() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.resetTimer = nil
	if c.status == domain.StatusError {
		c.status = domain.StatusReady
	}
}

// updateStep mutates the status/duration of the step created at request
// start. Steps are otherwise append-only.
func (c *Controller) updateStep(id domain.StepID, status domain.StepStatus, d time.Duration) {
	for i := range c.steps {
		if c.steps[i].ID == id {
			c.steps[i].Status = status
			c.steps[i].Duration = d
			return
		}
	}
}

// categorizeMediaType maps a declared media type onto a step category for
// display purposes only.
func categorizeMediaType(mediaType string) domain.StepType {
	switch {
	case strings.HasPrefix(mediaType, "audio/"):
		return domain.StepAudio
	case mediaType == "application/pdf" || strings.HasPrefix(mediaType, "image/"):
		return domain.StepDocument
	default:
		return domain.StepGeneral
	}
}

func stepTitle(t domain.StepType) string {
	switch t {
	case domain.StepAudio:
		return "Audio Transcription"
	case domain.StepDocument:
		return "Document Analysis"
	default:
		return "File Processing"
	}
}
