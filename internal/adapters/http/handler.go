package httpadapter

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sentinai/sentinai/internal/app/agentflow"
	"github.com/sentinai/sentinai/internal/app/chat"
	"github.com/sentinai/sentinai/internal/domain"
)

const agentID = "sentinai-orchestrator"

// Extension sets that route an upload to a processor. Anything else is
// handled as a plain text query.
var (
	audioExts    = map[string]bool{".mp3": true, ".wav": true, ".m4a": true, ".flac": true, ".ogg": true, ".webm": true}
	documentExts = map[string]bool{".pdf": true, ".jpg": true, ".jpeg": true, ".png": true, ".bmp": true, ".tiff": true}
)

type Server struct {
	chat    *chat.Service
	orch    *agentflow.Orchestrator
	dataDir string
}

// NewServer builds the gin router with the full API surface.
func NewServer(chatSvc *chat.Service, orch *agentflow.Orchestrator, dataDir string) *gin.Engine {
	s := &Server{
		chat:    chatSvc,
		orch:    orch,
		dataDir: dataDir,
	}

	router := gin.New()
	router.Use(gin.Recovery(), withRequestID(), withLogging())

	// CORS for the local frontend.
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}))

	router.GET("/", s.handleRoot)

	api := router.Group("/api")
	api.GET("/health", s.handleHealth)

	agents := api.Group("/agents")
	agents.POST("/chat", s.handleChat)
	agents.GET("/status", s.handleStatus)
	agents.POST("/process", s.handleProcess)
	agents.POST("/initialize", s.handleInitialize)

	return router
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type chatRequest struct {
	Message string `json:"message"`
	Context string `json:"context,omitempty"`
}

type chatResponse struct {
	Response string `json:"response"`
	AgentID  string `json:"agent_id"`
	Status   string `json:"status"`
}

type processResponse struct {
	Status            string `json:"status"`
	Response          string `json:"response"`
	FileProcessed     string `json:"file_processed,omitempty"`
	IntermediateSteps string `json:"intermediate_steps,omitempty"`
}

// ─────────────────────────────────────────────
// Handlers
// ─────────────────────────────────────────────

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "SentinAI API",
		"version": "1.0.0",
		"status":  "running",
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "SentinAI API is running",
	})
}

func (s *Server) handleStatus(c *gin.Context) {
	status := "not_initialized"
	if s.orch.Initialized() {
		status = "ready"
	}

	var toolNames []string
	for _, t := range s.orch.Tools() {
		toolNames = append(toolNames, t.Name())
	}

	c.JSON(http.StatusOK, gin.H{
		"agent_id": agentID,
		"status":   status,
		"capabilities": []string{
			"audio-transcription",
			"document-analysis",
			"ticket-classification",
			"autonomous-reasoning",
		},
		"tools": toolNames,
	})
}

func (s *Server) handleInitialize(c *gin.Context) {
	if err := s.orch.Initialize(c.Request.Context()); err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Orchestrator initialized and ready"})
}

func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		badRequest(c, "message is required")
		return
	}

	out, err := s.chat.Chat(c.Request.Context(), chat.DefaultConversationID, req.Message)
	if err != nil {
		// Errors are reported in-band so the client can render them.
		c.JSON(http.StatusOK, chatResponse{
			Response: err.Error(),
			AgentID:  agentID,
			Status:   "error",
		})
		return
	}

	c.JSON(http.StatusOK, chatResponse{
		Response: out.Response,
		AgentID:  agentID,
		Status:   "success",
	})
}

// handleProcess accepts multipart input: a `query` text field and/or a
// `file` attachment. Uploads are spooled to the data dir and removed after
// processing.
func (s *Server) handleProcess(c *gin.Context) {
	query := strings.TrimSpace(c.PostForm("query"))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		fileHeader = nil
	}

	if query == "" && fileHeader == nil {
		badRequest(c, "query is required when no file is attached")
		return
	}

	in := chat.ProcessInput{
		ConversationID: domain.ConversationID(c.PostForm("conversation_id")),
		Kind:           agentflow.KindText,
		Query:          query,
	}

	fileProcessed := ""
	if fileHeader != nil {
		fileProcessed = fileHeader.Filename
		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))

		if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
			c.JSON(http.StatusOK, processResponse{Status: "error", Response: "could not spool upload", FileProcessed: fileProcessed})
			return
		}
		spooled := filepath.Join(s.dataDir, uuid.NewString()+ext)
		if err := c.SaveUploadedFile(fileHeader, spooled); err != nil {
			c.JSON(http.StatusOK, processResponse{Status: "error", Response: "could not spool upload", FileProcessed: fileProcessed})
			return
		}
		defer os.Remove(spooled)

		in.FilePath = spooled
		in.FileName = fileHeader.Filename
		switch {
		case audioExts[ext]:
			in.Kind = agentflow.KindAudio
		case documentExts[ext]:
			in.Kind = agentflow.KindDocument
		}
		if in.Query == "" {
			in.Query = "Analyze this file"
		}
	}

	out, err := s.chat.Process(c.Request.Context(), in)
	if err != nil {
		c.JSON(http.StatusOK, processResponse{
			Status:        "error",
			Response:      err.Error(),
			FileProcessed: fileProcessed,
		})
		return
	}

	c.JSON(http.StatusOK, processResponse{
		Status:            "success",
		Response:          out.Response,
		FileProcessed:     fileProcessed,
		IntermediateSteps: out.IntermediateSteps,
	})
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
