package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mark3labs/openapi2locust/internal/doc"
	"github.com/mark3labs/openapi2locust/internal/emitter/locustemitter"
	genspec "github.com/mark3labs/openapi2locust/internal/spec"
)

// GenerateRequest is the POST /generate payload. The document travels
// as raw JSON so its key order survives into extraction.
type GenerateRequest struct {
	OpenAPI       json.RawMessage `json:"openapi" binding:"required"`
	Host          string          `json:"host" binding:"required"`
	ClientType    string          `json:"client_type"`
	UserClassName string          `json:"user_class_name"`
	TaskWeight    int             `json:"task_weight" binding:"omitempty,min=1"`
}

// GenerateResponse carries the synthesized locustfile source.
type GenerateResponse struct {
	Locustfile string `json:"locustfile"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Message: fmt.Sprintf("invalid request: %v", err)})
		return
	}

	document, err := doc.Parse(req.OpenAPI)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Message: fmt.Sprintf("invalid openapi document: %v", err)})
		return
	}
	// The one precondition the core assumes: everything below this
	// check is defaulting, never rejection.
	if _, ok := document.Map("paths"); !ok {
		c.JSON(http.StatusBadRequest, errorResponse{Message: "the OpenAPI document must contain a paths object"})
		return
	}

	opts := locustemitter.Options{
		Host:       req.Host,
		Client:     locustemitter.Client(req.ClientType),
		ClassName:  req.UserClassName,
		TaskWeight: req.TaskWeight,
	}
	if req.ClientType == "" {
		opts.Client = locustemitter.Client(s.cfg.Generate.ClientType)
	}
	if req.UserClassName == "" {
		opts.ClassName = s.cfg.Generate.UserClassName
	}
	if req.TaskWeight == 0 {
		opts.TaskWeight = s.cfg.Generate.TaskWeight
	}

	ops := genspec.Extract(document)
	c.JSON(http.StatusOK, GenerateResponse{
		Locustfile: locustemitter.Emit(ops, opts),
	})
}
