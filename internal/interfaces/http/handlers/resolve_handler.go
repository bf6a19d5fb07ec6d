// Package handlers implements the HTTP request handlers.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voracio/sheetsense/internal/domain/attribute"
	"github.com/voracio/sheetsense/internal/domain/document"
	"github.com/voracio/sheetsense/pkg/errors"
)

// Resolver is the engine surface the handler depends on.
type Resolver interface {
	ResolveAll(ctx context.Context, doc *document.Document, attrs []string) ([]attribute.MatchResult, error)
}

type resolveRequest struct {
	Document   json.RawMessage `json:"document" binding:"required"`
	Attributes []string        `json:"attributes" binding:"required"`
}

type resolveResponse struct {
	Results []attribute.MatchResult `json:"results"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	c.JSON(code.HTTPStatus(), errorResponse{
		Code:    string(code),
		Message: err.Error(),
	})
}

// ResolveHandler serves attribute resolution over HTTP.
type ResolveHandler struct {
	resolver Resolver
}

func NewResolveHandler(resolver Resolver) *ResolveHandler {
	return &ResolveHandler{resolver: resolver}
}

// Resolve handles POST /api/v1/resolve. The body carries the document
// payload and the attribute names to resolve against it.
func (h *ResolveHandler) Resolve(c *gin.Context) {
	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.Wrap(err, errors.CodeInvalidParam, "invalid request body"))
		return
	}

	doc, err := document.FromJSON(bytes.NewReader(req.Document))
	if err != nil {
		writeError(c, err)
		return
	}

	results, err := h.resolver.ResolveAll(c.Request.Context(), doc, req.Attributes)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resolveResponse{Results: results})
}

// Health handles GET /healthz.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
