package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kalhintz/opinion-auto-trade/internal/events"
	"github.com/kalhintz/opinion-auto-trade/internal/executor"
	"github.com/kalhintz/opinion-auto-trade/opinion/client"
	"github.com/kalhintz/opinion-auto-trade/opinion/types"
)

// handleListTopics proxies the venue topic listing. An expired credential is
// surfaced distinctly: it needs operator action, not a retry.
func (s *Server) handleListTopics(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 20)

	s.bus.Publish(events.SeverityInfo, "🔎 loading topics (page="+strconv.Itoa(page)+", limit="+strconv.Itoa(limit)+")")

	topics, err := s.venue.ListTopics(c.Request.Context(), page, limit)
	if err != nil {
		if errors.Is(err, client.ErrCredentialExpired) {
			s.bus.Publish(events.SeverityError, "❌ 401 Unauthorized - bearer token expired")
			c.JSON(http.StatusOK, gin.H{"success": false, "error": "credential expired"})
			return
		}
		s.bus.Publish(events.SeverityError, "❌ topic listing failed: "+err.Error())
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
		return
	}

	s.bus.Publish(events.SeveritySuccess, "✅ loaded "+strconv.Itoa(len(topics))+" topics")
	c.JSON(http.StatusOK, gin.H{"success": true, "topics": topics})
}

// handleExecute runs one batch over the posted topic. While a batch is
// running, further requests are rejected with 409; they are never queued.
func (s *Server) handleExecute(c *gin.Context) {
	var topic types.Topic
	if err := c.ShouldBindJSON(&topic); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid topic payload: " + err.Error()})
		return
	}

	// The batch must run to completion once started; an operator client
	// disconnect must not cancel in-flight venue calls.
	ctx := context.WithoutCancel(c.Request.Context())

	batchID := uuid.NewString()
	result, err := s.exec.Execute(ctx, &topic)
	if err != nil {
		if errors.Is(err, executor.ErrBatchInProgress) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"batchId":      batchID,
		"successCount": result.SuccessCount,
		"failCount":    result.FailCount,
		"totalOrders":  result.TotalOrders,
	})
}

// handleGetConfig exposes the non-secret configuration fields. The amount is
// rendered as a decimal string so the view never loses precision to float64.
func (s *Server) handleGetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"signerAddress": s.cfg.SignerAddress,
		"makerAddress":  s.cfg.MakerAddress,
		"orderAmount":   s.runtime.OrderAmount().String(),
	})
}

type updateConfigRequest struct {
	OrderAmount *float64 `json:"orderAmount"`
	BearerToken *string  `json:"bearerToken"`
}

// handleUpdateConfig applies a partial update of the mutable config subset.
func (s *Server) handleUpdateConfig(c *gin.Context) {
	var req updateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if req.OrderAmount != nil {
		amount := decimal.NewFromFloat(*req.OrderAmount)
		if amount.Sign() <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "orderAmount must be greater than 0"})
			return
		}
		s.runtime.SetOrderAmount(amount)
	}
	if req.BearerToken != nil && *req.BearerToken != "" {
		s.runtime.SetBearerToken(*req.BearerToken)
	}

	s.bus.Publish(events.SeveritySuccess, "✅ configuration updated")
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func queryInt(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
