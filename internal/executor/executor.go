package executor

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kalhintz/opinion-auto-trade/internal/config"
	"github.com/kalhintz/opinion-auto-trade/internal/events"
	"github.com/kalhintz/opinion-auto-trade/opinion/client"
	"github.com/kalhintz/opinion-auto-trade/opinion/signing"
	"github.com/kalhintz/opinion-auto-trade/opinion/types"
	"github.com/kalhintz/opinion-auto-trade/pkg/logger"
)

// ErrBatchInProgress means a batch was requested while another is running.
// Batches are never queued; the caller retries once the executor is idle.
var ErrBatchInProgress = errors.New("a batch is already running")

// defaultPacing is the fixed delay after every order attempt. It bounds the
// request rate toward the venue and is not adaptive.
const defaultPacing = 500 * time.Millisecond

// fallbackPrice is used when a sub-market carries no quote for a side.
const fallbackPrice = "0.001"

// Result is the aggregate outcome of one batch.
type Result struct {
	SuccessCount int `json:"successCount"`
	FailCount    int `json:"failCount"`
	TotalOrders  int `json:"totalOrders"`
}

// Executor runs one batch at a time: for every sub-market of a topic it buys
// both outcome sides, isolating failures per order. It is an explicit
// Idle/Running state machine; Execute while Running is rejected outright.
type Executor struct {
	client        *client.Client
	runtime       *config.Runtime
	bus           *events.Bus
	privateKey    *ecdsa.PrivateKey
	signerAddress string
	makerAddress  string
	pacing        time.Duration

	running atomic.Bool
}

// New creates an executor bound to one signing identity.
func New(c *client.Client, runtime *config.Runtime, bus *events.Bus, privateKey *ecdsa.PrivateKey, signerAddress, makerAddress string) *Executor {
	return &Executor{
		client:        c,
		runtime:       runtime,
		bus:           bus,
		privateKey:    privateKey,
		signerAddress: signerAddress,
		makerAddress:  makerAddress,
		pacing:        defaultPacing,
	}
}

// Running reports whether a batch is currently executing.
func (e *Executor) Running() bool {
	return e.running.Load()
}

// Execute places BUY orders for both outcome sides of every sub-market of the
// topic. A failure on any single order never aborts the batch; the aggregate
// counters are always returned, even if every order failed.
func (e *Executor) Execute(ctx context.Context, topic *types.Topic) (*Result, error) {
	if !e.running.CompareAndSwap(false, true) {
		return nil, ErrBatchInProgress
	}
	defer e.running.Store(false)

	// Fail fast before any order is attempted: a wrong key would have every
	// order rejected on-chain anyway.
	if err := signing.VerifySigner(e.privateKey, e.signerAddress); err != nil {
		return nil, err
	}

	children := topic.SubMarkets()
	result := &Result{TotalOrders: len(children) * 2}
	rule := strings.Repeat("=", 60)

	e.emit(events.SeverityInfo, "%s", rule)
	e.emit(events.SeverityInfo, "💰 batch start: %s (topicId=%d)", topic.Title, topic.TopicID)
	e.emit(events.SeverityInfo, "   %d sub-markets × 2 (YES/NO) = %d orders", len(children), result.TotalOrders)
	e.emit(events.SeverityInfo, "   order amount: %s USDT", e.runtime.OrderAmount())
	e.emit(events.SeverityInfo, "%s", rule)

	for i, child := range children {
		e.emit(events.SeverityInfo, "[%d/%d] %s (topicId=%d)", i+1, len(children), child.Title, child.TopicID)

		e.trySide(ctx, result, &child, "YES", child.YesPos, child.YesBuyPrice)
		e.trySide(ctx, result, &child, "NO", child.NoPos, child.NoBuyPrice)
	}

	e.emit(events.SeverityInfo, "%s", rule)
	e.emit(events.SeverityInfo, "🏁 batch done: %d/%d succeeded, %d/%d failed",
		result.SuccessCount, result.TotalOrders, result.FailCount, result.TotalOrders)
	e.emit(events.SeverityInfo, "%s", rule)

	return result, nil
}

// trySide attempts one (sub-market, side) order. A missing position id is a
// skipped submission counted as a failure, so aggregate counts reflect true
// coverage. The pacing delay follows every actual attempt.
func (e *Executor) trySide(ctx context.Context, result *Result, child *types.Topic, label, tokenID, rawPrice string) {
	if tokenID == "" {
		e.emit(events.SeverityWarning, "  ⚠️ %s: position id missing, skipped", label)
		result.FailCount++
		return
	}
	if rawPrice == "" {
		rawPrice = fallbackPrice
	}

	// The notional amount is re-read per order so operator updates take
	// effect from the next order onward.
	amount := e.runtime.OrderAmount()
	e.emit(events.SeverityInfo, "  → %s order (%s USDT, price=%s)...", label, amount, rawPrice)

	orderID, err := e.placeOne(ctx, child.TopicID, tokenID, amount, rawPrice)
	if err != nil {
		e.emit(events.SeverityError, "     ❌ %s failed: %s", label, errorMessage(err))
		result.FailCount++
	} else {
		e.emit(events.SeveritySuccess, "     ✅ %s placed (orderId=%s)", label, orderID)
		result.SuccessCount++
	}

	time.Sleep(e.pacing)
}

// placeOne runs the full pipeline for a single BUY order.
func (e *Executor) placeOne(ctx context.Context, topicID int64, tokenID string, amount decimal.Decimal, rawPrice string) (string, error) {
	req, err := client.BuildSignedOrderRequest(
		e.privateKey,
		e.makerAddress,
		e.signerAddress,
		topicID,
		tokenID,
		types.SideBuy,
		amount,
		rawPrice,
	)
	if err != nil {
		return "", err
	}
	return e.client.PlaceOrder(ctx, req)
}

// errorMessage renders a classified per-order error for the log stream.
func errorMessage(err error) string {
	var venueErr *client.VenueError
	if errors.As(err, &venueErr) {
		return venueErr.Errmsg
	}
	var httpErr *client.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Error()
	}
	return err.Error()
}

// emit writes one line to both the logger and the operator event stream.
func (e *Executor) emit(severity events.Severity, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	switch severity {
	case events.SeverityWarning:
		logger.Warnf("%s", msg)
	case events.SeverityError:
		logger.Errorf("%s", msg)
	default:
		logger.Infof("%s", msg)
	}
	e.bus.Publish(severity, msg)
}
