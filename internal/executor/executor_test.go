package executor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/kalhintz/opinion-auto-trade/internal/config"
	"github.com/kalhintz/opinion-auto-trade/internal/events"
	"github.com/kalhintz/opinion-auto-trade/opinion/client"
	"github.com/kalhintz/opinion-auto-trade/opinion/signing"
	"github.com/kalhintz/opinion-auto-trade/opinion/types"
)

const (
	testKeyHex  = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

// venueStub records order submissions and answers them with a scripted
// per-request outcome.
type venueStub struct {
	mu       sync.Mutex
	requests []types.OrderRequest
	// fail[i] = true makes the i-th submission return a venue rejection.
	fail map[int]bool
}

func (v *venueStub) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v.mu.Lock()
		defer v.mu.Unlock()

		var req types.OrderRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		idx := len(v.requests)
		v.requests = append(v.requests, req)

		w.Header().Set("Content-Type", "application/json")
		if v.fail[idx] {
			w.Write([]byte(`{"errno":30002,"errmsg":"insufficient balance","result":null}`))
			return
		}
		w.Write([]byte(`{"errno":0,"errmsg":"","result":{"orderData":{"orderId":"ord-1"}}}`))
	}
}

func (v *venueStub) count() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.requests)
}

func (v *venueStub) request(i int) types.OrderRequest {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.requests[i]
}

func newTestExecutor(t *testing.T, stub *venueStub) *Executor {
	t.Helper()

	srv := httptest.NewServer(stub.handler())
	t.Cleanup(srv.Close)

	key, err := signing.PrivateKeyFromHex(testKeyHex)
	require.NoError(t, err)

	runtime := config.NewRuntime(&config.Config{
		BearerToken:       "tok",
		DeviceFingerprint: "fp",
		OrderAmount:       decimal.RequireFromString("5"),
	})
	venue := client.NewClient(srv.URL, runtime)

	e := New(venue, runtime, events.NewBus(), key, testAddress, testAddress)
	e.pacing = 0 // no pacing in tests
	return e
}

func fullTopic() *types.Topic {
	return &types.Topic{
		TopicID: 1,
		Title:   "Parent",
		ChildList: []types.Topic{
			{TopicID: 11, Title: "A", YesPos: "101", NoPos: "102", YesBuyPrice: "0.4", NoBuyPrice: "0.6"},
			{TopicID: 12, Title: "B", YesPos: "201", NoPos: "202", YesBuyPrice: "0.3", NoBuyPrice: "0.7"},
		},
	}
}

func TestExecute_TwoOrdersPerSubMarket(t *testing.T) {
	stub := &venueStub{}
	e := newTestExecutor(t, stub)

	result, err := e.Execute(context.Background(), fullTopic())
	require.NoError(t, err)

	require.Equal(t, 4, stub.count())
	require.Equal(t, &Result{SuccessCount: 4, FailCount: 0, TotalOrders: 4}, result)

	// YES then NO, sub-markets in listing order.
	require.Equal(t, "101", stub.request(0).TokenID)
	require.Equal(t, "102", stub.request(1).TokenID)
	require.Equal(t, "201", stub.request(2).TokenID)
	require.Equal(t, "202", stub.request(3).TokenID)
	require.Equal(t, int64(11), stub.request(0).TopicID)
}

func TestExecute_MissingPositionCountsAsFailure(t *testing.T) {
	stub := &venueStub{}
	e := newTestExecutor(t, stub)

	topic := fullTopic()
	topic.ChildList[0].YesPos = ""

	result, err := e.Execute(context.Background(), topic)
	require.NoError(t, err)

	// The YES leg of the first sub-market is skipped, everything else proceeds.
	require.Equal(t, 3, stub.count())
	require.Equal(t, &Result{SuccessCount: 3, FailCount: 1, TotalOrders: 4}, result)
}

func TestExecute_VenueRejectionDoesNotAbortBatch(t *testing.T) {
	stub := &venueStub{fail: map[int]bool{0: true}}
	e := newTestExecutor(t, stub)

	result, err := e.Execute(context.Background(), fullTopic())
	require.NoError(t, err)

	// All four orders were attempted despite the first being rejected.
	require.Equal(t, 4, stub.count())
	require.Equal(t, &Result{SuccessCount: 3, FailCount: 1, TotalOrders: 4}, result)
}

func TestExecute_SingleBinaryTopic(t *testing.T) {
	stub := &venueStub{}
	e := newTestExecutor(t, stub)

	// No children: the topic is its own sub-market.
	topic := &types.Topic{
		TopicID: 7, Title: "Solo",
		YesPos: "71", NoPos: "72",
		YesBuyPrice: "0.10", NoBuyPrice: "0.20",
	}

	result, err := e.Execute(context.Background(), topic)
	require.NoError(t, err)
	require.Equal(t, &Result{SuccessCount: 2, FailCount: 0, TotalOrders: 2}, result)

	yes := stub.request(0)
	require.Equal(t, "0.105", yes.Price)
	require.Equal(t, "5000000000000000000", yes.MakerAmount)
	require.Equal(t, "47619047619047619048", yes.TakerAmount)
	require.Equal(t, "0", yes.Side)
	require.Equal(t, "0.21", stub.request(1).Price)
}

func TestExecute_FallbackPriceWhenQuoteMissing(t *testing.T) {
	stub := &venueStub{}
	e := newTestExecutor(t, stub)

	topic := &types.Topic{
		TopicID: 7, Title: "Unquoted",
		YesPos: "71", NoPos: "72",
	}

	result, err := e.Execute(context.Background(), topic)
	require.NoError(t, err)
	require.Equal(t, 2, result.SuccessCount)
	require.Equal(t, "0.001", stub.request(0).Price)
}

func TestExecute_RejectedWhileRunning(t *testing.T) {
	stub := &venueStub{}
	e := newTestExecutor(t, stub)

	e.running.Store(true)
	_, err := e.Execute(context.Background(), fullTopic())
	require.ErrorIs(t, err, ErrBatchInProgress)
	require.Zero(t, stub.count())

	// Released flag makes the executor usable again.
	e.running.Store(false)
	_, err = e.Execute(context.Background(), fullTopic())
	require.NoError(t, err)
	require.False(t, e.Running())
}

func TestExecute_SignerMismatchAbortsBeforeAnyOrder(t *testing.T) {
	stub := &venueStub{}
	e := newTestExecutor(t, stub)
	e.signerAddress = "0x0000000000000000000000000000000000000001"

	_, err := e.Execute(context.Background(), fullTopic())
	require.ErrorIs(t, err, signing.ErrSignerMismatch)
	require.Zero(t, stub.count())
	require.False(t, e.Running())
}

func TestExecute_AmountUpdateTakesEffectMidBatch(t *testing.T) {
	stub := &venueStub{}
	e := newTestExecutor(t, stub)

	// Shrink the notional after the first order is recorded.
	var once sync.Once
	base := stub.handler()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		base(w, r)
		once.Do(func() { e.runtime.SetOrderAmount(decimal.RequireFromString("2")) })
	}))
	t.Cleanup(srv.Close)
	e.client = client.NewClient(srv.URL, e.runtime)

	topic := &types.Topic{
		TopicID: 7, Title: "Solo",
		YesPos: "71", NoPos: "72",
		YesBuyPrice: "0.5", NoBuyPrice: "0.5",
	}
	_, err := e.Execute(context.Background(), topic)
	require.NoError(t, err)

	require.Equal(t, "5000000000000000000", stub.request(0).MakerAmount)
	require.Equal(t, "2000000000000000000", stub.request(1).MakerAmount)
}
