package orchestrator

import (
	"context"
	"encoding/json"
	"math/big"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexlane/dappdesk/internal/activity"
	"github.com/hexlane/dappdesk/internal/config"
	"github.com/hexlane/dappdesk/internal/network"
	"github.com/hexlane/dappdesk/internal/provider"
)

const (
	testAccount = "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266"
	testOwner   = "0x70997970c51812dc3a010c7d01b50e0d17dc79c8"
	tokenAddr   = "0x5fbdb2315678afecb367f032d93f642f64180aa3"
	testHash    = "0x2222222222222222222222222222222222222222222222222222222222222222"
)

// walletFake scripts JSON-RPC responses, records calls and params, and can
// park a method on a gate to hold the orchestrator mid-action.
type walletFake struct {
	mu      sync.Mutex
	results map[string]interface{}
	errs    map[string]error
	calls   map[string]int
	params  map[string][]interface{}

	gate    chan struct{} // when set, gateMethod blocks until closed
	gateOn  string
	entered chan struct{} // closed when gateMethod is first reached
}

func newWalletFake() *walletFake {
	return &walletFake{
		results: map[string]interface{}{
			"eth_requestAccounts": []string{testAccount},
			"eth_chainId":         "0xaa36a7",
		},
		errs:   make(map[string]error),
		calls:  make(map[string]int),
		params: make(map[string][]interface{}),
	}
}

func (f *walletFake) Request(_ context.Context, method string, params ...interface{}) (json.RawMessage, error) {
	f.mu.Lock()
	f.calls[method]++
	f.params[method] = params
	gated := f.gate != nil && method == f.gateOn
	var entered chan struct{}
	if gated && f.calls[method] == 1 {
		entered = f.entered
	}
	f.mu.Unlock()

	if entered != nil {
		close(entered)
	}
	if gated {
		<-f.gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.errs[method]; ok {
		return nil, err
	}
	res, ok := f.results[method]
	if !ok {
		return nil, &provider.RPCError{Code: provider.CodeMethodNotFound, Message: "method not found"}
	}
	return json.Marshal(res)
}

func (f *walletFake) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *walletFake) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *walletFake) scriptMined(contractAddr string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results["eth_sendTransaction"] = testHash
	f.results["eth_getTransactionReceipt"] = map[string]string{
		"status":          "0x1",
		"blockNumber":     "0x10",
		"gasUsed":         "0x5208",
		"contractAddress": contractAddr,
	}
}

func newOrch(t *testing.T, fake provider.Provider) *Orchestrator {
	t.Helper()
	target, err := network.NewRegistry().GetByName("sepolia")
	require.NoError(t, err)
	endpoint := provider.NewEndpoint(fake)
	return New(endpoint, network.NewReconciler(endpoint, target), activity.NewLog())
}

func connected(t *testing.T, fake *walletFake) *Orchestrator {
	t.Helper()
	orch := newOrch(t, fake)
	require.NoError(t, orch.Connect(context.Background()))
	return orch
}

// ---------------------------------------------------------------------------
// connect
// ---------------------------------------------------------------------------

func TestConnectEstablishesSession(t *testing.T) {
	fake := newWalletFake()
	orch := newOrch(t, fake)

	require.NoError(t, orch.Connect(context.Background()))

	sess := orch.Session()
	require.NotNil(t, sess)
	assert.Equal(t, testAccount, sess.Account)
	assert.True(t, sess.OnTargetNetwork)

	entries := orch.Log().View()
	require.Len(t, entries, 1)
	assert.Equal(t, activity.KindSuccess, entries[0].Kind)
	assert.Contains(t, entries[0].Message, "Connected")
}

func TestConnectRejectedLogsExactlyOneError(t *testing.T) {
	fake := newWalletFake()
	fake.errs["eth_requestAccounts"] = &provider.RPCError{Code: provider.CodeUserRejected, Message: "denied"}
	orch := newOrch(t, fake)

	err := orch.Connect(context.Background())
	assert.ErrorIs(t, err, provider.ErrUserRejected)
	assert.Nil(t, orch.Session())

	entries := orch.Log().View()
	require.Len(t, entries, 1)
	assert.Equal(t, activity.KindError, entries[0].Kind)
	assert.Equal(t, "Request rejected in the wallet.", entries[0].Message)
}

func TestConnectWithoutProvider(t *testing.T) {
	orch := newOrch(t, nil)

	err := orch.Connect(context.Background())
	assert.ErrorIs(t, err, provider.ErrNoProvider)

	entries := orch.Log().View()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Message, "No wallet provider")
}

func TestConnectLeavesIdle(t *testing.T) {
	orch := connected(t, newWalletFake())
	assert.False(t, orch.Busy())
	assert.Equal(t, PhaseIdle, orch.Phase())
}

// ---------------------------------------------------------------------------
// busy gating
// ---------------------------------------------------------------------------

func TestTriggersWhileBusyAreNoOps(t *testing.T) {
	fake := newWalletFake()
	orch := connected(t, fake)

	fake.scriptMined(tokenAddr)
	fake.gate = make(chan struct{})
	fake.gateOn = "eth_sendTransaction"
	fake.entered = make(chan struct{})

	done := make(chan error, 1)
	go func() { done <- orch.Deploy(context.Background(), KindToken) }()

	select {
	case <-fake.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("deploy never reached the provider")
	}

	logBefore := orch.Log().Len()
	callsBefore := fake.totalCalls()

	assert.ErrorIs(t, orch.Swap(context.Background(), big.NewInt(1)), ErrBusy)
	assert.ErrorIs(t, orch.MintCollectible(context.Background()), ErrBusy)
	assert.ErrorIs(t, orch.Connect(context.Background()), ErrBusy)

	assert.Equal(t, logBefore, orch.Log().Len(), "busy no-ops must not log")
	assert.Equal(t, callsBefore, fake.totalCalls(), "busy no-ops must not issue RPC")

	close(fake.gate)
	require.NoError(t, <-done)
	assert.False(t, orch.Busy())
}

// ---------------------------------------------------------------------------
// deploy
// ---------------------------------------------------------------------------

func TestDeployRecordsConfirmedAddress(t *testing.T) {
	fake := newWalletFake()
	orch := connected(t, fake)
	fake.scriptMined(tokenAddr)

	require.NoError(t, orch.Deploy(context.Background(), KindToken))

	addr, ok := orch.DeployedAddr(KindToken)
	require.True(t, ok)
	assert.Equal(t, tokenAddr, addr)

	head := orch.Log().View()[0]
	assert.Equal(t, activity.KindSuccess, head.Kind)
	assert.Contains(t, head.Link, testHash)
}

func TestDeployRevertLeavesNoAddress(t *testing.T) {
	fake := newWalletFake()
	orch := connected(t, fake)
	fake.scriptMined(tokenAddr)
	fake.mu.Lock()
	fake.results["eth_getTransactionReceipt"] = map[string]string{"status": "0x0"}
	fake.mu.Unlock()

	err := orch.Deploy(context.Background(), KindToken)
	require.Error(t, err)

	_, ok := orch.DeployedAddr(KindToken)
	assert.False(t, ok)
	assert.Equal(t, activity.KindError, orch.Log().View()[0].Kind)
}

func TestDeployRequiresSession(t *testing.T) {
	fake := newWalletFake()
	orch := newOrch(t, fake)

	err := orch.Deploy(context.Background(), KindToken)

	var pre *PreflightError
	assert.ErrorAs(t, err, &pre)
	assert.Zero(t, fake.callCount("eth_sendTransaction"))
}

// ---------------------------------------------------------------------------
// mint
// ---------------------------------------------------------------------------

func TestMintCollectibleRequiresDeployment(t *testing.T) {
	fake := newWalletFake()
	orch := connected(t, fake)

	err := orch.MintCollectible(context.Background())

	var pre *PreflightError
	require.ErrorAs(t, err, &pre)
	assert.Zero(t, fake.callCount("eth_sendTransaction"))
	assert.Equal(t, activity.KindError, orch.Log().View()[0].Kind)
}

func TestMintTokenSendsGrantToOwner(t *testing.T) {
	fake := newWalletFake()
	orch := connected(t, fake)
	orch.RegisterDeployed(KindToken, tokenAddr)
	fake.scriptMined("")
	fake.mu.Lock()
	// owner() returns an account other than the caller.
	fake.results["eth_call"] = "0x000000000000000000000000" + testOwner[2:]
	fake.mu.Unlock()

	require.NoError(t, orch.MintToken(context.Background()))

	params := fake.params["eth_sendTransaction"]
	require.Len(t, params, 1)
	tx, ok := params[0].(provider.TxParams)
	require.True(t, ok)

	// mint(owner, 100 × 10^18)
	assert.True(t, strings.HasPrefix(tx.Data, "0x40c10f19"))
	assert.Contains(t, tx.Data, testOwner[2:])
	grant := new(big.Int).Mul(big.NewInt(config.MintTokenUnits),
		new(big.Int).Exp(big.NewInt(10), big.NewInt(config.TokenDecimals), nil))
	assert.Contains(t, tx.Data, grant.Text(16))

	head := orch.Log().View()[0]
	assert.Contains(t, head.Message, "100 tokens")
}

// ---------------------------------------------------------------------------
// transfer
// ---------------------------------------------------------------------------

func TestTransferNativeValidatesInput(t *testing.T) {
	fake := newWalletFake()
	orch := connected(t, fake)

	var pre *PreflightError
	assert.ErrorAs(t, orch.TransferNative(context.Background(), "", big.NewInt(1)), &pre)
	assert.ErrorAs(t, orch.TransferNative(context.Background(), testOwner, big.NewInt(0)), &pre)
	assert.ErrorAs(t, orch.TransferNative(context.Background(), testOwner, nil), &pre)
	assert.Zero(t, fake.callCount("eth_sendTransaction"))
}

func TestTransferNativeConfirms(t *testing.T) {
	fake := newWalletFake()
	orch := connected(t, fake)
	fake.scriptMined("")

	one := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	require.NoError(t, orch.TransferNative(context.Background(), testOwner, one))

	tx := fake.params["eth_sendTransaction"][0].(provider.TxParams)
	assert.Equal(t, testOwner, tx.To)
	assert.Equal(t, "0xde0b6b3a7640000", tx.Value)

	head := orch.Log().View()[0]
	assert.Equal(t, activity.KindSuccess, head.Kind)
	assert.Contains(t, head.Message, "Sent")
}

func TestTransferNativeResolvesENSRecipient(t *testing.T) {
	fake := newWalletFake()
	orch := connected(t, fake)
	fake.scriptMined("")
	fake.mu.Lock()
	// Both registry and resolver lookups return the same address word.
	fake.results["eth_call"] = "0x000000000000000000000000" + testOwner[2:]
	fake.mu.Unlock()

	require.NoError(t, orch.TransferNative(context.Background(), "friend.eth", big.NewInt(5)))

	tx := fake.params["eth_sendTransaction"][0].(provider.TxParams)
	assert.Equal(t, testOwner, tx.To)
}

// ---------------------------------------------------------------------------
// swap
// ---------------------------------------------------------------------------

func TestSwapRequiresTokenDeployment(t *testing.T) {
	fake := newWalletFake()
	orch := connected(t, fake)

	err := orch.Swap(context.Background(), big.NewInt(1))

	var pre *PreflightError
	require.ErrorAs(t, err, &pre)
	assert.Zero(t, fake.callCount("eth_sendTransaction"))

	head := orch.Log().View()[0]
	assert.Equal(t, activity.KindError, head.Kind)
	assert.Contains(t, head.Message, "Deploy the token contract")
}

func TestSwapRequiresPositiveAmount(t *testing.T) {
	fake := newWalletFake()
	orch := connected(t, fake)
	orch.RegisterDeployed(KindToken, tokenAddr)

	var pre *PreflightError
	assert.ErrorAs(t, orch.Swap(context.Background(), big.NewInt(0)), &pre)
	assert.ErrorAs(t, orch.Swap(context.Background(), nil), &pre)
}

func TestSwapSendsValueAndConfirms(t *testing.T) {
	fake := newWalletFake()
	orch := connected(t, fake)
	orch.RegisterDeployed(KindToken, tokenAddr)
	fake.scriptMined("")

	require.NoError(t, orch.Swap(context.Background(), big.NewInt(1000)))

	tx := fake.params["eth_sendTransaction"][0].(provider.TxParams)
	assert.Equal(t, tokenAddr, tx.To)
	assert.Equal(t, "0x3e8", tx.Value)
	assert.True(t, strings.HasPrefix(tx.Data, "0x8119c065"))

	// 1000 wei × 100 = 100000 raw units, rendered digit-exact.
	assert.Contains(t, orch.Log().View()[0].Message, "0.000000000000100000 tokens")
}

func TestSwapDisplayAmountExact(t *testing.T) {
	assert.Zero(t, SwapDisplayAmount(big.NewInt(3)).Cmp(big.NewInt(300)))

	huge, _ := new(big.Int).SetString("123456789123456789123456789", 10)
	want := new(big.Int).Mul(huge, big.NewInt(config.TokensPerNative))
	assert.Zero(t, SwapDisplayAmount(huge).Cmp(want))
}

// ---------------------------------------------------------------------------
// misc
// ---------------------------------------------------------------------------

func TestKindBuiltinID(t *testing.T) {
	assert.Equal(t, "collectible", KindCollectible.BuiltinID())
	assert.Equal(t, "swaptoken", KindToken.BuiltinID())
}

func TestLogOrderMostRecentFirst(t *testing.T) {
	fake := newWalletFake()
	orch := connected(t, fake)
	fake.scriptMined(tokenAddr)
	fake.mu.Lock()
	fake.results["eth_call"] = "0x000000000000000000000000" + testAccount[2:]
	fake.mu.Unlock()

	require.NoError(t, orch.Deploy(context.Background(), KindToken))
	require.NoError(t, orch.MintToken(context.Background()))

	entries := orch.Log().View()
	require.Len(t, entries, 3)
	assert.Contains(t, entries[0].Message, "Minted")
	assert.Contains(t, entries[1].Message, "Deployed")
	assert.Contains(t, entries[2].Message, "Connected")
}

func TestBalanceDegradesToNil(t *testing.T) {
	fake := newWalletFake()
	orch := connected(t, fake)
	fake.mu.Lock()
	fake.errs["eth_getBalance"] = &provider.RPCError{Code: -32000, Message: "unavailable"}
	fake.mu.Unlock()

	assert.Nil(t, orch.Balance(context.Background()))
}

func TestClassifyTruncatesLongMessages(t *testing.T) {
	long := strings.Repeat("x", config.MaxLogMessageLen*2)
	msg := classify(&PreflightError{Reason: long})

	assert.Equal(t, config.MaxLogMessageLen, len([]rune(msg)))
	assert.True(t, strings.HasSuffix(msg, "…"))
}
