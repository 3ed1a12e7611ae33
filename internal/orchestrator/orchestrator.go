package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"sync"

	"github.com/hexlane/dappdesk/internal/activity"
	"github.com/hexlane/dappdesk/internal/config"
	"github.com/hexlane/dappdesk/internal/contract"
	"github.com/hexlane/dappdesk/internal/ens"
	"github.com/hexlane/dappdesk/internal/network"
	"github.com/hexlane/dappdesk/internal/provider"
)

// Orchestrator drives every user action through the same lifecycle:
// preflight → reconcile → execute → confirm → log. At most one action is
// in flight per session; a second trigger while busy is a no-op.
type Orchestrator struct {
	endpoint   *provider.Endpoint
	reconciler *network.Reconciler
	log        *activity.Log

	mu       sync.Mutex
	busy     bool
	phase    Phase
	session  *Session
	deployed map[Kind]string
}

// New creates an orchestrator over an endpoint targeting one network.
func New(endpoint *provider.Endpoint, reconciler *network.Reconciler, log *activity.Log) *Orchestrator {
	return &Orchestrator{
		endpoint:   endpoint,
		reconciler: reconciler,
		log:        log,
		phase:      PhaseIdle,
		deployed:   make(map[Kind]string),
	}
}

// Log returns the activity log.
func (o *Orchestrator) Log() *activity.Log { return o.log }

// Busy reports whether an action is in flight.
func (o *Orchestrator) Busy() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.busy
}

// Phase returns the current lifecycle phase.
func (o *Orchestrator) Phase() Phase {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.phase
}

// Session returns the connected session, or nil before Connect.
func (o *Orchestrator) Session() *Session {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.session == nil {
		return nil
	}
	s := *o.session
	return &s
}

// RegisterDeployed seeds the slot for kind with a contract deployed in an
// earlier session. Within a session, slots are otherwise written only from
// confirmed deployment receipts.
func (o *Orchestrator) RegisterDeployed(kind Kind, addr string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.deployed[kind] = addr
}

// DeployedAddr returns the confirmed address for kind, if deployed.
func (o *Orchestrator) DeployedAddr(kind Kind) (string, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	addr, ok := o.deployed[kind]
	return addr, ok
}

// Target returns the network this orchestrator reconciles toward.
func (o *Orchestrator) Target() *network.Descriptor { return o.reconciler.Target() }

// Balance returns the connected account's native balance in wei. A read
// failure degrades to nil rather than failing the caller.
func (o *Orchestrator) Balance(ctx context.Context) *big.Int {
	sess := o.Session()
	if sess == nil {
		return nil
	}
	wei, err := o.endpoint.NativeBalance(ctx, sess.Account)
	if err != nil {
		return nil
	}
	return wei
}

// AccountName returns the connected account's primary ENS name, or ""
// when none is registered or the lookup fails.
func (o *Orchestrator) AccountName(ctx context.Context) string {
	sess := o.Session()
	if sess == nil {
		return ""
	}
	name, err := ens.NewResolver(o.endpoint).ReverseName(ctx, sess.Account)
	if err != nil {
		return ""
	}
	return name
}

// ── action lifecycle ─────────────────────────────────────────────────────

// tryBegin atomically claims the busy flag. A false return means another
// action holds it and the caller must bail without side effects.
func (o *Orchestrator) tryBegin() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.busy {
		return false
	}
	o.busy = true
	o.phase = PhasePreflight
	return true
}

func (o *Orchestrator) setPhase(p Phase) {
	o.mu.Lock()
	o.phase = p
	o.mu.Unlock()
}

func (o *Orchestrator) finish() {
	o.mu.Lock()
	o.busy = false
	o.phase = PhaseIdle
	o.mu.Unlock()
}

// fail classifies err, logs exactly one error entry, and returns err.
func (o *Orchestrator) fail(err error) error {
	o.log.Error(classify(err))
	return err
}

// Connect establishes the wallet session and reconciles the network. A
// rejected or failed connect logs exactly one error entry and leaves no
// session behind.
func (o *Orchestrator) Connect(ctx context.Context) error {
	if !o.tryBegin() {
		return ErrBusy
	}
	defer o.finish()

	account, err := o.endpoint.Connect(ctx)
	if err != nil {
		return o.fail(err)
	}

	o.setPhase(PhaseReconciling)
	if err := o.reconciler.Ensure(ctx); err != nil {
		return o.fail(err)
	}

	o.mu.Lock()
	o.session = &Session{Account: account, OnTargetNetwork: true}
	o.mu.Unlock()

	o.log.Success(fmt.Sprintf("Connected %s on %s", shortAddr(account), o.Target().ChainName), "")
	return nil
}

// Deploy deploys the built-in contract for kind and records its confirmed
// address.
func (o *Orchestrator) Deploy(ctx context.Context, kind Kind) error {
	if !o.tryBegin() {
		return ErrBusy
	}
	defer o.finish()

	sess, err := o.preflight()
	if err != nil {
		return o.fail(err)
	}
	builtin, ok := contract.GetBuiltin(kind.BuiltinID())
	if !ok {
		return o.fail(&PreflightError{Reason: fmt.Sprintf("unknown contract kind %q", kind)})
	}

	if err := o.reconcile(ctx); err != nil {
		return o.fail(err)
	}

	o.setPhase(PhaseExecuting)
	cs := contract.NewSession(o.endpoint, builtin.ABI, sess.Account)
	txHash, err := cs.SubmitDeploy(ctx, builtin.Bytecode)
	if err != nil {
		return o.fail(err)
	}

	o.setPhase(PhaseConfirming)
	res, err := contract.WaitMined(ctx, o.endpoint, txHash, config.TxDeployTimeout)
	if err != nil {
		return o.fail(&contract.DeployError{TxHash: txHash, Err: err})
	}
	if res.ContractAddress == "" {
		return o.fail(&contract.DeployError{TxHash: txHash, Err: fmt.Errorf("receipt carries no contract address")})
	}

	o.mu.Lock()
	o.deployed[kind] = res.ContractAddress
	o.mu.Unlock()

	o.log.Success(
		fmt.Sprintf("Deployed %s at %s", builtin.Name, shortAddr(res.ContractAddress)),
		o.Target().TxURL(txHash),
	)
	return nil
}

// MintCollectible mints one collectible unit to the connected account.
func (o *Orchestrator) MintCollectible(ctx context.Context) error {
	if !o.tryBegin() {
		return ErrBusy
	}
	defer o.finish()

	sess, err := o.preflight()
	if err != nil {
		return o.fail(err)
	}
	addr, ok := o.DeployedAddr(KindCollectible)
	if !ok {
		return o.fail(&PreflightError{Reason: "Deploy the collectible contract first."})
	}

	if err := o.reconcile(ctx); err != nil {
		return o.fail(err)
	}

	o.setPhase(PhaseExecuting)
	builtin, _ := contract.GetBuiltin(KindCollectible.BuiltinID())
	cs := contract.NewSession(o.endpoint, builtin.ABI, sess.Account)
	txHash, err := cs.SubmitWrite(ctx, addr, "mint", nil, sess.Account)
	if err != nil {
		return o.fail(err)
	}

	o.setPhase(PhaseConfirming)
	res, err := contract.WaitMined(ctx, o.endpoint, txHash, config.TxConfirmTimeout)
	if err != nil {
		return o.fail(&contract.CallError{Method: "mint", TxHash: txHash, Err: err})
	}

	o.log.Success(
		fmt.Sprintf("Minted 1 collectible to %s", shortAddr(sess.Account)),
		o.Target().TxURL(res.TxHash),
	)
	return nil
}

// MintToken mints the fixed grant (100 whole tokens) to the token
// contract's owner.
func (o *Orchestrator) MintToken(ctx context.Context) error {
	if !o.tryBegin() {
		return ErrBusy
	}
	defer o.finish()

	sess, err := o.preflight()
	if err != nil {
		return o.fail(err)
	}
	addr, ok := o.DeployedAddr(KindToken)
	if !ok {
		return o.fail(&PreflightError{Reason: "Deploy the token contract first."})
	}

	if err := o.reconcile(ctx); err != nil {
		return o.fail(err)
	}

	o.setPhase(PhaseExecuting)
	builtin, _ := contract.GetBuiltin(KindToken.BuiltinID())
	cs := contract.NewSession(o.endpoint, builtin.ABI, sess.Account)

	owner := sess.Account
	if vals, err := cs.Read(ctx, addr, "owner"); err == nil && len(vals) > 0 && vals[0] != "" {
		owner = vals[0]
	}

	amount := mintGrant()
	txHash, err := cs.SubmitWrite(ctx, addr, "mint", nil, owner, amount.String())
	if err != nil {
		return o.fail(err)
	}

	o.setPhase(PhaseConfirming)
	res, err := contract.WaitMined(ctx, o.endpoint, txHash, config.TxConfirmTimeout)
	if err != nil {
		return o.fail(&contract.CallError{Method: "mint", TxHash: txHash, Err: err})
	}

	o.log.Success(
		fmt.Sprintf("Minted %d tokens to owner %s", config.MintTokenUnits, shortAddr(owner)),
		o.Target().TxURL(res.TxHash),
	)
	return nil
}

// TransferNative sends amountWei of native currency to recipient.
func (o *Orchestrator) TransferNative(ctx context.Context, recipient string, amountWei *big.Int) error {
	if !o.tryBegin() {
		return ErrBusy
	}
	defer o.finish()

	sess, err := o.preflight()
	if err != nil {
		return o.fail(err)
	}
	if recipient == "" {
		return o.fail(&PreflightError{Reason: "Recipient address is required."})
	}
	if amountWei == nil || amountWei.Sign() <= 0 {
		return o.fail(&PreflightError{Reason: "Transfer amount must be greater than zero."})
	}
	if ens.IsName(recipient) {
		resolved, err := ens.NewResolver(o.endpoint).Resolve(ctx, recipient)
		if err != nil {
			return o.fail(&PreflightError{Reason: fmt.Sprintf("Could not resolve %q: %v", recipient, err)})
		}
		recipient = resolved
	}

	if err := o.reconcile(ctx); err != nil {
		return o.fail(err)
	}

	o.setPhase(PhaseExecuting)
	raw, err := o.endpoint.Request(ctx, "eth_sendTransaction", provider.TxParams{
		From:  sess.Account,
		To:    recipient,
		Value: "0x" + amountWei.Text(16),
	})
	if err != nil {
		return o.fail(err)
	}
	txHash, err := unquote(raw)
	if err != nil {
		return o.fail(err)
	}

	o.setPhase(PhaseConfirming)
	res, err := contract.WaitMined(ctx, o.endpoint, txHash, config.TxConfirmTimeout)
	if err != nil {
		return o.fail(&contract.CallError{Method: "transfer", TxHash: txHash, Err: err})
	}

	o.log.Success(
		fmt.Sprintf("Sent %s %s to %s",
			provider.WeiToDecimal(amountWei), o.Target().NativeCurrency.Symbol, shortAddr(recipient)),
		o.Target().TxURL(res.TxHash),
	)
	return nil
}

// Swap exchanges amountWei of native currency for tokens at the contract's
// fixed rate. The minted amount shown in the log is computed client-side
// from the configured rate; the contract remains authoritative.
func (o *Orchestrator) Swap(ctx context.Context, amountWei *big.Int) error {
	if !o.tryBegin() {
		return ErrBusy
	}
	defer o.finish()

	sess, err := o.preflight()
	if err != nil {
		return o.fail(err)
	}
	addr, ok := o.DeployedAddr(KindToken)
	if !ok {
		return o.fail(&PreflightError{Reason: "Deploy the token contract before swapping."})
	}
	if amountWei == nil || amountWei.Sign() <= 0 {
		return o.fail(&PreflightError{Reason: "Swap amount must be greater than zero."})
	}

	if err := o.reconcile(ctx); err != nil {
		return o.fail(err)
	}

	o.setPhase(PhaseExecuting)
	builtin, _ := contract.GetBuiltin(KindToken.BuiltinID())
	cs := contract.NewSession(o.endpoint, builtin.ABI, sess.Account)
	txHash, err := cs.SubmitWrite(ctx, addr, "swap", amountWei)
	if err != nil {
		return o.fail(err)
	}

	o.setPhase(PhaseConfirming)
	res, err := contract.WaitMined(ctx, o.endpoint, txHash, config.TxConfirmTimeout)
	if err != nil {
		return o.fail(&contract.CallError{Method: "swap", TxHash: txHash, Err: err})
	}

	minted := SwapDisplayAmount(amountWei)
	o.log.Success(
		fmt.Sprintf("Swapped %s %s for %s tokens",
			provider.WeiToDecimal(amountWei), o.Target().NativeCurrency.Symbol,
			provider.FormatUnits(minted, config.TokenDecimals)),
		o.Target().TxURL(res.TxHash),
	)
	return nil
}

// SwapDisplayAmount is the client-side estimate of tokens minted for a
// native amount: amountWei × the fixed rate, exact integer arithmetic.
func SwapDisplayAmount(amountWei *big.Int) *big.Int {
	return new(big.Int).Mul(amountWei, big.NewInt(config.TokensPerNative))
}

// preflight checks the shared precondition: a session on the target
// network must exist. Issues no RPC.
func (o *Orchestrator) preflight() (*Session, error) {
	sess := o.Session()
	if sess == nil {
		return nil, &PreflightError{Reason: "Connect a wallet first."}
	}
	return sess, nil
}

// reconcile re-verifies the network gate before executing. On failure the
// session is marked off-target so later preflights reflect reality.
func (o *Orchestrator) reconcile(ctx context.Context) error {
	o.setPhase(PhaseReconciling)
	if err := o.reconciler.Ensure(ctx); err != nil {
		o.mu.Lock()
		if o.session != nil {
			o.session.OnTargetNetwork = false
		}
		o.mu.Unlock()
		return err
	}
	o.mu.Lock()
	if o.session != nil {
		o.session.OnTargetNetwork = true
	}
	o.mu.Unlock()
	return nil
}

func mintGrant() *big.Int {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(config.TokenDecimals), nil)
	return new(big.Int).Mul(big.NewInt(config.MintTokenUnits), scale)
}

// shortAddr truncates an address for display: 0x1234…abcd.
func shortAddr(addr string) string {
	if len(addr) <= 12 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}

func unquote(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("parsing tx hash: %w", err)
	}
	return s, nil
}
