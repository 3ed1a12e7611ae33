package orchestrator

// Kind names a built-in contract slot. Each kind holds at most one
// deployed address per session.
type Kind string

const (
	KindCollectible Kind = "collectible"
	KindToken       Kind = "token"
)

// BuiltinID maps a kind to its embedded contract.
func (k Kind) BuiltinID() string {
	if k == KindToken {
		return "swaptoken"
	}
	return string(k)
}

// Phase is the lifecycle position of the action currently in flight.
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhasePreflight   Phase = "preflight"
	PhaseReconciling Phase = "reconciling"
	PhaseExecuting   Phase = "executing"
	PhaseConfirming  Phase = "confirming"
)

// Session is the connected-wallet state. It is created by a successful
// Connect and holds no secrets; the provider owns the keys.
type Session struct {
	Account         string
	OnTargetNetwork bool
}
