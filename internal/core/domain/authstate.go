package domain

// Phase is the lifecycle state of session restoration.
type Phase string

const (
	PhaseUninitialized Phase = "uninitialized"
	PhaseInitializing  Phase = "initializing"
	PhaseReady         Phase = "ready"
	PhaseError         Phase = "error"
)

// AuthState is the single authoritative record of who is signed in right
// now. The Session Manager is its only writer; every other component
// receives value-copied snapshots.
//
// Invariants:
//   - Identity is non-nil only when Phase is PhaseReady.
//   - Err is non-empty only when Phase is PhaseError, and PhaseError is
//     reserved for infrastructure failure. Bad credentials stay in
//     PhaseReady with no identity; the error kind travels on the SignIn
//     return path.
//   - Within one restoration attempt, Phase moves monotonically:
//     Uninitialized → Initializing → (Ready | Error). Sign-out returns to
//     Ready-with-no-identity, never back to Uninitialized.
type AuthState struct {
	Identity *Identity `json:"identity,omitempty"`
	Phase    Phase     `json:"phase"`
	Err      string    `json:"error,omitempty"`
}

// Authenticated reports whether a signed-in identity is present.
func (s AuthState) Authenticated() bool {
	return s.Phase == PhaseReady && s.Identity != nil
}
