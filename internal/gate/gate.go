package gate

import (
	"context"
	"errors"

	"github.com/voltclabs/voltfeed/internal/wallet"
)

// Stage identifies how far through the gate a visitor has progressed. Stages
// are strictly sequential; failing one blocks all later ones.
type Stage int

const (
	// StageAge is the age confirmation checkpoint
	StageAge Stage = iota
	// StageWallet is the wallet connection checkpoint
	StageWallet
	// StageBalance is the token balance checkpoint
	StageBalance
	// StageGranted means all checkpoints passed
	StageGranted
)

func (s Stage) String() string {
	switch s {
	case StageAge:
		return "age"
	case StageWallet:
		return "wallet"
	case StageBalance:
		return "balance"
	case StageGranted:
		return "granted"
	}
	return "unknown"
}

var (
	// ErrAgeNotConfirmed is returned when the age checkbox was not ticked
	ErrAgeNotConfirmed = errors.New("age not confirmed")
	// ErrNoProvider is returned when no wallet provider is injected
	ErrNoProvider = errors.New("no wallet provider available")
	// ErrRejected is returned when the user declines the connection request
	ErrRejected = errors.New("wallet connection rejected")
	// ErrUnknownChain is reported by a provider that does not recognize the
	// requested chain id.
	ErrUnknownChain = errors.New("unrecognized chain")
)

// FlagStore persists the age confirmation flag across sessions
type FlagStore interface {
	AgeConfirmed() bool
	SetAgeConfirmed() error
}

// ChainParams describes the chain definition handed to a provider that does
// not know the configured chain yet.
type ChainParams struct {
	ChainID        int64
	Name           string
	RPCURL         string
	CurrencyName   string
	CurrencySymbol string
	ExplorerURL    string
}

// Provider is the injected wallet provider surface
type Provider interface {
	// RequestAccounts prompts the user for account access
	RequestAccounts(ctx context.Context) ([]string, error)
	// Accounts returns already-authorized accounts without prompting
	Accounts(ctx context.Context) ([]string, error)
	SwitchChain(ctx context.Context, chainID int64) error
	AddChain(ctx context.Context, params ChainParams) error
}

// Verifier re-derives the wallet's token balance from the chain
type Verifier interface {
	Verify(ctx context.Context, address string) (*wallet.Status, error)
}

// Result reports the furthest stage reached and, once the wallet stage
// passed, the derived wallet status.
type Result struct {
	Stage   Stage
	Address string
	Status  *wallet.Status
}

// Granted reports whether the feed is reachable
func (r *Result) Granted() bool {
	return r.Stage == StageGranted
}

// Pipeline runs the sequential access gate: age confirmation, wallet
// connection, then balance threshold. No stage can be skipped.
type Pipeline struct {
	flags    FlagStore
	provider Provider
	verifier Verifier
	chain    ChainParams
}

// NewPipeline creates an access gate over the given collaborators. A nil
// provider models the no-wallet-installed case.
func NewPipeline(flags FlagStore, provider Provider, verifier Verifier, chain ChainParams) *Pipeline {
	return &Pipeline{
		flags:    flags,
		provider: provider,
		verifier: verifier,
		chain:    chain,
	}
}

// ConfirmAge records the explicit age confirmation. The flag is only set
// when the user actually agreed.
func (p *Pipeline) ConfirmAge(agreed bool) error {
	if !agreed {
		return ErrAgeNotConfirmed
	}
	return p.flags.SetAgeConfirmed()
}

// Connect runs the full gate, prompting for wallet access. On the connection
// attempt the provider is also switched to the configured chain, adding the
// chain definition when the provider reports it as unrecognized.
func (p *Pipeline) Connect(ctx context.Context) (*Result, error) {
	if !p.flags.AgeConfirmed() {
		return &Result{Stage: StageAge}, ErrAgeNotConfirmed
	}

	if p.provider == nil {
		return &Result{Stage: StageWallet}, ErrNoProvider
	}

	accounts, err := p.provider.RequestAccounts(ctx)
	if err != nil {
		return &Result{Stage: StageWallet}, err
	}
	if len(accounts) == 0 {
		return &Result{Stage: StageWallet}, ErrRejected
	}
	address := accounts[0]

	if err := p.ensureChain(ctx); err != nil {
		return &Result{Stage: StageWallet, Address: address}, err
	}

	return p.checkBalance(ctx, address)
}

// Resume re-runs the gate without prompting, used on a fresh page load when
// the provider still reports a previously connected account.
func (p *Pipeline) Resume(ctx context.Context) (*Result, error) {
	if !p.flags.AgeConfirmed() {
		return &Result{Stage: StageAge}, nil
	}

	if p.provider == nil {
		return &Result{Stage: StageWallet}, nil
	}

	accounts, err := p.provider.Accounts(ctx)
	if err != nil || len(accounts) == 0 {
		return &Result{Stage: StageWallet}, nil
	}

	return p.checkBalance(ctx, accounts[0])
}

func (p *Pipeline) ensureChain(ctx context.Context) error {
	err := p.provider.SwitchChain(ctx, p.chain.ChainID)
	if errors.Is(err, ErrUnknownChain) {
		return p.provider.AddChain(ctx, p.chain)
	}
	return err
}

func (p *Pipeline) checkBalance(ctx context.Context, address string) (*Result, error) {
	status, err := p.verifier.Verify(ctx, address)
	if err != nil {
		return &Result{Stage: StageBalance, Address: address}, err
	}

	stage := StageBalance
	if status.HasAccess {
		stage = StageGranted
	}
	return &Result{Stage: stage, Address: address, Status: status}, nil
}
