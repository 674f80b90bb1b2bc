package wallet

import (
	"context"
	"math/big"
	"sync"
)

// ChainClient is the chain query surface the verifier needs
type ChainClient interface {
	BalanceOf(ctx context.Context, address string) (*big.Int, error)
	Decimals(ctx context.Context) (uint8, error)
}

// Status is the derived wallet state for an address. Balance is always
// re-derived from the chain, never accepted from the client.
type Status struct {
	Address   string  `json:"address"`
	Balance   float64 `json:"balance"`
	HasAccess bool    `json:"hasAccess"`
}

// Verifier checks token balances against the required access threshold
type Verifier struct {
	client   ChainClient
	required float64

	mu       sync.Mutex
	decimals *uint8
}

// NewVerifier creates a verifier with the given balance threshold
func NewVerifier(client ChainClient, requiredBalance float64) *Verifier {
	return &Verifier{
		client:   client,
		required: requiredBalance,
	}
}

// Verify queries the chain for the address's token balance and compares it
// against the threshold.
func (v *Verifier) Verify(ctx context.Context, address string) (*Status, error) {
	decimals, err := v.tokenDecimals(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := v.client.BalanceOf(ctx, address)
	if err != nil {
		return nil, err
	}

	balance := Normalize(raw, decimals)
	return &Status{
		Address:   address,
		Balance:   balance,
		HasAccess: balance >= v.required,
	}, nil
}

// RequiredBalance returns the configured access threshold
func (v *Verifier) RequiredBalance() float64 {
	return v.required
}

// tokenDecimals fetches the token's decimal precision once and caches it;
// the contract's declared precision does not change.
func (v *Verifier) tokenDecimals(ctx context.Context) (uint8, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.decimals != nil {
		return *v.decimals, nil
	}
	decimals, err := v.client.Decimals(ctx)
	if err != nil {
		return 0, err
	}
	v.decimals = &decimals
	return decimals, nil
}
