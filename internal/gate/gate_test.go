package gate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voltclabs/voltfeed/internal/wallet"
)

type fakeProvider struct {
	accounts       []string
	requestErr     error
	switchErr      error
	addErr         error
	requested      bool
	switchedTo     int64
	addedChain     *ChainParams
}

func (p *fakeProvider) RequestAccounts(ctx context.Context) ([]string, error) {
	p.requested = true
	return p.accounts, p.requestErr
}

func (p *fakeProvider) Accounts(ctx context.Context) ([]string, error) {
	return p.accounts, nil
}

func (p *fakeProvider) SwitchChain(ctx context.Context, chainID int64) error {
	p.switchedTo = chainID
	return p.switchErr
}

func (p *fakeProvider) AddChain(ctx context.Context, params ChainParams) error {
	p.addedChain = &params
	return p.addErr
}

type fakeVerifier struct {
	status *wallet.Status
	err    error
	calls  int
}

func (v *fakeVerifier) Verify(ctx context.Context, address string) (*wallet.Status, error) {
	v.calls++
	if v.err != nil {
		return nil, v.err
	}
	status := *v.status
	status.Address = address
	return &status, nil
}

const testAddress = "0x1111111111111111111111111111111111111111"

var testChain = ChainParams{ChainID: 8453, Name: "Base", RPCURL: "https://mainnet.base.org"}

func grantedVerifier() *fakeVerifier {
	return &fakeVerifier{status: &wallet.Status{Balance: 20000, HasAccess: true}}
}

func TestConnectRequiresAgeFirst(t *testing.T) {
	provider := &fakeProvider{accounts: []string{testAddress}}
	verifier := grantedVerifier()
	p := NewPipeline(NewMemoryFlagStore(), provider, verifier, testChain)

	result, err := p.Connect(context.Background())
	assert.ErrorIs(t, err, ErrAgeNotConfirmed)
	assert.Equal(t, StageAge, result.Stage)
	assert.False(t, provider.requested, "wallet must not be prompted before age confirmation")
	assert.Zero(t, verifier.calls, "balance must not be checked before age confirmation")
}

func TestConfirmAgeRequiresAgreement(t *testing.T) {
	flags := NewMemoryFlagStore()
	p := NewPipeline(flags, nil, grantedVerifier(), testChain)

	assert.ErrorIs(t, p.ConfirmAge(false), ErrAgeNotConfirmed)
	assert.False(t, flags.AgeConfirmed())

	require.NoError(t, p.ConfirmAge(true))
	assert.True(t, flags.AgeConfirmed())
}

func TestConnectWithoutProvider(t *testing.T) {
	flags := NewMemoryFlagStore()
	require.NoError(t, flags.SetAgeConfirmed())

	p := NewPipeline(flags, nil, grantedVerifier(), testChain)
	result, err := p.Connect(context.Background())
	assert.ErrorIs(t, err, ErrNoProvider)
	assert.Equal(t, StageWallet, result.Stage)
}

func TestConnectRejected(t *testing.T) {
	flags := NewMemoryFlagStore()
	require.NoError(t, flags.SetAgeConfirmed())

	verifier := grantedVerifier()
	p := NewPipeline(flags, &fakeProvider{requestErr: ErrRejected}, verifier, testChain)
	result, err := p.Connect(context.Background())
	assert.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, StageWallet, result.Stage)
	assert.Zero(t, verifier.calls, "balance must not be checked after a rejected connection")
}

func TestConnectGranted(t *testing.T) {
	flags := NewMemoryFlagStore()
	require.NoError(t, flags.SetAgeConfirmed())

	provider := &fakeProvider{accounts: []string{testAddress}}
	p := NewPipeline(flags, provider, grantedVerifier(), testChain)

	result, err := p.Connect(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Granted())
	assert.Equal(t, testAddress, result.Address)
	assert.Equal(t, testChain.ChainID, provider.switchedTo)
	require.NotNil(t, result.Status)
	assert.Equal(t, 20000.0, result.Status.Balance)
}

func TestConnectAddsUnknownChain(t *testing.T) {
	flags := NewMemoryFlagStore()
	require.NoError(t, flags.SetAgeConfirmed())

	provider := &fakeProvider{
		accounts:  []string{testAddress},
		switchErr: ErrUnknownChain,
	}
	p := NewPipeline(flags, provider, grantedVerifier(), testChain)

	result, err := p.Connect(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Granted())
	require.NotNil(t, provider.addedChain)
	assert.Equal(t, testChain.ChainID, provider.addedChain.ChainID)
}

func TestConnectBelowThreshold(t *testing.T) {
	flags := NewMemoryFlagStore()
	require.NoError(t, flags.SetAgeConfirmed())

	verifier := &fakeVerifier{status: &wallet.Status{Balance: 5, HasAccess: false}}
	p := NewPipeline(flags, &fakeProvider{accounts: []string{testAddress}}, verifier, testChain)

	result, err := p.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StageBalance, result.Stage)
	assert.False(t, result.Granted())
}

func TestConnectBalanceError(t *testing.T) {
	flags := NewMemoryFlagStore()
	require.NoError(t, flags.SetAgeConfirmed())

	verifier := &fakeVerifier{err: errors.New("rpc down")}
	p := NewPipeline(flags, &fakeProvider{accounts: []string{testAddress}}, verifier, testChain)

	result, err := p.Connect(context.Background())
	assert.Error(t, err)
	assert.Equal(t, StageBalance, result.Stage)
}

func TestResumeReconnectsSilently(t *testing.T) {
	flags := NewMemoryFlagStore()
	require.NoError(t, flags.SetAgeConfirmed())

	provider := &fakeProvider{accounts: []string{testAddress}}
	p := NewPipeline(flags, provider, grantedVerifier(), testChain)

	result, err := p.Resume(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Granted())
	assert.False(t, provider.requested, "resume must not prompt for accounts")
}

func TestResumeWithoutConnectedAccount(t *testing.T) {
	flags := NewMemoryFlagStore()
	require.NoError(t, flags.SetAgeConfirmed())

	verifier := grantedVerifier()
	p := NewPipeline(flags, &fakeProvider{}, verifier, testChain)

	result, err := p.Resume(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StageWallet, result.Stage)
	assert.Zero(t, verifier.calls)
}

func TestFileFlagStore(t *testing.T) {
	path := t.TempDir() + "/age_verified"
	store := NewFileFlagStore(path)

	assert.False(t, store.AgeConfirmed())
	require.NoError(t, store.SetAgeConfirmed())
	assert.True(t, store.AgeConfirmed())

	// A second store over the same path sees the persisted flag
	assert.True(t, NewFileFlagStore(path).AgeConfirmed())
}
