package eth

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/AlexZinkM/eth-wallet-panel/internal/client"
	"github.com/AlexZinkM/eth-wallet-panel/internal/common"
	"github.com/AlexZinkM/eth-wallet-panel/internal/panel"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Amount units accepted in the deposit/withdraw inputs
const (
	UnitWei   = "wei"
	UnitEther = "ether"
)

// Backend is what the provider needs from a node: contract calls, sending and receipts.
// *ethclient.Client implements it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// AmountParser returns the parser for amounts typed in unit.
// wei passes the integer through as the contract expects it, ether scales by 10^18.
func AmountParser(unit string) func(string) (*big.Int, error) {
	if unit == UnitEther {
		return common.EtherToWei
	}
	return common.ParseBaseUnits
}

// Provider is an unlocked local wallet connected to a node
type Provider struct {
	backend     Backend
	key         *ecdsa.PrivateKey
	address     ethcommon.Address
	chainID     *big.Int
	parseAmount func(string) (*big.Int, error)
}

var _ panel.Provider = (*Provider)(nil)

// NewProvider creates a provider signing with key on chainID
func NewProvider(backend Backend, key *ecdsa.PrivateKey, chainID *big.Int, amountUnit string) *Provider {
	return &Provider{
		backend:     backend,
		key:         key,
		address:     addressOf(key),
		chainID:     chainID,
		parseAmount: AmountParser(amountUnit),
	}
}

// Address returns the wallet address
func (p *Provider) Address() ethcommon.Address {
	return p.address
}

// RequestAccounts returns the unlocked account. A local wallet has exactly one.
func (p *Provider) RequestAccounts(ctx context.Context) ([]ethcommon.Address, error) {
	return []ethcommon.Address{p.address}, nil
}

// Caller opens a read-only binding to the vault
func (p *Provider) Caller(ctx context.Context, contract ethcommon.Address) (panel.VaultCaller, error) {
	vault, err := client.NewVault(contract, p.backend)
	if err != nil {
		return nil, err
	}
	return &vaultCaller{vault: vault, from: p.address}, nil
}

// Transactor opens a signing binding to the vault
func (p *Provider) Transactor(ctx context.Context, contract ethcommon.Address) (panel.VaultTransactor, error) {
	vault, err := client.NewVault(contract, p.backend)
	if err != nil {
		return nil, err
	}
	return &vaultTransactor{provider: p, vault: vault}, nil
}

type vaultCaller struct {
	vault *client.Vault
	from  ethcommon.Address
}

func (c *vaultCaller) GetBalance(ctx context.Context) (*big.Int, error) {
	return c.vault.GetBalance(&bind.CallOpts{Context: ctx, From: c.from})
}

type vaultTransactor struct {
	provider *Provider
	vault    *client.Vault
}

func (t *vaultTransactor) Deposit(ctx context.Context, amount string) (panel.PendingTx, error) {
	return t.send(ctx, amount, t.vault.Deposit)
}

func (t *vaultTransactor) Withdraw(ctx context.Context, amount string) (panel.PendingTx, error) {
	return t.send(ctx, amount, t.vault.Withdraw)
}

func (t *vaultTransactor) send(ctx context.Context, amount string, method func(*bind.TransactOpts, *big.Int) (*types.Transaction, error)) (panel.PendingTx, error) {
	value, err := t.provider.parseAmount(amount)
	if err != nil {
		return nil, err
	}

	opts, err := bind.NewKeyedTransactorWithChainID(t.provider.key, t.provider.chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create signer: %w", err)
	}
	opts.Context = ctx

	tx, err := method(opts, value)
	if err != nil {
		return nil, err
	}

	return &pendingTx{tx: tx, backend: t.provider.backend}, nil
}

// pendingTx waits for a sent transaction
type pendingTx struct {
	tx      *types.Transaction
	backend bind.DeployBackend
}

func (p *pendingTx) Hash() ethcommon.Hash {
	return p.tx.Hash()
}

// Wait polls for the receipt. A mined transaction with failed status is an error.
func (p *pendingTx) Wait(ctx context.Context) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, p.backend, p.tx)
	if err != nil {
		return nil, err
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return nil, fmt.Errorf("%w: %s", panel.ErrReverted, p.tx.Hash().Hex())
	}
	return receipt, nil
}
