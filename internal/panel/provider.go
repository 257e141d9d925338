package panel

import (
	"context"
	"errors"
	"math/big"

	"github.com/AlexZinkM/eth-wallet-panel/internal/notify"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

//go:generate mockgen -source=provider.go -destination=mocks/mock_provider.go -package=mocks

var (
	// ErrRejected marks a request the wallet owner declined
	ErrRejected = errors.New("user rejected")
	// ErrReverted marks a transaction that was mined with a failed status
	ErrReverted = errors.New("transaction reverted")
)

// Locator finds the wallet provider and asks for access when there is none yet.
type Locator interface {
	// Lookup reports the provider if one is present.
	Lookup() (Provider, bool)
	// RequestAccess asks the environment to make a provider available (unlock prompt).
	RequestAccess(ctx context.Context) error
}

// Provider is a connected wallet.
type Provider interface {
	RequestAccounts(ctx context.Context) ([]common.Address, error)
	// Caller opens a read-only connection to the vault at contract.
	Caller(ctx context.Context, contract common.Address) (VaultCaller, error)
	// Transactor opens a signing context for the vault at contract.
	Transactor(ctx context.Context, contract common.Address) (VaultTransactor, error)
}

// VaultCaller reads the vault
type VaultCaller interface {
	GetBalance(ctx context.Context) (*big.Int, error)
}

// VaultTransactor sends vault transactions. amount is passed as typed by the user.
type VaultTransactor interface {
	Deposit(ctx context.Context, amount string) (PendingTx, error)
	Withdraw(ctx context.Context, amount string) (PendingTx, error)
}

// PendingTx is a submitted transaction
type PendingTx interface {
	Hash() common.Hash
	// Wait blocks until the transaction is included and returns its receipt.
	Wait(ctx context.Context) (*types.Receipt, error)
}

// Notifier shows toasts
type Notifier interface {
	Success(msg string) string
	Info(msg string, opts notify.Options) string
	Error(msg string) string
	Dismiss(id string) bool
}

// Quoter converts an ether amount to a fiat display value
type Quoter interface {
	Quote(ctx context.Context, ether string) (string, error)
}
