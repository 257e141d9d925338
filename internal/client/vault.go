package client

import (
	_ "embed"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Vault contract entry points
const (
	methodGetBalance = "getBalance"
	methodDeposit    = "deposit"
	methodWithdraw   = "withdraw"
)

//go:embed abi/vault.json
var vaultABIJSON string

var vaultABI = sync.OnceValues(func() (abi.ABI, error) {
	return abi.JSON(strings.NewReader(vaultABIJSON))
})

// Vault is a binding to the deposit/withdraw vault contract
type Vault struct {
	contract *bind.BoundContract
}

// NewVault binds the vault at address. backend decides what the binding can do:
// a node client both reads and sends, a simulated backend does the same in tests.
func NewVault(address common.Address, backend bind.ContractBackend) (*Vault, error) {
	parsed, err := vaultABI()
	if err != nil {
		return nil, fmt.Errorf("failed to parse vault ABI: %w", err)
	}

	return &Vault{
		contract: bind.NewBoundContract(address, parsed, backend, backend, backend),
	}, nil
}

// GetBalance calls getBalance() and returns the raw value in wei
func (v *Vault) GetBalance(opts *bind.CallOpts) (*big.Int, error) {
	var out []interface{}
	if err := v.contract.Call(opts, &out, methodGetBalance); err != nil {
		return nil, err
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("getBalance returned %d values", len(out))
	}

	balance, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("getBalance returned %T", out[0])
	}
	return balance, nil
}

// Deposit sends deposit(amount)
func (v *Vault) Deposit(opts *bind.TransactOpts, amount *big.Int) (*types.Transaction, error) {
	return v.contract.Transact(opts, methodDeposit, amount)
}

// Withdraw sends withdraw(amount)
func (v *Vault) Withdraw(opts *bind.TransactOpts, amount *big.Int) (*types.Transaction, error) {
	return v.contract.Transact(opts, methodWithdraw, amount)
}
