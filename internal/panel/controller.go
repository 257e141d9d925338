// Package panel bridges UI intents (refresh, deposit, withdraw) to a wallet provider
// and reports every outcome as a toast.
package panel

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"time"

	"github.com/AlexZinkM/eth-wallet-panel/internal/common"
	"github.com/AlexZinkM/eth-wallet-panel/internal/notify"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
)

// Toast texts
const (
	MsgBalanceUpdated     = "Balance updated!"
	MsgBalanceFailed      = "Failed to fetch balance"
	MsgDepositProgress    = "Deposit in progress..."
	MsgDepositSuccess     = "Deposit successful!"
	MsgDepositFailed      = "Failed to deposit"
	MsgDepositBusy        = "Deposit already in progress"
	MsgWithdrawalProgress = "Withdrawal in progress..."
	MsgWithdrawalSuccess  = "Withdrawal successful!"
	MsgWithdrawalFailed   = "Failed to withdraw"
	MsgWithdrawalBusy     = "Withdrawal already in progress"
)

// Progress toast ids
const (
	ToastDeposit  = "deposit"
	ToastWithdraw = "withdraw"
)

// Phase of a deposit or withdraw
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseSigning   Phase = "signing"
	PhasePending   Phase = "pending"
	PhaseConfirmed Phase = "confirmed"
	PhaseRejected  Phase = "rejected"
	PhaseFailed    Phase = "failed"
)

// Outcome of one operation call
type Outcome string

const (
	OutcomeOK              Outcome = "ok"
	OutcomeFailed          Outcome = "failed"
	OutcomeRejected        Outcome = "rejected"
	OutcomeBusy            Outcome = "busy"
	OutcomeAccessRequested Outcome = "access_requested"
)

// Options configure a Controller
type Options struct {
	Contract ethcommon.Address
	// DismissProgressOnFailure also removes the progress toast when a transaction fails.
	// By default it is only dismissed after inclusion.
	DismissProgressOnFailure bool
	// WaitTimeout bounds waiting for inclusion. Zero waits forever.
	WaitTimeout time.Duration
	// Quoter adds a fiat value to the balance. Nil disables it.
	Quoter       Quoter
	FiatCurrency string
	Logger       *zap.Logger
}

// State is a snapshot of what the panel displays
type State struct {
	Account         string         `json:"account,omitempty"`
	Balance         string         `json:"balance"`
	FiatValue       string         `json:"fiatValue,omitempty"`
	FiatCurrency    string         `json:"fiatCurrency,omitempty"`
	DepositAmount   string         `json:"depositAmount"`
	WithdrawAmount  string         `json:"withdrawAmount"`
	DepositPhase    Phase          `json:"depositPhase"`
	WithdrawPhase   Phase          `json:"withdrawPhase"`
	DepositReceipt  *types.Receipt `json:"depositReceipt,omitempty"`
	WithdrawReceipt *types.Receipt `json:"withdrawReceipt,omitempty"`
}

type opKind int

const (
	opDeposit opKind = iota
	opWithdraw
)

// operation holds what differs between deposit and withdraw
type operation struct {
	name     string
	toastID  string
	progress string
	success  string
	fallback string
	busy     string
	send     func(ctx context.Context, t VaultTransactor, amount string) (PendingTx, error)
}

var operations = map[opKind]operation{
	opDeposit: {
		name:     "deposit",
		toastID:  ToastDeposit,
		progress: MsgDepositProgress,
		success:  MsgDepositSuccess,
		fallback: MsgDepositFailed,
		busy:     MsgDepositBusy,
		send: func(ctx context.Context, t VaultTransactor, amount string) (PendingTx, error) {
			return t.Deposit(ctx, amount)
		},
	},
	opWithdraw: {
		name:     "withdraw",
		toastID:  ToastWithdraw,
		progress: MsgWithdrawalProgress,
		success:  MsgWithdrawalSuccess,
		fallback: MsgWithdrawalFailed,
		busy:     MsgWithdrawalBusy,
		send: func(ctx context.Context, t VaultTransactor, amount string) (PendingTx, error) {
			return t.Withdraw(ctx, amount)
		},
	},
}

type opState struct {
	amount  string
	phase   Phase
	busy    bool
	receipt *types.Receipt
}

// Controller is the wallet panel. Safe for concurrent use.
type Controller struct {
	locator  Locator
	notifier Notifier
	opts     Options
	log      *zap.Logger

	mu        sync.Mutex
	account   string
	balance   string
	fiatValue string
	ops       map[opKind]*opState
}

// NewController creates a panel driving the provider found by locator
func NewController(locator Locator, notifier Notifier, opts Options) *Controller {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		locator:  locator,
		notifier: notifier,
		opts:     opts,
		log:      log.Named("panel").With(zap.String("contract", opts.Contract.Hex())),
		ops: map[opKind]*opState{
			opDeposit:  {phase: PhaseIdle},
			opWithdraw: {phase: PhaseIdle},
		},
	}
}

// State returns a snapshot of the display state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	dep, wd := c.ops[opDeposit], c.ops[opWithdraw]
	s := State{
		Account:         c.account,
		Balance:         c.balance,
		FiatValue:       c.fiatValue,
		DepositAmount:   dep.amount,
		WithdrawAmount:  wd.amount,
		DepositPhase:    dep.phase,
		WithdrawPhase:   wd.phase,
		DepositReceipt:  dep.receipt,
		WithdrawReceipt: wd.receipt,
	}
	if c.fiatValue != "" {
		s.FiatCurrency = c.opts.FiatCurrency
	}
	return s
}

// SetDepositAmount records the deposit input as typed
func (c *Controller) SetDepositAmount(amount string) {
	c.setAmount(opDeposit, amount)
}

// SetWithdrawAmount records the withdraw input as typed
func (c *Controller) SetWithdrawAmount(amount string) {
	c.setAmount(opWithdraw, amount)
}

func (c *Controller) setAmount(kind opKind, amount string) {
	c.mu.Lock()
	c.ops[kind].amount = amount
	c.mu.Unlock()
}

// EnsureAccountAccess asks the provider for accounts, or asks the environment
// for a provider when there is none. Failures are only logged.
func (c *Controller) EnsureAccountAccess(ctx context.Context) Outcome {
	provider, ok := c.locator.Lookup()
	return c.ensureAccess(ctx, provider, ok)
}

func (c *Controller) ensureAccess(ctx context.Context, provider Provider, present bool) Outcome {
	if !present {
		if err := c.locator.RequestAccess(ctx); err != nil {
			c.log.Warn("account access request failed", zap.Error(err))
			return OutcomeFailed
		}
		return OutcomeAccessRequested
	}

	accounts, err := provider.RequestAccounts(ctx)
	if err != nil {
		c.log.Warn("account request failed", zap.Error(err))
		return OutcomeFailed
	}
	if len(accounts) > 0 {
		c.mu.Lock()
		c.account = accounts[0].Hex()
		c.mu.Unlock()
	}
	return OutcomeOK
}

// RefreshBalance reads the vault balance and stores it formatted in ether.
// On failure the previous balance stays.
func (c *Controller) RefreshBalance(ctx context.Context) Outcome {
	provider, ok := c.locator.Lookup()
	if !ok {
		return c.ensureAccess(ctx, nil, false)
	}

	raw, err := c.readBalance(ctx, provider)
	if err != nil {
		c.log.Error("failed to fetch balance", zap.Error(err))
		c.notifier.Error(MsgBalanceFailed)
		return OutcomeFailed
	}

	balance := common.WeiToEther(raw)
	c.mu.Lock()
	c.balance = balance
	c.mu.Unlock()

	c.notifier.Success(MsgBalanceUpdated)
	c.updateFiat(ctx, balance)
	return OutcomeOK
}

func (c *Controller) readBalance(ctx context.Context, provider Provider) (*big.Int, error) {
	caller, err := provider.Caller(ctx, c.opts.Contract)
	if err != nil {
		return nil, err
	}
	return caller.GetBalance(ctx)
}

// updateFiat is best effort: the balance is already shown when it runs
func (c *Controller) updateFiat(ctx context.Context, balance string) {
	if c.opts.Quoter == nil {
		return
	}

	fiat, err := c.opts.Quoter.Quote(ctx, balance)
	if err != nil {
		c.log.Warn("failed to quote balance", zap.String("currency", c.opts.FiatCurrency), zap.Error(err))
		return
	}

	c.mu.Lock()
	c.fiatValue = fiat
	c.mu.Unlock()
}

// Deposit sends deposit(amount) with the current deposit input
func (c *Controller) Deposit(ctx context.Context) Outcome {
	return c.transact(ctx, opDeposit, nil)
}

// Withdraw sends withdraw(amount) with the current withdraw input
func (c *Controller) Withdraw(ctx context.Context) Outcome {
	return c.transact(ctx, opWithdraw, nil)
}

// DepositAmount records amount as the deposit input and sends exactly that amount,
// whatever is typed into the input meanwhile.
func (c *Controller) DepositAmount(ctx context.Context, amount string) Outcome {
	return c.transact(ctx, opDeposit, &amount)
}

// WithdrawAmount records amount as the withdraw input and sends exactly that amount.
func (c *Controller) WithdrawAmount(ctx context.Context, amount string) Outcome {
	return c.transact(ctx, opWithdraw, &amount)
}

// transact runs one operation. input, when set, replaces the stored input and is what gets sent.
func (c *Controller) transact(ctx context.Context, kind opKind, input *string) Outcome {
	provider, ok := c.locator.Lookup()
	if !ok {
		if input != nil {
			c.setAmount(kind, *input)
		}
		return c.ensureAccess(ctx, nil, false)
	}

	op := operations[kind]

	c.mu.Lock()
	st := c.ops[kind]
	if st.busy {
		c.mu.Unlock()
		c.notifier.Error(op.busy)
		return OutcomeBusy
	}
	if input != nil {
		st.amount = *input
	}
	st.busy = true
	st.phase = PhaseSigning
	amount := st.amount
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		st.busy = false
		c.mu.Unlock()
	}()

	log := c.log.With(zap.String("operation", op.name), zap.String("amount", amount))

	receipt, err := c.submit(ctx, provider, kind, op, amount, log)
	if err != nil {
		outcome, phase := OutcomeFailed, PhaseFailed
		if errors.Is(err, ErrRejected) {
			outcome, phase = OutcomeRejected, PhaseRejected
		}
		c.setPhase(kind, phase)
		log.Error("transaction failed", zap.Error(err))

		msg := err.Error()
		if msg == "" {
			msg = op.fallback
		}
		c.notifier.Error(msg)
		return outcome
	}

	c.notifier.Success(op.success)

	// The receipt gets its own slot. The input is cleared unless something new was typed meanwhile.
	c.mu.Lock()
	st.receipt = receipt
	if st.amount == amount {
		st.amount = ""
	}
	st.phase = PhaseConfirmed
	c.mu.Unlock()

	if receipt != nil {
		log.Info("transaction confirmed",
			zap.String("tx", receipt.TxHash.Hex()),
			zap.Uint64("gas_used", receipt.GasUsed),
		)
	}

	c.RefreshBalance(ctx)
	return OutcomeOK
}

// submit signs, sends and waits. Errors are returned as the provider produced them,
// their text is what the user sees.
func (c *Controller) submit(ctx context.Context, provider Provider, kind opKind, op operation, amount string, log *zap.Logger) (*types.Receipt, error) {
	transactor, err := provider.Transactor(ctx, c.opts.Contract)
	if err != nil {
		return nil, err
	}

	tx, err := op.send(ctx, transactor, amount)
	if err != nil {
		return nil, err
	}

	c.notifier.Info(op.progress, notify.Options{ID: op.toastID, Sticky: true})
	c.setPhase(kind, PhasePending)
	log.Info("transaction sent", zap.String("tx", tx.Hash().Hex()))

	dismissed := false
	defer func() {
		if !dismissed && c.opts.DismissProgressOnFailure {
			c.notifier.Dismiss(op.toastID)
		}
	}()

	waitCtx := ctx
	if c.opts.WaitTimeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, c.opts.WaitTimeout)
		defer cancel()
	}

	receipt, err := tx.Wait(waitCtx)
	if err != nil {
		return nil, err
	}

	c.notifier.Dismiss(op.toastID)
	dismissed = true
	return receipt, nil
}

func (c *Controller) setPhase(kind opKind, phase Phase) {
	c.mu.Lock()
	c.ops[kind].phase = phase
	c.mu.Unlock()
}
