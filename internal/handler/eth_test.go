package handler

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/AlexZinkM/eth-wallet-panel/internal/model"
	"github.com/AlexZinkM/eth-wallet-panel/internal/notify"
	"github.com/AlexZinkM/eth-wallet-panel/internal/panel"
	"github.com/AlexZinkM/eth-wallet-panel/internal/panel/mocks"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var vaultAddress = common.HexToAddress("0x1f017d16505e53638b00d23072f03d818518e1f3")

type fixture struct {
	locator    *mocks.MockLocator
	provider   *mocks.MockProvider
	caller     *mocks.MockVaultCaller
	transactor *mocks.MockVaultTransactor
	tx         *mocks.MockPendingTx
	toasts     *notify.Center
	panel      *panel.Controller
	handler    *EthHandler
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		locator:    mocks.NewMockLocator(ctrl),
		provider:   mocks.NewMockProvider(ctrl),
		caller:     mocks.NewMockVaultCaller(ctrl),
		transactor: mocks.NewMockVaultTransactor(ctrl),
		tx:         mocks.NewMockPendingTx(ctrl),
		toasts:     notify.NewCenter(0, nil),
	}

	p := panel.NewController(f.locator, f.toasts, panel.Options{Contract: vaultAddress})
	h, err := NewEthHandler(EthHandlerConfig{
		FilePath: t.TempDir() + "/wallet.cwt",
		Contract: vaultAddress.Hex(),
		Password: func() ([]byte, error) { return []byte("pw"), nil },
		Panel:    p,
		Toasts:   f.toasts,
	})
	require.NoError(t, err)
	f.panel = p
	f.handler = h
	return f
}

func (f *fixture) withBalance(raw int64) {
	f.locator.EXPECT().Lookup().Return(f.provider, true).AnyTimes()
	f.provider.EXPECT().Caller(gomock.Any(), vaultAddress).Return(f.caller, nil).AnyTimes()
	f.caller.EXPECT().GetBalance(gomock.Any()).Return(big.NewInt(raw), nil).AnyTimes()
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestNewEthHandler_RequiresFilePath(t *testing.T) {
	_, err := NewEthHandler(EthHandlerConfig{})
	assert.ErrorContains(t, err, "ETH_FILE_PATH")
}

func TestRefreshBalance(t *testing.T) {
	f := newFixture(t)
	f.withBalance(2_500_000_000_000_000_000)

	rec := httptest.NewRecorder()
	f.handler.RefreshBalance(rec, httptest.NewRequest(http.MethodPost, "/eth/balance/refresh", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[model.PanelResponse](t, rec)
	assert.Equal(t, "ok", resp.Outcome)
	assert.Equal(t, "2.5", resp.Balance)
	assert.Equal(t, vaultAddress.Hex(), resp.Contract)

	toasts := f.toasts.Active()
	require.Len(t, toasts, 1)
	assert.Equal(t, panel.MsgBalanceUpdated, toasts[0].Message)
}

func TestRefreshBalance_NoProvider(t *testing.T) {
	f := newFixture(t)
	f.locator.EXPECT().Lookup().Return(nil, false)
	f.locator.EXPECT().RequestAccess(gomock.Any()).Return(nil)

	rec := httptest.NewRecorder()
	f.handler.RefreshBalance(rec, httptest.NewRequest(http.MethodPost, "/eth/balance/refresh", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Empty(t, f.toasts.Active())
}

func TestRefreshBalance_MethodNotAllowed(t *testing.T) {
	f := newFixture(t)

	rec := httptest.NewRecorder()
	f.handler.RefreshBalance(rec, httptest.NewRequest(http.MethodGet, "/eth/balance/refresh", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestDeposit(t *testing.T) {
	f := newFixture(t)
	f.withBalance(1_000_000_000_000_000_000)

	receipt := &types.Receipt{TxHash: common.HexToHash("0xabc"), BlockNumber: big.NewInt(7), Status: types.ReceiptStatusSuccessful}
	f.provider.EXPECT().Transactor(gomock.Any(), vaultAddress).Return(f.transactor, nil)
	f.transactor.EXPECT().Deposit(gomock.Any(), "1000").Return(f.tx, nil)
	f.tx.EXPECT().Hash().Return(receipt.TxHash).AnyTimes()
	f.tx.EXPECT().Wait(gomock.Any()).Return(receipt, nil)

	rec := httptest.NewRecorder()
	f.handler.Deposit(rec, httptest.NewRequest(http.MethodPost, "/eth/deposit", strings.NewReader(`{"amount":"1000"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[model.TransactResponse](t, rec)
	assert.Equal(t, "ok", resp.Outcome)
	assert.Equal(t, "confirmed", resp.Phase)
	assert.Equal(t, "1.0", resp.Balance)
	require.NotNil(t, resp.Receipt)
	assert.Equal(t, receipt.TxHash.Hex(), resp.Receipt.TxHash)
	assert.Equal(t, uint64(7), resp.Receipt.BlockNumber)

	// progress toast is gone, success and balance toasts remain
	var messages []string
	for _, toast := range f.toasts.Active() {
		messages = append(messages, toast.Message)
	}
	assert.ElementsMatch(t, []string{panel.MsgDepositSuccess, panel.MsgBalanceUpdated}, messages)
}

func TestDeposit_ConcurrentRequestsKeepOwnAmount(t *testing.T) {
	f := newFixture(t)

	var first sync.Once
	paused, resume := make(chan struct{}), make(chan struct{})
	f.locator.EXPECT().Lookup().DoAndReturn(func() (panel.Provider, bool) {
		first.Do(func() {
			close(paused)
			<-resume
		})
		return f.provider, true
	}).AnyTimes()
	f.provider.EXPECT().Caller(gomock.Any(), vaultAddress).Return(f.caller, nil).AnyTimes()
	f.caller.EXPECT().GetBalance(gomock.Any()).Return(big.NewInt(1_000_000_000_000_000_000), nil).AnyTimes()

	receipt := &types.Receipt{TxHash: common.HexToHash("0xabc"), BlockNumber: big.NewInt(7), Status: types.ReceiptStatusSuccessful}
	mined, release := make(chan struct{}), make(chan struct{})
	f.provider.EXPECT().Transactor(gomock.Any(), vaultAddress).Return(f.transactor, nil)
	// Only the first request's amount ever reaches the contract
	f.transactor.EXPECT().Deposit(gomock.Any(), "1").Return(f.tx, nil).Times(1)
	f.tx.EXPECT().Hash().Return(receipt.TxHash).AnyTimes()
	f.tx.EXPECT().Wait(gomock.Any()).DoAndReturn(func(context.Context) (*types.Receipt, error) {
		close(mined)
		<-release
		return receipt, nil
	})

	firstRec := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		defer close(done)
		f.handler.Deposit(firstRec, httptest.NewRequest(http.MethodPost, "/eth/deposit", strings.NewReader(`{"amount":"1"}`)))
	}()

	// Another client overwrites the shared input before the first request reads it
	<-paused
	f.panel.SetDepositAmount("100")
	close(resume)

	// A second request while the first is in flight is refused
	<-mined
	second := httptest.NewRecorder()
	f.handler.Deposit(second, httptest.NewRequest(http.MethodPost, "/eth/deposit", strings.NewReader(`{"amount":"100"}`)))
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Equal(t, string(panel.OutcomeBusy), decode[model.TransactResponse](t, second).Outcome)

	close(release)
	<-done
	require.Equal(t, http.StatusOK, firstRec.Code)
	resp := decode[model.TransactResponse](t, firstRec)
	assert.Equal(t, "ok", resp.Outcome)
	require.NotNil(t, resp.Receipt)
	assert.Equal(t, receipt.TxHash.Hex(), resp.Receipt.TxHash)
}

func TestWithdraw_Failure(t *testing.T) {
	f := newFixture(t)
	f.locator.EXPECT().Lookup().Return(f.provider, true).AnyTimes()
	f.provider.EXPECT().Transactor(gomock.Any(), vaultAddress).Return(f.transactor, nil)
	f.transactor.EXPECT().Withdraw(gomock.Any(), "5").Return(nil, errors.New("insufficient funds"))

	rec := httptest.NewRecorder()
	f.handler.Withdraw(rec, httptest.NewRequest(http.MethodPost, "/eth/withdraw", strings.NewReader(`{"amount":"5"}`)))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	resp := decode[model.TransactResponse](t, rec)
	assert.Equal(t, "failed", resp.Outcome)
	assert.Nil(t, resp.Receipt)

	toasts := f.toasts.Active()
	require.Len(t, toasts, 1)
	assert.Equal(t, notify.KindError, toasts[0].Kind)
	assert.Equal(t, "insufficient funds", toasts[0].Message)
}

func TestDeposit_BadBody(t *testing.T) {
	f := newFixture(t)

	rec := httptest.NewRecorder()
	f.handler.Deposit(rec, httptest.NewRequest(http.MethodPost, "/eth/deposit", strings.NewReader(`{`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, model.CodeBadRequest, decode[model.ErrorResponse](t, rec).Code)
}

func TestAccounts(t *testing.T) {
	f := newFixture(t)
	account := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	f.locator.EXPECT().Lookup().Return(f.provider, true)
	f.provider.EXPECT().RequestAccounts(gomock.Any()).Return([]common.Address{account}, nil)

	rec := httptest.NewRecorder()
	f.handler.Accounts(rec, httptest.NewRequest(http.MethodPost, "/eth/accounts", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, account.Hex(), decode[model.PanelResponse](t, rec).Account)
}

func TestPanel(t *testing.T) {
	f := newFixture(t)

	rec := httptest.NewRecorder()
	f.handler.Panel(rec, httptest.NewRequest(http.MethodGet, "/eth/panel", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[model.PanelResponse](t, rec)
	assert.Equal(t, "idle", resp.DepositPhase)
	assert.Equal(t, "idle", resp.WithdrawPhase)
	assert.Empty(t, resp.Outcome)
}

func TestToasts(t *testing.T) {
	f := newFixture(t)
	f.toasts.Info(panel.MsgDepositProgress, notify.Options{ID: panel.ToastDeposit, Sticky: true})

	mux := http.NewServeMux()
	mux.HandleFunc("/eth/toasts", f.handler.Toasts)
	mux.HandleFunc("/eth/toasts/{id}", f.handler.DismissToast)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/eth/toasts", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	toasts := decode[[]notify.Toast](t, rec)
	require.Len(t, toasts, 1)
	assert.Equal(t, panel.ToastDeposit, toasts[0].ID)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/eth/toasts/deposit", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/eth/toasts/deposit", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGenerate(t *testing.T) {
	if testing.Short() {
		t.Skip("keystore uses full-cost scrypt")
	}
	f := newFixture(t)

	rec := httptest.NewRecorder()
	f.handler.Generate(rec, httptest.NewRequest(http.MethodPost, "/eth/generate", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[model.GenerateResponse](t, rec)
	assert.True(t, resp.Success)
	assert.True(t, common.IsHexAddress(resp.Address))

	rec = httptest.NewRecorder()
	f.handler.Generate(rec, httptest.NewRequest(http.MethodPost, "/eth/generate", nil))
	assert.Equal(t, http.StatusConflict, rec.Code)
}
