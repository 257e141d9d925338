package web

import (
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/AlexZinkM/eth-wallet-panel/internal/notify"
	"github.com/AlexZinkM/eth-wallet-panel/internal/panel"
	"github.com/AlexZinkM/eth-wallet-panel/internal/panel/mocks"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var vaultAddress = common.HexToAddress("0x1f017d16505e53638b00d23072f03d818518e1f3")

func newPage(t *testing.T) (*http.ServeMux, *Page, *mocks.MockLocator, *mocks.MockProvider, *notify.Center) {
	ctrl := gomock.NewController(t)
	locator := mocks.NewMockLocator(ctrl)
	provider := mocks.NewMockProvider(ctrl)
	toasts := notify.NewCenter(0, nil)

	p := NewPage(panel.NewController(locator, toasts, panel.Options{Contract: vaultAddress}), toasts, vaultAddress.Hex(), nil)
	mux := http.NewServeMux()
	p.Register(mux)
	return mux, p, locator, provider, toasts
}

func postForm(mux *http.ServeMux, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestIndex(t *testing.T) {
	mux, _, _, _, toasts := newPage(t)
	toasts.Error("Failed to fetch balance")

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Vault Balance: - ETH")
	assert.Contains(t, body, vaultAddress.Hex())
	assert.Contains(t, body, "Failed to fetch balance")
	assert.Contains(t, body, `action="/connect"`)
}

func TestRefresh_RedirectsToIndex(t *testing.T) {
	mux, _, locator, provider, _ := newPage(t)
	caller := mocks.NewMockVaultCaller(gomock.NewController(t))
	locator.EXPECT().Lookup().Return(provider, true)
	provider.EXPECT().Caller(gomock.Any(), vaultAddress).Return(caller, nil)
	caller.EXPECT().GetBalance(gomock.Any()).Return(big.NewInt(2_500_000_000_000_000_000), nil)

	rec := postForm(mux, "/refresh", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, rec.Body.String(), "Vault Balance: 2.5 ETH")
	assert.Contains(t, rec.Body.String(), panel.MsgBalanceUpdated)
}

func TestDeposit_RunsInBackground(t *testing.T) {
	mux, page, locator, provider, toasts := newPage(t)
	locator.EXPECT().Lookup().Return(provider, true)
	provider.EXPECT().Transactor(gomock.Any(), vaultAddress).Return(nil, errors.New("wallet locked"))

	rec := postForm(mux, "/deposit", url.Values{"amount": {"1000"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	page.Wait()
	active := toasts.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "wallet locked", active[0].Message)
}

func TestWithdraw_SendsSubmittedAmount(t *testing.T) {
	mux, page, locator, provider, _ := newPage(t)
	ctrl := gomock.NewController(t)
	transactor := mocks.NewMockVaultTransactor(ctrl)

	var first sync.Once
	paused, resume := make(chan struct{}), make(chan struct{})
	locator.EXPECT().Lookup().DoAndReturn(func() (panel.Provider, bool) {
		first.Do(func() {
			close(paused)
			<-resume
		})
		return provider, true
	}).AnyTimes()
	provider.EXPECT().Transactor(gomock.Any(), vaultAddress).Return(transactor, nil)
	transactor.EXPECT().Withdraw(gomock.Any(), "0.25").Return(nil, errors.New("insufficient funds")).Times(1)

	rec := postForm(mux, "/withdraw", url.Values{"amount": {"0.25"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	// The input changes before the background send reads it
	<-paused
	page.panel.SetWithdrawAmount("7")
	close(resume)

	page.Wait()
	assert.Equal(t, "0.25", page.panel.State().WithdrawAmount)
}

func TestDismiss(t *testing.T) {
	mux, _, _, _, toasts := newPage(t)
	toasts.Info(panel.MsgWithdrawalProgress, notify.Options{ID: panel.ToastWithdraw, Sticky: true})

	rec := postForm(mux, "/toasts/withdraw/dismiss", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Empty(t, toasts.Active())
}

func TestActions_RequirePost(t *testing.T) {
	mux, _, _, _, _ := newPage(t)

	for _, path := range []string{"/refresh", "/connect", "/deposit", "/withdraw"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, path)
	}
}
