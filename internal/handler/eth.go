package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AlexZinkM/eth-wallet-panel/eth"
	"github.com/AlexZinkM/eth-wallet-panel/internal/model"
	"github.com/AlexZinkM/eth-wallet-panel/internal/notify"
	"github.com/AlexZinkM/eth-wallet-panel/internal/panel"

	"go.uber.org/zap"
)

// EthHandler serves the wallet panel over JSON
type EthHandler struct {
	filePath string
	contract string
	password func() ([]byte, error)
	panel    *panel.Controller
	toasts   *notify.Center
	log      *zap.Logger
}

// EthHandlerConfig holds what EthHandler needs
type EthHandlerConfig struct {
	FilePath string // .cwt keystore
	Contract string
	Password func() ([]byte, error)
	Panel    *panel.Controller
	Toasts   *notify.Center
	Logger   *zap.Logger
}

// NewEthHandler creates a new EthHandler
func NewEthHandler(cfg EthHandlerConfig) (*EthHandler, error) {
	if cfg.FilePath == "" {
		return nil, errors.New("ETH_FILE_PATH not set")
	}
	if cfg.Panel == nil || cfg.Toasts == nil {
		return nil, errors.New("panel and toasts are required")
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &EthHandler{
		filePath: cfg.FilePath,
		contract: cfg.Contract,
		password: cfg.Password,
		panel:    cfg.Panel,
		toasts:   cfg.Toasts,
		log:      log.Named("handler"),
	}, nil
}

// Generate handles POST /eth/generate
// @Summary      Generate new wallet
// @Description  Generates a new Ethereum key and saves it to the .cwt keystore
// @Tags         eth
// @Produce      json
// @Success      200  {object}  model.GenerateResponse
// @Failure      409  {object}  model.ErrorResponse
// @Router       /eth/generate [post]
func (h *EthHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}
	if h.password == nil {
		writeError(w, http.StatusBadRequest, model.CodeBadRequest, errors.New("password not set"))
		return
	}

	// Get password as []byte, use it, then zero it immediately
	passwordBytes, err := h.password()
	if err != nil {
		writeError(w, http.StatusBadRequest, model.CodeBadRequest, err)
		return
	}
	defer clear(passwordBytes) // Always clear password from memory

	address, err := eth.GenerateWallet(h.filePath, passwordBytes)
	if err != nil {
		if eth.IsFileExistsError(err) {
			writeError(w, http.StatusConflict, model.CodeConflict, err)
			return
		}
		h.log.Error("failed to generate wallet", zap.Error(err))
		writeError(w, http.StatusInternalServerError, model.CodeInternal, err)
		return
	}

	h.log.Info("wallet generated", zap.String("address", address))
	writeJSON(w, http.StatusOK, model.GenerateResponse{
		Success: true,
		Message: "Wallet generated successfully",
		Network: "ethereum",
		Address: address,
	})
}

// Accounts handles POST /eth/accounts
// @Summary      Connect wallet
// @Description  Unlocks the keystore if needed and reads the account
// @Tags         eth
// @Produce      json
// @Success      200  {object}  model.PanelResponse
// @Success      202  {object}  model.PanelResponse
// @Router       /eth/accounts [post]
func (h *EthHandler) Accounts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	outcome := h.panel.EnsureAccountAccess(context.WithoutCancel(r.Context()))
	writeJSON(w, outcomeStatus(outcome), h.panelResponse(outcome))
}

// Panel handles GET /eth/panel
// @Summary      Panel state
// @Description  Account, last known vault balance, inputs, phases and last receipts
// @Tags         eth
// @Produce      json
// @Success      200  {object}  model.PanelResponse
// @Router       /eth/panel [get]
func (h *EthHandler) Panel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, h.panelResponse(""))
}

// RefreshBalance handles POST /eth/balance/refresh
// @Summary      Refresh vault balance
// @Description  Calls getBalance() on the vault. On failure the previous balance is kept.
// @Tags         eth
// @Produce      json
// @Success      200  {object}  model.PanelResponse
// @Failure      502  {object}  model.PanelResponse
// @Router       /eth/balance/refresh [post]
func (h *EthHandler) RefreshBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	outcome := h.panel.RefreshBalance(r.Context())
	writeJSON(w, outcomeStatus(outcome), h.panelResponse(outcome))
}

// Deposit handles POST /eth/deposit
// @Summary      Deposit
// @Description  Sends deposit(amount) to the vault and waits for inclusion
// @Tags         eth
// @Accept       json
// @Produce      json
// @Param        request  body      model.TransactRequest  true  "Amount as passed to the contract"
// @Success      200      {object}  model.TransactResponse
// @Failure      409      {object}  model.TransactResponse
// @Failure      502      {object}  model.TransactResponse
// @Router       /eth/deposit [post]
func (h *EthHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.transact(w, r, h.panel.DepositAmount, func(s panel.State) (panel.Phase, *model.ReceiptSummary) {
		return s.DepositPhase, model.NewReceiptSummary(s.DepositReceipt)
	})
}

// Withdraw handles POST /eth/withdraw
// @Summary      Withdraw
// @Description  Sends withdraw(amount) to the vault and waits for inclusion
// @Tags         eth
// @Accept       json
// @Produce      json
// @Param        request  body      model.TransactRequest  true  "Amount as passed to the contract"
// @Success      200      {object}  model.TransactResponse
// @Failure      409      {object}  model.TransactResponse
// @Failure      502      {object}  model.TransactResponse
// @Router       /eth/withdraw [post]
func (h *EthHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.transact(w, r, h.panel.WithdrawAmount, func(s panel.State) (panel.Phase, *model.ReceiptSummary) {
		return s.WithdrawPhase, model.NewReceiptSummary(s.WithdrawReceipt)
	})
}

func (h *EthHandler) transact(
	w http.ResponseWriter,
	r *http.Request,
	run func(context.Context, string) panel.Outcome,
	result func(panel.State) (panel.Phase, *model.ReceiptSummary),
) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.TransactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.CodeBadRequest, err)
		return
	}

	// A sent transaction is waited for even if the client goes away
	outcome := run(context.WithoutCancel(r.Context()), req.Amount)

	state := h.panel.State()
	phase, receipt := result(state)
	resp := model.TransactResponse{
		Outcome: string(outcome),
		Phase:   string(phase),
		Balance: state.Balance,
	}
	if outcome == panel.OutcomeOK {
		resp.Receipt = receipt
	}
	writeJSON(w, outcomeStatus(outcome), resp)
}

// Toasts handles GET /eth/toasts
// @Summary      Active notifications
// @Tags         eth
// @Produce      json
// @Success      200  {array}  notify.Toast
// @Router       /eth/toasts [get]
func (h *EthHandler) Toasts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, h.toasts.Active())
}

// DismissToast handles DELETE /eth/toasts/{id}
// @Summary      Dismiss a notification
// @Tags         eth
// @Param        id   path  string  true  "Toast ID"
// @Success      204
// @Failure      404  {object}  model.ErrorResponse
// @Router       /eth/toasts/{id} [delete]
func (h *EthHandler) DismissToast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed. Should be DELETE", http.StatusMethodNotAllowed)
		return
	}

	if !h.toasts.Dismiss(r.PathValue("id")) {
		writeError(w, http.StatusNotFound, model.CodeNotFound, errors.New("toast not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EthHandler) panelResponse(outcome panel.Outcome) model.PanelResponse {
	s := h.panel.State()
	return model.PanelResponse{
		Outcome:        string(outcome),
		Contract:       h.contract,
		Account:        s.Account,
		Balance:        s.Balance,
		FiatValue:      s.FiatValue,
		FiatCurrency:   s.FiatCurrency,
		DepositAmount:  s.DepositAmount,
		WithdrawAmount: s.WithdrawAmount,
		DepositPhase:   string(s.DepositPhase),
		WithdrawPhase:  string(s.WithdrawPhase),
		Deposit:        model.NewReceiptSummary(s.DepositReceipt),
		Withdraw:       model.NewReceiptSummary(s.WithdrawReceipt),
	}
}
