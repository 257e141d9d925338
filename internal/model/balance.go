package model

// PanelResponse represents response for GET /eth/panel and the balance/accounts calls
type PanelResponse struct {
	Outcome        string          `json:"outcome,omitempty"`
	Contract       string          `json:"contract"`
	Account        string          `json:"account,omitempty"`
	Balance        string          `json:"balance"` // ether, as reported by getBalance()
	FiatValue      string          `json:"fiatValue,omitempty"`
	FiatCurrency   string          `json:"fiatCurrency,omitempty"`
	DepositAmount  string          `json:"depositAmount"`
	WithdrawAmount string          `json:"withdrawAmount"`
	DepositPhase   string          `json:"depositPhase"`
	WithdrawPhase  string          `json:"withdrawPhase"`
	Deposit        *ReceiptSummary `json:"lastDeposit,omitempty"`
	Withdraw       *ReceiptSummary `json:"lastWithdraw,omitempty"`
}
