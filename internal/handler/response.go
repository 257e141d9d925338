package handler

import (
	"encoding/json"
	"net/http"

	"github.com/AlexZinkM/eth-wallet-panel/internal/model"
	"github.com/AlexZinkM/eth-wallet-panel/internal/panel"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error(), Code: code})
}

// outcomeStatus maps an operation outcome to an HTTP status.
// Failure details are in the toasts, the status only says how it ended.
func outcomeStatus(outcome panel.Outcome) int {
	switch outcome {
	case panel.OutcomeOK:
		return http.StatusOK
	case panel.OutcomeAccessRequested:
		return http.StatusAccepted
	case panel.OutcomeBusy, panel.OutcomeRejected:
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}
