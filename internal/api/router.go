package api

import (
	"encoding/json"
	"net/http"

	"github.com/AlexZinkM/eth-wallet-panel/internal/handler"
	"github.com/AlexZinkM/eth-wallet-panel/internal/model"
	"github.com/AlexZinkM/eth-wallet-panel/internal/web"

	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// RouterConfig holds the handlers and limits for SetupRouter
type RouterConfig struct {
	Eth            *handler.EthHandler
	Page           *web.Page
	RateLimitRPS   int
	RateLimitBurst int
	Logger         *zap.Logger
}

// SetupRouter sets up router with handlers
func SetupRouter(cfg RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Ethereum endpoints
	mux.HandleFunc("/eth/generate", cfg.Eth.Generate)
	mux.HandleFunc("/eth/accounts", cfg.Eth.Accounts)
	mux.HandleFunc("/eth/panel", cfg.Eth.Panel)
	mux.HandleFunc("/eth/balance/refresh", cfg.Eth.RefreshBalance)
	mux.HandleFunc("/eth/deposit", cfg.Eth.Deposit)
	mux.HandleFunc("/eth/withdraw", cfg.Eth.Withdraw)
	mux.HandleFunc("/eth/toasts", cfg.Eth.Toasts)
	mux.HandleFunc("/eth/toasts/{id}", cfg.Eth.DismissToast)

	// HTML panel
	if cfg.Page != nil {
		cfg.Page.Register(mux)
	}

	var h http.Handler = mux
	if cfg.RateLimitRPS > 0 {
		h = NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, log).Middleware(h)
	}
	return withCorrelationID(log, h)
}

func writeError(w http.ResponseWriter, status int, body model.ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
