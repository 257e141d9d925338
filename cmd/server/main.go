// @title        ETH Wallet Panel API
// @version      1.0
// @description  Balance, deposit and withdraw against the vault contract with a local keystore wallet
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/AlexZinkM/eth-wallet-panel/docs"
	"github.com/AlexZinkM/eth-wallet-panel/eth"
	"github.com/AlexZinkM/eth-wallet-panel/internal/api"
	"github.com/AlexZinkM/eth-wallet-panel/internal/client"
	"github.com/AlexZinkM/eth-wallet-panel/internal/config"
	"github.com/AlexZinkM/eth-wallet-panel/internal/handler"
	"github.com/AlexZinkM/eth-wallet-panel/internal/logger"
	"github.com/AlexZinkM/eth-wallet-panel/internal/notify"
	"github.com/AlexZinkM/eth-wallet-panel/internal/panel"
	"github.com/AlexZinkM/eth-wallet-panel/internal/web"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		logger.Log.Error("server stopped", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run() error {
	if err := config.Init(); err != nil {
		return err
	}
	cfg := config.Get()

	if err := logger.Init(cfg.LogLevel, cfg.LogJSON); err != nil {
		return err
	}
	defer logger.Sync()
	log := logger.With(zap.String("app", "server"))

	if err := config.PromptForPassword(); err != nil {
		return err
	}

	if !ethcommon.IsHexAddress(config.GetContractAddress()) {
		return errors.New("CONTRACT_ADDRESS is not a hex address")
	}
	contract := ethcommon.HexToAddress(config.GetContractAddress())

	keyring := eth.NewKeyring(eth.KeyringConfig{
		FilePath:   config.GetEthFilePath(),
		RPCURL:     config.GetEthRPCURL(),
		ChainID:    cfg.EthChainID,
		AmountUnit: cfg.AmountUnit,
		Password:   config.GetPasswordBytes,
		Logger:     log,
	})
	defer keyring.Lock()

	toasts := notify.NewCenter(cfg.ToastAutoClose, log)

	opts := panel.Options{
		Contract:                 contract,
		DismissProgressOnFailure: cfg.DismissProgressOnFailure,
		WaitTimeout:              cfg.TxWaitTimeout,
		FiatCurrency:             cfg.PriceCurrency,
		Logger:                   log,
	}
	if cfg.PriceCurrency != "" {
		opts.Quoter = eth.NewPriceQuoter(client.NewCoinGeckoClient(), cfg.PriceCurrency)
	}
	controller := panel.NewController(keyring, toasts, opts)

	ethHandler, err := handler.NewEthHandler(handler.EthHandlerConfig{
		FilePath: config.GetEthFilePath(),
		Contract: contract.Hex(),
		Password: config.GetPasswordBytes,
		Panel:    controller,
		Toasts:   toasts,
		Logger:   log,
	})
	if err != nil {
		return err
	}
	page := web.NewPage(controller, toasts, contract.Hex(), log)

	srv := &http.Server{
		Addr: ":" + config.GetPort(),
		Handler: api.SetupRouter(api.RouterConfig{
			Eth:            ethHandler,
			Page:           page,
			RateLimitRPS:   cfg.RateLimitRPS,
			RateLimitBurst: cfg.RateLimitBurst,
			Logger:         log,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Unlock up front when the keystore exists, otherwise wait for /eth/generate and /connect
	if _, statErr := os.Stat(config.GetEthFilePath()); statErr == nil {
		controller.EnsureAccountAccess(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening",
			zap.String("addr", srv.Addr),
			zap.String("contract", contract.Hex()),
			zap.String("swagger", "http://localhost:"+config.GetPort()+"/swagger/index.html"),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	page.Wait()
	return nil
}
