package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/AlexZinkM/eth-wallet-panel/eth"
	"github.com/AlexZinkM/eth-wallet-panel/internal/client"
	"github.com/AlexZinkM/eth-wallet-panel/internal/config"
	"github.com/AlexZinkM/eth-wallet-panel/internal/logger"
	"github.com/AlexZinkM/eth-wallet-panel/internal/notify"
	"github.com/AlexZinkM/eth-wallet-panel/internal/panel"
	"github.com/AlexZinkM/eth-wallet-panel/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

const logFile = "eth-wallet-panel.log"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.Init(); err != nil {
		return err
	}
	cfg := config.Get()

	// the panel owns the terminal, logs go to a file
	if err := logger.InitFile(cfg.LogLevel, logFile); err != nil {
		return err
	}
	defer logger.Sync()
	log := logger.With(zap.String("app", "tui"))

	if !ethcommon.IsHexAddress(config.GetContractAddress()) {
		return errors.New("CONTRACT_ADDRESS is not a hex address")
	}
	contract := ethcommon.HexToAddress(config.GetContractAddress())

	if err := config.PromptForPassword(); err != nil {
		return err
	}

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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Info("starting terminal panel", zap.String("contract", contract.Hex()))
	if _, err := tea.NewProgram(tui.New(ctx, controller, toasts, contract.Hex()), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("failed to run panel: %w", err)
	}
	return nil
}
