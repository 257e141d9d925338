package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// DefaultContractAddress is the vault contract the panel talks to
const DefaultContractAddress = "0x1f017d16505e53638b00d23072f03d818518e1f3"

// Config contains all configuration parameters for the application.
// Note: Password is prompted at runtime and stored in memory - use GetPasswordBytes()
type Config struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	EthFilePath     string        `envconfig:"ETH_FILE_PATH" required:"true"`
	EthRPCURL       string        `envconfig:"ETH_RPC_URL" default:"http://127.0.0.1:8545"`
	EthChainID      int64         `envconfig:"ETH_CHAIN_ID" default:"0"` // 0 = ask the node
	ContractAddress string        `envconfig:"CONTRACT_ADDRESS" default:"0x1f017d16505e53638b00d23072f03d818518e1f3"`
	AmountUnit      string        `envconfig:"AMOUNT_UNIT" default:"wei"` // wei | ether
	TxWaitTimeout   time.Duration `envconfig:"TX_WAIT_TIMEOUT" default:"0s"`

	DismissProgressOnFailure bool          `envconfig:"PANEL_DISMISS_PROGRESS_ON_FAILURE" default:"false"`
	ToastAutoClose           time.Duration `envconfig:"TOAST_AUTO_CLOSE" default:"5s"`
	PriceCurrency            string        `envconfig:"PRICE_CURRENCY"`

	RateLimitRPS   int `envconfig:"RATE_LIMIT_RPS" default:"5"`
	RateLimitBurst int `envconfig:"RATE_LIMIT_BURST" default:"10"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	LogJSON  bool   `envconfig:"LOG_JSON" default:"false"`
}

// Validate checks values envconfig cannot check by itself
func (c *Config) Validate() error {
	if c.AmountUnit != "wei" && c.AmountUnit != "ether" {
		return fmt.Errorf("AMOUNT_UNIT must be wei or ether, got %q", c.AmountUnit)
	}
	if c.TxWaitTimeout < 0 {
		return errors.New("TX_WAIT_TIMEOUT must not be negative")
	}
	return nil
}

// cfg is the global configuration instance
var cfg *Config

// Init loads .env (if present) and then configuration from environment variables.
func Init() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	cfg = c
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetEthFilePath returns path to .cwt file from configuration
func GetEthFilePath() string {
	return Get().EthFilePath
}

// GetEthRPCURL returns node RPC URL from configuration
func GetEthRPCURL() string {
	return Get().EthRPCURL
}

// GetContractAddress returns the vault contract address
func GetContractAddress() string {
	return Get().ContractAddress
}

var passwordBytes []byte

// PromptForPassword prompts the user for the wallet password in the terminal.
// The password is read without echoing (hidden input) and stored in memory.
// Call this at startup before the server begins handling requests.
func PromptForPassword() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("stdin is not a terminal: run the app interactively to enter password")
	}
	fmt.Fprint(os.Stderr, "Enter wallet password: ")
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return errors.New("password cannot be empty")
	}

	SetPassword(raw)
	clear(raw)
	return nil
}

// SetPassword stores a copy of password in memory.
func SetPassword(password []byte) {
	clear(passwordBytes)
	passwordBytes = make([]byte, len(password))
	copy(passwordBytes, password)
}

// GetPasswordBytes returns the password stored in memory (from PromptForPassword).
// Returns an error if the password was not set.
// Caller must zero the returned slice after use for security.
func GetPasswordBytes() ([]byte, error) {
	if len(passwordBytes) == 0 {
		return nil, errors.New("password not set: call PromptForPassword at startup")
	}
	out := make([]byte, len(passwordBytes))
	copy(out, passwordBytes)
	return out, nil
}
