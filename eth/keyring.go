package eth

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"strings"
	"sync"

	"github.com/AlexZinkM/eth-wallet-panel/internal/client"
	"github.com/AlexZinkM/eth-wallet-panel/internal/crypto"
	"github.com/AlexZinkM/eth-wallet-panel/internal/panel"

	ethcommon "github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"
)

// PasswordFunc returns the keystore password. Caller zeroes the result.
type PasswordFunc func() ([]byte, error)

// KeyringConfig configures a Keyring
type KeyringConfig struct {
	FilePath   string // .cwt keystore
	RPCURL     string
	ChainID    int64 // 0 = ask the node
	AmountUnit string
	Password   PasswordFunc
	Logger     *zap.Logger
}

// Keyring makes a Provider available once the keystore is unlocked.
// Until then Lookup reports no provider, like a page without a wallet extension.
type Keyring struct {
	cfg KeyringConfig
	log *zap.Logger

	mu       sync.RWMutex
	provider *Provider
	client   *client.EthClient
}

var _ panel.Locator = (*Keyring)(nil)

// NewKeyring creates a locked keyring
func NewKeyring(cfg KeyringConfig) *Keyring {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Keyring{
		cfg: cfg,
		log: log.Named("keyring"),
	}
}

// Lookup returns the provider if the keystore is unlocked
func (k *Keyring) Lookup() (panel.Provider, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	if k.provider == nil {
		return nil, false
	}
	return k.provider, true
}

// RequestAccess unlocks the keystore and connects to the node
func (k *Keyring) RequestAccess(ctx context.Context) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.provider != nil {
		return nil
	}

	if k.cfg.Password == nil {
		return fmt.Errorf("no password source configured")
	}
	password, err := k.cfg.Password()
	if err != nil {
		return fmt.Errorf("failed to get password: %w", err)
	}
	defer clear(password) // Always clear password from memory

	key, err := loadKey(k.cfg.FilePath, password)
	if err != nil {
		return err
	}

	ethClient, err := client.NewEthClient(ctx, k.cfg.RPCURL, k.cfg.ChainID)
	if err != nil {
		return err
	}

	k.client = ethClient
	k.provider = NewProvider(ethClient.Backend(), key, ethClient.ChainID(), k.cfg.AmountUnit)

	k.log.Info("wallet unlocked",
		zap.String("address", k.provider.Address().Hex()),
		zap.String("chain_id", ethClient.ChainID().String()),
		zap.String("rpc", ethClient.RPCURL()),
	)
	return nil
}

// Lock forgets the key and closes the node connection
func (k *Keyring) Lock() {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.client != nil {
		k.client.Close()
	}
	k.client = nil
	k.provider = nil
}

// loadKey decrypts the keystore and checks the key against the stored address
func loadKey(filePath string, password []byte) (*ecdsa.PrivateKey, error) {
	cwtFile, walletData, err := crypto.DecryptWallet(filePath, password)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt wallet: %w", err)
	}
	defer clear(walletData.PrivateKey)

	key, err := ethcrypto.ToECDSA(walletData.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	if !strings.EqualFold(addressOf(key).Hex(), cwtFile.Address) {
		return nil, fmt.Errorf("private key does not match address")
	}
	return key, nil
}

func addressOf(key *ecdsa.PrivateKey) ethcommon.Address {
	return ethcrypto.PubkeyToAddress(key.PublicKey)
}
