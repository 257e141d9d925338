package eth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/AlexZinkM/eth-wallet-panel/internal/crypto"
	"github.com/AlexZinkM/eth-wallet-panel/internal/model"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/skip2/go-qrcode"
)

const (
	networkEthereum = "ethereum"
)

// IsFileExistsError checks if err means the keystore file already holds a wallet
func IsFileExistsError(err error) bool {
	return errors.Is(err, crypto.ErrFileExists)
}

// GenerateWallet generates a new key and saves it to a .cwt file.
// Returns the generated address on success.
// password must be []byte for security (caller should zero it after use)
func GenerateWallet(filePath string, password []byte) (address string, err error) {
	key, err := ethcrypto.GenerateKey()
	if err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}

	privateKey := ethcrypto.FromECDSA(key)
	defer clear(privateKey)

	address = addressOf(key).Hex()

	qrCode, err := generateQRCode(address)
	if err != nil {
		return "", fmt.Errorf("failed to generate QR code: %w", err)
	}

	walletData := &model.WalletData{
		PrivateKey: privateKey,
		CreatedAt:  time.Now().Format(time.RFC3339),
	}

	if err := crypto.EncryptWallet(filePath, networkEthereum, address, qrCode, walletData, password); err != nil {
		return "", fmt.Errorf("failed to encrypt wallet: %w", err)
	}

	return address, nil
}

// generateQRCode generates QR code of address in base64
func generateQRCode(address string) (string, error) {
	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	return base64.StdEncoding.EncodeToString(png), nil
}
