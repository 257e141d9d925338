package client

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/ethclient"
)

// EthClient is a client for working with an Ethereum node over JSON-RPC
type EthClient struct {
	rpcClient *ethclient.Client
	rpcURL    string
	chainID   *big.Int
}

// NewEthClient dials rpcURL. chainID <= 0 means the node is asked for it.
func NewEthClient(ctx context.Context, rpcURL string, chainID int64) (*EthClient, error) {
	rpcClient, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", rpcURL, err)
	}

	c := &EthClient{
		rpcClient: rpcClient,
		rpcURL:    rpcURL,
	}

	if chainID > 0 {
		c.chainID = big.NewInt(chainID)
		return c, nil
	}

	id, err := rpcClient.ChainID(ctx)
	if err != nil {
		rpcClient.Close()
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	c.chainID = id
	return c, nil
}

// Backend returns the underlying node client (read-only calls, sending, receipts)
func (c *EthClient) Backend() *ethclient.Client {
	return c.rpcClient
}

// ChainID returns the chain id used for signing
func (c *EthClient) ChainID() *big.Int {
	return new(big.Int).Set(c.chainID)
}

// RPCURL returns the node URL
func (c *EthClient) RPCURL() string {
	return c.rpcURL
}

// Close closes the RPC connection
func (c *EthClient) Close() {
	c.rpcClient.Close()
}
