package client

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubVaultCode answers every call with uint256(2.5 ether)
var stubVaultCode = common.FromHex("0x6722b1c8c1227a00006000526020" + "6000f3")

var stubVaultAddress = common.HexToAddress("0x1f017d16505e53638b00d23072f03d818518e1f3")

func TestVaultABI(t *testing.T) {
	parsed, err := vaultABI()
	require.NoError(t, err)

	for _, name := range []string{methodGetBalance, methodDeposit, methodWithdraw} {
		assert.Contains(t, parsed.Methods, name)
	}
	assert.True(t, parsed.Methods[methodGetBalance].IsConstant())
	assert.False(t, parsed.Methods[methodDeposit].IsConstant())

	data, err := parsed.Pack(methodDeposit, big.NewInt(1000))
	require.NoError(t, err)
	assert.Equal(t, parsed.Methods[methodDeposit].ID, data[:4])
	assert.Len(t, data, 4+32)
}

func TestVault_Simulated(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	from := crypto.PubkeyToAddress(key.PublicKey)

	backend := simulated.NewBackend(types.GenesisAlloc{
		from:             {Balance: new(big.Int).Mul(big.NewInt(100), big.NewInt(1e18))},
		stubVaultAddress: {Code: stubVaultCode, Balance: big.NewInt(0)},
	})
	defer backend.Close()
	sim := backend.Client()

	vault, err := NewVault(stubVaultAddress, sim)
	require.NoError(t, err)

	ctx := context.Background()
	balance, err := vault.GetBalance(&bind.CallOpts{Context: ctx, From: from})
	require.NoError(t, err)
	assert.Equal(t, "2500000000000000000", balance.String())

	chainID, err := sim.ChainID(ctx)
	require.NoError(t, err)
	opts, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	require.NoError(t, err)
	opts.Context = ctx

	tx, err := vault.Deposit(opts, big.NewInt(1000))
	require.NoError(t, err)
	backend.Commit()

	receipt, err := bind.WaitMined(ctx, sim, tx)
	require.NoError(t, err)
	assert.Equal(t, types.ReceiptStatusSuccessful, receipt.Status)

	tx, err = vault.Withdraw(opts, big.NewInt(1))
	require.NoError(t, err)
	backend.Commit()

	receipt, err = bind.WaitMined(ctx, sim, tx)
	require.NoError(t, err)
	assert.Equal(t, types.ReceiptStatusSuccessful, receipt.Status)
}
