package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_Defaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no .env here
	t.Setenv("ETH_FILE_PATH", "/tmp/wallet.cwt")

	require.NoError(t, Init())
	c := Get()

	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, DefaultContractAddress, c.ContractAddress)
	assert.Equal(t, "wei", c.AmountUnit)
	assert.Equal(t, 5*time.Second, c.ToastAutoClose)
	assert.Zero(t, c.TxWaitTimeout)
	assert.False(t, c.DismissProgressOnFailure)
	assert.Equal(t, "/tmp/wallet.cwt", GetEthFilePath())
	assert.Equal(t, "8080", GetPort())
	assert.Equal(t, "http://127.0.0.1:8545", GetEthRPCURL())
	assert.Equal(t, DefaultContractAddress, GetContractAddress())
}

func TestInit_MissingFilePath(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ETH_FILE_PATH", "")

	assert.Error(t, Init())
}

func TestInit_InvalidAmountUnit(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ETH_FILE_PATH", "/tmp/wallet.cwt")
	t.Setenv("AMOUNT_UNIT", "gwei")

	err := Init()
	assert.ErrorContains(t, err, "AMOUNT_UNIT")
}

func TestPassword(t *testing.T) {
	SetPassword([]byte("secret"))

	got, err := GetPasswordBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), got)

	// returned slice is a copy
	clear(got)
	again, err := GetPasswordBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), again)
}

func TestGet_PanicsWithoutInit(t *testing.T) {
	prev := cfg
	t.Cleanup(func() { cfg = prev })

	cfg = nil
	assert.Panics(t, func() { Get() })
}
