package ledger

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContext(t *testing.T) {
	bg := context.Background()

	newLogger := log.NewTMLogger(os.Stdout)
	ctx := WithLogger(bg, newLogger)
	assert.Equal(t, DefaultLogger, GetLogger(bg))
	assert.Equal(t, newLogger, GetLogger(ctx))

	val, ok := GetHeight(ctx)
	assert.Equal(t, int64(0), val)
	assert.False(t, ok)
	ctx = WithHeight(ctx, 7)
	val, ok = GetHeight(ctx)
	assert.Equal(t, int64(7), val)
	assert.True(t, ok)
	assert.Panics(t, func() { WithHeight(ctx, 9) })

	// changing the info, should modify the logger, but not the height
	ctx2 := WithLogInfo(ctx, "foo", "bar")
	assert.NotEqual(t, GetLogger(ctx), GetLogger(ctx2))
	val, _ = GetHeight(ctx2)
	assert.Equal(t, int64(7), val)

	// chain id MUST be set exactly once
	assert.Panics(t, func() { GetChainID(ctx) })
	ctx2 = WithChainID(ctx, "my-chain")
	assert.Equal(t, "my-chain", GetChainID(ctx2))
	assert.Panics(t, func() { WithChainID(ctx2, "my-chain") })
	assert.Panics(t, func() { WithChainID(ctx, "bad") })

	header := abci.Header{Height: 7, Time: time.Unix(1000, 0)}
	ctx = WithHeader(ctx, header)
	got, ok := GetHeader(ctx)
	assert.True(t, ok)
	assert.Equal(t, header, got)
	assert.Panics(t, func() { WithHeader(ctx, header) })
}

func TestBlockTime(t *testing.T) {
	bg := context.Background()
	_, err := BlockTime(bg)
	assert.Error(t, err)

	_, err = BlockTime(WithHeader(bg, abci.Header{Height: 3}))
	assert.Error(t, err)

	now := time.Unix(1000, 0)
	ctx := WithHeader(bg, abci.Header{Time: now})
	got, err := BlockTime(ctx)
	require.NoError(t, err)
	assert.Equal(t, now, got)

	unix, err := BlockUnixTime(ctx)
	require.NoError(t, err)
	assert.Equal(t, UnixTime(1000), unix)
}

func TestIsExpired(t *testing.T) {
	now := time.Unix(1000, 0)
	ctx := WithHeader(context.Background(), abci.Header{Time: now})

	assert.True(t, IsExpired(ctx, 999))
	assert.True(t, IsExpired(ctx, 1000), "expiration is inclusive")
	assert.False(t, IsExpired(ctx, 1001))

	assert.False(t, InTheFuture(ctx, 1000))
	assert.True(t, InTheFuture(ctx, 1001))

	assert.Panics(t, func() { IsExpired(context.Background(), 1) })
}

func TestChainID(t *testing.T) {
	cases := []struct {
		chainID string
		valid   bool
	}{
		{"", false},
		{"foo", false},
		{"special", true},
		{"timelock-dev-1", true},
		{"invalid;;chars", false},
		{"this-chain-id-is-way-too-long", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.valid, IsValidChainID(tc.chainID), tc.chainID)
	}
}
