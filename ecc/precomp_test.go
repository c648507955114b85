package ecc_test

import (
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cypherix/ecmath/ecc"
)

func TestWNafPrecompute(t *testing.T) {
	c := ecc.GetCurve(ecc.SECP256R1)
	g := c.Generator()
	p := mustMulInt(t, g, 77)

	table, err := ecc.WNafPrecompute(p, 5, true)
	require.NoError(t, err)
	require.Equal(t, 5, table.Width())
	require.Len(t, table.PreComp(), 8)
	require.Len(t, table.PreCompNeg(), 8)

	ref := ecc.ReferenceMultiplier{}
	for i, e := range table.PreComp() {
		want, err := ref.Multiply(p, big.NewInt(int64(2*i+1)))
		require.NoError(t, err)
		require.True(t, e.Equal(want), "entry %d", i)
		require.True(t, table.PreCompNeg()[i].Equal(want.Neg()), "neg entry %d", i)
	}

	// a second request is a pure cache hit
	again, err := ecc.WNafPrecompute(p, 5, true)
	require.NoError(t, err)
	require.Same(t, table, again)
}

func TestWNafPrecomputeGrows(t *testing.T) {
	c := ecc.GetCurve(ecc.SECP192R1)
	p := mustMulInt(t, c.Generator(), 91)

	narrow, err := ecc.WNafPrecompute(p, 4, false)
	require.NoError(t, err)
	require.Len(t, narrow.PreComp(), 4)
	require.Nil(t, narrow.PreCompNeg())

	wide, err := ecc.WNafPrecompute(p, 7, true)
	require.NoError(t, err)
	require.Len(t, wide.PreComp(), 32)
	require.Len(t, wide.PreCompNeg(), 32)

	// widening reuses the existing entries instead of recomputing them
	for i := range narrow.PreComp() {
		require.Same(t, narrow.PreComp()[i], wide.PreComp()[i])
	}
	ref := ecc.ReferenceMultiplier{}
	for i, e := range wide.PreComp() {
		want, err := ref.Multiply(p, big.NewInt(int64(2*i+1)))
		require.NoError(t, err)
		require.True(t, e.Equal(want), "entry %d", i)
	}

	// a narrower request after a wide build returns the wide table
	after, err := ecc.WNafPrecompute(p, 3, false)
	require.NoError(t, err)
	require.Same(t, wide, after)
}

func TestCombPrecomputeCached(t *testing.T) {
	c := ecc.GetCurve(ecc.SECP384R1)
	p := mustMulInt(t, c.Generator(), 123)

	table, err := ecc.CombPrecompute(p)
	require.NoError(t, err)
	require.Equal(t, 6, table.Width())

	again, err := ecc.CombPrecompute(p)
	require.NoError(t, err)
	require.Same(t, table, again)
}

func TestConcurrentMultiply(t *testing.T) {
	c := ecc.GetCurve(ecc.SECP256K1)
	p := mustMulInt(t, c.Generator(), 424242)
	k, ok := new(big.Int).SetString("7b1c9d2e3f405162738495a6b7c8d9e0f1029384a5b6c7d8e9fa0b1c2d3e4f50", 16)
	require.True(t, ok)
	want := mustMul(t, p, k)

	results := make(chan *ecc.Point, 16)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(width int) {
			defer wg.Done()
			r, err := ecc.WNafMultiplier{Width: width}.Multiply(p, k)
			if err != nil {
				results <- nil
				return
			}
			results <- r
		}(2 + i%6)
	}
	wg.Wait()
	close(results)

	for r := range results {
		require.NotNil(t, r)
		require.True(t, r.Equal(want))
	}
}
