package dosimetry

import (
	"testing"

	"github.com/sohnishi/acexs/ace/token"
	"github.com/sohnishi/acexs/reaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSingleReaction(t *testing.T) {
	toks := []string{"102", "1", "0", "2", "1.0", "2.0", "0.01", "0.02"}
	xss := token.NewStreamFromTokens(toks)

	var nxs [16]int64
	nxs[3] = 1 // NTR

	var jxs [32]int64
	jxs[2] = 1 // MTR
	jxs[5] = 2 // LSIG
	jxs[6] = 3 // SIGD

	table, err := Decode(xss, nxs, jxs)
	require.NoError(t, err)

	mt102 := table.Reactions[reaction.FromMT(102)]
	require.NotNil(t, mt102)
	assert.Equal(t, []float64{1.0, 2.0}, mt102.EnergyPoints())
	assert.Equal(t, []float64{0.01, 0.02}, mt102.XSValues())
	assert.EqualValues(t, 0, mt102.ReleaseN())
}

func TestDecodeNonzeroInterpolationWarnsButContinues(t *testing.T) {
	// NR=1 with NBT=[2], INT=[2], then NE=1, energy=[1.0], xs=[0.5]
	toks := []string{"102", "1", "1", "2", "2", "1", "1.0", "0.5"}
	xss := token.NewStreamFromTokens(toks)

	var nxs [16]int64
	nxs[3] = 1
	var jxs [32]int64
	jxs[2] = 1
	jxs[5] = 2
	jxs[6] = 3

	table, err := Decode(xss, nxs, jxs)
	require.NoError(t, err)
	mt102 := table.Reactions[reaction.FromMT(102)]
	require.NotNil(t, mt102)
	assert.Equal(t, []float64{1.0}, mt102.EnergyPoints())
	assert.Equal(t, []float64{0.5}, mt102.XSValues())
}
