package angular

import (
	"testing"

	"github.com/sohnishi/acexs/ace/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTableTabulated(t *testing.T) {
	s := token.NewStream("1 5.0 -4 2 2 -1 1 0.5 0.5 0 1")
	dists, err := DecodeTable(s, 1, 1)
	require.NoError(t, err)
	require.Len(t, dists, 1)
	d := dists[0]
	assert.Equal(t, Tabulated, d.Kind)
	assert.Equal(t, 5.0, d.Energy)
	assert.Equal(t, int64(2), d.Interpolation)
	assert.Equal(t, []float64{-1, 1}, d.AngularPoints)
	assert.Equal(t, []float64{0.5, 0.5}, d.PDF)
	assert.Equal(t, []float64{0, 1}, d.CDF)
}

func TestDecodeTableIsotropic(t *testing.T) {
	s := token.NewStream("1 5.0 0")
	dists, err := DecodeTable(s, 1, 1)
	require.NoError(t, err)
	require.Len(t, dists, 1)
	assert.Equal(t, Isotropic, dists[0].Kind)
}

func TestDecodeTableEquiprobableBinsOpaque(t *testing.T) {
	s := token.NewStream("1 5.0 7")
	dists, err := DecodeTable(s, 1, 1)
	require.NoError(t, err)
	require.Len(t, dists, 1)
	assert.Equal(t, EquiprobableBins, dists[0].Kind)
	assert.Equal(t, int64(7), dists[0].Locator)
	assert.Nil(t, dists[0].AngularPoints)
}
