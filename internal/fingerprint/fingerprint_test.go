package fingerprint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSumIsDeterministic(t *testing.T) {
	for _, algo := range []Algorithm{BLAKE3, BLAKE2b, BLAKE2s, SHA3_256, RIPEMD160} {
		a, err := Sum(strings.NewReader("1001.80c data"), algo)
		require.NoError(t, err)
		b, err := Sum(strings.NewReader("1001.80c data"), algo)
		require.NoError(t, err)
		assert.Equal(t, a, b, "algorithm %s should be deterministic", algo)
		assert.NotEmpty(t, a)
	}
}

func TestSumDiffersAcrossAlgorithms(t *testing.T) {
	a, err := Sum(strings.NewReader("payload"), BLAKE3)
	require.NoError(t, err)
	b, err := Sum(strings.NewReader("payload"), SHA3_256)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestSumTokensMatchesJoinedSum(t *testing.T) {
	tokens := []string{"1.0", "2.0", "3.0"}
	a, err := SumTokens(tokens, BLAKE3)
	require.NoError(t, err)
	b, err := Sum(strings.NewReader("1.0 2.0 3.0"), BLAKE3)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestParseAlgorithm(t *testing.T) {
	algo, err := ParseAlgorithm("blake2b")
	require.NoError(t, err)
	assert.Equal(t, BLAKE2b, algo)

	_, err = ParseAlgorithm("md5")
	require.Error(t, err)
	var unsupported *UnsupportedAlgorithmError
	require.ErrorAs(t, err, &unsupported)
}

func TestParseAlgorithmDefaultsToBLAKE3(t *testing.T) {
	algo, err := ParseAlgorithm("")
	require.NoError(t, err)
	assert.Equal(t, BLAKE3, algo)
}
