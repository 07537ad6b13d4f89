package identifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZAIDParsing(t *testing.T) {
	// S1 from spec: "1001.80c"
	assert.True(t, IsZAID("1001.80c"))
	assert.False(t, IsSZAX("1001.80c"))
	assert.Equal(t, "c", ClassOf("1001.80c"))

	nty, err := NTYOf("1001.80c")
	require.NoError(t, err)
	assert.Equal(t, ContinuousNeutron, nty)
}

func TestSZAXParsing(t *testing.T) {
	// S2 from spec: "1027058.710nc"
	assert.True(t, IsSZAX("1027058.710nc"))
	assert.False(t, IsZAID("1027058.710nc"))
	assert.Equal(t, "nc", ClassOf("1027058.710nc"))

	nty, err := NTYOf("1027058.710nc")
	require.NoError(t, err)
	assert.Equal(t, ContinuousNeutron, nty)
}

func TestNegativeFuzz(t *testing.T) {
	for _, s := range []string{
		"1001..80c",   // two dots
		"abc.80c",     // non-digit prefix
		"1001.80ccc",  // 3-letter suffix
		"",            // empty
		"1001.80",     // no class at all
	} {
		assert.Error(t, Validate(s), "expected %q to be invalid", s)
	}
}

func TestUnknownClass(t *testing.T) {
	_, err := NTYOf("1001.80z")
	require.Error(t, err)
	var unknownErr *UnknownClassError
	assert.ErrorAs(t, err, &unknownErr)
}

func TestClassRegex(t *testing.T) {
	re, ok := ClassRegex(ContinuousNeutron)
	require.True(t, ok)
	assert.True(t, re.MatchString("c"))
	assert.True(t, re.MatchString("nc"))
	assert.False(t, re.MatchString("y"))
}
