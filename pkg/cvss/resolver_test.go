package cvss

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_NoOpinion(t *testing.T) {
	score, err := Resolve(nil, "")

	require.NoError(t, err)
	assert.Nil(t, score)
}

func TestResolve_ExplicitScorePassthrough(t *testing.T) {
	in := 7.5

	score, err := Resolve(&in, "")

	require.NoError(t, err)
	require.NotNil(t, score)
	assert.Equal(t, 7.5, *score)
}

func TestResolve_ScoreWinsOverVector(t *testing.T) {
	in := 2.0

	score, err := Resolve(&in, "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H")

	require.NoError(t, err)
	require.NotNil(t, score)
	assert.Equal(t, 2.0, *score)
}

func TestResolve_ScoreOutOfRange(t *testing.T) {
	for _, in := range []float64{-0.1, 10.1, 42.0} {
		score, err := Resolve(&in, "")

		assert.Error(t, err)
		assert.Nil(t, score)
	}
}

func TestResolve_V31Vector(t *testing.T) {
	score, err := Resolve(nil, "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H")

	require.NoError(t, err)
	require.NotNil(t, score)
	assert.InDelta(t, 9.8, *score, 0.01)
}

func TestResolve_V30Vector(t *testing.T) {
	score, err := Resolve(nil, "CVSS:3.0/AV:N/AC:L/PR:N/UI:R/S:U/C:L/I:L/A:N")

	require.NoError(t, err)
	require.NotNil(t, score)
	assert.InDelta(t, 5.4, *score, 0.01)
}

func TestResolve_V40Vector(t *testing.T) {
	score, err := Resolve(nil, "CVSS:4.0/AV:N/AC:L/AT:N/PR:N/UI:N/VC:H/VI:H/VA:H/SC:N/SI:N/SA:N")

	require.NoError(t, err)
	require.NotNil(t, score)
	assert.Greater(t, *score, 8.0)
	assert.LessOrEqual(t, *score, 10.0)
}

func TestResolve_BareVectorIsV2(t *testing.T) {
	score, err := Resolve(nil, "AV:N/AC:L/Au:N/C:C/I:C/A:C")

	require.NoError(t, err)
	require.NotNil(t, score)
	assert.InDelta(t, 10.0, *score, 0.01)
}

func TestResolve_InvalidVector(t *testing.T) {
	for _, vector := range []string{
		"CVSS:3.1/not-a-vector",
		"CVSS:4.0/AV:X",
		"complete nonsense",
	} {
		score, err := Resolve(nil, vector)

		assert.Error(t, err, "vector %q", vector)
		assert.Nil(t, score)
	}
}
