package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetModeName(t *testing.T) {
	a, b := "", ""
	vars := map[string]*string{"Approximate": &a, "Match": &b}

	_, err := getModeName(vars)
	assert.Error(t, err)

	a = "approx.cfg"
	name, err := getModeName(vars)
	require.NoError(t, err)
	assert.Equal(t, "Approximate", name)

	b = "sentences.txt"
	_, err = getModeName(vars)
	assert.Error(t, err)
}

func TestErrorSummary(t *testing.T) {
	mean, max := errorSummary([]float64{1, 2, 3}, []float64{1, 4, 2})
	assert.InDelta(t, 1.0, mean, 1e-12)
	assert.Equal(t, 2.0, max)
}

func TestFunctions(t *testing.T) {
	f, ok := Functions["yandex"]
	require.True(t, ok)
	assert.InDelta(t, 5.0, f(0), 1e-12)
}
