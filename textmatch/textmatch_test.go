package textmatch

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var catSentences = []string{
	"In comparison to dogs, cats have not undergone major changes during the domestication process.",
	"As cat simply catenates streams of bytes, it can be also used to concatenate binary files, where it will just concatenate sequence of bytes.",
	"A common interactive use of cat for a single file is to output the content of a file to standard output.",
	"Cats can hear sounds too faint or too high in frequency for human ears, such as those made by mice and other small animals.",
	"In one, people deliberately tamed cats in a process of artificial selection, as they were useful predators of vermin.",
	"Mac OS X Mountain Lion was released on July 25, 2012.",
}

func TestTokenize(t *testing.T) {
	assert.Equal(t,
		[]string{"mac", "os", "x", "mountain", "lion"},
		Tokenize("Mac OS X: Mountain-Lion!"),
	)
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("2012, 25."))
}

func TestVocabulary(t *testing.T) {
	docs := [][]string{{"a", "b", "a"}, {"c", "b"}}
	v := NewVocabulary(docs)
	assert.Equal(t, 3, v.Len())

	for tok, want := range map[string]int{"a": 0, "b": 1, "c": 2} {
		i, ok := v.Index(tok)
		assert.True(t, ok)
		assert.Equal(t, want, i, tok)
	}
	_, ok := v.Index("d")
	assert.False(t, ok)

	assert.Equal(t, [][]float64{{2, 1, 0}, {0, 1, 1}}, CountMatrix(docs, v))
}

func TestCosineDistances(t *testing.T) {
	counts := [][]float64{
		{1, 0},
		{2, 0},
		{0, 3},
		{1, 1},
		{0, 0},
	}
	dists, err := CosineDistances(counts, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0, dists[0], 1e-12)
	assert.InDelta(t, 0, dists[1], 1e-12)
	assert.InDelta(t, 1, dists[2], 1e-12)
	assert.InDelta(t, 1-1/math.Sqrt2, dists[3], 1e-12)
	assert.Equal(t, 1.0, dists[4])

	_, err = CosineDistances(counts, 5)
	assert.ErrorIs(t, err, ErrModelRange)
	_, err = CosineDistances(counts, -1)
	assert.ErrorIs(t, err, ErrModelRange)
}

func TestNearest(t *testing.T) {
	dists := []float64{0, 0.5, 0.2, 0.2, 0.9}
	assert.Equal(t, []int{2, 3}, Nearest(dists, 0, 2))
	assert.Equal(t, []int{2, 3, 1, 4}, Nearest(dists, 0, 10))
	// A tie with the model's own distance doesn't drop the other sentence.
	assert.Equal(t, []int{1, 2}, Nearest([]float64{0, 0, 0.3}, 0, 2))
	assert.Equal(t, []int{2}, Nearest(dists, 0, 1))
	assert.Empty(t, Nearest(dists, 0, 0))
	assert.Empty(t, Nearest(dists, 0, -1))
}

func TestMatch(t *testing.T) {
	idxs, err := Match(catSentences, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 2}, idxs)

	idxs, err = Match(catSentences, 0, len(catSentences)-1)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 2, 3, 1, 5}, idxs)

	idxs, err = Match(catSentences, 0, -1)
	require.NoError(t, err)
	assert.Empty(t, idxs)

	_, err = Match(catSentences, len(catSentences), 1)
	assert.ErrorIs(t, err, ErrModelRange)
}

func TestMatchIdentical(t *testing.T) {
	sentences := []string{"the cat sat", "a dog ran", "The cat, sat.", "cat"}
	idxs, err := Match(sentences, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, idxs)
}

func TestReadSentences(t *testing.T) {
	r := strings.NewReader("first line\r\nsecond line\n\nfourth")
	sentences, err := ReadSentences(r)
	require.NoError(t, err)
	assert.Equal(t, []string{"first line", "second line", "", "fourth"}, sentences)
}
