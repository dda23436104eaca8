/*package textmatch finds the sentences in a list which are closest in meaning
to a model sentence. Sentences are reduced to bag-of-words count vectors and
compared by cosine distance.
*/
package textmatch

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// ErrModelRange is returned when the model sentence index is not a valid index
// into the sentence list.
var ErrModelRange = errors.New("textmatch: model index out of range")

var nonLetter = regexp.MustCompile("[^a-z]+")

// Tokenize lowercases s and splits it into runs of the letters a-z.
func Tokenize(s string) []string {
	parts := nonLetter.Split(strings.ToLower(s), -1)
	toks := parts[:0]
	for _, p := range parts {
		if p != "" {
			toks = append(toks, p)
		}
	}
	return toks
}

// Vocabulary assigns a column to every distinct token, in order of first
// appearance.
type Vocabulary struct {
	index map[string]int
}

// NewVocabulary builds the vocabulary of a set of tokenized documents.
func NewVocabulary(docs [][]string) *Vocabulary {
	v := &Vocabulary{index: map[string]int{}}
	for _, doc := range docs {
		for _, tok := range doc {
			if _, ok := v.index[tok]; !ok {
				v.index[tok] = len(v.index)
			}
		}
	}
	return v
}

// Len returns the number of distinct tokens.
func (v *Vocabulary) Len() int { return len(v.index) }

// Index returns the column of tok and whether tok is in the vocabulary.
func (v *Vocabulary) Index(tok string) (int, bool) {
	i, ok := v.index[tok]
	return i, ok
}

// CountMatrix returns one row per document counting how many times each
// vocabulary token occurs in it. Tokens missing from vocab are ignored.
func CountMatrix(docs [][]string, vocab *Vocabulary) [][]float64 {
	counts := make([][]float64, len(docs))
	for i, doc := range docs {
		counts[i] = make([]float64, vocab.Len())
		for _, tok := range doc {
			if j, ok := vocab.Index(tok); ok {
				counts[i][j]++
			}
		}
	}
	return counts
}

// CosineDistances returns 1 - cos(theta) between row model and every row of
// counts. The model's own entry is 0. Rows with no tokens are at distance 1.
func CosineDistances(counts [][]float64, model int) ([]float64, error) {
	if model < 0 || model >= len(counts) {
		return nil, fmt.Errorf(
			"%w: %d not in [0, %d)", ErrModelRange, model, len(counts),
		)
	}

	ref := counts[model]
	refNorm := floats.Norm(ref, 2)
	dists := make([]float64, len(counts))
	for i, row := range counts {
		if i == model {
			continue
		}
		norm := floats.Norm(row, 2)
		if norm == 0 || refNorm == 0 {
			dists[i] = 1
			continue
		}
		dists[i] = 1 - floats.Dot(ref, row)/(refNorm*norm)
	}
	return dists, nil
}

// Nearest returns the indices of the n smallest distances, skipping model.
// Equal distances keep their original order. Fewer than n indices are returned
// if there aren't enough candidates, and none if n <= 0.
func Nearest(dists []float64, model, n int) []int {
	if n <= 0 {
		return []int{}
	}
	sorted := make([]float64, len(dists))
	copy(sorted, dists)
	inds := make([]int, len(dists))
	floats.ArgsortStable(sorted, inds)

	out := make([]int, 0, n)
	for _, i := range inds {
		if len(out) == n {
			break
		}
		if i != model {
			out = append(out, i)
		}
	}
	return out
}

// Match returns the indices of the n sentences closest in meaning to
// sentences[model].
func Match(sentences []string, model, n int) ([]int, error) {
	docs := make([][]string, len(sentences))
	for i, s := range sentences {
		docs[i] = Tokenize(s)
	}
	counts := CountMatrix(docs, NewVocabulary(docs))

	dists, err := CosineDistances(counts, model)
	if err != nil {
		return nil, err
	}
	return Nearest(dists, model, n), nil
}

// ReadSentences reads one sentence per line from r.
func ReadSentences(r io.Reader) ([]string, error) {
	sentences := []string{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		sentences = append(sentences, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return sentences, nil
}
