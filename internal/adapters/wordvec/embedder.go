// Package wordvec implements the text-similarity oracle behind chat
// intent classification: word2vec-format vectors loaded from disk,
// averaged per text, compared by cosine similarity.
package wordvec

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

type Embedder struct {
	dim  int
	vecs map[string][]float32
}

// Load reads vectors in the word2vec text format: an optional
// "<count> <dim>" header, then one "word v1 v2 ..." line per word.
func Load(path string) (*Embedder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	e := &Embedder{vecs: make(map[string][]float32)}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 2 && e.dim == 0 {
			// header line
			continue
		}
		if len(fields) < 2 {
			continue
		}
		word := fields[0]
		vec := make([]float32, 0, len(fields)-1)
		ok := true
		for _, s := range fields[1:] {
			v, err := strconv.ParseFloat(s, 32)
			if err != nil {
				ok = false
				break
			}
			vec = append(vec, float32(v))
		}
		if !ok {
			continue
		}
		if e.dim == 0 {
			e.dim = len(vec)
		}
		if len(vec) != e.dim {
			return nil, fmt.Errorf("wordvec: inconsistent dimension for %q: %d != %d", word, len(vec), e.dim)
		}
		e.vecs[strings.ToLower(word)] = vec
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(e.vecs) == 0 {
		return nil, fmt.Errorf("wordvec: no vectors in %s", path)
	}
	return e, nil
}

func (e *Embedder) Len() int { return len(e.vecs) }

// Similarity returns the cosine similarity of the averaged token
// vectors of a and b, or 0 when either text has no known tokens.
func (e *Embedder) Similarity(a, b string) float64 {
	va, oka := e.embed(a)
	vb, okb := e.embed(b)
	if !oka || !okb {
		return 0
	}
	return cosine(va, vb)
}

func (e *Embedder) embed(text string) ([]float64, bool) {
	sum := make([]float64, e.dim)
	n := 0
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		tok = strings.TrimFunc(tok, func(r rune) bool {
			return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
		})
		v, ok := e.vecs[tok]
		if !ok {
			continue
		}
		for i, x := range v {
			sum[i] += float64(x)
		}
		n++
	}
	if n == 0 {
		return nil, false
	}
	for i := range sum {
		sum[i] /= float64(n)
	}
	return sum, true
}

func cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
