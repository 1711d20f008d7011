package encode

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Special tokens every classifier vocabulary must define.
const (
	ClsToken = "[CLS]"
	SepToken = "[SEP]"
	UnkToken = "[UNK]"
	PadToken = "[PAD]"
)

// Vocab maps tokens to their ids.
type Vocab map[string]int

// LoadVocab reads a vocabulary in the one-token-per-line format used by
// BERT checkpoints; the id of a token is its line index. The special tokens
// [CLS], [SEP], [UNK] and [PAD] must be present.
func LoadVocab(r io.Reader) (Vocab, error) {
	v := Vocab{}
	scanner := bufio.NewScanner(r)
	id := 0
	for scanner.Scan() {
		v[scanner.Text()] = id
		id++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read vocab: %w", err)
	}

	for _, special := range []string{ClsToken, SepToken, UnkToken, PadToken} {
		if _, ok := v[special]; !ok {
			return nil, fmt.Errorf("vocab is missing the %s token", special)
		}
	}
	return v, nil
}

// LoadVocabFile reads a vocabulary from a file path.
func LoadVocabFile(path string) (Vocab, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadVocab(f)
}
