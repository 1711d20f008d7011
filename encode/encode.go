// Package encode prepares fixed-size classifier input from token lists: the
// [CLS]/[SEP] sequence assembly, vocabulary id lookup, padding to a maximum
// length and the input mask. Tokenization itself (wordpiece) is out of scope;
// the token lists arrive pre-split.
package encode

// Input is the model-ready form of a question/passage pair.
type Input struct {
	Tokens []string `json:"tokens"`
	IDs    []int    `json:"ids"`
	Mask   []bool   `json:"mask"`
}

// Encoder turns token lists into padded id sequences using a fixed
// vocabulary.
type Encoder struct {
	Vocab Vocab
}

// Pair combines question and passage tokens into a single sequence:
// [CLS], the question, [SEP], then the passage.
func (e *Encoder) Pair(question, passage []string) []string {
	tokens := make([]string, 0, len(question)+len(passage)+2)
	tokens = append(tokens, ClsToken)
	tokens = append(tokens, question...)
	tokens = append(tokens, SepToken)
	tokens = append(tokens, passage...)
	return tokens
}

// IDs maps tokens to vocabulary ids, substituting [UNK] for tokens the
// vocabulary does not contain.
func (e *Encoder) IDs(tokens []string) []int {
	unk := e.Vocab[UnkToken]
	ids := make([]int, len(tokens))
	for i, tok := range tokens {
		id, ok := e.Vocab[tok]
		if !ok {
			id = unk
		}
		ids[i] = id
	}
	return ids
}

// Pad returns ids padded with the [PAD] id to exactly maxLen. Sequences
// longer than maxLen are truncated from the front, keeping the most recent
// tokens. With post set, padding goes after the sequence, otherwise before.
func (e *Encoder) Pad(ids []int, maxLen int, post bool) []int {
	pad := e.Vocab[PadToken]

	if len(ids) >= maxLen {
		out := make([]int, maxLen)
		copy(out, ids[len(ids)-maxLen:])
		return out
	}

	out := make([]int, maxLen)
	if post {
		copy(out, ids)
		for i := len(ids); i < maxLen; i++ {
			out[i] = pad
		}
		return out
	}
	for i := 0; i < maxLen-len(ids); i++ {
		out[i] = pad
	}
	copy(out[maxLen-len(ids):], ids)
	return out
}

// Mask reports which positions of a padded sequence hold real tokens:
// true for tokens, false for padding.
func (e *Encoder) Mask(ids []int) []bool {
	pad := e.Vocab[PadToken]
	mask := make([]bool, len(ids))
	for i, id := range ids {
		mask[i] = id != pad
	}
	return mask
}

// Encode runs the full preparation: pair assembly, id lookup, post-padding
// to maxLen and the input mask.
func (e *Encoder) Encode(question, passage []string, maxLen int) Input {
	tokens := e.Pair(question, passage)
	ids := e.Pad(e.IDs(tokens), maxLen, true)
	return Input{
		Tokens: tokens,
		IDs:    ids,
		Mask:   e.Mask(ids),
	}
}
