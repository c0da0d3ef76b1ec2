package document

import "github.com/lukasmwerner/harper/pkg/token"

// NextNonWhitespace returns the index of the first non-whitespace token after
// i, or -1 if there is none.
func (d *Document) NextNonWhitespace(i int) int {
	for j := i + 1; j < len(d.tokens); j++ {
		if !d.tokens[j].IsWhitespace() {
			return j
		}
	}
	return -1
}

// PrevNonWhitespace returns the index of the last non-whitespace token before
// i, or -1 if there is none.
func (d *Document) PrevNonWhitespace(i int) int {
	if i > len(d.tokens) {
		i = len(d.tokens)
	}
	for j := i - 1; j >= 0; j-- {
		if !d.tokens[j].IsWhitespace() {
			return j
		}
	}
	return -1
}

// Sentence is a run of tokens ending with terminal punctuation or the end of
// the document. First and Last are token indices, inclusive.
type Sentence struct {
	First int
	Last  int
}

// Span returns the rune span covered by the sentence.
func (s Sentence) Span(d *Document) token.Span {
	return d.tokens[s.First].Span.Cover(d.tokens[s.Last].Span)
}

// Sentences splits the token stream into sentences. Leading whitespace is
// not part of a sentence and whitespace-only documents have none.
func (d *Document) Sentences() []Sentence {
	var out []Sentence
	start := -1
	for i, tok := range d.tokens {
		if start == -1 {
			if tok.IsWhitespace() {
				continue
			}
			start = i
		}
		if d.IsSentenceTerminator(i) {
			out = append(out, Sentence{First: start, Last: i})
			start = -1
		}
	}
	if start != -1 {
		last := len(d.tokens) - 1
		for last > start && d.tokens[last].IsWhitespace() {
			last--
		}
		out = append(out, Sentence{First: start, Last: last})
	}
	return out
}

// IsSentenceTerminator reports whether token i ends a sentence: a period,
// question mark, exclamation mark or ellipsis that is not directly followed
// by a word (as in "e.g" or "3.5").
func (d *Document) IsSentenceTerminator(i int) bool {
	if i < 0 || i >= len(d.tokens) {
		return false
	}
	tok := d.tokens[i]
	if !tok.IsPunctuation() {
		return false
	}
	switch d.runes[tok.Span.Start] {
	case '.', '?', '!', '…':
	default:
		return false
	}
	if i+1 < len(d.tokens) && d.tokens[i+1].IsWord() {
		return false
	}
	return true
}

// Words returns the indices of all Word tokens.
func (d *Document) Words() []int {
	var out []int
	for i, tok := range d.tokens {
		if tok.IsWord() {
			out = append(out, i)
		}
	}
	return out
}
