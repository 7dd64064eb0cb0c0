package scanner

import (
	"fmt"
	"strings"

	"github.com/npillmayer/automata"
)

// SentenceTokenizer splits a whitespace-separated sentence into tokens,
// translating every word through a token value map (as returned by the
// grammar bridge). Unknown words are reported through the error handler and
// skipped. After the last word, EOF tokens are produced indefinitely.
type SentenceTokenizer struct {
	words   []string
	tokvals map[string]int
	at      int
	pos     uint64
	Error   func(error)
}

var _ Tokenizer = (*SentenceTokenizer)(nil)

// Sentence creates a tokenizer over a whitespace-separated sentence.
func Sentence(input string, tokvals map[string]int) *SentenceTokenizer {
	return &SentenceTokenizer{
		words:   strings.Fields(input),
		tokvals: tokvals,
		Error:   logError,
	}
}

// SetErrorHandler sets an error handler for the scanner.
func (st *SentenceTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		st.Error = logError
		return
	}
	st.Error = h
}

// NextToken is part of the Tokenizer interface.
func (st *SentenceTokenizer) NextToken() automata.Token {
	for st.at < len(st.words) {
		word := st.words[st.at]
		st.at++
		from := st.pos
		st.pos += uint64(len(word)) + 1
		v, ok := st.tokvals[word]
		if !ok {
			st.Error(fmt.Errorf("token %q has no token value", word))
			continue
		}
		return DefaultToken{
			kind:   automata.TokType(v),
			lexeme: word,
			span:   automata.Span{from, from + uint64(len(word))},
		}
	}
	return DefaultToken{kind: EOF, lexeme: "", span: automata.Span{st.pos, st.pos}}
}
