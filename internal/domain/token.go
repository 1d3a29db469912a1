package domain

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// TokenKind identifies the type of a token in a task line.
type TokenKind int

const (
	TokenText       TokenKind = iota // Plain text, including separators
	TokenDoneMarker                  // Leading "x " after the indentation
	TokenContext                     // @word
	TokenProject                     // +word
	TokenTag                         // key:value, key:'phrase', key:"phrase"
)

// String returns the kind name.
func (k TokenKind) String() string {
	switch k {
	case TokenText:
		return "text"
	case TokenDoneMarker:
		return "done"
	case TokenContext:
		return "context"
	case TokenProject:
		return "project"
	case TokenTag:
		return "tag"
	default:
		return "unknown"
	}
}

// Token is a span of a task line.
// Start and End are byte offsets into the line, End exclusive.
// Concatenating the spans of all tokens reproduces the line.
type Token struct {
	Kind  TokenKind
	Start int
	End   int
	Key   string // Tag key
	Value string // Context/project name or tag value (without quotes)
	Quote byte   // Quote character of a quoted tag value, 0 for bare values
}

// Tokenize splits a task line into tokens.
// An unterminated quoted tag value is emitted as text and reported as a
// *TagSyntaxError; the returned tokens still cover the whole line.
func Tokenize(line string) ([]Token, error) {
	t := tokenizer{line: line}
	t.run()
	return t.tokens, t.err
}

type tokenizer struct {
	line      string
	tokens    []Token
	textStart int
	err       error
}

func (t *tokenizer) run() {
	pos := t.doneMarker()
	for pos < len(t.line) {
		r, size := utf8.DecodeRuneInString(t.line[pos:])
		switch {
		case (r == '@' || r == '+') && t.atBoundary(pos):
			end := scanWord(t.line, pos+1)
			if end == pos+1 {
				pos += size
				continue
			}
			kind := TokenContext
			if r == '+' {
				kind = TokenProject
			}
			t.emit(Token{Kind: kind, Start: pos, End: end, Value: t.line[pos+1 : end]})
			pos = end
		case isWordRune(r) && !t.afterWord(pos):
			pos = t.word(pos)
		default:
			pos += size
		}
	}
	t.flushText(len(t.line))
}

// doneMarker emits the leading indentation and "x " marker if present.
func (t *tokenizer) doneMarker() int {
	pos := 0
	for pos < len(t.line) {
		r, size := utf8.DecodeRuneInString(t.line[pos:])
		if !unicode.IsSpace(r) {
			break
		}
		pos += size
	}
	if pos >= len(t.line) || t.line[pos] != 'x' || pos+1 >= len(t.line) {
		return 0
	}
	r, size := utf8.DecodeRuneInString(t.line[pos+1:])
	if !unicode.IsSpace(r) {
		return 0
	}
	t.emit(Token{Kind: TokenDoneMarker, Start: pos, End: pos + 1 + size})
	return pos + 1 + size
}

// word handles a run of word characters starting at pos, which may be a tag key.
func (t *tokenizer) word(pos int) int {
	keyEnd := scanWord(t.line, pos)
	if keyEnd >= len(t.line) || t.line[keyEnd] != ':' {
		return keyEnd
	}
	key := t.line[pos:keyEnd]
	vs := keyEnd + 1
	if vs < len(t.line) && (t.line[vs] == '\'' || t.line[vs] == '"') {
		quote := t.line[vs]
		for i := vs + 1; i < len(t.line); i++ {
			if t.line[i] == quote {
				t.emit(Token{Kind: TokenTag, Start: pos, End: i + 1, Key: key, Value: t.line[vs+1 : i], Quote: quote})
				return i + 1
			}
		}
		if t.err == nil {
			t.err = &TagSyntaxError{Line: t.line, Offset: pos, Key: key, Reason: fmt.Sprintf("unterminated %c quote", quote)}
		}
		return vs
	}
	end := scanBareValue(t.line, vs)
	if end == vs {
		return vs
	}
	t.emit(Token{Kind: TokenTag, Start: pos, End: end, Key: key, Value: t.line[vs:end]})
	return end
}

func (t *tokenizer) emit(tok Token) {
	t.flushText(tok.Start)
	t.tokens = append(t.tokens, tok)
	t.textStart = tok.End
}

func (t *tokenizer) flushText(end int) {
	if end > t.textStart {
		t.tokens = append(t.tokens, Token{Kind: TokenText, Start: t.textStart, End: end, Value: t.line[t.textStart:end]})
	}
	t.textStart = end
}

func (t *tokenizer) atBoundary(pos int) bool {
	if pos == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(t.line[:pos])
	return unicode.IsSpace(r)
}

func (t *tokenizer) afterWord(pos int) bool {
	if pos == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(t.line[:pos])
	return isWordRune(r)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func scanWord(s string, pos int) int {
	for pos < len(s) {
		r, size := utf8.DecodeRuneInString(s[pos:])
		if !isWordRune(r) {
			break
		}
		pos += size
	}
	return pos
}

// scanBareValue scans word characters and '-'. The value must hold at least
// one word character, otherwise pos is returned.
func scanBareValue(s string, pos int) int {
	end := pos
	hasWord := false
	for end < len(s) {
		r, size := utf8.DecodeRuneInString(s[end:])
		if r != '-' && !isWordRune(r) {
			break
		}
		if r != '-' {
			hasWord = true
		}
		end += size
	}
	if !hasWord {
		return pos
	}
	return end
}

// isTagKey reports whether s is a valid tag key.
func isTagKey(s string) bool {
	return s != "" && scanWord(s, 0) == len(s)
}

// formatTag renders key:value, quoting the value when it is not a bare value.
func formatTag(key, value string) (string, error) {
	if !isTagKey(key) {
		return "", &TagSyntaxError{Key: key, Reason: "invalid tag key"}
	}
	if value != "" && scanBareValue(value, 0) == len(value) {
		return key + ":" + value, nil
	}
	for _, c := range value {
		if c == '\n' || c == '\r' {
			return "", &TagSyntaxError{Key: key, Reason: "tag value contains a line break"}
		}
	}
	switch {
	case !containsByte(value, '\''):
		return key + ":'" + value + "'", nil
	case !containsByte(value, '"'):
		return key + `:"` + value + `"`, nil
	default:
		return "", &TagSyntaxError{Key: key, Reason: "tag value contains both quote characters"}
	}
}

func containsByte(s string, c byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return true
		}
	}
	return false
}
