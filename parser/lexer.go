package parser

import (
	"strconv"
	"strings"
	"unicode"
)

type TokenKind int

const (
	TokEOL TokenKind = iota
	TokKeyword
	TokIdent
	TokNumber
	TokString
	TokOp
)

func (k TokenKind) String() string {
	switch k {
	case TokEOL:
		return "end of line"
	case TokKeyword:
		return "keyword"
	case TokIdent:
		return "identifier"
	case TokNumber:
		return "number"
	case TokString:
		return "string"
	case TokOp:
		return "operator"
	default:
		return "unknown"
	}
}

// Token is one lexical unit of a line. Lit holds the keyword (upper case),
// identifier text, operator or string value; numbers also set Int or Float.
// A REM token carries the rest of its line verbatim in Comment.
type Token struct {
	Kind    TokenKind
	Lit     string
	Comment string
	IsFloat bool
	Int     int64
	Float   float64
	Col     int
}

var keywords = map[string]struct{}{
	"REM":    {},
	"PRINT":  {},
	"IF":     {},
	"THEN":   {},
	"GOTO":   {},
	"INPUT":  {},
	"LET":    {},
	"GOSUB":  {},
	"RETURN": {},
	"TAB":    {},
	"SQR":    {},
	"INT":    {},
	"RND":    {},
	"ABS":    {},
	"END":    {},
	"LIST":   {},
	"RUN":    {},
	"CLEAR":  {},
}

// IsKeyword reports whether word is reserved, ignoring case.
func IsKeyword(word string) bool {
	_, ok := keywords[strings.ToUpper(word)]
	return ok
}

// Tokenize splits one line of statement text (without its line number) into
// tokens. The returned slice always ends with a TokEOL token.
func Tokenize(line int, text string) ([]Token, error) {
	r := []rune(text)
	toks := make([]Token, 0, len(r)/2+1)
	for i := 0; i < len(r); {
		ch := r[i]
		if unicode.IsSpace(ch) {
			i++
			continue
		}
		if isIdentStart(ch) {
			j := i + 1
			for j < len(r) && isIdentPart(r[j]) {
				j++
			}
			word := string(r[i:j])
			upper := strings.ToUpper(word)
			if _, ok := keywords[upper]; !ok {
				toks = append(toks, Token{Kind: TokIdent, Lit: word, Col: i})
				i = j
				continue
			}
			if upper == "REM" {
				toks = append(toks, Token{Kind: TokKeyword, Lit: "REM", Comment: string(r[j:]), Col: i})
				i = len(r)
				continue
			}
			toks = append(toks, Token{Kind: TokKeyword, Lit: upper, Col: i})
			i = j
			continue
		}
		if isDigit(ch) {
			tok, next, err := scanNumber(line, text, r, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i = next
			continue
		}
		if ch == '"' {
			j := i + 1
			for j < len(r) && r[j] != '"' {
				j++
			}
			if j >= len(r) {
				return nil, newSyntaxError(LexError, line, i, text, ErrUnterminatedString, "missing closing quote")
			}
			toks = append(toks, Token{Kind: TokString, Lit: string(r[i+1 : j]), Col: i})
			i = j + 1
			continue
		}
		if i+1 < len(r) {
			two := string(r[i : i+2])
			switch two {
			case "<>", "<=", ">=":
				toks = append(toks, Token{Kind: TokOp, Lit: two, Col: i})
				i += 2
				continue
			}
		}
		switch ch {
		case '+', '-', '*', '/', '=', '<', '>', '(', ')', ',', ';':
			toks = append(toks, Token{Kind: TokOp, Lit: string(ch), Col: i})
			i++
		default:
			return nil, newSyntaxError(LexError, line, i, text, ErrInvalidCharacter, "invalid character %q", ch)
		}
	}
	toks = append(toks, Token{Kind: TokEOL, Col: len(r)})
	return toks, nil
}

func scanNumber(line int, text string, r []rune, i int) (Token, int, error) {
	j := i
	for j < len(r) && isDigit(r[j]) {
		j++
	}
	if j < len(r) && r[j] == '.' {
		j++
		for j < len(r) && isDigit(r[j]) {
			j++
		}
	}
	if j < len(r) && (r[j] == 'E' || r[j] == 'e') {
		k := j + 1
		if k < len(r) && r[k] == '-' {
			k++
		}
		if k < len(r) && isDigit(r[k]) {
			for k < len(r) && isDigit(r[k]) {
				k++
			}
			j = k
		}
	}
	raw := string(r[i:j])
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return Token{Kind: TokNumber, Lit: raw, Int: n, Col: i}, j, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Token{}, 0, newSyntaxError(LexError, line, i, text, ErrInvalidNumber, "invalid number %q", raw)
	}
	return Token{Kind: TokNumber, Lit: raw, IsFloat: true, Float: f, Col: i}, j, nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return unicode.IsLetter(r) || isDigit(r) || r == '_'
}
