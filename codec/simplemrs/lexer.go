package simplemrs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/semkit/semkit/sem"
)

type tokenKind int

const (
	tokOpen tokenKind = iota + 1 // [
	tokClose                     // ]
	tokLnk                       // <0:5> <0#2> <1 2> <@3>
	tokString                    // "double quoted"
	tokSymbol                    // 'single quoted
	tokListOpen                  // <
	tokListClose                 // >
	tokFeature                   // NAME:
	tokText                      // variables, predicates, relations
	tokEOF
)

type token struct {
	kind tokenKind
	text string
	lnk  sem.Lnk
	line int
}

// lexer tokenizes the bracketed notation line by line. Features are
// upcased and plain symbols downcased, so case never matters on input.
type lexer struct {
	lines []string
	line  int // 1-based, current
	pos   int
	buf   *token // single-token lookahead
}

func newLexer(input string) *lexer {
	return &lexer{lines: strings.Split(input, "\n"), line: 1}
}

func (lx *lexer) peek() (token, error) {
	if lx.buf == nil {
		t, err := lx.lex()
		if err != nil {
			return token{}, err
		}
		lx.buf = &t
	}
	return *lx.buf, nil
}

func (lx *lexer) next() (token, error) {
	if lx.buf != nil {
		t := *lx.buf
		lx.buf = nil
		return t, nil
	}
	return lx.lex()
}

func (lx *lexer) lex() (token, error) {
	for {
		if lx.line > len(lx.lines) {
			return token{kind: tokEOF, line: lx.line}, nil
		}
		cur := lx.lines[lx.line-1]
		for lx.pos < len(cur) && (cur[lx.pos] == ' ' || cur[lx.pos] == '\t') {
			lx.pos++
		}
		if lx.pos >= len(cur) {
			lx.line++
			lx.pos = 0
			continue
		}
		break
	}
	cur := lx.lines[lx.line-1]
	switch c := cur[lx.pos]; c {
	case '[':
		lx.pos++
		return token{kind: tokOpen, line: lx.line}, nil
	case ']':
		lx.pos++
		return token{kind: tokClose, line: lx.line}, nil
	case '"':
		return lx.lexString(cur)
	case '\'':
		lx.pos++
		start := lx.pos
		for lx.pos < len(cur) && !strings.ContainsRune(" \t:<>[]", rune(cur[lx.pos])) {
			lx.pos++
		}
		return token{kind: tokSymbol, text: strings.ToLower(cur[start:lx.pos]), line: lx.line}, nil
	case '<':
		return lx.lexAngle(cur)
	case '>':
		lx.pos++
		return token{kind: tokListClose, line: lx.line}, nil
	default:
		return lx.lexText(cur)
	}
}

func (lx *lexer) lexString(cur string) (token, error) {
	var b strings.Builder
	i := lx.pos + 1
	for i < len(cur) {
		switch cur[i] {
		case '\\':
			if i+1 < len(cur) {
				b.WriteByte(cur[i+1])
				i += 2
				continue
			}
			i++
		case '"':
			lx.pos = i + 1
			return token{kind: tokString, text: b.String(), line: lx.line}, nil
		default:
			b.WriteByte(cur[i])
			i++
		}
	}
	return token{}, fmt.Errorf("%w: line %d: unterminated string", ErrDecode, lx.line)
}

// lexAngle distinguishes alignment markers from list delimiters: an
// alignment runs to '>' on the same line using only digits, '-', ':',
// '#', '@' and spaces.
func (lx *lexer) lexAngle(cur string) (token, error) {
	end := strings.IndexByte(cur[lx.pos:], '>')
	if end > 0 {
		body := cur[lx.pos+1 : lx.pos+end]
		if lnk, ok := parseLnk(body); ok {
			lx.pos += end + 1
			return token{kind: tokLnk, lnk: lnk, line: lx.line}, nil
		}
	}
	lx.pos++
	return token{kind: tokListOpen, line: lx.line}, nil
}

func parseLnk(body string) (sem.Lnk, bool) {
	if body == "" {
		return sem.Lnk{}, false
	}
	if strings.HasPrefix(body, "@") {
		if n, err := strconv.Atoi(body[1:]); err == nil {
			return sem.EdgeLnk(n), true
		}
		return sem.Lnk{}, false
	}
	if i := strings.IndexByte(body, ':'); i >= 0 {
		from, err1 := strconv.Atoi(body[:i])
		to, err2 := strconv.Atoi(body[i+1:])
		if err1 == nil && err2 == nil {
			return sem.CharSpan(from, to), true
		}
		return sem.Lnk{}, false
	}
	if i := strings.IndexByte(body, '#'); i >= 0 {
		from, err1 := strconv.Atoi(body[:i])
		to, err2 := strconv.Atoi(body[i+1:])
		if err1 == nil && err2 == nil {
			return sem.ChartSpan(from, to), true
		}
		return sem.Lnk{}, false
	}
	var toks []int
	for _, f := range strings.Fields(body) {
		n, err := strconv.Atoi(f)
		if err != nil {
			return sem.Lnk{}, false
		}
		toks = append(toks, n)
	}
	if len(toks) == 0 {
		return sem.Lnk{}, false
	}
	return sem.TokenLnk(toks...), true
}

func (lx *lexer) lexText(cur string) (token, error) {
	start := lx.pos
	for lx.pos < len(cur) && !strings.ContainsRune(" \t:<>[]\"", rune(cur[lx.pos])) {
		lx.pos++
	}
	text := cur[start:lx.pos]
	if lx.pos < len(cur) && cur[lx.pos] == ':' {
		lx.pos++
		return token{kind: tokFeature, text: strings.ToUpper(text), line: lx.line}, nil
	}
	return token{kind: tokText, text: strings.ToLower(text), line: lx.line}, nil
}
