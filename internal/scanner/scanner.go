package scanner

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/exp/slices"

	"github.com/leonardinius/golean/internal/leanerrors"
	"github.com/leonardinius/golean/internal/token"
)

// Scanner turns source text into tokens.
type Scanner interface {
	Scan() ([]token.Token, error)
}

var reservedKeywords = map[string]struct{}{
	"axiom":     {},
	"by":        {},
	"def":       {},
	"end":       {},
	"from":      {},
	"fun":       {},
	"have":      {},
	"import":    {},
	"in":        {},
	"let":       {},
	"namespace": {},
	"show":      {},
	"theorem":   {},
	"universe":  {},
	"variable":  {},
}

var identifierSuffixes = []rune{'_', '\'', '!', '?'}

var escapes = map[rune]rune{
	'n':  '\n',
	't':  '\t',
	'\\': '\\',
	'"':  '"',
}

type scanner struct {
	source         []rune
	tokens         []token.Token
	start, current int
	// lineStart is the index of the first rune of the current line.
	lineStart int
	line      uint
	// position of the lexeme being scanned
	startLine, startPos uint
}

// NewScanner returns a new Scanner.
func NewScanner(input string) Scanner {
	return &scanner{source: []rune(input), line: 1}
}

// Scan implements Scanner.
//
// Scanning stops at the first failure. The tokens read so far are returned
// with it, terminated by EOF.
func (s *scanner) Scan() (tokens []token.Token, err error) {
	defer func() {
		s.tokens = append(s.tokens, token.NewToken(token.EOF, "", nil, s.line, s.column()))
		tokens = s.tokens
	}()
	defer leanerrors.Recover(&err)

	for !s.isAtEnd() {
		// We are at the beginning of the next lexeme.
		s.start = s.current
		s.startLine, s.startPos = s.line, s.column()
		s.scanToken()
	}

	return s.tokens, nil
}

func (s *scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func (s *scanner) column() uint {
	return uint(s.current - s.lineStart)
}

func (s *scanner) scanToken() {
	var c = s.advance()

	switch c {
	case '(':
		s.addToken(token.LEFT_PAREN)
	case ')':
		s.addToken(token.RIGHT_PAREN)
	case '{':
		s.addToken(token.LEFT_BRACE)
	case '}':
		s.addToken(token.RIGHT_BRACE)
	case '[':
		s.addToken(token.LEFT_BRACKET)
	case ']':
		s.addToken(token.RIGHT_BRACKET)
	case ',':
		s.addToken(token.COMMA)
	case '.':
		s.addToken(token.DOT)
	case '+':
		s.addToken(token.PLUS)
	case '*':
		s.addToken(token.STAR)
	case '=':
		s.addToken(token.EQUAL)
	case 'λ':
		s.addToken(token.LAMBDA)
	case '→':
		s.addToken(token.ARROW)
	case ':':
		s.addMatchToken('=', token.ASSIGN, token.COLON)
	case '<':
		s.addMatchToken('=', token.LESS_EQUAL, token.LESS)
	case '>':
		s.addMatchToken('=', token.GREATER_EQUAL, token.GREATER)
	case '-':
		if s.match('-') {
			s.comment()
		} else {
			s.addMatchToken('>', token.ARROW, token.MINUS)
		}
	case '/':
		if s.match('-') {
			s.blockComment()
		} else {
			s.addToken(token.SLASH)
		}
	case ' ', '\r', '\t', '\n':
		// Ignore whitespace.
	case '"':
		s.string()
	default:
		if s.isDigit(c) {
			s.number()
		} else if s.isIdentifierStart(c) {
			s.identifierOrKeyword()
		} else {
			s.reportUnexpectedCharacter(c)
		}
	}
}

func (s *scanner) peek() rune {
	if s.isAtEnd() {
		return '\000'
	}
	return s.source[s.current]
}

func (s *scanner) peekNext() rune {
	if s.current+1 >= len(s.source) {
		return '\000'
	}
	return s.source[s.current+1]
}

func (s *scanner) advance() rune {
	c := s.source[s.current]
	s.current++
	if c == '\n' {
		s.line++
		s.lineStart = s.current
	}
	return c
}

func (s *scanner) match(expected rune) bool {
	if !s.isAtEnd() && expected == s.peek() {
		s.advance()
		return true
	}

	return false
}

func (s *scanner) addMatchToken(lookAhead rune, ifMatch, ifNotMatched token.TokenType) {
	if s.match(lookAhead) {
		s.addToken(ifMatch)
	} else {
		s.addToken(ifNotMatched)
	}
}

func (s *scanner) addToken(t token.TokenType) {
	s.addTokenLiteral(t, nil)
}

func (s *scanner) addTokenLiteral(t token.TokenType, literal any) {
	lexeme := string(s.source[s.start:s.current])
	s.tokens = append(s.tokens, token.NewToken(t, lexeme, literal, s.startLine, s.startPos))
}

func (s *scanner) comment() {
	for s.peek() != '\n' && !s.isAtEnd() {
		s.advance()
	}
}

func (s *scanner) blockComment() {
	depth := 1

	for !s.isAtEnd() && depth > 0 {
		if s.peek() == '-' && s.peekNext() == '/' {
			depth--
			s.advance()
			s.advance()
		} else if s.peek() == '/' && s.peekNext() == '-' {
			depth++
			s.advance()
			s.advance()
		} else {
			s.advance()
		}
	}

	if depth > 0 {
		s.reportError(leanerrors.ErrScanUnterminatedComment)
	}
}

func (s *scanner) string() {
	value := new(strings.Builder)

	for !s.isAtEnd() && s.peek() != '"' {
		if s.peek() != '\\' {
			_, _ = value.WriteRune(s.advance())
			continue
		}

		escLine, escPos := s.line, s.column()
		s.advance()
		if s.isAtEnd() {
			break
		}
		c := s.advance()
		unescaped, ok := escapes[c]
		if !ok {
			s.reportErrorAt(leanerrors.ErrScanInvalidEscape.Detailf("'\\%c'", c), escLine, escPos)
		}
		_, _ = value.WriteRune(unescaped)
	}

	if s.isAtEnd() {
		s.reportError(leanerrors.ErrScanUnterminatedString)
	}

	// The closing ".
	s.advance()

	s.addTokenLiteral(token.STRING, value.String())
}

func (s *scanner) number() {
	for s.isDigit(s.peek()) {
		s.advance()
	}

	fraction := false
	if s.peek() == '.' && s.isDigit(s.peekNext()) {
		fraction = true
		s.advance()

		for s.isDigit(s.peek()) {
			s.advance()
		}
	}

	svalue := string(s.source[s.start:s.current])
	if fraction {
		value, err := strconv.ParseFloat(svalue, 64)
		if err != nil {
			s.reportError(leanerrors.ErrScanInvalidNumber.Detailf("%s", svalue))
		}
		s.addTokenLiteral(token.NUMBER, value)
		return
	}

	value, err := strconv.ParseInt(svalue, 10, 64)
	if err != nil {
		s.reportError(leanerrors.ErrScanInvalidNumber.Detailf("%s", svalue))
	}
	s.addTokenLiteral(token.NUMBER, value)
}

func (s *scanner) identifierOrKeyword() {
	for {
		for s.isIdentifierRest(s.peek()) {
			s.advance()
		}
		// Hierarchical names: Nat.succ
		if s.peek() == '.' && s.isIdentifierStart(s.peekNext()) {
			s.advance()
			continue
		}
		break
	}

	name := string(s.source[s.start:s.current])
	if _, ok := reservedKeywords[name]; ok {
		s.addToken(token.KEYWORD)
		return
	}
	s.addToken(token.IDENTIFIER)
}

func (s *scanner) isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func (s *scanner) isIdentifierStart(c rune) bool {
	return c == '_' || (unicode.IsLetter(c) && c != 'λ')
}

func (s *scanner) isIdentifierRest(c rune) bool {
	return s.isIdentifierStart(c) || s.isDigit(c) || slices.Contains(identifierSuffixes, c)
}

var _ Scanner = (*scanner)(nil)
