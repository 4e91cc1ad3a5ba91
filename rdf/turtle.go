package rdf

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/c360studio/ontoschema/vocabulary"
)

// DecodeTurtle parses the line-oriented compact serialization into a graph.
// The supported subset covers what the authoring tools emit: @prefix
// directives, prefixed names, IRI references, the 'a' keyword, literals
// with optional ^^datatype, numeric and boolean shorthand, ';' and ','
// continuation, anonymous blank nodes '[ ... ]', and collections '( ... )'.
func DecodeTurtle(data []byte) (*Graph, error) {
	p := &turtleParser{
		scan:     newScanner(string(data)),
		graph:    NewGraph(),
		prefixes: make(map[string]string),
	}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.graph, nil
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIRI           // <...>
	tokPName         // prefix:local or prefix:
	tokString        // "..."
	tokNumber
	tokKeyword // a, true, false, @prefix
	tokPunct   // . ; , [ ] ( ) ^^
)

type token struct {
	kind  tokenKind
	value string
	line  int
}

type scanner struct {
	src  string
	pos  int
	line int
}

func newScanner(src string) *scanner {
	return &scanner{src: src, line: 1}
}

func (s *scanner) errf(format string, args ...any) error {
	return fmt.Errorf("turtle: line %d: %s", s.line, fmt.Sprintf(format, args...))
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == '\n':
			s.line++
			s.pos++
		case c == ' ' || c == '\t' || c == '\r':
			s.pos++
		case c == '#':
			for s.pos < len(s.src) && s.src[s.pos] != '\n' {
				s.pos++
			}
		default:
			return
		}
	}
}

func (s *scanner) next() (token, error) {
	s.skipSpace()
	if s.pos >= len(s.src) {
		return token{kind: tokEOF, line: s.line}, nil
	}
	c := s.src[s.pos]
	switch {
	case c == '<':
		end := strings.IndexByte(s.src[s.pos:], '>')
		if end < 0 {
			return token{}, s.errf("unterminated IRI reference")
		}
		iri := s.src[s.pos+1 : s.pos+end]
		s.pos += end + 1
		return token{kind: tokIRI, value: iri, line: s.line}, nil
	case c == '"':
		return s.scanString()
	case c == '^':
		if s.pos+1 < len(s.src) && s.src[s.pos+1] == '^' {
			s.pos += 2
			return token{kind: tokPunct, value: "^^", line: s.line}, nil
		}
		return token{}, s.errf("unexpected '^'")
	case strings.ContainsRune(".;,[]()", rune(c)):
		s.pos++
		return token{kind: tokPunct, value: string(c), line: s.line}, nil
	case c == '@':
		start := s.pos
		s.pos++
		for s.pos < len(s.src) && unicode.IsLetter(rune(s.src[s.pos])) {
			s.pos++
		}
		return token{kind: tokKeyword, value: s.src[start:s.pos], line: s.line}, nil
	case c == '+' || c == '-' || (c >= '0' && c <= '9'):
		start := s.pos
		s.pos++
		for s.pos < len(s.src) && (s.src[s.pos] == '.' || s.src[s.pos] >= '0' && s.src[s.pos] <= '9') {
			// A trailing '.' is the statement terminator, not part of
			// the number.
			if s.src[s.pos] == '.' && (s.pos+1 >= len(s.src) || s.src[s.pos+1] < '0' || s.src[s.pos+1] > '9') {
				break
			}
			s.pos++
		}
		return token{kind: tokNumber, value: s.src[start:s.pos], line: s.line}, nil
	default:
		start := s.pos
		for s.pos < len(s.src) && isPNameChar(s.src[s.pos]) {
			s.pos++
		}
		if s.pos == start {
			return token{}, s.errf("unexpected character %q", c)
		}
		word := s.src[start:s.pos]
		// A trailing '.' belongs to the statement terminator, not the name.
		for strings.HasSuffix(word, ".") {
			word = word[:len(word)-1]
			s.pos--
		}
		if word == "a" || word == "true" || word == "false" {
			return token{kind: tokKeyword, value: word, line: s.line}, nil
		}
		if strings.Contains(word, ":") {
			return token{kind: tokPName, value: word, line: s.line}, nil
		}
		return token{}, s.errf("unexpected token %q", word)
	}
}

func isPNameChar(c byte) bool {
	return c == ':' || c == '_' || c == '-' || c == '.' ||
		c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func (s *scanner) scanString() (token, error) {
	line := s.line
	s.pos++ // opening quote
	var sb strings.Builder
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch c {
		case '"':
			s.pos++
			return token{kind: tokString, value: sb.String(), line: line}, nil
		case '\\':
			if s.pos+1 >= len(s.src) {
				return token{}, s.errf("unterminated escape sequence")
			}
			s.pos++
			switch s.src[s.pos] {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			default:
				return token{}, s.errf("unsupported escape \\%c", s.src[s.pos])
			}
			s.pos++
		case '\n':
			return token{}, s.errf("unterminated string literal")
		default:
			sb.WriteByte(c)
			s.pos++
		}
	}
	return token{}, s.errf("unterminated string literal")
}

type turtleParser struct {
	scan     *scanner
	graph    *Graph
	prefixes map[string]string
	peeked   *token
}

func (p *turtleParser) next() (token, error) {
	if p.peeked != nil {
		t := *p.peeked
		p.peeked = nil
		return t, nil
	}
	return p.scan.next()
}

func (p *turtleParser) peek() (token, error) {
	if p.peeked == nil {
		t, err := p.scan.next()
		if err != nil {
			return token{}, err
		}
		p.peeked = &t
	}
	return *p.peeked, nil
}

func (p *turtleParser) errf(line int, format string, args ...any) error {
	return fmt.Errorf("turtle: line %d: %s", line, fmt.Sprintf(format, args...))
}

func (p *turtleParser) parse() error {
	for {
		tok, err := p.peek()
		if err != nil {
			return err
		}
		switch {
		case tok.kind == tokEOF:
			return nil
		case tok.kind == tokKeyword && tok.value == "@prefix":
			if err := p.parsePrefix(); err != nil {
				return err
			}
		default:
			if err := p.parseStatement(); err != nil {
				return err
			}
		}
	}
}

func (p *turtleParser) parsePrefix() error {
	tok, _ := p.next() // @prefix
	name, err := p.next()
	if err != nil {
		return err
	}
	if name.kind != tokPName || !strings.HasSuffix(name.value, ":") {
		return p.errf(tok.line, "@prefix expects a prefix name ending in ':'")
	}
	iri, err := p.next()
	if err != nil {
		return err
	}
	if iri.kind != tokIRI {
		return p.errf(tok.line, "@prefix expects an IRI reference")
	}
	if err := p.expectPunct("."); err != nil {
		return err
	}
	p.prefixes[strings.TrimSuffix(name.value, ":")] = iri.value
	return nil
}

func (p *turtleParser) parseStatement() error {
	subject, err := p.parseSubject()
	if err != nil {
		return err
	}
	if err := p.parsePredicateObjectList(subject); err != nil {
		return err
	}
	return p.expectPunct(".")
}

func (p *turtleParser) parseSubject() (Term, error) {
	tok, err := p.next()
	if err != nil {
		return Term{}, err
	}
	switch {
	case tok.kind == tokIRI:
		return IRITerm(tok.value), nil
	case tok.kind == tokPName:
		iri, err := p.expandPName(tok)
		if err != nil {
			return Term{}, err
		}
		return IRITerm(iri), nil
	case tok.kind == tokPunct && tok.value == "[":
		return p.parseBlankNodeBody(tok.line)
	default:
		return Term{}, p.errf(tok.line, "expected subject, got %q", tok.value)
	}
}

func (p *turtleParser) parsePredicateObjectList(subject Term) error {
	for {
		verb, err := p.next()
		if err != nil {
			return err
		}
		var predicate string
		switch {
		case verb.kind == tokKeyword && verb.value == "a":
			predicate = vocabulary.RDFType
		case verb.kind == tokIRI:
			predicate = verb.value
		case verb.kind == tokPName:
			predicate, err = p.expandPName(verb)
			if err != nil {
				return err
			}
		default:
			return p.errf(verb.line, "expected predicate, got %q", verb.value)
		}

		for {
			object, err := p.parseObject()
			if err != nil {
				return err
			}
			p.graph.Add(Triple{Subject: subject, Predicate: predicate, Object: object})
			tok, err := p.peek()
			if err != nil {
				return err
			}
			if tok.kind == tokPunct && tok.value == "," {
				p.next()
				continue
			}
			break
		}

		tok, err := p.peek()
		if err != nil {
			return err
		}
		if tok.kind == tokPunct && tok.value == ";" {
			p.next()
			// Tolerate a trailing ';' before '.' or ']'.
			after, err := p.peek()
			if err != nil {
				return err
			}
			if after.kind == tokPunct && (after.value == "." || after.value == "]") {
				return nil
			}
			continue
		}
		return nil
	}
}

func (p *turtleParser) parseObject() (Term, error) {
	tok, err := p.next()
	if err != nil {
		return Term{}, err
	}
	switch {
	case tok.kind == tokIRI:
		return IRITerm(tok.value), nil
	case tok.kind == tokPName:
		iri, err := p.expandPName(tok)
		if err != nil {
			return Term{}, err
		}
		return IRITerm(iri), nil
	case tok.kind == tokString:
		return p.parseLiteralTail(tok)
	case tok.kind == tokNumber:
		if strings.Contains(tok.value, ".") {
			return LiteralTerm(tok.value, vocabulary.XSDDecimal), nil
		}
		return LiteralTerm(tok.value, vocabulary.XSDInteger), nil
	case tok.kind == tokKeyword && (tok.value == "true" || tok.value == "false"):
		return LiteralTerm(tok.value, vocabulary.XSDBoolean), nil
	case tok.kind == tokPunct && tok.value == "[":
		return p.parseBlankNodeBody(tok.line)
	case tok.kind == tokPunct && tok.value == "(":
		return p.parseCollection()
	default:
		return Term{}, p.errf(tok.line, "expected object, got %q", tok.value)
	}
}

// parseLiteralTail handles the optional ^^datatype suffix of a string.
func (p *turtleParser) parseLiteralTail(str token) (Term, error) {
	tok, err := p.peek()
	if err != nil {
		return Term{}, err
	}
	if tok.kind != tokPunct || tok.value != "^^" {
		return LiteralTerm(str.value, ""), nil
	}
	p.next()
	dt, err := p.next()
	if err != nil {
		return Term{}, err
	}
	switch dt.kind {
	case tokIRI:
		return LiteralTerm(str.value, dt.value), nil
	case tokPName:
		iri, err := p.expandPName(dt)
		if err != nil {
			return Term{}, err
		}
		return LiteralTerm(str.value, iri), nil
	default:
		return Term{}, p.errf(dt.line, "expected datatype after '^^'")
	}
}

// parseBlankNodeBody parses '[ predicateObjectList ]' after the opening
// bracket has been consumed and returns the fresh blank node.
func (p *turtleParser) parseBlankNodeBody(line int) (Term, error) {
	blank := p.graph.NewBlank()
	tok, err := p.peek()
	if err != nil {
		return Term{}, err
	}
	if tok.kind == tokPunct && tok.value == "]" {
		p.next()
		return blank, nil
	}
	if err := p.parsePredicateObjectList(blank); err != nil {
		return Term{}, err
	}
	if err := p.expectPunct("]"); err != nil {
		return Term{}, p.errf(line, "unclosed blank node: %v", err)
	}
	return blank, nil
}

// parseCollection parses '( object* )' after the opening parenthesis has
// been consumed and returns the head of the rdf:first/rdf:rest chain.
func (p *turtleParser) parseCollection() (Term, error) {
	var members []Term
	for {
		tok, err := p.peek()
		if err != nil {
			return Term{}, err
		}
		if tok.kind == tokEOF {
			return Term{}, p.errf(tok.line, "unclosed collection")
		}
		if tok.kind == tokPunct && tok.value == ")" {
			p.next()
			break
		}
		member, err := p.parseObject()
		if err != nil {
			return Term{}, err
		}
		members = append(members, member)
	}

	head := IRITerm(vocabulary.RDFNil)
	for i := len(members) - 1; i >= 0; i-- {
		cell := p.graph.NewBlank()
		p.graph.Add(Triple{Subject: cell, Predicate: vocabulary.RDFFirst, Object: members[i]})
		p.graph.Add(Triple{Subject: cell, Predicate: vocabulary.RDFRest, Object: head})
		head = cell
	}
	return head, nil
}

func (p *turtleParser) expandPName(tok token) (string, error) {
	i := strings.Index(tok.value, ":")
	prefix, local := tok.value[:i], tok.value[i+1:]
	ns, ok := p.prefixes[prefix]
	if !ok {
		return "", p.errf(tok.line, "undeclared prefix %q", prefix)
	}
	return ns + local, nil
}

func (p *turtleParser) expectPunct(want string) error {
	tok, err := p.next()
	if err != nil {
		return err
	}
	if tok.kind != tokPunct || tok.value != want {
		return p.errf(tok.line, "expected %q, got %q", want, tok.value)
	}
	return nil
}
