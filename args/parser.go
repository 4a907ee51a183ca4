package args

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mwantia/commands/data"
)

// Spec is the full declaration of what a parser accepts.
type Spec struct {
	Required []Type
	Optional []Option

	// Prejoined disables quote and brace lexing: every token is already a
	// complete value.
	Prejoined bool

	Converters *Registry
	Decoder    data.Decoder
}

// Usage renders the declaration for help output,
// e.g. "say <string> [-c|--color <string>] [-l|--loud]".
func (s Spec) Usage(name string) string {
	parts := []string{name}
	for _, t := range s.Required {
		parts = append(parts, "<"+t.String()+">")
	}
	for _, o := range s.Optional {
		parts = append(parts, o.String())
	}

	return strings.Join(parts, " ")
}

// Parse runs a single parse of tokens against spec.
func Parse(tokens []string, spec Spec) (*Args, error) {
	p := NewParser(tokens,
		WithConverters(spec.Converters),
		WithDecoder(spec.Decoder),
	)
	p.prejoined = spec.Prejoined

	if err := p.Require(spec.Required...); err != nil {
		return nil, err
	}
	for _, opt := range spec.Optional {
		if err := p.Option(opt); err != nil {
			return nil, err
		}
	}

	return p.Parse()
}

type ParserOption func(*Parser)

// WithPrejoined marks the tokens as already fully delimited.
func WithPrejoined(prejoined bool) ParserOption {
	return func(p *Parser) {
		p.prejoined = prejoined
	}
}

func WithConverters(converters *Registry) ParserOption {
	return func(p *Parser) {
		p.converters = converters
	}
}

func WithDecoder(decoder data.Decoder) ParserOption {
	return func(p *Parser) {
		p.decoder = decoder
	}
}

// Parser converts raw tokens into Args. Declarations are accumulated until
// the first successful Parse, after which the parser is locked and Parse
// keeps returning the same result. A Parser must not be declared on from
// multiple goroutines.
type Parser struct {
	tokens    []string
	prejoined bool

	required []Type
	optional []Option

	converters *Registry
	decoder    data.Decoder

	parsed *Args
}

func NewParser(tokens []string, opts ...ParserOption) *Parser {
	p := &Parser{
		tokens: slices.Clone(tokens),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Require appends positional types in order.
func (p *Parser) Require(types ...Type) error {
	if p.Locked() {
		return ErrLocked
	}

	for _, t := range types {
		if t.IsZero() {
			return fmt.Errorf("%w: positional argument requires a type", ErrUnsupportedType)
		}
	}

	p.required = append(p.required, types...)
	return nil
}

// Option declares an optional argument or flag.
func (p *Parser) Option(opt Option) error {
	if p.Locked() {
		return ErrLocked
	}

	opt, err := opt.normalize()
	if err != nil {
		return err
	}

	p.optional = append(p.optional, opt)
	return nil
}

// Flag declares a boolean option. Either name may be empty.
func (p *Parser) Flag(short rune, long string) error {
	return p.Option(Option{Short: short, Long: long})
}

// Locked reports whether a parse has succeeded.
func (p *Parser) Locked() bool {
	return p.parsed != nil
}

// Spec returns a copy of the current declarations.
func (p *Parser) Spec() Spec {
	return Spec{
		Required:   slices.Clone(p.required),
		Optional:   slices.Clone(p.optional),
		Prejoined:  p.prejoined,
		Converters: p.converters,
		Decoder:    p.decoder,
	}
}

// Parse scans the tokens once. Lexical problems are collected and returned
// together as a *ParseError; a value that cannot be converted aborts the
// scan with a *ConversionError.
func (p *Parser) Parse() (*Args, error) {
	if p.parsed != nil {
		return p.parsed, nil
	}

	if len(p.tokens) == 0 {
		p.parsed = Empty()
		return p.parsed, nil
	}

	if len(p.required) == 0 {
		return nil, newParseError(map[Condition]struct{}{NoRequiredTypes: {}})
	}

	s := newScanner(p)
	for _, token := range p.tokens {
		if err := s.scan(token); err != nil {
			return nil, err
		}
	}
	s.finish()

	if len(s.conditions) > 0 {
		return nil, newParseError(s.conditions)
	}

	p.parsed = &Args{
		positional: s.positional,
		long:       s.long,
		short:      s.short,
	}
	return p.parsed, nil
}

func (p *Parser) lookupLong(name string) (Option, bool) {
	key := foldName(name)
	if key == "" {
		return Option{}, false
	}

	for _, opt := range p.optional {
		if opt.Long != "" && foldName(opt.Long) == key {
			return opt, true
		}
	}

	return Option{}, false
}

func (p *Parser) lookupShort(name rune) (Option, bool) {
	if name == 0 {
		return Option{}, false
	}

	for _, opt := range p.optional {
		if opt.Short == name {
			return opt, true
		}
	}

	return Option{}, false
}

type lexMode uint8

const (
	modeNormal lexMode = iota
	modeQuote
	modeBrace
)

type targetKind uint8

const (
	targetDiscard targetKind = iota
	targetPositional
	targetOption
)

// target is where a finished value ends up.
type target struct {
	kind   targetKind
	index  int
	option Option
}

type scanner struct {
	p *Parser

	mode  lexMode
	quote byte
	parts []string
	dest  target

	// Brace mode state: nesting depth plus whether the scan currently sits
	// inside a JSON string, which may itself span tokens.
	depth    int
	inString bool
	escaped  bool

	// Option whose value is the next token.
	waiting *Option

	pos        int
	positional []Value
	long       map[string]Value
	short      map[rune]Value

	conditions map[Condition]struct{}
}

func newScanner(p *Parser) *scanner {
	return &scanner{
		p:          p,
		positional: make([]Value, len(p.required)),
		long:       make(map[string]Value),
		short:      make(map[rune]Value),
		conditions: make(map[Condition]struct{}),
	}
}

func (s *scanner) record(c Condition) {
	s.conditions[c] = struct{}{}
}

func (s *scanner) scan(token string) error {
	if token == "" {
		return nil
	}

	if s.mode != modeNormal {
		return s.continueValue(token)
	}

	if s.waiting != nil {
		opt := *s.waiting
		s.waiting = nil
		return s.beginValue(token, target{kind: targetOption, option: opt})
	}

	if body, ok := strings.CutPrefix(token, "--"); ok {
		return s.longOption(body)
	}
	if body, ok := strings.CutPrefix(token, "-"); ok {
		return s.shortOption(body)
	}

	if s.pos >= len(s.p.required) {
		s.pos++
		s.record(TooManyArguments)
		return s.beginValue(token, target{kind: targetDiscard})
	}

	dest := target{kind: targetPositional, index: s.pos}
	s.pos++
	return s.beginValue(token, dest)
}

func (s *scanner) longOption(body string) error {
	name, value, attached := strings.Cut(body, "=")
	attached = attached && value != ""

	opt, ok := s.p.lookupLong(name)
	if !ok {
		s.record(UnknownOptional)
		if attached {
			return s.beginValue(value, target{kind: targetDiscard})
		}
		return nil
	}

	if opt.IsFlag() {
		s.store(opt, BoolValue(true))
		return nil
	}

	if attached {
		return s.beginValue(value, target{kind: targetOption, option: opt})
	}

	s.waiting = &opt
	return nil
}

func (s *scanner) shortOption(body string) error {
	r, size := utf8.DecodeRuneInString(body)
	if body == "" || size != len(body) {
		s.record(UnknownOptional)
		return nil
	}

	opt, ok := s.p.lookupShort(unicode.ToLower(r))
	if !ok {
		s.record(UnknownOptional)
		return nil
	}

	if opt.IsFlag() {
		s.store(opt, BoolValue(true))
		return nil
	}

	s.waiting = &opt
	return nil
}

// beginValue starts a value at token, entering a continuation mode when the
// token opens a quote or brace that it does not close itself.
func (s *scanner) beginValue(token string, dest target) error {
	if s.p.prejoined {
		return s.deliver(token, dest)
	}

	switch token[0] {
	case '\'', '"':
		s.mode = modeQuote
		s.quote = token[0]
		s.parts = s.parts[:0]
		s.dest = dest
		return s.continueQuote(token[1:])

	case '{':
		s.mode = modeBrace
		s.depth = 0
		s.inString = false
		s.escaped = false
		s.parts = s.parts[:0]
		s.dest = dest
		return s.continueBrace(token)
	}

	return s.deliver(token, dest)
}

func (s *scanner) continueValue(token string) error {
	if s.mode == modeQuote {
		return s.continueQuote(token)
	}

	return s.continueBrace(token)
}

func (s *scanner) continueQuote(segment string) error {
	if closesQuote(segment, s.quote) {
		s.parts = append(s.parts, segment[:len(segment)-1])

		escaped := `\` + string(s.quote)
		value := strings.ReplaceAll(strings.Join(s.parts, " "), escaped, string(s.quote))
		return s.complete(value)
	}

	s.parts = append(s.parts, segment)
	return nil
}

// continueBrace counts brace depth per character outside JSON strings, so
// nested objects and braces inside string values may span tokens.
func (s *scanner) continueBrace(token string) error {
	for i := 0; i < len(token); i++ {
		c := token[i]

		if s.inString {
			switch {
			case s.escaped:
				s.escaped = false
			case c == '\\':
				s.escaped = true
			case c == '"':
				s.inString = false
			}
			continue
		}

		switch c {
		case '"':
			s.inString = true
		case '{':
			s.depth++
		case '}':
			s.depth--
		}
	}

	s.parts = append(s.parts, token)
	if s.depth <= 0 {
		return s.complete(strings.Join(s.parts, " "))
	}

	return nil
}

func (s *scanner) complete(value string) error {
	s.mode = modeNormal
	s.parts = s.parts[:0]

	return s.deliver(value, s.dest)
}

func (s *scanner) deliver(value string, dest target) error {
	switch dest.kind {
	case targetPositional:
		v, err := s.p.convert(s.p.required[dest.index], value)
		if err != nil {
			return err
		}
		s.positional[dest.index] = v

	case targetOption:
		v, err := s.p.convert(dest.option.Type, value)
		if err != nil {
			return err
		}
		s.store(dest.option, v)
	}

	return nil
}

func (s *scanner) store(opt Option, v Value) {
	if opt.Long != "" {
		s.long[opt.Long] = v
	}
	if opt.Short != 0 {
		s.short[opt.Short] = v
	}
}

func (s *scanner) finish() {
	switch s.mode {
	case modeQuote:
		s.record(UnterminatedQuote)
	case modeBrace:
		s.record(UnterminatedBrace)
	}

	if s.waiting != nil {
		s.record(MissingOptionValue)
	}
}

// closesQuote reports whether segment ends with quote that is not escaped
// by an odd number of backslashes.
func closesQuote(segment string, quote byte) bool {
	n := len(segment)
	if n == 0 || segment[n-1] != quote {
		return false
	}

	backslashes := 0
	for i := n - 2; i >= 0 && segment[i] == '\\'; i-- {
		backslashes++
	}

	return backslashes%2 == 0
}
