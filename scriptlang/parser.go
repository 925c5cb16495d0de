package scriptlang

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"

	"github.com/mogaika/keyframe_browser/animation"
	"github.com/mogaika/keyframe_browser/scene"
)

const (
	TOKEN_LABEL = iota
	TOKEN_WORD
	TOKEN_FRAME
	TOKEN_NUMBER
	TOKEN_STRING
	TOKEN_NEWLINE
	TOKEN_COMMENT
)

var lexer *lexmachine.Lexer

func init() {
	lexer = lexmachine.NewLexer()
	lexer.Add([]byte(`\$[a-zA-Z_][a-zA-Z0-9_]*`), getToken(TOKEN_LABEL))
	lexer.Add([]byte(`[a-zA-Z_][a-zA-Z0-9_]*`), getToken(TOKEN_WORD))
	lexer.Add([]byte(`@[0-9]+`), getToken(TOKEN_FRAME))
	lexer.Add([]byte(`[\+\-]?[0-9]*\.?[0-9]+`), getToken(TOKEN_NUMBER))
	lexer.Add([]byte(`(\n|\r|\n\r)+`), getToken(TOKEN_NEWLINE))
	lexer.Add([]byte(`//[^\n]*`), getToken(TOKEN_COMMENT))
	lexer.Add([]byte(`[ \t]+`), skip)
	lexer.Add([]byte(`"(\\.|[^"])*"`), getToken(TOKEN_STRING))
	if err := lexer.Compile(); err != nil {
		panic(err)
	}
}

func getToken(tokenType int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(tokenType, string(m.Bytes), m), nil
	}
}

func skip(scan *lexmachine.Scanner, match *machines.Match) (interface{}, error) {
	return nil, nil
}

type parser struct {
	result   []Instruction
	selected bool

	// per line state
	current  Instruction
	key      *SetKey
	hasFrame bool
	numbers  int
}

func (p *parser) endLine() error {
	if p.key != nil {
		if !p.hasFrame {
			return errors.Errorf("Missed frame for %v on line %v", p.key.Channel, p.key.Line)
		}
		if p.numbers != 3 {
			return errors.Errorf("Expected 3 numbers for %v on line %v, got %d", p.key.Channel, p.key.Line, p.numbers)
		}
	}
	p.current = nil
	p.key = nil
	p.hasFrame = false
	p.numbers = 0
	return nil
}

func (p *parser) selectObject(name string, line int) error {
	if p.current != nil {
		return errors.Errorf("Multiple instructions on line %v (%q)", line, name)
	}
	if name == "" {
		return errors.Errorf("Empty object name on line %v", line)
	}
	s := &Select{Name: name, Line: line}
	p.current = s
	p.selected = true
	p.result = append(p.result, s)
	return nil
}

func (p *parser) token(tok *lexmachine.Token) error {
	lexeme := string(tok.Lexeme)

	switch tok.Type {
	case TOKEN_LABEL:
		return p.selectObject(lexeme[1:], tok.StartLine)
	case TOKEN_STRING:
		name, err := strconv.Unquote(lexeme)
		if err != nil {
			return errors.Errorf("Unknown string format on line %v (%q)", tok.StartLine, lexeme)
		}
		return p.selectObject(name, tok.StartLine)
	case TOKEN_WORD:
		if p.current != nil {
			return errors.Errorf("Multiple instructions on line %v (%q)", tok.StartLine, lexeme)
		}
		if !p.selected {
			return errors.Errorf("Key without selected object on line %v (%q)", tok.StartLine, lexeme)
		}
		channel, err := scene.ParseChannel(lexeme)
		if err != nil {
			return errors.Wrapf(err, "Line %v", tok.StartLine)
		}
		p.key = &SetKey{Channel: channel, Line: tok.StartLine}
		p.current = p.key
		p.result = append(p.result, p.key)
	case TOKEN_FRAME:
		if p.key == nil {
			return errors.Errorf("Frame without channel on line %v (%q)", tok.StartLine, lexeme)
		}
		if p.hasFrame {
			return errors.Errorf("Multiple frames on line %v (%q)", tok.StartLine, lexeme)
		}
		frame, err := strconv.ParseUint(lexeme[1:], 10, 0)
		if err != nil {
			return errors.Errorf("Unknown frame format on line %v (%q)", tok.StartLine, lexeme)
		}
		p.key.Frame = animation.Frame(frame)
		p.hasFrame = true
	case TOKEN_NUMBER:
		if p.key == nil {
			return errors.Errorf("Number without channel on line %v (%q)", tok.StartLine, lexeme)
		}
		if !p.hasFrame {
			return errors.Errorf("Number before frame on line %v (%q)", tok.StartLine, lexeme)
		}
		if p.numbers >= 3 {
			return errors.Errorf("Too many numbers on line %v (%q)", tok.StartLine, lexeme)
		}
		f, err := strconv.ParseFloat(lexeme, 32)
		if err != nil {
			return errors.Errorf("Unknown number format on line %v (%q)", tok.StartLine, lexeme)
		}
		p.key.Value[p.numbers] = float32(f)
		p.numbers++
	case TOKEN_NEWLINE:
		return p.endLine()
	case TOKEN_COMMENT:
		comment := strings.TrimSpace(lexeme[2:])
		switch v := p.current.(type) {
		case *Select:
			v.Comment = comment
		case *SetKey:
			v.Comment = comment
		}
	}
	return nil
}

// ParseScript parses keyframe script. Each line either selects object
// ($label or "quoted name") or sets key of selected object
// (channel @frame x y z). Comments start with //.
func ParseScript(text []byte) ([]Instruction, error) {
	scanner, err := lexer.Scanner(text)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to create lexer scanner")
	}

	p := &parser{result: make([]Instruction, 0, 16)}
	for Itok, err, eos := scanner.Next(); !eos; Itok, err, eos = scanner.Next() {
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to parse token")
		}
		if err := p.token(Itok.(*lexmachine.Token)); err != nil {
			return nil, err
		}
	}
	if err := p.endLine(); err != nil {
		return nil, err
	}

	return p.result, nil
}
