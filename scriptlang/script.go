package scriptlang

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/keyframe_browser/animation"
	"github.com/mogaika/keyframe_browser/scene"
)

type Instruction interface {
	instructionMark()
}

// Select makes object current for following keys
type Select struct {
	Name    string
	Comment string
	Line    int
}

var labelRegexp = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func (s *Select) String() string {
	if labelRegexp.MatchString(s.Name) {
		return "$" + s.Name
	}
	return strconv.Quote(s.Name)
}

func (s *Select) GoString() string {
	return fmt.Sprintf("select %q", s.Name)
}

func (s *Select) instructionMark() {}

// SetKey writes one key into channel of the selected object
type SetKey struct {
	Channel scene.Channel
	Frame   animation.Frame
	Value   mgl32.Vec3
	Comment string
	Line    int
}

func (k *SetKey) String() string {
	return fmt.Sprintf("%s @%d %s %s %s", k.Channel, k.Frame,
		formatNumber(k.Value[0]), formatNumber(k.Value[1]), formatNumber(k.Value[2]))
}

// lexer does not know exponent form
func formatNumber(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}

func (k *SetKey) instructionMark() {}

func withComment(s string, comment string) string {
	if comment == "" {
		return s
	}
	return fmt.Sprintf("%-28s // %s", s, comment)
}

func RenderScriptLines(instructions []Instruction) []string {
	result := make([]string, 0, len(instructions))
	for _, instruction := range instructions {
		switch v := instruction.(type) {
		case *Select:
			result = append(result, withComment(v.String(), v.Comment))
		case *SetKey:
			result = append(result, withComment("\t"+v.String(), v.Comment))
		default:
			panic(instruction)
		}
	}
	return result
}

func RenderScript(instructions []Instruction) string {
	return strings.Join(RenderScriptLines(instructions), "\n")
}
