package scriptlang

import (
	"github.com/pkg/errors"

	"github.com/mogaika/keyframe_browser/scene"
)

// Execute applies instructions to project, objects are created on first select.
// Returns count of written keys. Keys written before failure stay in project.
func Execute(p *scene.Project, instructions []Instruction) (int, error) {
	var current *scene.Object
	keys := 0

	for _, instruction := range instructions {
		switch v := instruction.(type) {
		case *Select:
			o, err := p.EnsureObject(v.Name)
			if err != nil {
				return keys, errors.Wrapf(err, "Line %v", v.Line)
			}
			current = o
		case *SetKey:
			if current == nil {
				return keys, errors.Errorf("Key without selected object on line %v", v.Line)
			}
			current.Channel(v.Channel).SetAt(v.Frame, v.Value)
			keys++
		default:
			panic(instruction)
		}
	}
	return keys, nil
}

// ExecuteScript is shortcut for ParseScript followed by Execute.
// Nothing is applied when script fails to parse.
func ExecuteScript(p *scene.Project, text []byte) (int, error) {
	instructions, err := ParseScript(text)
	if err != nil {
		return 0, errors.Wrapf(err, "Failed to parse script")
	}
	return Execute(p, instructions)
}
