package scene

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/mogaika/keyframe_browser/animation"
	"github.com/mogaika/keyframe_browser/utils"
)

// Project holds objects of the current working scene.
// It is not safe for concurrent use, callers serialize access.
type Project struct {
	objects       []*Object
	objectsByUUID map[uuid.UUID]*Object
	objectsByName map[string]*Object

	names utils.RandomNameGenerator
}

func NewProject() *Project {
	return &Project{
		objectsByUUID: make(map[uuid.UUID]*Object),
		objectsByName: make(map[string]*Object),
	}
}

// AddObject creates new object. Name converted to printable ascii,
// empty name replaced with random one.
func (p *Project) AddObject(name string) (*Object, error) {
	name = utils.ToPrintableASCII(name)
	if name == "" {
		name = p.names.RandomName()
	}
	if _, exists := p.objectsByName[name]; exists {
		return nil, errors.Errorf("Object %q already exists", name)
	}
	p.names.Reserve(name)

	o := NewObject(name)
	p.objects = append(p.objects, o)
	p.objectsByUUID[o.Id] = o
	p.objectsByName[name] = o
	return o, nil
}

// EnsureObject returns object by name, creating it when missing
func (p *Project) EnsureObject(name string) (*Object, error) {
	if o := p.ObjectByName(name); o != nil {
		return o, nil
	}
	return p.AddObject(name)
}

func (p *Project) Object(id uuid.UUID) *Object {
	return p.objectsByUUID[id]
}

func (p *Project) ObjectByName(name string) *Object {
	return p.objectsByName[utils.ToPrintableASCII(name)]
}

// Objects returns objects in order of creation
func (p *Project) Objects() []*Object {
	result := make([]*Object, len(p.objects))
	copy(result, p.objects)
	return result
}

func (p *Project) Len() int {
	return len(p.objects)
}

func (p *Project) FrameRange() (first, last animation.Frame, ok bool) {
	for _, o := range p.objects {
		if f, l, keyed := o.FrameRange(); keyed {
			if !ok || f < first {
				first = f
			}
			if !ok || l > last {
				last = l
			}
			ok = true
		}
	}
	return first, last, ok
}
