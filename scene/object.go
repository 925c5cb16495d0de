package scene

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/mogaika/keyframe_browser/animation"
)

type Channel int

const (
	ChannelPosition Channel = iota
	ChannelRotation
	ChannelScale
)

var Channels = [...]Channel{ChannelPosition, ChannelRotation, ChannelScale}

func (c Channel) String() string {
	switch c {
	case ChannelPosition:
		return "position"
	case ChannelRotation:
		return "rotation"
	case ChannelScale:
		return "scale"
	default:
		panic(errors.Errorf("unknown channel %d", int(c)))
	}
}

func ParseChannel(s string) (Channel, error) {
	switch strings.ToLower(s) {
	case "position", "pos", "translation":
		return ChannelPosition, nil
	case "rotation", "rot":
		return ChannelRotation, nil
	case "scale":
		return ChannelScale, nil
	default:
		return 0, errors.Errorf("Unknown channel %q", s)
	}
}

// Object is one animated entity of the project
type Object struct {
	Id   uuid.UUID
	Name string

	Position *animation.Keyframe
	Rotation *animation.Keyframe // radians, applied X then Y then Z
	Scale    *animation.Keyframe
}

func NewObject(name string) *Object {
	id, err := uuid.NewRandom()
	if err != nil {
		panic(err)
	}
	return &Object{
		Id:       id,
		Name:     name,
		Position: animation.NewKeyframe(mgl32.Vec3{0, 0, 0}),
		Rotation: animation.NewKeyframe(mgl32.Vec3{0, 0, 0}),
		Scale:    animation.NewKeyframe(mgl32.Vec3{1, 1, 1}),
	}
}

func (o *Object) Channel(c Channel) *animation.Keyframe {
	switch c {
	case ChannelPosition:
		return o.Position
	case ChannelRotation:
		return o.Rotation
	case ChannelScale:
		return o.Scale
	default:
		panic(errors.Errorf("unknown channel %d", int(c)))
	}
}

// ModelMatAt composes translate, rotate x, rotate y, rotate z, scale
func (o *Object) ModelMatAt(frame animation.Frame) mgl32.Mat4 {
	return modelMat(o.Position.At(frame), o.Rotation.At(frame), o.Scale.At(frame))
}

func modelMat(position, rotation, scale mgl32.Vec3) mgl32.Mat4 {
	matrix := mgl32.Ident4()
	matrix = matrix.Mul4(mgl32.Translate3D(position[0], position[1], position[2]))
	matrix = matrix.Mul4(mgl32.HomogRotate3DX(rotation[0]))
	matrix = matrix.Mul4(mgl32.HomogRotate3DY(rotation[1]))
	matrix = matrix.Mul4(mgl32.HomogRotate3DZ(rotation[2]))
	matrix = matrix.Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
	return matrix
}

type Transform struct {
	Frame    animation.Frame
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
	Matrix   mgl32.Mat4
}

func (o *Object) TransformAt(frame animation.Frame) Transform {
	t := Transform{
		Frame:    frame,
		Position: o.Position.At(frame),
		Rotation: o.Rotation.At(frame),
		Scale:    o.Scale.At(frame),
	}
	t.Matrix = modelMat(t.Position, t.Rotation, t.Scale)
	return t
}

// FrameRange returns first and last key over all channels
func (o *Object) FrameRange() (first, last animation.Frame, ok bool) {
	for _, c := range Channels {
		if f, l, keyed := o.Channel(c).FrameRange(); keyed {
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
