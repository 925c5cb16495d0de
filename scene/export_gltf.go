package scene

import (
	"io"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"

	"github.com/mogaika/keyframe_browser/animation"
	"github.com/mogaika/keyframe_browser/utils"
	"github.com/mogaika/keyframe_browser/utils/gltfutils"
)

type GLTFObjectExported struct {
	Node     uint32
	Samplers int
}

// ExportGLTF adds node with rest pose and samplers for keyed channels.
// Position and scale keys map 1:1 on linear samplers, rotation is baked
// by bakeRotation since tweened euler angles are not tweened quaternions.
func (o *Object) ExportGLTF(doc *gltf.Document, anim *gltf.Animation, opts ExportOptions) (*GLTFObjectExported, error) {
	rest := o.TransformAt(opts.Start)
	q := utils.EulerXYZToQuat(rest.Rotation)

	node := &gltf.Node{
		Name:        o.Name,
		Translation: rest.Position,
		Rotation:    [4]float32{q.V[0], q.V[1], q.V[2], q.W},
		Scale:       rest.Scale,
	}
	goe := &GLTFObjectExported{Node: uint32(len(doc.Nodes))}
	doc.Nodes = append(doc.Nodes, node)

	for _, c := range []struct {
		kf   *animation.Keyframe
		path gltf.TRSProperty
	}{
		{o.Position, gltf.TRSTranslation},
		{o.Scale, gltf.TRSScale},
	} {
		keys := c.kf.Keys()
		if keys == nil {
			continue
		}
		times := make([]float32, len(keys))
		values := make([][3]float32, len(keys))
		for i, k := range keys {
			times[i] = float32(opts.seconds(k.Frame))
			values[i] = k.Value
		}
		gltfutils.AddSampler(anim, goe.Node, c.path,
			gltfutils.WriteSamplerInput(doc, times),
			gltfutils.WriteVec3Output(doc, values))
		goe.Samplers++
	}

	if keys := o.Rotation.Keys(); keys != nil {
		times, values := bakeRotation(keys, opts)
		gltfutils.AddSampler(anim, goe.Node, gltf.TRSRotation,
			gltfutils.WriteSamplerInput(doc, times),
			gltfutils.WriteQuatOutput(doc, values))
		goe.Samplers++
	}

	return goe, nil
}

// rotation is resampled at most this many times between neighbouring keys
const rotationBakeSteps = 32

// bakeRotation converts euler keys into quaternion samples. Every pair of
// keys gets one sample per frame, or rotationBakeSteps even samples when
// keys are further apart.
func bakeRotation(keys []animation.Key, opts ExportOptions) ([]float32, [][4]float32) {
	times := make([]float32, 0, len(keys))
	values := make([][4]float32, 0, len(keys))
	add := func(frame float64, v mgl32.Vec3) {
		q := utils.EulerXYZToQuat(v)
		times = append(times, float32(frame/opts.FPS))
		values = append(values, [4]float32{q.V[0], q.V[1], q.V[2], q.W})
	}

	add(float64(keys[0].Frame), keys[0].Value)
	for i := 1; i < len(keys); i++ {
		prev, next := keys[i-1], keys[i]
		span := uint64(next.Frame - prev.Frame)
		steps := uint64(rotationBakeSteps)
		if span < steps {
			steps = span
		}

		for j := uint64(1); j < steps; j++ {
			x := float32(j) / float32(steps)
			v := mgl32.Vec3{
				animation.LinearTween([2]float32{0, prev.Value[0]}, [2]float32{1, next.Value[0]}, x),
				animation.LinearTween([2]float32{0, prev.Value[1]}, [2]float32{1, next.Value[1]}, x),
				animation.LinearTween([2]float32{0, prev.Value[2]}, [2]float32{1, next.Value[2]}, x),
			}
			add(float64(prev.Frame)+float64(span)*float64(j)/float64(steps), v)
		}
		add(float64(next.Frame), next.Value)
	}
	return times, values
}

// BuildGLTF creates document with every object and one animation
func (p *Project) BuildGLTF(name string, opts ExportOptions) (*gltf.Document, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	doc := gltfutils.NewDocument()
	anim := &gltf.Animation{Name: name}

	for _, o := range p.objects {
		goe, err := o.ExportGLTF(doc, anim, opts)
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to export object %q", o.Name)
		}
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, goe.Node)
	}

	if len(anim.Channels) != 0 {
		doc.Animations = append(doc.Animations, anim)
	}
	return doc, nil
}

func (p *Project) ExportGLTF(w io.Writer, name string, opts ExportOptions) error {
	doc, err := p.BuildGLTF(name, opts)
	if err != nil {
		return err
	}
	if err := gltfutils.ExportBinary(w, doc); err != nil {
		return errors.Wrapf(err, "Failed to encode gltf")
	}
	return nil
}
