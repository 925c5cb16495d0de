package scene

import (
	"io"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mogaika/fbx"
	"github.com/mogaika/fbx/builders/bfbx73"
	"github.com/pkg/errors"

	"github.com/mogaika/keyframe_browser/animation"
	"github.com/mogaika/keyframe_browser/utils"
	"github.com/mogaika/keyframe_browser/utils/fbxbuilder"
)

// fbx eEulerZYX: z applied first, same as RotX * RotY * RotZ matrix
const fbxRotationOrderZYX = int32(5)

type FbxExporter struct {
	FbxModelId int64
	CurveNodes int
}

type fbxChannel struct {
	kf       *animation.Keyframe
	nodeName string
	property string
	degrees  bool
}

func (o *Object) fbxChannels() []fbxChannel {
	return []fbxChannel{
		{o.Position, "T", "Lcl Translation", false},
		{o.Rotation, "R", "Lcl Rotation", true},
		{o.Scale, "S", "Lcl Scaling", false},
	}
}

func fbxKTime(opts ExportOptions, f animation.Frame) int64 {
	return int64(opts.seconds(f) * fbxbuilder.FBX_TICKS_PER_SECOND)
}

func fbxVec(v mgl32.Vec3, degrees bool) [3]float64 {
	if degrees {
		v = utils.RadiansToDegreeV3(v)
	}
	return utils.Vec3To64(v)
}

func (o *Object) ExportFbx(f *fbxbuilder.FBXBuilder, layerId int64, opts ExportOptions) *FbxExporter {
	fe := &FbxExporter{FbxModelId: f.GenerateId()}

	rest := o.TransformAt(opts.Start)
	pos := fbxVec(rest.Position, false)
	rot := fbxVec(rest.Rotation, true)
	scale := fbxVec(rest.Scale, false)

	model := bfbx73.Model(fe.FbxModelId, o.Name+"\x00\x01Model", "Null").AddNodes(
		bfbx73.Version(232),
		bfbx73.Properties70().AddNodes(
			bfbx73.P("RotationOrder", "enum", "", "", fbxRotationOrderZYX),
			bfbx73.P("Lcl Translation", "Lcl Translation", "", "A+", pos[0], pos[1], pos[2]),
			bfbx73.P("Lcl Rotation", "Lcl Rotation", "", "A+", rot[0], rot[1], rot[2]),
			bfbx73.P("Lcl Scaling", "Lcl Scaling", "", "A+", scale[0], scale[1], scale[2]),
		),
		bfbx73.Shading(true),
		bfbx73.Culling("CullingOff"),
	)

	nodeAttribute := bfbx73.NodeAttribute(f.GenerateId(), o.Name+"\x00\x01NodeAttribute", "Null").AddNodes(
		bfbx73.TypeFlags("Null"),
	)

	f.AddObjects(model, nodeAttribute)
	f.AddConnections(
		bfbx73.C("OO", nodeAttribute.Properties[0].(int64), fe.FbxModelId),
		bfbx73.C("OO", fe.FbxModelId, 0),
	)

	for _, c := range o.fbxChannels() {
		keys := c.kf.Keys()
		if keys == nil {
			continue
		}

		times := make([]int64, len(keys))
		for i, k := range keys {
			times[i] = fbxKTime(opts, k.Frame)
		}

		first := fbxVec(keys[0].Value, c.degrees)
		curveNodeId := f.GenerateId()
		curveNode := fbxbuilder.Node("AnimationCurveNode", curveNodeId, c.nodeName+"\x00\x01AnimCurveNode", "").AddNodes(
			bfbx73.Properties70().AddNodes(
				bfbx73.P("d|X", "Number", "", "A", first[0]),
				bfbx73.P("d|Y", "Number", "", "A", first[1]),
				bfbx73.P("d|Z", "Number", "", "A", first[2]),
			),
		)
		f.AddObjects(curveNode)
		f.AddConnections(
			bfbx73.C("OO", curveNodeId, layerId),
			bfbx73.C("OP", curveNodeId, fe.FbxModelId, c.property),
		)

		for axis, axisName := range []string{"d|X", "d|Y", "d|Z"} {
			values := make([]float32, len(keys))
			for i, k := range keys {
				values[i] = float32(fbxVec(k.Value, c.degrees)[axis])
			}
			curveId := f.GenerateId()
			f.AddObjects(fbxAnimationCurve(curveId, first[axis], times, values))
			f.AddConnections(bfbx73.C("OP", curveId, curveNodeId, axisName))
		}
		fe.CurveNodes++
	}

	return fe
}

func fbxAnimationCurve(id int64, def float64, times []int64, values []float32) *fbx.Node {
	return fbxbuilder.Node("AnimationCurve", id, "\x00\x01AnimCurve", "").AddNodes(
		fbxbuilder.Node("Default", def),
		fbxbuilder.Node("KeyVer", int32(4009)),
		fbxbuilder.Node("KeyTime", times),
		fbxbuilder.Node("KeyValueFloat", values),
		fbxbuilder.Node("KeyAttrFlags", []int32{fbxbuilder.FBX_KEY_INTERPOLATION_LINEAR}),
		fbxbuilder.Node("KeyAttrDataFloat", []float32{0, 0, 0, 0}),
		fbxbuilder.Node("KeyAttrRefCount", []int32{int32(len(times))}),
	)
}

// BuildFbx creates builder with every object in one animation stack
func (p *Project) BuildFbx(name string, opts ExportOptions) (*fbxbuilder.FBXBuilder, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	f := fbxbuilder.NewFBXBuilder(name + ".fbx")

	var stop int64
	if _, last, ok := p.FrameRange(); ok {
		stop = fbxKTime(opts, last)
	}

	stackId := f.GenerateId()
	layerId := f.GenerateId()
	f.AddObjects(
		fbxbuilder.Node("AnimationStack", stackId, name+"\x00\x01AnimStack", "").AddNodes(
			bfbx73.Properties70().AddNodes(
				bfbx73.P("LocalStop", "KTime", "Time", "", stop),
				bfbx73.P("ReferenceStop", "KTime", "Time", "", stop),
			),
		),
		fbxbuilder.Node("AnimationLayer", layerId, "BaseLayer\x00\x01AnimLayer", ""),
	)
	f.AddConnections(bfbx73.C("OO", layerId, stackId))

	for _, o := range p.objects {
		o.ExportFbx(f, layerId, opts)
	}

	return f, nil
}

func (p *Project) ExportFbx(w io.Writer, name string, opts ExportOptions) error {
	f, err := p.BuildFbx(name, opts)
	if err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return errors.Wrapf(err, "Failed to write fbx %q", name)
	}
	return nil
}
