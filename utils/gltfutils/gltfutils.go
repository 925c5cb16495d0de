package gltfutils

import (
	"io"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

func NewDocument() *gltf.Document {
	return gltf.NewDocument()
}

// WriteSamplerInput stores ascending key times in seconds.
// Sampler input accessor must have min and max.
func WriteSamplerInput(doc *gltf.Document, seconds []float32) uint32 {
	idx := modeler.WriteAccessor(doc, gltf.TargetNone, seconds)
	if len(seconds) != 0 {
		doc.Accessors[idx].Min = []float32{seconds[0]}
		doc.Accessors[idx].Max = []float32{seconds[len(seconds)-1]}
	}
	return idx
}

func WriteVec3Output(doc *gltf.Document, values [][3]float32) uint32 {
	return modeler.WriteAccessor(doc, gltf.TargetNone, values)
}

func WriteQuatOutput(doc *gltf.Document, values [][4]float32) uint32 {
	return modeler.WriteAccessor(doc, gltf.TargetNone, values)
}

// AddSampler appends linear sampler and channel targeting node property
func AddSampler(anim *gltf.Animation, node uint32, path gltf.TRSProperty, input, output uint32) {
	anim.Channels = append(anim.Channels, &gltf.Channel{
		Sampler: gltf.Index(uint32(len(anim.Samplers))),
		Target: gltf.ChannelTarget{
			Node: gltf.Index(node),
			Path: path,
		},
	})
	anim.Samplers = append(anim.Samplers, &gltf.AnimationSampler{
		Input:         gltf.Index(input),
		Interpolation: gltf.InterpolationLinear,
		Output:        gltf.Index(output),
	})
}

// ExportBinary encodes document as .glb, document is not modified
func ExportBinary(w io.Writer, doc *gltf.Document) error {
	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = true
	return encoder.Encode(doc)
}
