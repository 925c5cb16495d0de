package animation

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// Frame is an index on the animation timeline
type Frame uint

// Key is a single authored sample of a Keyframe
type Key struct {
	Frame Frame
	Value mgl32.Vec3
}

// Keyframe is a Vec3 that either holds one value for its whole existence
// or has explicit values at some frames and is tweened between them.
// There is no sensible default frame for the initial value, so the first
// SetAt throws it away instead of storing it as a key.
type Keyframe struct {
	single mgl32.Vec3
	keys   *keyedValues // nil while the value is constant
}

// keyedValues holds samples sorted by frame, frames are unique
type keyedValues struct {
	frames []Frame
	values []mgl32.Vec3
	cache  cache
}

func NewKeyframe(init mgl32.Vec3) *Keyframe {
	return &Keyframe{single: init}
}

// IsKeyed reports whether at least one key was set
func (k *Keyframe) IsKeyed() bool {
	return k.keys != nil
}

// Len returns count of keys, 0 for constant value
func (k *Keyframe) Len() int {
	if k.keys == nil {
		return 0
	}
	return len(k.keys.frames)
}

// At returns the value at the given frame. Depending on data held it may
// or may not require tweening, last calculated value is cached.
func (k *Keyframe) At(frame Frame) mgl32.Vec3 {
	if k.keys == nil {
		return k.single
	}

	if v, ok := k.keys.cache.get(frame); ok {
		return v
	}

	v := k.keys.calculate(frame)
	k.keys.cache.set(frame, v)
	return v
}

// SetAt sets the value at the given frame, overwriting existing key.
func (k *Keyframe) SetAt(frame Frame, value mgl32.Vec3) {
	if k.keys == nil {
		k.keys = &keyedValues{
			frames: []Frame{frame},
			values: []mgl32.Vec3{value},
		}
		k.single = mgl32.Vec3{}
		return
	}

	k.keys.insert(frame, value)
	// any new key can change tweening for other frames too
	k.keys.cache.invalidate()
}

// Frames returns ascending copy of keyed frames.
// ok is false when value is constant and there is no keys at all.
func (k *Keyframe) Frames() (frames []Frame, ok bool) {
	if k.keys == nil {
		return nil, false
	}
	frames = make([]Frame, len(k.keys.frames))
	copy(frames, k.keys.frames)
	return frames, true
}

// Keys returns ascending copy of samples, nil for constant value
func (k *Keyframe) Keys() []Key {
	if k.keys == nil {
		return nil
	}
	keys := make([]Key, len(k.keys.frames))
	for i, f := range k.keys.frames {
		keys[i] = Key{Frame: f, Value: k.keys.values[i]}
	}
	return keys
}

// FrameRange returns first and last keyed frames
func (k *Keyframe) FrameRange() (first, last Frame, ok bool) {
	if k.keys == nil {
		return 0, 0, false
	}
	return k.keys.frames[0], k.keys.frames[len(k.keys.frames)-1], true
}

// search returns index of first frame >= f
func (kv *keyedValues) search(f Frame) int {
	return sort.Search(len(kv.frames), func(i int) bool { return kv.frames[i] >= f })
}

func (kv *keyedValues) insert(frame Frame, value mgl32.Vec3) {
	i := kv.search(frame)
	if i < len(kv.frames) && kv.frames[i] == frame {
		kv.values[i] = value
		return
	}

	kv.frames = append(kv.frames, 0)
	copy(kv.frames[i+1:], kv.frames[i:])
	kv.frames[i] = frame

	kv.values = append(kv.values, mgl32.Vec3{})
	copy(kv.values[i+1:], kv.values[i:])
	kv.values[i] = value
}

func (kv *keyedValues) calculate(frame Frame) mgl32.Vec3 {
	i := kv.search(frame)
	if i < len(kv.frames) && kv.frames[i] == frame {
		return kv.values[i]
	}

	// frames[i-1] < frame < frames[i]
	hasPrev := i > 0
	hasNext := i < len(kv.frames)

	switch {
	case hasPrev && hasNext:
		pf, pv := float32(kv.frames[i-1]), kv.values[i-1]
		nf, nv := float32(kv.frames[i]), kv.values[i]
		x := float32(frame)
		return mgl32.Vec3{
			LinearTween([2]float32{pf, pv.X()}, [2]float32{nf, nv.X()}, x),
			LinearTween([2]float32{pf, pv.Y()}, [2]float32{nf, nv.Y()}, x),
			LinearTween([2]float32{pf, pv.Z()}, [2]float32{nf, nv.Z()}, x),
		}
	case hasPrev:
		return kv.values[i-1]
	case hasNext:
		return kv.values[i]
	default:
		panic("animation: keyed value without keys")
	}
}
