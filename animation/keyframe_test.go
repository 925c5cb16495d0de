package animation

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func feq(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.00005
}

func veq(a, b mgl32.Vec3) bool {
	return feq(a[0], b[0]) && feq(a[1], b[1]) && feq(a[2], b[2])
}

var tweenTests = []struct {
	p1, p2 [2]float32
	x      float32
	out    float32
}{
	{[2]float32{0, 0}, [2]float32{5, 5}, 2, 2},
	{[2]float32{1, 8}, [2]float32{2, 13}, -2, -7},
	{[2]float32{10, 1}, [2]float32{20, 5}, 15, 3},
	{[2]float32{10, 1}, [2]float32{20, 5}, 12, 1.8},
	{[2]float32{0, 4}, [2]float32{4, 0}, 1, 3},
}

func TestLinearTween(t *testing.T) {
	for _, test := range tweenTests {
		if result := LinearTween(test.p1, test.p2, test.x); !feq(result, test.out) {
			t.Errorf("LinearTween(%v,%v,%v)=%v; expected %v", test.p1, test.p2, test.x, result, test.out)
		}
	}
}

func TestKeyframeConstant(t *testing.T) {
	v := mgl32.Vec3{1.5, -2, 3}
	kf := NewKeyframe(v)

	for _, f := range []Frame{0, 1, 10, 1000, math.MaxUint32} {
		if result := kf.At(f); result != v {
			t.Errorf("At(%d)=%v; expected %v", f, result, v)
		}
	}
	if kf.IsKeyed() || kf.Len() != 0 {
		t.Errorf("constant keyframe reports keyed=%v len=%d", kf.IsKeyed(), kf.Len())
	}
	if kf.Keys() != nil {
		t.Errorf("Keys()=%v; expected nil", kf.Keys())
	}
	if _, _, ok := kf.FrameRange(); ok {
		t.Errorf("FrameRange() ok on constant keyframe")
	}
}

func TestKeyframeFrames(t *testing.T) {
	kf := NewKeyframe(mgl32.Vec3{})

	if frames, ok := kf.Frames(); ok || frames != nil {
		t.Fatalf("Frames()=%v,%v; expected no frames at all", frames, ok)
	}

	kf.SetAt(10, mgl32.Vec3{})
	frames, ok := kf.Frames()
	if !ok || len(frames) != 1 || frames[0] != 10 {
		t.Fatalf("Frames()=%v,%v; expected [10]", frames, ok)
	}

	kf.SetAt(20, mgl32.Vec3{})
	frames, _ = kf.Frames()
	if len(frames) != 2 || frames[0] != 10 || frames[1] != 20 {
		t.Fatalf("Frames()=%v; expected [10 20]", frames)
	}

	kf.SetAt(5, mgl32.Vec3{})
	kf.SetAt(15, mgl32.Vec3{})
	frames, _ = kf.Frames()
	expected := []Frame{5, 10, 15, 20}
	for i := range expected {
		if frames[i] != expected[i] {
			t.Fatalf("Frames()=%v; expected %v", frames, expected)
		}
	}
}

func TestKeyframeFramesSnapshot(t *testing.T) {
	kf := NewKeyframe(mgl32.Vec3{})
	kf.SetAt(10, mgl32.Vec3{})
	kf.SetAt(30, mgl32.Vec3{})

	frames, _ := kf.Frames()
	kf.SetAt(20, mgl32.Vec3{})
	kf.SetAt(0, mgl32.Vec3{})

	if len(frames) != 2 || frames[0] != 10 || frames[1] != 30 {
		t.Errorf("snapshot changed after SetAt: %v", frames)
	}
}

func TestKeyframeFramesDoNotTouchCache(t *testing.T) {
	kf := NewKeyframe(mgl32.Vec3{})
	kf.SetAt(0, mgl32.Vec3{0, 0, 0})
	kf.SetAt(10, mgl32.Vec3{10, 10, 10})
	kf.At(5)

	before := kf.keys.cache
	kf.Frames()
	kf.Keys()
	kf.FrameRange()
	if kf.keys.cache != before {
		t.Errorf("read only accessors changed cache: %+v -> %+v", before, kf.keys.cache)
	}
}

func TestKeyframeAt(t *testing.T) {
	kf := NewKeyframe(mgl32.Vec3{})

	check := func(f Frame, expected mgl32.Vec3) {
		t.Helper()
		if result := kf.At(f); !veq(result, expected) {
			t.Errorf("At(%d)=%v; expected %v", f, result, expected)
		}
	}

	check(0, mgl32.Vec3{})
	check(10, mgl32.Vec3{})
	check(20, mgl32.Vec3{})

	kf.SetAt(10, mgl32.Vec3{1, 2, 3})
	check(0, mgl32.Vec3{1, 2, 3})
	check(10, mgl32.Vec3{1, 2, 3})
	check(20, mgl32.Vec3{1, 2, 3})

	kf.SetAt(10, mgl32.Vec3{4, 5, 6})
	check(0, mgl32.Vec3{4, 5, 6})
	check(10, mgl32.Vec3{4, 5, 6})
	check(20, mgl32.Vec3{4, 5, 6})

	kf.SetAt(20, mgl32.Vec3{5, 6, 7})
	check(5, mgl32.Vec3{4, 5, 6})
	check(10, mgl32.Vec3{4, 5, 6})
	check(15, mgl32.Vec3{4.5, 5.5, 6.5})
	check(20, mgl32.Vec3{5, 6, 7})
	check(25, mgl32.Vec3{5, 6, 7})

	kf.SetAt(30, mgl32.Vec3{8, 3, 0})
	check(5, mgl32.Vec3{4, 5, 6})
	check(15, mgl32.Vec3{4.5, 5.5, 6.5})
	check(20, mgl32.Vec3{5, 6, 7})
	check(25, mgl32.Vec3{6.5, 4.5, 3.5})
	check(30, mgl32.Vec3{8, 3, 0})
	check(35, mgl32.Vec3{8, 3, 0})

	kf.SetAt(20, mgl32.Vec3{2, 3, 4})
	check(20, mgl32.Vec3{2, 3, 4})
}

func TestKeyframeMidpointScenario(t *testing.T) {
	kf := NewKeyframe(mgl32.Vec3{})
	kf.SetAt(10, mgl32.Vec3{1, 2, 3})

	for _, f := range []Frame{0, 10, 20} {
		if result := kf.At(f); result != (mgl32.Vec3{1, 2, 3}) {
			t.Errorf("At(%d)=%v; expected (1,2,3)", f, result)
		}
	}

	kf.SetAt(20, mgl32.Vec3{5, 6, 7})
	if result := kf.At(15); !veq(result, mgl32.Vec3{3, 4, 5}) {
		t.Errorf("At(15)=%v; expected (3,4,5)", result)
	}
	// non midpoint goes through point slope, not averaging
	if result := kf.At(12); !veq(result, mgl32.Vec3{1.8, 2.8, 3.8}) {
		t.Errorf("At(12)=%v; expected (1.8,2.8,3.8)", result)
	}
}

func TestKeyframeExactKeyHasNoDrift(t *testing.T) {
	kf := NewKeyframe(mgl32.Vec3{})
	values := []struct {
		f Frame
		v mgl32.Vec3
	}{
		{3, mgl32.Vec3{0.1, 0.2, 0.3}},
		{7, mgl32.Vec3{1.0 / 3.0, -2.0 / 7.0, 1e-7}},
		{1000, mgl32.Vec3{12345.678, -0.001, 42}},
		{1, mgl32.Vec3{-1, -1, -1}},
	}
	for _, v := range values {
		kf.SetAt(v.f, v.v)
		if result := kf.At(v.f); result != v.v {
			t.Errorf("At(%d)=%v right after SetAt; expected exactly %v", v.f, result, v.v)
		}
	}
	for _, v := range values {
		if result := kf.At(v.f); result != v.v {
			t.Errorf("At(%d)=%v; expected exactly %v", v.f, result, v.v)
		}
	}
}

func TestKeyframeInterpolationIsOnLine(t *testing.T) {
	kf := NewKeyframe(mgl32.Vec3{})
	v1 := mgl32.Vec3{-3, 0, 100}
	v2 := mgl32.Vec3{9, 0.5, -100}
	kf.SetAt(4, v1)
	kf.SetAt(16, v2)

	for f := Frame(5); f < 16; f++ {
		result := kf.At(f)
		for c := 0; c < 3; c++ {
			expected := LinearTween([2]float32{4, v1[c]}, [2]float32{16, v2[c]}, float32(f))
			if !feq(result[c], expected) {
				t.Errorf("At(%d)[%d]=%v; expected %v", f, c, result[c], expected)
			}
		}
	}
}

func TestKeyframeFlatExtrapolation(t *testing.T) {
	kf := NewKeyframe(mgl32.Vec3{9, 9, 9})
	first := mgl32.Vec3{1, 1, 1}
	last := mgl32.Vec3{2, 3, 4}
	kf.SetAt(50, first)
	kf.SetAt(60, mgl32.Vec3{7, 7, 7})
	kf.SetAt(100, last)

	for f := Frame(0); f <= 50; f += 5 {
		if result := kf.At(f); result != first {
			t.Errorf("At(%d)=%v; expected %v", f, result, first)
		}
	}
	for f := Frame(100); f <= 1000; f += 100 {
		if result := kf.At(f); result != last {
			t.Errorf("At(%d)=%v; expected %v", f, result, last)
		}
	}
}

func TestKeyframeOverwrite(t *testing.T) {
	kf := NewKeyframe(mgl32.Vec3{})
	kf.SetAt(10, mgl32.Vec3{1, 1, 1})
	kf.SetAt(20, mgl32.Vec3{2, 2, 2})
	kf.SetAt(10, mgl32.Vec3{3, 3, 3})

	if kf.Len() != 2 {
		t.Errorf("Len()=%d; expected 2", kf.Len())
	}
	keys := kf.Keys()
	if len(keys) != 2 || keys[0] != (Key{10, mgl32.Vec3{3, 3, 3}}) || keys[1] != (Key{20, mgl32.Vec3{2, 2, 2}}) {
		t.Errorf("Keys()=%v", keys)
	}
}

func TestKeyframeIdempotent(t *testing.T) {
	kf := NewKeyframe(mgl32.Vec3{})
	kf.SetAt(0, mgl32.Vec3{0.1, 0.7, -3})
	kf.SetAt(7, mgl32.Vec3{5.3, 0.2, 11})

	for f := Frame(0); f < 10; f++ {
		a := kf.At(f)
		b := kf.At(f)
		if a != b {
			t.Errorf("At(%d) not idempotent: %v != %v", f, a, b)
		}
	}
}

func TestKeyframeCache(t *testing.T) {
	kf := NewKeyframe(mgl32.Vec3{})
	kf.SetAt(10, mgl32.Vec3{0, 0, 0})
	kf.SetAt(20, mgl32.Vec3{10, 10, 10})

	if result := kf.At(15); !veq(result, mgl32.Vec3{5, 5, 5}) {
		t.Fatalf("At(15)=%v; expected (5,5,5)", result)
	}
	if v, ok := kf.keys.cache.get(15); !ok || v != kf.At(15) {
		t.Fatalf("cache does not hold frame 15: %+v", kf.keys.cache)
	}

	// unrelated key must invalidate cached frame too
	kf.SetAt(30, mgl32.Vec3{0, 0, 0})
	if _, ok := kf.keys.cache.get(15); ok {
		t.Fatalf("cache survived SetAt")
	}
	if result := kf.At(15); !veq(result, mgl32.Vec3{5, 5, 5}) {
		t.Errorf("At(15)=%v; expected (5,5,5)", result)
	}

	kf.SetAt(12, mgl32.Vec3{0, 0, 0})
	if result := kf.At(15); !veq(result, mgl32.Vec3{3.75, 3.75, 3.75}) {
		t.Errorf("At(15)=%v after new key; expected (3.75,3.75,3.75)", result)
	}
}

func TestKeyframeCacheHitReturnsCachedValue(t *testing.T) {
	kf := NewKeyframe(mgl32.Vec3{})
	kf.SetAt(0, mgl32.Vec3{0, 0, 0})
	kf.SetAt(10, mgl32.Vec3{1, 1, 1})
	kf.At(3)

	// poke cache directly, hit must not recalculate
	marker := mgl32.Vec3{42, 42, 42}
	kf.keys.cache.set(3, marker)
	if result := kf.At(3); result != marker {
		t.Errorf("At(3)=%v; expected cached %v", result, marker)
	}
}

func TestKeyframeFrameRange(t *testing.T) {
	kf := NewKeyframe(mgl32.Vec3{})
	kf.SetAt(40, mgl32.Vec3{})
	kf.SetAt(7, mgl32.Vec3{})
	kf.SetAt(19, mgl32.Vec3{})

	first, last, ok := kf.FrameRange()
	if !ok || first != 7 || last != 40 {
		t.Errorf("FrameRange()=%d,%d,%v; expected 7,40,true", first, last, ok)
	}
}

func TestKeyframeEmptyKeysPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for keyed value without keys")
		}
	}()
	kf := &Keyframe{keys: &keyedValues{}}
	kf.At(1)
}
