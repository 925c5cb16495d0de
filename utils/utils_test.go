package utils

import (
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

var asciiTests = []struct {
	in  string
	out string
}{
	{"", ""},
	{"Cube", "Cube"},
	{"Big Lamp 2", "Big Lamp 2"},
	{"tab\there", "tab?here"},
	{"кубик", "?????"},
	{"a\x7fb", "a?b"},
	{"héllo", "h?llo"},
}

func TestToPrintableASCII(t *testing.T) {
	for _, test := range asciiTests {
		if result := ToPrintableASCII(test.in); result != test.out {
			t.Errorf("ToPrintableASCII(%q)=%q; expected %q", test.in, result, test.out)
		}
	}
}

func TestEulerXYZToQuat(t *testing.T) {
	angles := []mgl32.Vec3{
		{0, 0, 0},
		{math.Pi / 2, 0, 0},
		{0.3, -1.2, 2.5},
		{-0.7, 0.1, 0.9},
	}
	for _, a := range angles {
		expected := mgl32.HomogRotate3DX(a[0]).Mul4(mgl32.HomogRotate3DY(a[1])).Mul4(mgl32.HomogRotate3DZ(a[2]))
		result := EulerXYZToQuat(a).Mat4()
		if !result.ApproxEqualThreshold(expected, 1e-5) {
			t.Errorf("EulerXYZToQuat(%v).Mat4()=%v; expected %v", a, result, expected)
		}
	}
}

func TestRandomNameGenerator(t *testing.T) {
	var rng RandomNameGenerator
	rng.Reserve("reserved")

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		name := rng.RandomName()
		if name == "" || name == "reserved" || seen[name] {
			t.Fatalf("RandomName()=%q; duplicate or empty", name)
		}
		seen[name] = true
	}
}

func TestRandomNameGeneratorsShareStream(t *testing.T) {
	var first, second RandomNameGenerator
	a := []string{first.RandomName(), first.RandomName(), first.RandomName()}
	b := []string{second.RandomName(), second.RandomName(), second.RandomName()}
	if a[0] == b[0] && a[1] == b[1] && a[2] == b[2] {
		t.Errorf("new generator restarted name sequence: %v and %v", a, b)
	}
}

func TestSDump(t *testing.T) {
	s := SDump(struct{ Name string }{"cube"})
	if !strings.Contains(s, "cube") {
		t.Errorf("SDump()=%q; expected to contain field value", s)
	}
}
