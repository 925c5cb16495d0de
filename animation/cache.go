package animation

import "github.com/go-gl/mathgl/mgl32"

// cache remembers the last evaluated frame of a keyed channel.
// Written from At, so it lives behind the Keyframe pointer rather than in a value receiver.
type cache struct {
	frame Frame
	value mgl32.Vec3
	valid bool
}

func (c *cache) get(frame Frame) (mgl32.Vec3, bool) {
	if c.valid && c.frame == frame {
		return c.value, true
	}
	return mgl32.Vec3{}, false
}

func (c *cache) set(frame Frame, value mgl32.Vec3) {
	c.frame = frame
	c.value = value
	c.valid = true
}

func (c *cache) invalidate() {
	*c = cache{}
}
