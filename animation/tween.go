package animation

// LinearTween returns y on the line through p1 and p2 at x.
// Point slope form: y = m(x-x1)+y1 where m = (y2-y1)/(x2-x1)
func LinearTween(p1, p2 [2]float32, x float32) float32 {
	x1, y1 := p1[0], p1[1]
	x2, y2 := p2[0], p2[1]
	m := (y2 - y1) / (x2 - x1)
	return m*(x-x1) + y1
}
