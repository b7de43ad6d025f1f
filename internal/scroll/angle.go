package scroll

const (
	FullTurn    = 4096
	QuarterTurn = FullTurn / 4
	HalfTurn    = FullTurn / 2
)

// Angle returns a pseudo-angle in [0, FullTurn) for the vector (dx, dy).
// It uses the L1 ratio |dy|/(|dx|+|dy|) within each quadrant instead of
// real trigonometry, so isolines are diamonds rather than circles. It is
// monotonic in the true angle, which is all the delta computation needs.
func Angle(dx, dy int16) uint16 {
	x, y := int32(dx), int32(dy)
	sum := abs(x) + abs(y)
	if sum == 0 {
		return 0
	}
	ratio := abs(y) * QuarterTurn / sum

	var angle int32
	switch {
	case x >= 0 && y >= 0:
		angle = ratio
	case x < 0 && y >= 0:
		angle = QuarterTurn + (QuarterTurn - ratio)
	case x < 0 && y < 0:
		angle = 2*QuarterTurn + ratio
	default:
		angle = 3*QuarterTurn + (QuarterTurn - ratio)
	}

	// A tiny negative dy against a large dx truncates ratio to zero,
	// which would land exactly on FullTurn.
	return uint16(angle % FullTurn)
}

// Delta returns the shortest signed step from prev to cur, in
// [-HalfTurn, HalfTurn].
func Delta(prev, cur uint16) int {
	d := int(cur) - int(prev)
	switch {
	case d > HalfTurn:
		d -= FullTurn
	case d < -HalfTurn:
		d += FullTurn
	}
	return d
}

func abs(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
