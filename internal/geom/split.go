package geom

// SplitN subdivides the path into n parts of identical arc length, returned
// in travel order. n below 2 returns the path unchanged; a degenerate path
// returns nil.
func SplitN(p Path, n int) []Path {
	if n <= 1 {
		return []Path{p}
	}
	length := p.ArcLength()
	if length == 0 {
		return nil
	}

	ts := make([]float64, n+1)
	for i := 1; i < n; i++ {
		ts[i] = p.ParamAtLength(length * float64(i) / float64(n))
	}
	ts[n] = 1

	parts := make([]Path, n)
	for i := range parts {
		parts[i] = p.Subsegment(ts[i], ts[i+1])
	}
	return parts
}
