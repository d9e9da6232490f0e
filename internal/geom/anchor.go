package geom

// Anchor names a reference point on a path. Alignment and snapping use
// anchors rather than raw coordinates so the reference stays meaningful
// when the path moves.
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorEnd    Anchor = "end"
	AnchorMid    Anchor = "mid"
	AnchorCenter Anchor = "center"
)

// AnchorPoint resolves an anchor on the path. Mid is the on-path point at
// half the arc length, center the center of the bounding box. Unknown
// anchors resolve to center.
func AnchorPoint(p Path, a Anchor) Point {
	switch a {
	case AnchorStart:
		return p.Start()
	case AnchorEnd:
		return p.End()
	case AnchorMid:
		return p.PointAt(p.ParamAtLength(0.5 * p.ArcLength()))
	default:
		return p.BoundingBox().Center()
	}
}
