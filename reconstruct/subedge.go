package reconstruct

import "github.com/arybakin/routeweave/geometry"

// SubEdge returns the portion of edge id's polyline between arc-length
// parameters t0 and t1, in the t0 -> t1 direction (the result is
// reversed if t0 > t1). t0 == 0 and t1 == 1 reproduces the edge's full
// polyline (spec reconstruction idempotence).
func SubEdge(geom *geometry.EdgeGeometry, id int, t0, t1 float64) (xs, ys []float64) {
	reversed := t0 > t1
	loT, hiT := t0, t1
	if reversed {
		loT, hiT = t1, t0
	}
	loT = clamp01(loT)
	hiT = clamp01(hiT)

	srcXs, srcYs := geom.Points(id)
	prefix := prefixLengths(srcXs, srcYs)
	total := prefix[len(prefix)-1]
	loArc := loT * total
	hiArc := hiT * total

	startX, startY := Interpolate(geom, id, loT)
	xs = append(xs, startX)
	ys = append(ys, startY)
	for i := range srcXs {
		if prefix[i] > loArc && prefix[i] < hiArc {
			xs = append(xs, srcXs[i])
			ys = append(ys, srcYs[i])
		}
	}
	endX, endY := Interpolate(geom, id, hiT)
	xs = append(xs, endX)
	ys = append(ys, endY)

	if reversed {
		reverseInPlace(xs)
		reverseInPlace(ys)
	}
	return xs, ys
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func reverseInPlace(s []float64) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
