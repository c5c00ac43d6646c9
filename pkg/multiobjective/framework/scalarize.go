package framework

// Deviation is the direction-normalized distance of z from the best value of
// an objective, on a common [0, 1] minimization scale:
//
//	0.5 * [(1+s)(z-min) + (1-s)(max-z)] / (max-min)
//
// with s = -1 for maximize and s = +1 for minimize.
func Deviation(z, min, max float64, d Direction) float64 {
	s := d.Sign()
	return 0.5 * ((1+s)*(z-min) + (1-s)*(max-z)) / (max - min)
}

// Value evaluates the aggregate objective at the objective vector z.
func (a AggregateObjective) Value(z ObjectiveSpacePoint, dirs Directions) float64 {
	total := 0.0
	for k, w := range a.Weights {
		total += w * Deviation(z[k], a.Min[k], a.Max[k], dirs[k])
	}
	return total
}

// Affine expresses the aggregate as sum_k coef[k]*z_k + offset, which lets a
// backend with linear objective expressions fold it into a single cost row.
func (a AggregateObjective) Affine(dirs Directions) (coef []float64, offset float64) {
	coef = make([]float64, len(a.Weights))
	for k, w := range a.Weights {
		s := dirs[k].Sign()
		r := a.Max[k] - a.Min[k]
		coef[k] = w * s / r
		offset += w * 0.5 * ((1-s)*a.Max[k] - (1+s)*a.Min[k]) / r
	}
	return coef, offset
}
