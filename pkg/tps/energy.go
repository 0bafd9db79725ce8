package tps

// BendingEnergy returns the bending energy of the map, λ·trace(C·Yhᵗ). It is
// zero for a purely affine deformation and needs neither the affine
// component nor any recomputation.
func (d *Deformation) BendingEnergy() float64 {
	k, dh := d.coeff.Dims()
	var sum float64
	for i := 0; i < k; i++ {
		ci := d.coeff.RawRowView(i)
		yi := d.targets.RawRowView(i)
		for j := 0; j < dh; j++ {
			sum += ci[j] * yi[j]
		}
	}
	return d.stiffness * sum
}
