// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import "math"

// Norms holds the l2 norms of a global vector: all entries and each block
type Norms struct {
	Norm float64 // all entries
	U    float64 // displacements
	P    float64 // pressure
	J    float64 // dilatation
}

// Reset sets all components to one
func (o *Norms) Reset() {
	*o = Norms{1, 1, 1, 1}
}

// Normalize divides each component by the corresponding baseline value.
// Components with a zero baseline are kept
func (o *Norms) Normalize(base Norms) {
	div := func(v *float64, b float64) {
		if b != 0 {
			*v /= b
		}
	}
	div(&o.Norm, base.Norm)
	div(&o.U, base.U)
	div(&o.P, base.P)
	div(&o.J, base.J)
}

// Norms computes the norms of x over the unconstrained equations
func (o *Domain) Norms(x []float64) (n Norms) {
	for i, v := range x {
		if o.Cons.IsConstrained(i) {
			continue
		}
		v2 := v * v
		n.Norm += v2
		switch o.block(i) {
		case 0:
			n.U += v2
		case 1:
			n.P += v2
		default:
			n.J += v2
		}
	}
	n.Norm, n.U, n.P, n.J = math.Sqrt(n.Norm), math.Sqrt(n.U), math.Sqrt(n.P), math.Sqrt(n.J)
	return
}
