// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// nworkers returns the number of goroutines used in the loops over cells
func (o *Domain) nworkers() int {
	if n := o.Prm.Solver.Nworkers; n > 0 {
		return n
	}
	return runtime.GOMAXPROCS(0)
}

// parallel calls fn for each element using a pool of goroutines.
// fn must only touch data owned by element k; the first error cancels the remaining calls
func (o *Domain) parallel(ctx context.Context, fn func(k int, e Elem) error) (err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.nworkers())
	for k, e := range o.Elems {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(k, e)
		})
	}
	if err = g.Wait(); err != nil {
		return
	}
	return ctx.Err()
}

// AssembleSystem computes the local systems of all elements at time t, scatters them into
// K and Fb and applies the essential boundary conditions
func (o *Domain) AssembleSystem(ctx context.Context, t float64) (err error) {

	// local systems
	ramp := t / o.Prm.Time.EndTime
	err = o.parallel(ctx, func(k int, e Elem) error {
		return e.AddToSystem(o.ls[k], ramp)
	})
	if err != nil {
		return
	}

	// scatter
	o.K.Zero()
	for i := range o.Fb {
		o.Fb[i] = 0
	}
	for k, e := range o.Elems {
		ls := o.ls[k]
		eqs := e.Eqs()
		for i, I := range eqs {
			o.Fb[I] += ls.R[i]
			for j, J := range eqs {
				if I == J || o.couple(I, J) {
					o.K.Add(I, J, ls.K[i][j])
				}
			}
		}
	}

	// essential boundary conditions
	o.Cons.ApplyTo(o.K, o.Fb)
	return
}

// UpdateRecords refreshes the integration point records of all elements with the total solution y
func (o *Domain) UpdateRecords(ctx context.Context, y []float64) (err error) {
	return o.parallel(ctx, func(k int, e Elem) error {
		return e.Update(y)
	})
}
