// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/agtmwebtoon/MLSolver/inp"
	"github.com/agtmwebtoon/MLSolver/msolid"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/diff/fd"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// testParams returns parameters of a well scaled problem on the unit box
func testParams(ndim, degree int) (prm *inp.Parameters) {
	prm = inp.NewParameters()
	prm.FESystem.Ndim = ndim
	prm.FESystem.PolyDegree = degree
	prm.FESystem.QuadOrder = degree + 1
	prm.Geometry.Kind = "box"
	prm.Geometry.GlobalRefinement = 1
	prm.Geometry.Scale = 1
	prm.Geometry.Pp0 = 1
	prm.Material.Mu = 1
	prm.Material.Nu = 0.3
	prm.Load.BoundaryId = inp.BoxPressureTag
	prm.Load.Dir = []float64{0, -0.1, 0}
	prm.Solver.Nworkers = 2
	prm.Output.Save = false
	return
}

// testDomain allocates a domain or stops the test
func testDomain(tst *testing.T, prm *inp.Parameters) *Domain {
	if err := prm.Validate(); err != nil {
		tst.Fatalf("invalid parameters:\n%v", err)
	}
	msh, err := inp.NewMesh(prm.FESystem.Ndim, prm.FESystem.PolyDegree, &prm.Geometry)
	if err != nil {
		tst.Fatalf("cannot generate mesh:\n%v", err)
	}
	d, err := NewDomain(prm, msh)
	if err != nil {
		tst.Fatalf("cannot allocate domain:\n%v", err)
	}
	return d
}

// perturb returns a deformed state: small displacements, non-zero p̃ and J̃ != 1
func perturb(d *Domain, amp float64) (y []float64) {
	y = make([]float64, d.Ny)
	copy(y, d.Sol.Un)
	for i := d.U.Lo; i < d.U.Hi; i++ {
		y[i] += amp * math.Sin(float64(i+1))
	}
	for i := d.P.Lo; i < d.P.Hi; i++ {
		y[i] += 0.3 + 0.1*math.Cos(float64(i))
	}
	for i := d.J.Lo; i < d.J.Hi; i++ {
		y[i] += 0.02 * math.Sin(float64(2*i+1))
	}
	return
}

func Test_u3f01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("u3f01. consistent tangent")

	for _, c := range []struct{ ndim, degree int }{{2, 1}, {2, 2}, {3, 1}} {
		d := testDomain(tst, testParams(c.ndim, c.degree))
		e := d.Elems[1].(*ElemU3f)
		n := e.Nlocal()
		io.Pforan("ndim=%d degree=%d nlocal=%d\n", c.ndim, c.degree, n)
		chk.Int(tst, "nlocal", n, len(e.Eqs()))

		// analytical tangent
		y := perturb(d, 0.02)
		if err := e.Update(y); err != nil {
			tst.Errorf("Update failed:\n%v", err)
			return
		}
		ls := NewLocalSystem(n)
		if err := e.AddToSystem(ls, 1); err != nil {
			tst.Errorf("AddToSystem failed:\n%v", err)
			return
		}

		// numerical tangent: K = -dR/dy
		tmp := NewLocalSystem(n)
		yy := make([]float64, len(y))
		copy(yy, y)
		var maxerr float64
		for j := 0; j < n; j++ {
			J := e.Eqs()[j]
			for i := 0; i < n; i++ {
				dnum := fd.Derivative(func(x float64) float64 {
					yy[J] = x
					e.Update(yy)
					e.AddToSystem(tmp, 1)
					yy[J] = y[J]
					return -tmp.R[i]
				}, y[J], &fd.Settings{Formula: fd.Central, Step: 1e-6})
				maxerr = math.Max(maxerr, math.Abs(ls.K[i][j]-dnum))
			}
		}
		io.Pforan("max error = %g\n", maxerr)
		chk.Float64(tst, "max |K - Knum|", 1e-6, maxerr, 0)

		// symmetry
		for i := 0; i < n; i++ {
			for j := 0; j < i; j++ {
				if ls.K[i][j] != ls.K[j][i] {
					tst.Errorf("tangent must be symmetric: K[%d][%d]=%g != K[%d][%d]=%g", i, j, ls.K[i][j], j, i, ls.K[j][i])
					return
				}
			}
		}
	}
}

func Test_u3f02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("u3f02. traction ramp on Cook's membrane")

	prm := inp.NewParameters()
	prm.FESystem.Ndim = 2
	prm.FESystem.PolyDegree = 2
	prm.Geometry.CellCount = 2
	prm.Geometry.Pp0 = 1
	d := testDomain(tst, prm)

	// total vertical force at time t
	force := func(t float64) (fb []float64, fy float64) {
		if err := d.AssembleSystem(context.Background(), t); err != nil {
			tst.Fatalf("AssembleSystem failed:\n%v", err)
		}
		fb = make([]float64, d.Ny)
		copy(fb, d.Fb)
		for i := 1; i < d.Nu; i += d.Ndim {
			fy += fb[i]
		}
		return
	}
	tend := prm.Time.EndTime
	fb1, fy1 := force(tend)
	fbh, fyh := force(tend / 2)

	// undeformed state: the right-hand side only contains the traction on the loaded face of height 16
	sc := prm.Geometry.Scale
	fcor := prm.Geometry.Pp0 / (sc * sc) * prm.Load.Dir[1] * 16 * sc
	io.Pforan("fy(tend) = %v, fy(tend/2) = %v\n", fy1, fyh)
	chk.Float64(tst, "fy(tend)", 1e-9, fy1, fcor)
	chk.Float64(tst, "fy(tend/2)", 1e-9, fyh, fcor/2)
	for i := range fb1 {
		fb1[i] /= 2
	}
	chk.Array(tst, "fb(tend/2)", 1e-12, fbh, fb1)
	_, fy0 := force(0)
	chk.Float64(tst, "fy(0)", 1e-17, fy0, 0)
}

func Test_u3f03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("u3f03. records and diagnostics")

	d := testDomain(tst, testParams(2, 2))
	v0, v, dil := d.Volumes()
	chk.Float64(tst, "V0", 1e-14, v0, 1)
	chk.Float64(tst, "v", 1e-14, v, 1)
	chk.Float64(tst, "dilatation error", 1e-14, dil, 0)
	for _, τ := range d.CellTauNorms() {
		chk.Float64(tst, "|τ|", 1e-14, τ, 0)
	}

	// uniform stretch of y: det(F) = 1.1
	y := make([]float64, d.Ny)
	copy(y, d.Sol.Un)
	for _, vert := range d.Msh.Verts {
		y[vert.Id*2+1] = 0.1 * vert.C[1]
	}
	if err := d.UpdateRecords(context.Background(), y); err != nil {
		tst.Errorf("UpdateRecords failed:\n%v", err)
		return
	}
	v0, v, dil = d.Volumes()
	chk.Float64(tst, "v", 1e-13, v, 1.1)
	chk.Float64(tst, "dilatation error", 1e-13, dil, 0.1)
	x := d.HighestPoint(y)
	chk.Float64(tst, "highest y", 1e-15, x[1], 1.1)

	// ties on the top edge: round-off does not change the chosen vertex
	first, last := -1, -1
	for _, vert := range d.Msh.Verts {
		if vert.C[1] == 1 {
			if first < 0 || vert.Id < first {
				first = vert.Id
			}
			if vert.Id > last {
				last = vert.Id
			}
		}
	}
	y[last*2+1] += 1e-15
	x = d.HighestPoint(y)
	chk.Float64(tst, "highest x (tie)", 1e-17, x[0], d.Msh.Verts[first].C[0])
	y[last*2+1] -= 2e-15
	x = d.HighestPoint(y)
	chk.Float64(tst, "highest x (tie)", 1e-17, x[0], d.Msh.Verts[first].C[0])
	y[last*2+1] += 1e-6
	x = d.HighestPoint(y)
	chk.Float64(tst, "highest x", 1e-17, x[0], d.Msh.Verts[last].C[0])

	// inverted cell
	for _, vert := range d.Msh.Verts {
		y[vert.Id*2+1] = -2 * vert.C[1]
	}
	if err := d.UpdateRecords(context.Background(), y); !errors.Is(err, msolid.ErrKinematicInversion) {
		tst.Errorf("inverted cells must fail with ErrKinematicInversion. err = %v", err)
	}
}
