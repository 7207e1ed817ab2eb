// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"fmt"

	"github.com/agtmwebtoon/MLSolver/inp"
	"github.com/agtmwebtoon/MLSolver/msolid"
	"github.com/agtmwebtoon/MLSolver/shp"
	"github.com/cpmech/gosl/chk"
)

// ElemU3f implements the three-field (u-p̃-J̃) element for finite strain hyperelasticity
//  Displacements use the continuous Lagrange basis of the cell; the pressure p̃ and the
//  dilatation J̃ use the discontinuous complete polynomial basis of degree (deg-1)
type ElemU3f struct {

	// basic data
	Cell *inp.Cell    // cell
	X    [][]float64  // [ndim][nverts] reference coordinates
	Ndim int          // space dimension
	Nu   int          // number of local u dofs
	Np   int          // number of local p dofs
	Nj   int          // number of local J dofs
	Dgp  *shp.Dgp     // basis of p̃ and J̃
	Ips  []shp.Ipoint // integration points
	Umap []int        // [nlocal] global equations

	// data at integration points
	S    [][]float64        // [nip][nverts] shape functions
	G    [][][]float64      // [nip][nverts][ndim] derivatives w.r.t reference coordinates
	Sp   [][]float64        // [nip][np] pressure/dilatation basis
	JxW  []float64          // [nip] Jacobian times weight
	Recs []*msolid.IpRecord // [nip] quadrature point records

	// natural boundary conditions
	Faces []*loadFace // faces with load
	Trac  []float64   // [ndim] traction at full load

	// scratchpad
	gradU [][]float64 // [ndim][ndim] displacement gradient
	g     [][]float64 // [nverts][ndim] derivatives w.r.t current coordinates
}

// loadFace holds integration data on a loaded face
type loadFace struct {
	Idx   int         // local index of face
	Verts []int       // local vertices of face
	Sf    [][]float64 // [nipf][nfverts] face shape functions
	DA    []float64   // [nipf] reference area times weight
}

// register element
func init() {
	eallocators["u3f"] = func(d *Domain, c *inp.Cell) (Elem, error) {
		return NewElemU3f(d, c)
	}
}

// NewElemU3f allocates a new element and initialises its records at the undeformed state
func NewElemU3f(d *Domain, c *inp.Cell) (o *ElemU3f, err error) {

	// basic data
	prm := d.Prm
	sh := c.Shp
	if sh == nil {
		return nil, chk.Err("cell %d has no shape structure", c.Id)
	}
	o = &ElemU3f{Cell: c, X: d.Msh.CellCoords(c), Ndim: d.Ndim}
	o.Dgp, err = shp.NewDgp(sh.Gndim, prm.FESystem.PolyDegree-1)
	if err != nil {
		return
	}
	var ipsf []shp.Ipoint
	o.Ips, ipsf, err = shp.GetIps(c.Type, prm.FESystem.QuadOrder)
	if err != nil {
		return
	}
	nverts, ndim := sh.Nverts, o.Ndim
	o.Nu, o.Np, o.Nj = nverts*ndim, o.Dgp.N, o.Dgp.N

	// equations
	o.Umap = make([]int, 0, o.Nlocal())
	for _, v := range c.Verts {
		for a := 0; a < ndim; a++ {
			o.Umap = append(o.Umap, v*ndim+a)
		}
	}
	for k := 0; k < o.Np; k++ {
		o.Umap = append(o.Umap, d.P.Lo+c.Id*o.Np+k)
	}
	for k := 0; k < o.Nj; k++ {
		o.Umap = append(o.Umap, d.J.Lo+c.Id*o.Nj+k)
	}

	// integration points
	nip := len(o.Ips)
	o.S = make([][]float64, nip)
	o.G = make([][][]float64, nip)
	o.Sp = make([][]float64, nip)
	o.JxW = make([]float64, nip)
	o.Recs = make([]*msolid.IpRecord, nip)
	for p, ip := range o.Ips {
		if err = sh.CalcAtIp(o.X, ip, true); err != nil {
			return nil, chk.Err("cell %d: cannot compute shape functions at ip %d:\n%v", c.Id, p, err)
		}
		o.S[p] = make([]float64, nverts)
		copy(o.S[p], sh.S)
		o.G[p] = make([][]float64, nverts)
		for m := 0; m < nverts; m++ {
			o.G[p][m] = make([]float64, ndim)
			copy(o.G[p][m], sh.G[m])
		}
		o.Sp[p] = make([]float64, o.Np)
		o.Dgp.Calc(o.Sp[p], ip)
		o.JxW[p] = sh.J * ip[3]
		o.Recs[p], err = msolid.NewIpRecord(prm.Material.Model, ndim, prm.MatPrms())
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", c.Id, err)
		}
	}

	// loaded faces
	for idx, tag := range c.FTags {
		if tag != prm.Load.BoundaryId || tag == inp.NoTag {
			continue
		}
		f := &loadFace{Idx: idx, Verts: sh.FaceLocalVerts[idx]}
		for q, ipf := range ipsf {
			if err = sh.CalcAtFaceIp(o.X, ipf, idx); err != nil {
				return nil, chk.Err("cell %d: cannot compute face shape functions at face ip %d:\n%v", c.Id, q, err)
			}
			sf := make([]float64, len(f.Verts))
			copy(sf, sh.Sf)
			f.Sf = append(f.Sf, sf)
			f.DA = append(f.DA, sh.FaceJ()*ipf[3])
		}
		o.Faces = append(o.Faces, f)
	}
	scale := prm.Geometry.Scale
	o.Trac = make([]float64, ndim)
	for a := 0; a < ndim; a++ {
		o.Trac[a] = prm.Load.Dir[a] * prm.Geometry.Pp0 / (scale * scale)
	}

	// scratchpad
	o.gradU = msolid.Alloc2(ndim)
	o.g = make([][]float64, nverts)
	for m := 0; m < nverts; m++ {
		o.g[m] = make([]float64, ndim)
	}
	return
}

// Id returns the cell Id
func (o *ElemU3f) Id() int { return o.Cell.Id }

// Eqs returns the global equations
func (o *ElemU3f) Eqs() []int { return o.Umap }

// Nlocal returns the number of local dofs
func (o *ElemU3f) Nlocal() int { return o.Nu + o.Np + o.Nj }

// Blocks returns the sizes of the local blocks
func (o *ElemU3f) Blocks() (nu, np, nj int) { return o.Nu, o.Np, o.Nj }

// Update refreshes all records with the total solution y = Un + Delta
func (o *ElemU3f) Update(y []float64) (err error) {
	ndim := o.Ndim
	for p, rec := range o.Recs {
		var ptil, Jtil float64
		for k := 0; k < o.Np; k++ {
			ptil += o.Sp[p][k] * y[o.Umap[o.Nu+k]]
			Jtil += o.Sp[p][k] * y[o.Umap[o.Nu+o.Np+k]]
		}
		for i := 0; i < ndim; i++ {
			for j := 0; j < ndim; j++ {
				o.gradU[i][j] = 0
				for m := range o.G[p] {
					o.gradU[i][j] += y[o.Umap[m*ndim+i]] * o.G[p][m][j]
				}
			}
		}
		if err = rec.Update(o.gradU, ptil, Jtil); err != nil {
			return fmt.Errorf("cell %d, ip %d: %w", o.Cell.Id, p, err)
		}
	}
	return
}

// AddToSystem computes the local tangent and right-hand side
func (o *ElemU3f) AddToSystem(ls *LocalSystem, ramp float64) (err error) {

	// auxiliary
	ls.Zero()
	ndim, nu, np := o.Ndim, o.Nu, o.Np
	K, R := ls.K, ls.R

	// loop over integration points
	for p, rec := range o.Recs {
		w := o.JxW[p]
		sp := o.Sp[p]
		detF := rec.DetF()
		τ, Jc := rec.Tau, rec.Jc

		// g = G · F⁻¹
		for m, Gm := range o.G[p] {
			for k := 0; k < ndim; k++ {
				o.g[m][k] = 0
				for b := 0; b < ndim; b++ {
					o.g[m][k] += Gm[b] * rec.Finv[b][k]
				}
			}
		}

		// u rows
		for m, gm := range o.g {
			for a := 0; a < ndim; a++ {
				i := m*ndim + a
				for k := 0; k < ndim; k++ {
					R[i] -= gm[k] * τ[a][k] * w
				}
				for n := 0; n <= m; n++ {
					gn := o.g[n]
					for b := 0; b < ndim; b++ {
						j := n*ndim + b
						if j > i {
							break
						}
						var v float64
						for k := 0; k < ndim; k++ {
							for l := 0; l < ndim; l++ {
								v += gm[k] * Jc[a][k][b][l] * gn[l]
								if a == b {
									v += gm[k] * τ[k][l] * gn[l]
								}
							}
						}
						K[i][j] += v * w
					}
				}
			}
		}

		// p rows
		for k := 0; k < np; k++ {
			i := nu + k
			R[i] -= sp[k] * (detF - rec.Jtilde()) * w
			for n, gn := range o.g {
				for b := 0; b < ndim; b++ {
					K[i][n*ndim+b] += sp[k] * detF * gn[b] * w
				}
			}
		}

		// J rows
		for k := 0; k < o.Nj; k++ {
			i := nu + np + k
			R[i] -= sp[k] * (rec.DPsi - rec.Ptilde()) * w
			for l := 0; l < np; l++ {
				K[i][nu+l] -= sp[k] * sp[l] * w
			}
			for l := 0; l <= k; l++ {
				K[i][nu+np+l] += sp[k] * rec.D2Psi * sp[l] * w
			}
		}
	}

	// dead load on reference faces
	if ramp != 0 {
		for _, f := range o.Faces {
			for q, sf := range f.Sf {
				for kf, m := range f.Verts {
					for a := 0; a < ndim; a++ {
						R[m*ndim+a] += sf[kf] * ramp * o.Trac[a] * f.DA[q]
					}
				}
			}
		}
	}

	// upper triangle
	n := len(R)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			K[i][j] = K[j][i]
		}
	}
	return
}

// Volumes returns ∫dV, ∫det(F)dV and ∫(det(F)-J̃)²dV over the reference cell
func (o *ElemU3f) Volumes() (v0, v, dil2 float64) {
	for p, rec := range o.Recs {
		w := o.JxW[p]
		detF := rec.DetF()
		e := detF - rec.Jtilde()
		v0 += w
		v += detF * w
		dil2 += e * e * w
	}
	return
}

// MeanTauNorm returns the volume average of |τ|
func (o *ElemU3f) MeanTauNorm() float64 {
	var sum, vol float64
	for p, rec := range o.Recs {
		sum += rec.TauNorm() * o.JxW[p]
		vol += o.JxW[p]
	}
	return sum / vol
}
