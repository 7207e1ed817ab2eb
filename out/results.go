// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	goio "io"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// keys of displacement components
var ukeys = []string{"ux", "uy", "uz"}

// Define defines aliases
//  alias -- an alias to a group of points, an individual point, or to a set of points.
//           Example: "A", "left-column" or "a b c". If the number of points found is different
//           than the number of aliases, a group is created.
//  Note:
//    To use spaces in aliases, prefix the alias with an exclamation mark; e.g "!right column"
func (o *Results) Define(alias string, loc Locator) (err error) {

	// check
	if len(alias) < 1 {
		return chk.Err("alias must have at least one character. %q is invalid", alias)
	}

	// locate points
	pts := loc.Locate(o.Msh)
	if len(pts) < 1 {
		return chk.Err("cannot define entities with alias=%q and locator=%v", alias, loc)
	}

	// set results map
	if alias[0] == '!' {
		o.Points[alias[1:]] = pts
		return
	}
	lbls := strings.Fields(alias)
	if len(lbls) == len(pts) {
		for i, l := range lbls {
			o.Points[l] = Points{pts[i]}
		}
		return
	}
	o.Points[alias] = pts
	return
}

// LoadResults loads the displacements of all defined points
//  times -- specified selected output times
//           use nil to indicate that all times are required and -1 for the last time
func (o *Results) LoadResults(times []float64) (err error) {

	// selected output times and indices
	all := o.Sum.OutTimes()
	if times == nil {
		times = all
	}
	o.TimeInds, o.Times = utl.GetITout(all, times, TolT)

	// clear previous values
	ndim := o.Sum.Ndim
	for _, pts := range o.Points {
		for _, p := range pts {
			for _, key := range ukeys[:ndim] {
				p.Vals[key] = make([]float64, 0, len(o.TimeInds))
			}
		}
	}

	// for each selected output time
	for _, tidx := range o.TimeInds {
		r, e := o.Step(tidx)
		if e != nil {
			return e
		}
		if len(r.Un) < o.Sum.Nverts*ndim {
			return chk.Err("inconsistency of results detected: step %d has %d equations", r.Step, len(r.Un))
		}
		for _, pts := range o.Points {
			for _, p := range pts {
				for i, key := range ukeys[:ndim] {
					p.Vals[key] = append(p.Vals[key], r.Un[p.Vid*ndim+i])
				}
			}
		}
	}
	return
}

// GetRes gets results as a time or space series corresponding to a given alias
// for a single point or set of points.
//  idxI -- index in TimeInds slice corresponding to selected output time; use -1 for the last item.
//          If alias defines a single point, the whole time series is returned and idxI is ignored.
func (o *Results) GetRes(key, alias string, idxI int) (res []float64, err error) {
	if idxI < 0 {
		idxI = len(o.TimeInds) - 1
	}
	pts, ok := o.Points[alias]
	if !ok {
		return nil, chk.Err("cannot find alias %q", alias)
	}
	if len(pts) == 1 {
		if v, ok := pts[0].Vals[key]; ok {
			return v, nil
		}
		return nil, chk.Err("cannot get %q at %q", key, alias)
	}
	for _, p := range pts {
		v, ok := p.Vals[key]
		if !ok || idxI >= len(v) {
			return nil, chk.Err("cannot get %q at %q and time index %d", key, alias, idxI)
		}
		res = append(res, v[idxI])
	}
	return
}

// GetCoords returns the coordinates of a single point
func (o *Results) GetCoords(alias string) ([]float64, error) {
	if pts, ok := o.Points[alias]; ok && len(pts) == 1 {
		return pts[0].X, nil
	}
	return nil, chk.Err("cannot get coordinates of point with alias %q (make sure this alias corresponds to a single point)", alias)
}

// GetDist returns the distances from the first point of a set
func (o *Results) GetDist(alias string) (dist []float64, err error) {
	pts, ok := o.Points[alias]
	if !ok {
		return nil, chk.Err("cannot get distance with alias %q", alias)
	}
	for _, p := range pts {
		dist = append(dist, p.Dist)
	}
	return
}

// GetCurrent returns the current coordinates of a single point over the selected times
func (o *Results) GetCurrent(alias string) (x [][]float64, err error) {
	X, err := o.GetCoords(alias)
	if err != nil {
		return
	}
	ndim := o.Sum.Ndim
	x = make([][]float64, len(o.TimeInds))
	for k := range o.TimeInds {
		x[k] = make([]float64, ndim)
		for i, key := range ukeys[:ndim] {
			x[k][i] = X[i] + o.Points[alias][0].Vals[key][k]
		}
	}
	return
}

// Highest returns the current coordinates of the highest vertex over the selected times
func (o *Results) Highest() (x [][]float64) {
	x = make([][]float64, len(o.TimeInds))
	for k, tidx := range o.TimeInds {
		x[k] = o.Sum.Steps[tidx].Highest
	}
	return
}

// WriteTable writes a table with times and displacements of a single point
func (o *Results) WriteTable(w goio.Writer, alias string) (err error) {
	pts, ok := o.Points[alias]
	if !ok || len(pts) != 1 {
		return chk.Err("alias %q must correspond to a single point", alias)
	}
	ndim := o.Sum.Ndim
	var b strings.Builder
	b.WriteString(io.Sf("%23s", "t"))
	for _, key := range ukeys[:ndim] {
		b.WriteString(io.Sf(" %23s", key))
	}
	b.WriteString("\n")
	for k, t := range o.Times {
		b.WriteString(io.Sf("%23.15e", t))
		for _, key := range ukeys[:ndim] {
			b.WriteString(io.Sf(" %23.15e", pts[0].Vals[key][k]))
		}
		b.WriteString("\n")
	}
	_, err = goio.WriteString(w, b.String())
	return
}
