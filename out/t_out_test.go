// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/agtmwebtoon/MLSolver/fem"
	"github.com/agtmwebtoon/MLSolver/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// runBox runs a small simulation on the unit square and saves the results in dir
func runBox(tst *testing.T, dir string) (prm *inp.Parameters, analysis *fem.FEM) {
	prm = inp.NewParameters()
	prm.Key = "out01"
	prm.FESystem.Ndim = 2
	prm.FESystem.PolyDegree = 1
	prm.FESystem.QuadOrder = 2
	prm.Geometry.Kind = "box"
	prm.Geometry.GlobalRefinement = 1
	prm.Geometry.Scale = 1
	prm.Geometry.Pp0 = 1
	prm.Material.Mu = 1
	prm.Material.Nu = 0.3
	prm.Load.BoundaryId = inp.BoxPressureTag
	prm.Load.Dir = []float64{0, -0.1, 0}
	prm.Time.DeltaT = 0.25
	prm.Time.EndTime = 0.75
	prm.Output.Save = true
	prm.Output.DirOut = dir
	prm.Solver.Nworkers = 2
	if err := prm.Validate(); err != nil {
		tst.Fatalf("invalid parameters:\n%v", err)
	}
	analysis, err := fem.NewFEM(prm)
	if err != nil {
		tst.Fatalf("NewFEM failed:\n%v", err)
	}
	if err = analysis.Run(context.Background()); err != nil {
		tst.Fatalf("Run failed:\n%v", err)
	}
	return
}

func Test_out01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("out01. displacement histories")

	prm, analysis := runBox(tst, tst.TempDir())
	res, err := Start(prm)
	if err != nil {
		tst.Errorf("Start failed:\n%v", err)
		return
	}

	// define points
	for _, d := range []struct {
		alias string
		loc   Locator
	}{
		{"A", At{0, 1}},
		{"clamped", Face(1)},
		{"top", AlongX{1}},
		{"a b c", AlongY{0}},
	} {
		if err = res.Define(d.alias, d.loc); err != nil {
			tst.Errorf("Define failed:\n%v", err)
			return
		}
	}
	if err = res.Define("none", At{5, 5}); err == nil {
		tst.Errorf("point outside the mesh must not be found")
	}
	chk.Int(tst, "number of clamped vertices", len(res.Points["clamped"]), 3)

	// load all times
	if err = res.LoadResults(nil); err != nil {
		tst.Errorf("LoadResults failed:\n%v", err)
		return
	}
	chk.Ints(tst, "time indices", res.TimeInds, []int{0, 1, 2})
	chk.Array(tst, "times", 1e-15, res.Times, []float64{0, 0.25, 0.5})

	// single point
	vid := res.Points["A"][0].Vid
	uy, err := res.GetRes("uy", "A", 0)
	if err != nil {
		tst.Errorf("GetRes failed:\n%v", err)
		return
	}
	io.Pforan("uy(A) = %v\n", uy)
	chk.Int(tst, "len(uy)", len(uy), 3)
	chk.Float64(tst, "uy(A,0)", 1e-17, uy[0], 0)
	chk.Float64(tst, "uy(A,2)", 1e-17, uy[2], analysis.Dom.Sol.Un[2*vid+1])
	uyc, _ := res.GetRes("uy", "c", 0)
	chk.Array(tst, "uy(c)", 1e-17, uyc, uy)
	x, err := res.GetCurrent("A")
	if err != nil {
		tst.Errorf("GetCurrent failed:\n%v", err)
		return
	}
	chk.Float64(tst, "y(A,2)", 1e-15, x[2][1], 1+uy[2])

	// set of points
	ux, err := res.GetRes("ux", "clamped", -1)
	if err != nil {
		tst.Errorf("GetRes failed:\n%v", err)
		return
	}
	chk.Array(tst, "ux(clamped)", 1e-17, ux, []float64{0, 0, 0})
	dist, _ := res.GetDist("top")
	chk.Array(tst, "dist(top)", 1e-15, dist, []float64{0, 0.5, 1})
	if _, err = res.GetRes("uz", "top", 0); err == nil {
		tst.Errorf("uz must not be available in 2D")
	}

	// highest point
	for k, xh := range res.Highest() {
		chk.Array(tst, "highest", 1e-17, xh, analysis.Summary.Steps[k].Highest)
	}

	// table
	var buf bytes.Buffer
	if err = res.WriteTable(&buf, "A"); err != nil {
		tst.Errorf("WriteTable failed:\n%v", err)
		return
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	chk.Int(tst, "number of lines", len(lines), 4)
	chk.Int(tst, "number of columns", len(strings.Fields(lines[1])), 3)

	// selected times
	if err = res.LoadResults([]float64{0.5, 0.9}); err != nil {
		tst.Errorf("LoadResults failed:\n%v", err)
		return
	}
	chk.Ints(tst, "time indices", res.TimeInds, []int{2})
	uy, _ = res.GetRes("uy", "A", 0)
	chk.Array(tst, "uy(A)", 1e-17, uy, []float64{analysis.Dom.Sol.Un[2*vid+1]})

	// first and last times
	if err = res.LoadResults([]float64{0, -1}); err != nil {
		tst.Errorf("LoadResults failed:\n%v", err)
		return
	}
	chk.Ints(tst, "time indices", res.TimeInds, []int{0, 2})
	chk.Array(tst, "times", 1e-15, res.Times, []float64{0, 0.5})
}

func Test_out02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("out02. inconsistent mesh")

	prm, _ := runBox(tst, tst.TempDir())
	prm.Geometry.GlobalRefinement = 2
	if _, err := Start(prm); err == nil {
		tst.Errorf("Start must fail with a different mesh")
	}
	prm.Output.DirOut = tst.TempDir()
	if _, err := Start(prm); err == nil {
		tst.Errorf("Start must fail without results")
	}
}
