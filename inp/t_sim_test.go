// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"os"
	"path/filepath"
	"testing"

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

func writeFile(tst *testing.T, fn, content string) string {
	path := filepath.Join(tst.TempDir(), fn)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		tst.Fatalf("cannot write %q: %v", path, err)
	}
	return path
}

func Test_sim01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim01. default values")

	o := NewParameters()
	if err := o.Validate(); err != nil {
		tst.Errorf("default parameters must be valid:\n%v", err)
		return
	}
	chk.Int(tst, "ndim", o.FESystem.Ndim, 3)
	chk.Int(tst, "poly_degree", o.FESystem.PolyDegree, 2)
	chk.Int(tst, "max_iterations_NR", o.NonlinearSolver.MaxItNR, 10)
	chk.Int(tst, "boundary_id", o.Load.BoundaryId, CookLoadedTag)
	chk.Array(tst, "dir", 1e-17, o.Load.Dir, []float64{0, 0.0625, 0})
	chk.Int(tst, "number of dirichlet sets", len(o.Dirichlet), 3)
	prms := o.MatPrms()
	chk.Float64(tst, "mu", 1e-17, prms.Find("mu").V, 80.194e6)
	chk.Float64(tst, "nu", 1e-17, prms.Find("nu").V, 0.4999)
}

func Test_sim02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim02. read JSON and YAML")

	fnj := writeFile(tst, "cook2d.json", `{
  "desc" : "Cook's membrane in 2D",
  "fesystem" : { "ndim" : 2, "poly_degree" : 1, "quad_order" : 2 },
  "geometry" : { "cell_count" : 4 },
  "material" : { "mu" : 1e6, "nu" : 0.3 },
  "linear_solver" : { "linear_solver_type" : "Direct", "use_static_condensation" : false }
}`)
	o, err := ReadParameters(fnj)
	if err != nil {
		tst.Errorf("ReadParameters failed:\n%v", err)
		return
	}
	chk.Int(tst, "ndim", o.FESystem.Ndim, 2)
	chk.Int(tst, "cell_count", o.Geometry.CellCount, 4)
	chk.Float64(tst, "mu", 1e-17, o.Material.Mu, 1e6)
	chk.Float64(tst, "tol_f (default)", 1e-17, o.NonlinearSolver.TolF, 1e-9)
	if o.LinearSolver.Type != "Direct" || o.LinearSolver.UseStaticCondensation {
		tst.Errorf("linear solver data is incorrect: %+v", o.LinearSolver)
	}
	if o.Key != "cook2d" {
		tst.Errorf("key is incorrect: %q", o.Key)
	}

	fny := writeFile(tst, "box3d.yaml", `
desc: box
geometry:
  kind: box
  global_refinement: 1
time:
  delta_t: 0.25
  end_time: 0.5
dirichlet:
  - tag: 2
    keys: [ux, uy, uz]
load:
  boundary_id: 6
  dir: [0, -1, 0]
`)
	o, err = ReadParameters(fny)
	if err != nil {
		tst.Errorf("ReadParameters failed:\n%v", err)
		return
	}
	if o.Geometry.Kind != "box" {
		tst.Errorf("geometry kind is incorrect: %q", o.Geometry.Kind)
	}
	chk.Float64(tst, "delta_t", 1e-17, o.Time.DeltaT, 0.25)
	chk.Int(tst, "number of dirichlet sets", len(o.Dirichlet), 1)
	chk.Int(tst, "boundary_id", o.Load.BoundaryId, BoxPressureTag)
	chk.Array(tst, "dir", 1e-17, o.Load.Dir, []float64{0, -1, 0})
}

func Test_sim03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim03. invalid data and environment overrides")

	for _, content := range []string{
		`{ "linear_solver" : { "linear_solver_type" : "GMRES" } }`,
		`{ "linear_solver" : { "preconditioner_type" : "ilu" } }`,
		`{ "fesystem" : { "ndim" : 4 } }`,
		`{ "time" : { "delta_t" : 0 } }`,
		`{ "material" : { "model" : "unknown" } }`,
		`{ "geometry" : { "kind" : "file" } }`,
		`{ "dirichlet" : [ { "tag" : 1, "keys" : [ "ux", "p" ] } ] }`,
		`{ "fesystem" : { "ndim" : 3 }, "load" : { "dir" : [ 0, 1 ] } }`,
		`{ "nonlinear_solver" : { "max_iterations_NR" : -1 } }`,
	} {
		fn := writeFile(tst, "invalid.json", content)
		_, err := ReadParameters(fn)
		if err == nil {
			tst.Errorf("reading %s should have failed", content)
			return
		}
		io.Pforan("%v\n", err)
	}

	_, err := ReadParameters(filepath.Join(tst.TempDir(), "inexistent.json"))
	if err == nil {
		tst.Errorf("reading inexistent file should have failed")
		return
	}

	tst.Setenv("MLSOLVER_NWORKERS", "3")
	tst.Setenv("MLSOLVER_DIROUT", "/tmp/mlsolver_env")
	tst.Setenv("MLSOLVER_VERBOSE", "true")
	o := NewParameters()
	if err := o.PostProcess(); err != nil {
		tst.Errorf("PostProcess failed:\n%v", err)
		return
	}
	chk.Int(tst, "nworkers", o.Solver.Nworkers, 3)
	if o.Output.DirOut != "/tmp/mlsolver_env" || !o.Solver.Verbose {
		tst.Errorf("environment overrides failed: %+v %+v", o.Output, o.Solver)
	}
}
