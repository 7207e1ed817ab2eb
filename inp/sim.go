// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a JSON (.sim/.json) or YAML (.yaml) file
package inp

import (
	"encoding/json"
	"fmt"
	goio "io"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/cpmech/gosl/chk"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/agtmwebtoon/MLSolver/msolid"
)

// FESystem holds the finite element discretisation data
type FESystem struct {
	Ndim       int `json:"ndim" yaml:"ndim" validate:"oneof=2 3"`                 // space dimension
	PolyDegree int `json:"poly_degree" yaml:"poly_degree" validate:"min=1,max=2"` // degree k of displacements; pressure and dilatation use k-1 (discontinuous)
	QuadOrder  int `json:"quad_order" yaml:"quad_order" validate:"min=1"`         // number of Gauss points along each direction
}

// Geometry holds data to generate or read the mesh
type Geometry struct {
	Kind             string  `json:"kind" yaml:"kind" validate:"oneof=cook box file"`             // "cook": Cook's membrane; "box": unit hyper-rectangle; "file": read Mshfile
	GlobalRefinement int     `json:"global_refinement" yaml:"global_refinement" validate:"min=0"` // number of global refinements (box)
	Scale            float64 `json:"scale" yaml:"scale" validate:"gt=0"`                          // global scaling factor of coordinates
	Pp0              float64 `json:"p_p0" yaml:"p_p0"`                                            // ratio between applied and reference pressure
	CellCount        int     `json:"cell_count" yaml:"cell_count" validate:"min=1"`               // number of cells along each in-plane edge (cook)
	Mshfile          string  `json:"mshfile" yaml:"mshfile"`                                      // mesh file path (file)
}

// Material holds material data
type Material struct {
	Model string  `json:"model" yaml:"model" validate:"required"` // model name; e.g. "neohook-3f"
	Mu    float64 `json:"mu" yaml:"mu"`                           // μ: shear modulus
	Nu    float64 `json:"nu" yaml:"nu"`                           // ν: Poisson's coefficient
}

// LinearSolver holds data for linear solvers
type LinearSolver struct {
	Type                     string  `json:"linear_solver_type" yaml:"linear_solver_type" validate:"oneof=CG Direct"`                  // "CG" or "Direct"
	TolLin                   float64 `json:"tol_lin" yaml:"tol_lin" validate:"gt=0"`                                                   // relative tolerance of iterative solver
	MaxItLin                 float64 `json:"max_iterations_lin" yaml:"max_iterations_lin" validate:"gt=0"`                             // multiplier of the number of rows to compute the max number of iterations
	UseStaticCondensation    bool    `json:"use_static_condensation" yaml:"use_static_condensation"`                                   // eliminate pressure and dilatation at cell level
	PreconditionerType       string  `json:"preconditioner_type" yaml:"preconditioner_type" validate:"oneof=jacobi ssor sor identity"` // preconditioner of iterative solver
	PreconditionerRelaxation float64 `json:"preconditioner_relaxation" yaml:"preconditioner_relaxation" validate:"gt=0,lt=2"`          // relaxation factor of preconditioner
}

// NonlinearSolver holds data for the Newton-Raphson solver
type NonlinearSolver struct {
	MaxItNR int     `json:"max_iterations_NR" yaml:"max_iterations_NR" validate:"min=0"` // max number of iterations
	TolF    float64 `json:"tol_f" yaml:"tol_f" validate:"gt=0"`                          // tolerance on the normalised force residual
	TolU    float64 `json:"tol_u" yaml:"tol_u" validate:"gt=0"`                          // tolerance on the normalised displacement update
}

// Time holds data for the time stepping
type Time struct {
	DeltaT  float64 `json:"delta_t" yaml:"delta_t" validate:"gt=0"`   // time step size
	EndTime float64 `json:"end_time" yaml:"end_time" validate:"gt=0"` // final time
}

// Load holds data of the Neumann boundary condition
type Load struct {
	BoundaryId int       `json:"boundary_id" yaml:"boundary_id"`        // face tag of loaded faces
	Dir        []float64 `json:"dir" yaml:"dir" validate:"min=2,max=3"` // traction per unit of reference pressure
}

// DirichletBc holds essential boundary conditions on tagged faces
type DirichletBc struct {
	Tag   int      `json:"tag" yaml:"tag"`                                        // face tag
	Keys  []string `json:"keys" yaml:"keys" validate:"min=1,dive,oneof=ux uy uz"` // constrained components
	Value float64  `json:"value" yaml:"value"`                                    // prescribed displacement increment per time step
}

// Output holds data for output files
type Output struct {
	DirOut      string `json:"dirout" yaml:"dirout" env:"MLSOLVER_DIROUT"`              // directory for output; e.g. /tmp/mlsolver
	Encoder     string `json:"encoder" yaml:"encoder" validate:"oneof=gob json"`        // encoder name
	Save        bool   `json:"save" yaml:"save"`                                        // save solution at each converged time step
	MetricsFile string `json:"metrics_file" yaml:"metrics_file" env:"MLSOLVER_METRICS"` // Prometheus textfile; empty means no metrics file
}

// Solver holds data for running the simulation
type Solver struct {
	Nworkers int  `json:"nworkers" yaml:"nworkers" env:"MLSOLVER_NWORKERS" validate:"min=0"` // number of goroutines in cell loops; 0 means number of CPUs
	Verbose  bool `json:"verbose" yaml:"verbose" env:"MLSOLVER_VERBOSE"`                     // show messages
}

// Parameters holds all simulation data
type Parameters struct {

	// input
	Desc            string          `json:"desc" yaml:"desc"`                           // description of simulation
	FESystem        FESystem        `json:"fesystem" yaml:"fesystem"`                   // discretisation
	Geometry        Geometry        `json:"geometry" yaml:"geometry"`                   // mesh
	Material        Material        `json:"material" yaml:"material"`                   // material
	LinearSolver    LinearSolver    `json:"linear_solver" yaml:"linear_solver"`         // linear solver
	NonlinearSolver NonlinearSolver `json:"nonlinear_solver" yaml:"nonlinear_solver"`   // Newton-Raphson
	Time            Time            `json:"time" yaml:"time"`                           // time stepping
	Load            Load            `json:"load" yaml:"load"`                           // natural boundary conditions
	Dirichlet       []*DirichletBc  `json:"dirichlet" yaml:"dirichlet" validate:"dive"` // essential boundary conditions
	Output          Output          `json:"output" yaml:"output"`                       // output
	Solver          Solver          `json:"solver" yaml:"solver"`                       // run options

	// derived
	Key       string `json:"-" yaml:"-"` // simulation key; e.g. mysim01.json => mysim01
	FnamePath string `json:"-" yaml:"-"` // complete filename path
}

// NewParameters returns parameters with default values
func NewParameters() (o *Parameters) {
	o = new(Parameters)
	o.SetDefault()
	return
}

// ReadParameters reads all simulation data from a JSON or YAML file
func ReadParameters(fn string) (o *Parameters, err error) {

	// read file
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, chk.Err("ReadParameters: cannot read parameters file %q:\n%v", fn, err)
	}

	// set default values
	o = NewParameters()

	// decode
	ext := strings.ToLower(filepath.Ext(fn))
	switch ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, o)
	default:
		err = json.Unmarshal(b, o)
	}
	if err != nil {
		return nil, chk.Err("ReadParameters: cannot unmarshal parameters file %q:\n%v", fn, err)
	}

	// derived
	o.FnamePath = fn
	o.Key = strings.TrimSuffix(filepath.Base(fn), filepath.Ext(fn))
	if o.Geometry.Kind == "file" && o.Geometry.Mshfile != "" && !filepath.IsAbs(o.Geometry.Mshfile) {
		o.Geometry.Mshfile = filepath.Join(filepath.Dir(fn), o.Geometry.Mshfile)
	}
	err = o.PostProcess()
	return
}

// SetDefault sets defaults values
func (o *Parameters) SetDefault() {

	// discretisation
	o.FESystem.Ndim = 3
	o.FESystem.PolyDegree = 2
	o.FESystem.QuadOrder = 3

	// geometry
	o.Geometry.Kind = "cook"
	o.Geometry.GlobalRefinement = 2
	o.Geometry.Scale = 1e-3
	o.Geometry.Pp0 = 100
	o.Geometry.CellCount = 8

	// material
	o.Material.Model = "neohook-3f"
	o.Material.Mu = 80.194e6
	o.Material.Nu = 0.4999

	// linear solver
	o.LinearSolver.Type = "CG"
	o.LinearSolver.TolLin = 1e-6
	o.LinearSolver.MaxItLin = 1
	o.LinearSolver.UseStaticCondensation = true
	o.LinearSolver.PreconditionerType = "ssor"
	o.LinearSolver.PreconditionerRelaxation = 0.65

	// nonlinear solver
	o.NonlinearSolver.MaxItNR = 10
	o.NonlinearSolver.TolF = 1e-9
	o.NonlinearSolver.TolU = 1e-6

	// time
	o.Time.DeltaT = 0.1
	o.Time.EndTime = 1

	// load: vertical shear on the face x=48 of Cook's membrane
	o.Load.BoundaryId = 11
	o.Load.Dir = []float64{0, 0.0625, 0}

	// clamped face x=0 and out-of-plane restraint elsewhere
	o.Dirichlet = []*DirichletBc{
		{Tag: 1, Keys: []string{"ux", "uy", "uz"}},
		{Tag: 3, Keys: []string{"uz"}},
		{Tag: 2, Keys: []string{"uz"}},
	}

	// output
	o.Output.DirOut = "/tmp/mlsolver"
	o.Output.Encoder = "gob"
	o.Key = "mlsolver"
}

// PostProcess applies environment overrides and validates the input
func (o *Parameters) PostProcess() (err error) {
	if err = o.ApplyEnv(); err != nil {
		return
	}
	return o.Validate()
}

// ApplyEnv overrides data with environment variables; e.g. MLSOLVER_NWORKERS
func (o *Parameters) ApplyEnv() (err error) {
	if err = env.Parse(o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return
}

// Validate checks the input data
func (o *Parameters) Validate() (err error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err = v.Struct(o); err != nil {
		return chk.Err("invalid parameters:\n%v", err)
	}
	if len(o.Load.Dir) < o.FESystem.Ndim {
		return chk.Err("load direction must have at least ndim=%d components. %v is invalid", o.FESystem.Ndim, o.Load.Dir)
	}
	if o.Geometry.Kind == "file" && o.Geometry.Mshfile == "" {
		return chk.Err("mesh file must be given with geometry kind %q", o.Geometry.Kind)
	}
	if _, err = msolid.New(o.Material.Model); err != nil {
		return chk.Err("%v. available models: %v", err, msolid.Names())
	}
	return
}

// MatPrms returns the parameters of the material model
func (o *Parameters) MatPrms() msolid.Prms {
	return msolid.Prms{
		&msolid.Prm{N: "mu", V: o.Material.Mu},
		&msolid.Prm{N: "nu", V: o.Material.Nu},
	}
}

// GetInfo returns formatted information
func (o *Parameters) GetInfo(w goio.Writer) (err error) {
	b, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return
}
