// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"os"

	"github.com/cpmech/gosl/chk"
)

// StepOutput holds the results of a converged time step
type StepOutput struct {
	RunId   string    // id of run
	Step    int       // time step index
	T       float64   // time
	Ndim    int       // space dimension
	Un      []float64 // [Ny] converged solution
	CellTau []float64 // [ncells] volume average of |τ|
	Highest []float64 // current coordinates of the highest vertex
	V0      float64   // reference volume
	V       float64   // current volume
	DilErr  float64   // L2 norm of det(F) - J̃
}

// OutputSink receives the results of converged steps
type OutputSink interface {
	Write(r *StepOutput) error
}

// NewStepOutput collects the results of the current converged state
func (o *Domain) NewStepOutput(runId string) (r *StepOutput) {
	r = &StepOutput{
		RunId:   runId,
		Step:    o.Sol.Step,
		T:       o.Sol.T,
		Ndim:    o.Ndim,
		Un:      make([]float64, o.Ny),
		CellTau: o.CellTauNorms(),
		Highest: o.HighestPoint(o.Sol.Un),
	}
	copy(r.Un, o.Sol.Un)
	r.V0, r.V, r.DilErr = o.Volumes()
	return
}

// FileSink saves one file per converged step
type FileSink struct {
	Dir     string // output directory
	Fnkey   string // filename key
	Enc     string // encoder type
	Verbose bool   // show messages
}

// NewFileSink returns a new file sink; the output directory is created if necessary
func NewFileSink(dir, fnkey, enctype string, verbose bool) (o *FileSink, err error) {
	if err = os.MkdirAll(dir, 0755); err != nil {
		return nil, chk.Err("cannot create output directory %q:\n%v", dir, err)
	}
	return &FileSink{dir, fnkey, enctype, verbose}, nil
}

// Write saves the results of one step
func (o *FileSink) Write(r *StepOutput) error {
	return SaveStep(o.Dir, o.Fnkey, o.Enc, r, o.Verbose)
}
