// Copyright 2012 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build ignore

package main

import (
	"math"

	"github.com/agtmwebtoon/MLSolver/fem"
	"github.com/agtmwebtoon/MLSolver/out"
	"github.com/cpmech/gosl/io"
)

func read_summary(simfn string) *fem.Summary {
	if simfn == "" {
		return nil
	}
	res, err := out.StartFile(simfn)
	if err != nil {
		io.Pfred("ERROR: %v\n", err)
		return nil
	}
	return res.Sum
}

func main() {

	// input data
	simfnA, fnkA := io.ArgToFilename(0, "cook2d", ".json", true)
	skip := io.ArgToInt(1, 0)
	simfnB, fnkB := io.ArgToFilename(2, "", ".json", false)

	// print input data
	io.Pf("\nsimulation filename                  = %v\n", simfnA)
	io.Pf("number of initial increments to skip = %v\n", skip)
	io.Pf("simulation filename for comparison   = %v\n\n", simfnB)

	// read summaries
	sums := []*fem.Summary{read_summary(simfnA), read_summary(simfnB)}
	keys := []string{fnkA, fnkB}

	// residual histories: number of iterations and rate of the last iterations
	for k, sum := range sums {
		if sum == nil {
			continue
		}
		io.Pfcyan("%s: run %s\n", keys[k], sum.RunId)
		io.Pf("%6s %10s %6s %8s  %s\n", "step", "t", "NR_IT", "LIN_IT", "log10(RES_U)")
		var total, nsteps int
		for i, s := range sum.Steps {
			if s.Step == 0 || i <= skip {
				continue
			}
			total += s.Iterations
			nsteps++
			logs := make([]float64, len(s.ResHist))
			for j, r := range s.ResHist {
				logs[j] = math.Log10(math.Max(r, 1e-300))
			}
			io.Pf("%6d %10.4f %6d %8d  %.2f\n", s.Step, s.T, s.Iterations, s.LinIts, logs)
		}
		if nsteps > 0 {
			io.Pforan("average number of iterations = %g\n", float64(total)/float64(nsteps))
		}
		if sum.Failure != "" {
			io.Pfred("failure: %s\n", sum.Failure)
		}
		io.Pf("\n")
	}
}
