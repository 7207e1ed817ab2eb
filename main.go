// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/agtmwebtoon/MLSolver/fem"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func main() {

	// catch errors
	status := 0
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.Pfred("ERROR: %v\n", err)
			status = 1
		}
		os.Exit(status)
	}()

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "", ".json", true)
	verbose := io.ArgToBool(1, true)

	// message
	if verbose {
		io.Pf("\nMLSolver -- quasi-static finite strain solver with the u-p-J mixed method\n\n")
		io.Pf("Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n\n")
		io.Pf("filename path = %v\n", fnamepath)
		io.Pf("show messages = %v\n\n", verbose)
	}

	// analysis data
	analysis, err := fem.ReadFEM(fnamepath)
	if err != nil {
		io.Pfred("ERROR: cannot read simulation:\n%v\n", err)
		status = 1
		return
	}
	analysis.Verbose = analysis.Verbose || verbose
	analysis.Solver.Verbose = analysis.Verbose

	// run simulation; interrupt stops the current step
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err = analysis.Run(ctx); err != nil {
		io.Pfred("ERROR: Run failed:\n%v\n", err)
		status = 1
	}
}
