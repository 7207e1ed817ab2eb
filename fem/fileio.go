// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	goio "io"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Encoder defines encoders; e.g. gob or json
type Encoder interface {
	Encode(e interface{}) error
}

// Decoder defines decoders; e.g. gob or json
type Decoder interface {
	Decode(e interface{}) error
}

// GetEncoder returns a new encoder
func GetEncoder(w goio.Writer, enctype string) Encoder {
	if enctype == "json" {
		return json.NewEncoder(w)
	}
	return gob.NewEncoder(w)
}

// GetDecoder returns a new decoder
func GetDecoder(r goio.Reader, enctype string) Decoder {
	if enctype == "json" {
		return json.NewDecoder(r)
	}
	return gob.NewDecoder(r)
}

// SaveStep saves the results of one converged step
func SaveStep(dir, fnkey, enctype string, r *StepOutput, verbose bool) (err error) {
	if err = writeEncoded(out_step_path(dir, fnkey, enctype, r.Step), enctype, r, verbose); err != nil {
		return chk.Err("cannot save results of step %d:\n%v", r.Step, err)
	}
	return
}

// ReadStep reads the results of one converged step
func ReadStep(dir, fnkey, enctype string, step int) (r *StepOutput, err error) {
	r = new(StepOutput)
	if err = readEncoded(out_step_path(dir, fnkey, enctype, step), enctype, r); err != nil {
		return nil, chk.Err("cannot read results of step %d:\n%v", step, err)
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func out_step_path(dir, fnkey, enctype string, step int) string {
	return filepath.Join(dir, io.Sf("%s_step_%06d.%s", fnkey, step, enctype))
}

func out_sum_path(dir, fnkey, enctype string) string {
	return filepath.Join(dir, io.Sf("%s_sum.%s", fnkey, enctype))
}

// writeEncoded encodes v in memory and writes the whole buffer to filename
func writeEncoded(filename, enctype string, v interface{}, verbose bool) (err error) {
	var buf bytes.Buffer
	if err = GetEncoder(&buf, enctype).Encode(v); err != nil {
		return
	}
	if err = os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		return
	}
	if verbose {
		io.Pfblue2("file <%s> written\n", filename)
	}
	return
}

// readEncoded decodes the contents of filename into v
func readEncoded(filename, enctype string, v interface{}) (err error) {
	fil, err := os.Open(filename)
	if err != nil {
		return
	}
	defer fil.Close()
	return GetDecoder(fil, enctype).Decode(v)
}
