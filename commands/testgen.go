package commands

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/fluxur/ledger/errors"
	"github.com/gogo/protobuf/proto"
)

// Example is written out to <Filename>.json and <Filename>.bin.
// Filename should have no path and no extension.
type Example struct {
	Filename string
	Obj      proto.Message
}

// TestGenCmd writes the JSON and protobuf encodings of the examples into
// the directory given as the first argument, "testdata" by default.
// Client libraries test their codecs against these files.
func TestGenCmd(examples []Example, args []string) error {
	outdir := "testdata"
	if len(args) > 0 {
		outdir = args[0]
	}
	if err := os.MkdirAll(outdir, 0755); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}

	for _, ex := range examples {
		js, err := json.MarshalIndent(ex.Obj, "", "  ")
		if err != nil {
			return errors.Wrapf(errors.ErrInput, "%s: %s", ex.Filename, err)
		}
		pb, err := proto.Marshal(ex.Obj)
		if err != nil {
			return errors.Wrapf(errors.ErrInput, "%s: %s", ex.Filename, err)
		}

		files := map[string][]byte{
			ex.Filename + ".json": js,
			ex.Filename + ".bin":  pb,
		}
		for name, data := range files {
			if err := ioutil.WriteFile(filepath.Join(outdir, name), data, 0644); err != nil {
				return errors.Wrap(errors.ErrDatabase, err.Error())
			}
		}
	}
	return nil
}
