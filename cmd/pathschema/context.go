package main

import (
	"os"

	"github.com/spf13/pflag"

	"pathschema"
	"pathschema/internal/common"
	"pathschema/internal/entity"
	"pathschema/internal/errors"
)

// contextOptions are the flags that build a resolution context.
type contextOptions struct {
	file string
	set  map[string]string
}

func (o *contextOptions) addFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.file, "context", "c", "", "YAML file describing the context entities")
	fs.StringToStringVar(&o.set, "set", nil, "plain context values, e.g. --set version=3")
}

// load reads the context file, then applies --set values on top.
func (o *contextOptions) load() (pathschema.Context, error) {
	ctx := pathschema.Context{}

	if o.file != "" {
		data, err := os.ReadFile(o.file)
		if err != nil {
			return nil, errors.Wrap(err, "reading context file")
		}

		loaded, err := entity.LoadRecords(data)
		if err != nil {
			return nil, errors.Wrapf(err, "context file %s", o.file)
		}

		ctx = loaded
	}

	for k, v := range o.set {
		ctx[common.FoldName(k)] = v
	}

	return ctx, nil
}
