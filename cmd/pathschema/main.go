// Command pathschema inspects path schemas and resolves paths from the
// command line.
//
//	pathschema keys film
//	pathschema fields film shot_root
//	pathschema resolve film shot_root --context shot.yaml
//	pathschema tree film --context shot.yaml
//	pathschema lint film
package main

import (
	"context"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pterm/pterm"

	"pathschema/internal/errors"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		pterm.Error.Println(err.Error())

		for _, hint := range errors.GetAllHints(err) {
			pterm.Info.Println(hint)
		}

		os.Exit(1)
	}
}
