package main

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
)

func setupOutput(noColor bool) {
	if noColor {
		pterm.DisableStyling()
	}
}

// printTable writes rows under header as an aligned table.
func printTable(w io.Writer, header []string, rows [][]string) error {
	data := append(pterm.TableData{header}, rows...)

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, out)

	return err
}

func printLines(w io.Writer, lines []string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}

	return nil
}
