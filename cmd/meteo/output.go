package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	// Packages
	term "golang.org/x/term"
	yaml "gopkg.in/yaml.v3"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Output selects how results are printed
type Output struct {
	Format string `name:"format" short:"f" enum:"json,yaml" default:"json" help:"Output format (json, yaml)"`
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Print writes v to stdout. JSON is indented when stdout is a terminal.
func (o Output) Print(v any) error {
	return o.write(os.Stdout, term.IsTerminal(int(os.Stdout.Fd())), v)
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (o Output) write(w io.Writer, indent bool, v any) error {
	switch o.Format {
	case "yaml":
		// Round-trip through JSON so YAML keys match the JSON field names
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var value any
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(value); err != nil {
			return err
		}
		return encoder.Close()
	case "json", "":
		encoder := json.NewEncoder(w)
		if indent {
			encoder.SetIndent("", "  ")
		}
		return encoder.Encode(v)
	default:
		return fmt.Errorf("unsupported format: %q", o.Format)
	}
}
