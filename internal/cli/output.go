package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

// render escribe v en el formato pedido. table recibe un tabwriter ya
// configurado; si es nil se cae a YAML.
func render(w io.Writer, format string, v any, table func(tw *tabwriter.Writer)) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		return renderYAML(w, v)
	case outputTable, "":
		if table == nil {
			return renderYAML(w, v)
		}
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		table(tw)
		return tw.Flush()
	default:
		return validOutput(format)
	}
}

// validOutput rechaza formatos desconocidos como error de uso.
func validOutput(format string) error {
	switch format {
	case outputTable, outputJSON, outputYAML, "":
		return nil
	}
	return usageError{fmt.Errorf("formato de salida desconocido %q (table|json|yaml)", format)}
}

func renderYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func fprintRow(tw *tabwriter.Writer, cols ...string) {
	fmt.Fprintln(tw, strings.Join(cols, "\t"))
}
