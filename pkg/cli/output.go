package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/itchyny/gojq"
	"github.com/vmihailenco/msgpack/v5"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	// FormatYAML outputs as YAML (default for terminal)
	FormatYAML OutputFormat = "yaml"
	// FormatJSON outputs as JSON
	FormatJSON OutputFormat = "json"
	// FormatTable outputs as formatted table
	FormatTable OutputFormat = "table"
	// FormatRaw outputs raw data
	FormatRaw OutputFormat = "raw"
	// FormatMsgpack outputs binary MessagePack
	FormatMsgpack OutputFormat = "msgpack"
)

// Valid reports whether f is a known output format. The empty format is
// valid and means YAML.
func (f OutputFormat) Valid() bool {
	switch f {
	case "", FormatYAML, FormatJSON, FormatTable, FormatRaw, FormatMsgpack:
		return true
	}
	return false
}

// OutputOptions configures output behavior
type OutputOptions struct {
	// Format is the output format (yaml, json, table, raw, msgpack)
	Format OutputFormat

	// File is the output file path (empty for stdout)
	File string

	// Indent is the indentation for JSON output
	Indent string

	// Query is an optional jq expression applied before formatting
	Query string

	// Writer is an optional custom writer (overrides File)
	Writer io.Writer
}

// Output writes the result to the configured destination
func Output(result any, opts OutputOptions) error {
	if !opts.Format.Valid() {
		return fmt.Errorf("unsupported output format: %s", opts.Format)
	}

	if opts.Query != "" {
		v, err := Query(result, opts.Query)
		if err != nil {
			return err
		}
		result = v
	}

	var w io.Writer = os.Stdout

	if opts.Writer != nil {
		w = opts.Writer
	} else if opts.File != "" {
		f, err := os.Create(opts.File)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch opts.Format {
	case FormatJSON:
		return outputJSON(w, result, opts.Indent)
	case FormatYAML, "":
		return outputYAML(w, result)
	case FormatRaw:
		return outputRaw(w, result)
	case FormatMsgpack:
		return outputMsgpack(w, result)
	default:
		return outputTable(w, result)
	}
}

// Query evaluates a jq expression against result. The result is first
// converted to plain JSON values, so struct json tags define the field
// names. A query yielding one value returns it directly; several values are
// returned as a slice.
func Query(result any, expr string) (any, error) {
	q, err := gojq.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", expr, err)
	}

	input, err := toJSONValue(result)
	if err != nil {
		return nil, err
	}

	var values []any
	iter := q.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			return nil, fmt.Errorf("query %q: %w", expr, err)
		}
		values = append(values, v)
	}

	switch len(values) {
	case 0:
		return nil, nil
	case 1:
		return values[0], nil
	default:
		return values, nil
	}
}

func toJSONValue(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to convert result: %w", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to convert result: %w", err)
	}
	return out, nil
}

func outputJSON(w io.Writer, result any, indent string) error {
	enc := json.NewEncoder(w)
	if indent == "" {
		indent = "  "
	}
	enc.SetIndent("", indent)
	return enc.Encode(result)
}

func outputYAML(w io.Writer, result any) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func outputMsgpack(w io.Writer, result any) error {
	if err := msgpack.NewEncoder(w).Encode(result); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	return nil
}

func outputRaw(w io.Writer, result any) error {
	switch v := result.(type) {
	case []byte:
		_, err := w.Write(v)
		return err
	case string:
		_, err := fmt.Fprintln(w, v)
		return err
	case fmt.Stringer:
		_, err := fmt.Fprintln(w, v.String())
		return err
	default:
		return outputYAML(w, result)
	}
}

func outputTable(w io.Writer, result any) error {
	t, ok := result.(Tabler)
	if !ok {
		return outputYAML(w, result)
	}
	_, err := fmt.Fprintln(w, RenderTables(t.Tables()...))
	return err
}

// Print helpers for terminal output

// PrintSuccess prints a success message with checkmark
func PrintSuccess(format string, args ...any) {
	fmt.Printf("✓ "+format+"\n", args...)
}

// PrintError prints an error message to stderr
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// PrintInfo prints an info message
func PrintInfo(format string, args ...any) {
	fmt.Printf("ℹ "+format+"\n", args...)
}

// PrintWarning prints a warning message
func PrintWarning(format string, args ...any) {
	fmt.Printf("⚠ "+format+"\n", args...)
}

// PrintVerbose prints verbose output to stderr
func PrintVerbose(verbose bool, format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}
