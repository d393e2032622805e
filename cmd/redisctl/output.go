package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v2"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

func validateOutput(format string) error {
	switch format {
	case outputJSON, outputYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q, expected json or yaml", format)
}

// printOutput renders v in the given format. YAML goes through JSON first so that json struct tags apply.
func printOutput(w io.Writer, format string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	switch format {
	case outputYAML:
		if bytes.HasPrefix(b, []byte("[")) {
			var list []yaml.MapSlice
			if err := yaml.Unmarshal(b, &list); err != nil {
				return err
			}
			return writeYAML(w, list)
		}
		var doc yaml.MapSlice
		if err := yaml.Unmarshal(b, &doc); err != nil {
			return err
		}
		return writeYAML(w, doc)
	default:
		_, err = fmt.Fprintln(w, string(b))
		return err
	}
}

func writeYAML(w io.Writer, v any) error {
	b, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
