package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// loadRequest loads a request from the -f file into v. YAML is converted to
// JSON first so the json tags of the request types apply.
func (a *app) loadRequest(v any) error {
	if a.inputFile == "" {
		return fmt.Errorf("input file is required, use -f flag")
	}

	data, err := os.ReadFile(a.inputFile)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	return parseRequest(data, a.inputFile, v)
}

// parseRequest parses request data based on file extension or content
func parseRequest(data []byte, filename string, v any) error {
	if strings.ToLower(filepath.Ext(filename)) == ".json" {
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse JSON: %w", err)
		}
		return nil
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	jsonData, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to convert YAML: %w", err)
	}
	if err := json.Unmarshal(jsonData, v); err != nil {
		return fmt.Errorf("failed to parse request: %w", err)
	}
	return nil
}

// outputResult writes result as YAML, or as indented JSON with --json.
func (a *app) outputResult(cmd *cobra.Command, result any) error {
	var w io.Writer = cmd.OutOrStdout()
	if a.outputFile != "" {
		f, err := os.Create(a.outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return writeResult(w, result, a.outputJSON)
}

func writeResult(w io.Writer, result any, asJSON bool) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if asJSON {
		_, err := w.Write(buf.Bytes())
		return err
	}

	// JSON is valid YAML; going through a node keeps the field order.
	var node yaml.Node
	if err := yaml.Unmarshal(buf.Bytes(), &node); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	clearStyle(&node)

	enc2 := yaml.NewEncoder(w)
	enc2.SetIndent(2)
	if err := enc2.Encode(&node); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	return enc2.Close()
}

// clearStyle drops the flow and quoting styles the JSON input implies.
func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		clearStyle(c)
	}
}

func parseID(name, s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	return id, nil
}

// idArgs parses every positional argument as a UUID.
func idArgs(names ...string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(len(names))(cmd, args); err != nil {
			return err
		}
		for i, name := range names {
			if _, err := parseID(name, args[i]); err != nil {
				return err
			}
		}
		return nil
	}
}

func mustID(s string) uuid.UUID {
	// validated by idArgs
	return uuid.MustParse(s)
}
