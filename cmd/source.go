// Package cmd implements the subcommands (google/subcommands) exposed by
// the compiler's command-line entry point.
package cmd

import (
	"io"
	"os"
)

// readSource reads program source from a file path, or from stdin when
// path is empty.
func readSource(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
