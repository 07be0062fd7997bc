package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// readPrompt joins the positional arguments, or reads --file when set.
// A file of "-" reads stdin.
func readPrompt(cmd *cobra.Command, args []string, file string) (string, error) {
	var text string
	switch {
	case file == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read prompt file: %w", err)
		}
		text = string(data)
	default:
		text = strings.Join(args, " ")
	}
	if strings.TrimSpace(text) == "" {
		return "", exitError(ExitInvalidArgs, "no prompt given: pass it as arguments or with --file")
	}
	return text, nil
}

// parseParams turns repeated key=value flags into generation parameters.
// Values that parse as integers, floats or booleans keep that type.
func parseParams(raw []string) (map[string]any, error) {
	params := make(map[string]any, len(raw))
	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, exitError(ExitInvalidArgs, fmt.Sprintf("invalid --param %q: want key=value", kv))
		}
		params[key] = parseValue(strings.TrimSpace(value))
	}
	return params, nil
}

func parseValue(value string) any {
	if i, err := strconv.Atoi(value); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return value
}
