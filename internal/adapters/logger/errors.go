package logger

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/trail/internal/ui/style"
	"go.trai.ch/zerr"
)

// ErrorEntry is one layer of an error chain: its own message and the metadata attached to it.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

type messager interface {
	Message() string
}

// collectErrorEntries walks the chain of zerr layers. The first non-zerr error ends the walk
// and contributes its full Error() text.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error()})
			break
		}
		entry := ErrorEntry{Message: m.Message()}
		if zErr, ok := current.(*zerr.Error); ok {
			entry.Metadata = zErr.Metadata()
		}
		entries = append(entries, entry)
		current = errors.Unwrap(current)
	}
	return entries
}

// formatErrorEntries renders the chain as a headline followed by an indented list of causes.
// Metadata keys are sorted.
func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string
	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")
		if i == 0 {
			lines = append(lines, "Error: "+msgLines[0])
			lines = appendIndented(lines, "       ", msgLines[1:])
			lines = appendIndented(lines, "       ", formatMetadata(entry.Metadata))
			continue
		}
		if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}
		lines = append(lines, "    "+style.Arrow+" "+msgLines[0])
		lines = appendIndented(lines, "      ", msgLines[1:])
		lines = appendIndented(lines, "      ", formatMetadata(entry.Metadata))
	}
	return strings.Join(lines, "\n")
}

func formatMetadata(metadata map[string]any) []string {
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, fmt.Sprintf("%s: %v", k, metadata[k]))
	}
	return out
}

func appendIndented(lines []string, indent string, extra []string) []string {
	for _, line := range extra {
		lines = append(lines, indent+line)
	}
	return lines
}

// metadataArgs flattens every layer's metadata into slog key/value pairs. Outer layers win on
// duplicate keys.
func metadataArgs(err error) []any {
	merged := make(map[string]any)
	for _, entry := range slices.Backward(collectErrorEntries(err)) {
		for k, v := range entry.Metadata {
			merged[k] = v
		}
	}
	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	args := make([]any, 0, 2*len(keys))
	for _, k := range keys {
		args = append(args, k, merged[k])
	}
	return args
}
