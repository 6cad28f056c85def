package tbruntime

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// FormatForPath picks the snapshot format from a file extension. Anything
// that is not .yaml or .yml is JSON.
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

func normalizeFormat(format, path string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case "":
		return FormatForPath(path), nil
	case FormatJSON, FormatYAML:
		return format, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported snapshot format %q (use json|yaml)", format)
	}
}

// IsJSONSnapshotData reports whether data looks like a JSON document rather
// than YAML.
func IsJSONSnapshotData(data []byte) bool {
	data = bytes.TrimLeft(data, " \t\r\n\uFEFF")
	return len(data) > 0 && data[0] == '{'
}

// DecodeSnapshot accepts either encoding.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	if IsJSONSnapshotData(data) {
		return UnmarshalSnapshot(data)
	}
	return UnmarshalSnapshotYAML(data)
}

func EncodeSnapshot(snap *Snapshot, format string) ([]byte, error) {
	format, err := normalizeFormat(format, "")
	if err != nil {
		return nil, err
	}
	if format == FormatYAML {
		return MarshalSnapshotYAML(snap)
	}
	b, err := MarshalSnapshot(snap)
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// ReadSnapshotFile loads a snapshot in whichever encoding the file holds.
func ReadSnapshotFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	snap, err := DecodeSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return snap, nil
}

// WriteSnapshotFile writes snap to path. An empty format is chosen from the
// extension.
func WriteSnapshotFile(path string, snap *Snapshot, format string) error {
	format, err := normalizeFormat(format, path)
	if err != nil {
		return err
	}
	data, err := EncodeSnapshot(snap, format)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// ConvertSnapshotFile re-encodes a snapshot file. The program is parsed on
// the way through so a corrupt snapshot is rejected rather than copied.
func ConvertSnapshotFile(inputPath, outputPath, outputFormat string) error {
	outputFormat, err := normalizeFormat(outputFormat, outputPath)
	if err != nil {
		return err
	}
	snap, err := ReadSnapshotFile(inputPath)
	if err != nil {
		return err
	}
	vm := New()
	if err := vm.LoadSnapshot(snap); err != nil {
		return fmt.Errorf("%s: %w", inputPath, err)
	}
	return WriteSnapshotFile(outputPath, vm.Snapshot(), outputFormat)
}
