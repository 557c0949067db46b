package render

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSON writes any report value as indented JSON, suitable for piping.
func JSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}
