package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/trailproof/trailproof"
)

// writeExport marshals events as indented JSON and writes outputFile
// with owner-only permissions, mirroring the teacher's export command.
func writeExport(outputFile string, events []trailproof.Event) error {
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling export data: %w", err)
	}

	if err := os.WriteFile(outputFile, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", outputFile, err)
	}
	return nil
}
