package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

type versionInfo struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit"  yaml:"commit"`
	Built   string `json:"built"   yaml:"built"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  "Display the libsctl version, commit, and build date",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := json.Marshal(versionInfo{
				Version: version,
				Commit:  commit,
				Built:   date,
			})
			if err != nil {
				return fmt.Errorf("encoding version info: %w", err)
			}

			return renderOutput(raw)
		},
	}
}
