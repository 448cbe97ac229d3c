package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewResourcesCommand(t *testing.T) {
	cmd := NewResourcesCommand()
	assert.Equal(t, "resources", cmd.Use)
	assert.Equal(t, []string{"res"}, cmd.Aliases)
	assert.NotNil(t, cmd.RunE)
}

func TestNewListCommand(t *testing.T) {
	cmd := NewListCommand()
	assert.Equal(t, "list RESOURCE", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)

	assert.NotNil(t, cmd.Flags().Lookup("page"))
	assert.NotNil(t, cmd.Flags().Lookup("limit"))
	assert.NotNil(t, cmd.Flags().Lookup("search"))
}

func TestNewGetCommand(t *testing.T) {
	cmd := NewGetCommand()
	assert.Equal(t, "get RESOURCE ID", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	assert.NotNil(t, cmd.Flags().Lookup("short"))
	assert.NotNil(t, cmd.Flags().Lookup("no-cache"))
}

func TestNewCreateCommand(t *testing.T) {
	cmd := NewCreateCommand()
	assert.Equal(t, "create RESOURCE", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	assert.NotNil(t, cmd.Flags().Lookup("data"))
	assert.NotNil(t, cmd.Flags().Lookup("file"))
}

func TestNewUpdateCommand(t *testing.T) {
	cmd := NewUpdateCommand()
	assert.Equal(t, "update RESOURCE ID", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	assert.NotNil(t, cmd.Flags().Lookup("data"))
	assert.NotNil(t, cmd.Flags().Lookup("file"))
}

func TestNewDeleteCommand(t *testing.T) {
	cmd := NewDeleteCommand()
	assert.Equal(t, "delete RESOURCE ID", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Flags().Lookup("force"))
}

func TestNewFindTermsCommand(t *testing.T) {
	cmd := NewFindTermsCommand()
	assert.Equal(t, "find-terms RESOURCE VALUE", cmd.Use)
	assert.NotNil(t, cmd.RunE)
}

func TestNewStatsCommand(t *testing.T) {
	cmd := NewStatsCommand()
	assert.Equal(t, "stats", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Flags().Lookup("caller"))
}

func TestNewConfigCommand(t *testing.T) {
	cmd := NewConfigCommand()
	assert.Equal(t, "config", cmd.Use)

	var commandNames []string
	for _, subcmd := range cmd.Commands() {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "show")
	assert.Contains(t, commandNames, "set")
	assert.Contains(t, commandNames, "set-token")
	assert.Contains(t, commandNames, "unset")
	assert.Contains(t, commandNames, "clear")
}

func TestNewVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("1.0.0", "abc123", "2026-01-01")
	assert.Equal(t, "version", cmd.Use)
	assert.NotNil(t, cmd.RunE)
}

func TestVersionInfoJSON(t *testing.T) {
	raw, err := json.Marshal(versionInfo{Version: "1.0.0", Commit: "abc123", Built: "2026-01-01"})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"version":"1.0.0","commit":"abc123","built":"2026-01-01"}`, string(raw))
}
