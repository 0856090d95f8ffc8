package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.Equal(t, "tenantctl", cmd.Use)

	expected := []string{
		"login", "signup", "logout", "whoami", "sessions", "clear", "ping",
		"vendor", "contract", "user", "settings", "item",
	}
	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, name := range expected {
		require.True(t, names[name], "missing subcommand %q", name)
	}
}

func TestRootCommand_HasConfigFlag(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}
