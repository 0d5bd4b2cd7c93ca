package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "crm ")
}

func TestMigrateCommandTree(t *testing.T) {
	root := newRootCommand()
	migrate, _, err := root.Find([]string{"migrate"})
	require.NoError(t, err)

	var names []string
	for _, c := range migrate.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"up", "down", "version", "force"}, names)

	root.SetArgs([]string{"migrate", "force"})
	root.SetErr(&bytes.Buffer{})
	assert.Error(t, root.Execute())
}
