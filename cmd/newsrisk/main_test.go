package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["run"])
	assert.True(t, names["schedule"])
	assert.True(t, names["convert"])

	sub, _, err := rootCmd.Find([]string{"convert", "contracts"})
	require.NoError(t, err)
	assert.Equal(t, "contracts", sub.Name())

	flag := scheduleCmd.Flags().Lookup("interval")
	require.NotNil(t, flag)
	assert.Equal(t, "0s", flag.DefValue)
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
}
