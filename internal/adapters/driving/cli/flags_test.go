package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/motionsplit/internal/core/domain"
)

func newFlagCommand(opts *extractFlags, names ...string) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	opts.bind(cmd, names...)
	return cmd
}

func TestExtractFlags_OnlyChangedFlagsApply(t *testing.T) {
	var opts extractFlags
	cmd := newFlagCommand(&opts, flagRequireMotion, flagTailWindow, flagWorkers, flagOutput, flagRecursive, flagOverwrite)
	require.NoError(t, cmd.Flags().Parse([]string{"--output", "videos"}))

	settings := domain.DefaultAppSettings().Extract
	settings.RequireMotionFlag = true
	settings.Workers = 7

	require.NoError(t, opts.apply(cmd, &settings))

	assert.Equal(t, "videos", settings.OutputDir)
	assert.True(t, settings.RequireMotionFlag, "unset flag keeps stored value")
	assert.Equal(t, 7, settings.Workers)
}

func TestExtractFlags_ExplicitFalseOverrides(t *testing.T) {
	var opts extractFlags
	cmd := newFlagCommand(&opts, flagRequireMotion)
	require.NoError(t, cmd.Flags().Parse([]string{"--require-motion=false"}))

	settings := domain.ExtractSettings{RequireMotionFlag: true}
	require.NoError(t, opts.apply(cmd, &settings))

	assert.False(t, settings.RequireMotionFlag)
}

func TestExtractFlags_BindSubset(t *testing.T) {
	var opts extractFlags
	cmd := newFlagCommand(&opts, flagRequireMotion, flagTailWindow)

	assert.NotNil(t, cmd.Flags().Lookup(flagTailWindow))
	assert.Nil(t, cmd.Flags().Lookup(flagWorkers))
	assert.Nil(t, cmd.Flags().Lookup(flagOverwrite))
}

func TestExtractFlags_Validation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"negative tail window", []string{"--tail-window", "-10"}},
		{"zero workers", []string{"--workers", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts extractFlags
			cmd := newFlagCommand(&opts, flagTailWindow, flagWorkers)
			require.NoError(t, cmd.Flags().Parse(tt.args))

			settings := domain.DefaultAppSettings().Extract
			assert.ErrorIs(t, opts.apply(cmd, &settings), domain.ErrInvalidInput)
		})
	}
}
