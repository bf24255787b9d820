package completion

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCmdCompletion(t *testing.T) {
	cmd := NewCmdCompletion()

	assert.Equal(t, "completion", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.Len(t, cmd.Commands(), 4)
}

func TestCompletionScripts(t *testing.T) {
	tests := []struct {
		shell  string
		marker string
	}{
		{shell: "bash", marker: "bash completion"},
		{shell: "zsh", marker: "compdef"},
		{shell: "fish", marker: "complete -c"},
		{shell: "powershell", marker: "Register-ArgumentCompleter"},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			root := &cobra.Command{Use: "loctag", Short: "Test CLI"}
			root.AddCommand(NewCmdCompletion())

			buf := new(bytes.Buffer)
			root.SetOut(buf)
			root.SetArgs([]string{"completion", tt.shell})

			require.NoError(t, root.Execute())
			assert.Contains(t, buf.String(), tt.marker)
			assert.Contains(t, buf.String(), "loctag")
		})
	}
}

func TestCompletionRejectsArgs(t *testing.T) {
	root := &cobra.Command{Use: "loctag"}
	root.AddCommand(NewCmdCompletion())
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"completion", "bash", "extra"})

	assert.Error(t, root.Execute())
}
