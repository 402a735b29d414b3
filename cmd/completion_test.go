package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestCompletion(t *testing.T) {
	tests := []struct {
		shell string
		want  string
	}{
		{"bash", "claude-code-plus"},
		{"zsh", "#compdef claude-code-plus"},
		{"fish", "complete -c claude-code-plus"},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			var buf bytes.Buffer
			completionCmd.SetOut(&buf)
			defer completionCmd.SetOut(nil)

			if err := runCompletion(completionCmd, []string{tt.shell}); err != nil {
				t.Fatalf("runCompletion(%s) error: %v", tt.shell, err)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("%s completion missing %q", tt.shell, tt.want)
			}
		})
	}
}

func TestCompletionRejectsUnsupportedShell(t *testing.T) {
	if err := completionCmd.Args(completionCmd, []string{"powershell"}); err == nil {
		t.Error("Args() accepted powershell")
	}
}
