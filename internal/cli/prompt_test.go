package cli_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/virtuallist/internal/cli"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("read failed") }

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  cli.PromptResult
	}{
		{name: "y accepts", input: "y\n", want: cli.PromptResult{Accepted: true}},
		{name: "YES accepts", input: "  YES \n", want: cli.PromptResult{Accepted: true}},
		{name: "empty declines", input: "\n", want: cli.PromptResult{}},
		{name: "no declines", input: "n\n", want: cli.PromptResult{}},
		{name: "EOF declines", input: "", want: cli.PromptResult{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got := cli.Confirm(&out, strings.NewReader(tt.input), "Proceed?")

			assert.Equal(t, tt.want, got)
			assert.Equal(t, "? Proceed? [y/N] ", out.String())
		})
	}

	t.Run("read error cancels", func(t *testing.T) {
		got := cli.Confirm(&bytes.Buffer{}, failingReader{}, "Proceed?")
		assert.True(t, got.Cancelled)
	})
}
