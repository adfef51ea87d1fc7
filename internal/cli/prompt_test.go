package cli

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPrompter(input string) (*prompter, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &prompter{in: bufio.NewReader(strings.NewReader(input)), out: out}, out
}

func TestPrompterNonEmpty(t *testing.T) {
	p, out := newTestPrompter("\n   \nBob\n")

	got, err := p.nonEmpty("Name: ")
	require.NoError(t, err)
	assert.Equal(t, "Bob", got)
	assert.Contains(t, out.String(), "Input cannot be empty")
}

func TestPrompterFloat(t *testing.T) {
	p, out := newTestPrompter("abc\n7.5\n")

	got, err := p.float("Rating: ")
	require.NoError(t, err)
	assert.Equal(t, 7.5, got)
	assert.Contains(t, out.String(), "Invalid input. Please enter a number.")
}

func TestPrompterInteger(t *testing.T) {
	p, out := newTestPrompter("2.5\n1999\n")

	got, err := p.integer("Year: ")
	require.NoError(t, err)
	assert.Equal(t, 1999, got)
	assert.Contains(t, out.String(), "Invalid input. Please enter an integer.")
}

func TestPrompterYesNo(t *testing.T) {
	p, _ := newTestPrompter("maybe\nY\n")

	got, err := p.yesNo("Latest first? (y/n): ")
	require.NoError(t, err)
	assert.True(t, got)
}

func TestPrompterEOF(t *testing.T) {
	p, _ := newTestPrompter("")

	_, err := p.nonEmpty("Name: ")
	assert.ErrorIs(t, err, io.EOF)
}
