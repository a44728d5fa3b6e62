// SPDX-License-Identifier: MIT
package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

// runCapture builds a fresh root command, runs it with args, and returns
// whatever was written to its output.
func runCapture(t *testing.T, args []string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	root := newRootCmd(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestRun_CounterSafe(t *testing.T) {
	out, err := runCapture(t, []string{"--witness", "--validate", "testdata/counter.chc"})
	assert.NoError(t, err)
	assert.Contains(t, out, "SAFE")
	assert.Contains(t, out, "VALIDATED")
}

func TestRun_CounterUnsafe(t *testing.T) {
	out, err := runCapture(t, []string{"--validate", "testdata/counter_unsafe.chc"})
	assert.NoError(t, err)
	assert.Contains(t, out, "UNSAFE")
}

func TestRun_RejectsMissingFile(t *testing.T) {
	_, err := runCapture(t, []string{"nonexistent.chc"})
	assert.Error(t, err)
}

func TestRun_RejectsUnknownEngine(t *testing.T) {
	_, err := runCapture(t, []string{"--engine", "bogus", "testdata/counter.chc"})
	assert.Error(t, err)
}

func TestRun_RejectsWrongArgCount(t *testing.T) {
	_, err := runCapture(t, []string{})
	assert.Error(t, err)
}

func TestGraphCmd_PrintsDOT(t *testing.T) {
	out, err := runCapture(t, []string{"graph", "testdata/counter.chc"})
	assert.NoError(t, err)
	assert.Contains(t, out, "digraph chc")
}

func TestGraphCmd_RendersSVG(t *testing.T) {
	out, err := runCapture(t, []string{"graph", "--format", "svg", "testdata/counter.chc"})
	assert.NoError(t, err)
	assert.Contains(t, out, "<svg")
}

func TestGraphCmd_RejectsUnknownFormat(t *testing.T) {
	_, err := runCapture(t, []string{"graph", "--format", "bogus", "testdata/counter.chc"})
	assert.Error(t, err)
}
