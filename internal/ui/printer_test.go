package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"openhandsctl/internal/provision"
)

func TestPrinter_Confirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "yes", input: "yes\n", want: true},
		{name: "y with whitespace", input: "  y  \n", want: true},
		{name: "uppercase Y", input: "Y\n", want: true},
		{name: "no", input: "no\n", want: false},
		{name: "empty line defaults to no", input: "\n", want: false},
		{name: "closed input defaults to no", input: "", want: false},
		{name: "garbage defaults to no", input: "maybe\n", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrinter(&out, strings.NewReader(tt.input), false)

			assert.Equal(t, tt.want, p.Confirm("Proceed?"))
			assert.Contains(t, out.String(), "[y/N]")
		})
	}
}

func TestPrinter_ConfirmAssumeYes(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, strings.NewReader(""), false)
	p.SetAssumeYes(true)

	assert.True(t, p.Confirm("Proceed?"))
	assert.Contains(t, out.String(), "Proceed? yes")
}

func TestPrinter_StepDoneMarkers(t *testing.T) {
	tests := []struct {
		name   string
		result provision.StepResult
		want   string
	}{
		{name: "succeeded", result: provision.StepResult{Outcome: provision.Succeeded, Reason: "done"}, want: "✓"},
		{name: "skipped", result: provision.StepResult{Outcome: provision.Skipped}, want: "○"},
		{name: "failed", result: provision.StepResult{Outcome: provision.Failed, Reason: "boom"}, want: "✗"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrinter(&out, strings.NewReader(""), false)

			p.StepDone(provision.StepDeployed, tt.result)

			assert.Contains(t, out.String(), tt.want)
			assert.Contains(t, out.String(), "Deployed")
		})
	}
}

func TestPrinter_FailedStepPrintsFullMultilineReason(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, strings.NewReader(""), false)

	p.StepDone(provision.StepDeployed, provision.StepResult{
		Outcome: provision.Failed,
		Reason:  "launch failed\nlast container logs:\nbind: address already in use",
	})

	assert.Contains(t, out.String(), "address already in use")
}

func TestPrinter_InfofOnlyWhenVerbose(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, strings.NewReader(""), false)

	p.Infof("pulling %s", "image")
	assert.Empty(t, out.String())

	p.SetVerbose(true)
	p.Infof("pulling %s", "image")
	assert.Contains(t, out.String(), "pulling image")
}

func TestPrinter_StepStart(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, strings.NewReader(""), false)

	p.StepStart(3, 7, provision.StepRuntimeRunning)

	assert.Contains(t, out.String(), "[3/7]")
	assert.Contains(t, out.String(), "RuntimeRunning")
}

func TestPrinter_SuccessShowsURL(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, strings.NewReader(""), false)

	p.Success("http://localhost:80")

	assert.Contains(t, out.String(), "http://localhost:80")
}
