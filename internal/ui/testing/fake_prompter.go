// Package testing provides test doubles for the ui package.
package testing

import (
	"sync"

	"github.com/srvm-cli/srvm/internal/errors"
)

// PromptCall records one Prompt invocation.
type PromptCall struct {
	Header  string
	Labels  []string
	Initial int
}

// FakePrompter answers prompts from a queue of scripted choices.
type FakePrompter struct {
	mu      sync.Mutex
	answers []string
	cancel  bool
	err     error

	// Calls records every prompt shown, for assertions.
	Calls []PromptCall
}

// NewFakePrompter creates a prompter that picks the given labels in order.
func NewFakePrompter(answers ...string) *FakePrompter {
	return &FakePrompter{answers: answers}
}

// Cancel makes every prompt behave as if the user aborted it.
func (p *FakePrompter) Cancel() *FakePrompter {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cancel = true
	return p
}

// Fail makes every prompt return err.
func (p *FakePrompter) Fail(err error) *FakePrompter {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
	return p
}

// Prompt implements ui.Prompter.
func (p *FakePrompter) Prompt(header string, labels []string, initial int) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Calls = append(p.Calls, PromptCall{Header: header, Labels: labels, Initial: initial})

	if p.cancel {
		return -1, errors.New(errors.ErrCancelled, "Selection cancelled", "")
	}
	if p.err != nil {
		return -1, p.err
	}
	if len(p.answers) == 0 {
		return initial, nil
	}

	answer := p.answers[0]
	p.answers = p.answers[1:]
	for i, label := range labels {
		if label == answer {
			return i, nil
		}
	}
	return -1, errors.New(errors.ErrSelect, "no option labelled "+answer, "")
}
