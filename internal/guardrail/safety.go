package guardrail

import (
	"fmt"
	"regexp"

	"github.com/piepengu/mathdrill/internal/skills"
)

// safetyStage scans all candidate text for markup constructs that can
// read files, write files, or execute commands when the prompt is fed
// to a LaTeX renderer downstream.
type safetyStage struct{}

var unsafeMarkupRe = regexp.MustCompile(
	`\\(input|include|write18|openout|read|write|immediate)\b|\\begin\{document\}|\\end\{document\}|\\label\{`)

func (s *safetyStage) name() string { return "safety" }

func (s *safetyStage) check(c *Candidate, _ skills.Info) *stageError {
	if m := unsafeMarkupRe.FindString(c.Prompt); m != "" {
		return &stageError{Reason: ReasonUnsafeContent, Message: fmt.Sprintf("prompt contains %q", m)}
	}
	for i, choice := range c.Choices {
		if m := unsafeMarkupRe.FindString(choice); m != "" {
			return &stageError{Reason: ReasonUnsafeContent, Message: fmt.Sprintf("choice %d contains %q", i, m)}
		}
	}
	for i, step := range c.Steps {
		if m := unsafeMarkupRe.FindString(step); m != "" {
			return &stageError{Reason: ReasonUnsafeContent, Message: fmt.Sprintf("step %d contains %q", i, m)}
		}
	}
	return nil
}
