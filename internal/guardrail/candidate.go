package guardrail

import (
	"github.com/piepengu/mathdrill/internal/itemgen"
	"github.com/piepengu/mathdrill/internal/skills"
)

// Candidate is an externally produced multiple-choice problem awaiting
// validation. It mirrors the JSON payload the item writer returns and
// is never handed to callers directly.
type Candidate struct {
	Prompt       string            `json:"prompt"`
	Choices      []string          `json:"choices"`
	CorrectIndex int               `json:"correct_index"`
	Steps        []string          `json:"explanation_steps"`
	Diagram      *CandidateDiagram `json:"diagram,omitempty"`
}

// CandidateDiagram is the optional figure attached to a geometry
// candidate. Only right triangles are accepted from external sources.
type CandidateDiagram struct {
	Type string `json:"type"`
	LegA int    `json:"leg_a"`
	LegB int    `json:"leg_b"`
	Hyp  int    `json:"hypotenuse"`
}

// toItem converts an accepted candidate into a servable item. AI items
// carry seed -1 since no template seed can reproduce them.
func (c *Candidate) toItem(skill skills.Skill, difficulty skills.Difficulty) *itemgen.Item {
	item := &itemgen.Item{
		Skill:        skill,
		Domain:       skills.DomainOf(skill),
		Difficulty:   difficulty,
		Seed:         -1,
		Prompt:       c.Prompt,
		Answer:       c.Choices[c.CorrectIndex],
		Kind:         skills.KindChoice,
		Choices:      append([]string(nil), c.Choices...),
		CorrectIndex: c.CorrectIndex,
		Steps:        append([]string(nil), c.Steps...),
	}
	if c.Diagram != nil && c.Diagram.Type == "right_triangle" {
		item.Diagram = &itemgen.DiagramSpec{
			Type: "right_triangle",
			Points: map[string][2]float64{
				"A": {0, 0},
				"B": {float64(c.Diagram.LegA), 0},
				"C": {0, float64(c.Diagram.LegB)},
			},
		}
	}
	return item
}
