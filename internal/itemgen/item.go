package itemgen

import "github.com/piepengu/mathdrill/internal/skills"

// Item is a fully specified, regenerable problem instance.
// The triple (Skill, Difficulty, Seed) is a pure key: regenerating
// with the same key yields a byte-identical Item.
type Item struct {
	Skill      skills.Skill      `json:"skill"`
	Domain     skills.Domain     `json:"domain"`
	Difficulty skills.Difficulty `json:"difficulty"`
	Seed       int64             `json:"seed"`

	// Prompt is the problem statement in plain ASCII math text.
	Prompt string `json:"prompt"`

	// Answer is the canonical correct answer as a string:
	// "7", "3.25", "(2, -1)", "(1, 2, 3)". For multiple choice it is
	// the text of the correct option.
	Answer string `json:"answer"`

	// Kind describes the answer shape for grading.
	Kind skills.AnswerKind `json:"answer_kind"`

	// Choices and CorrectIndex are populated for multiple-choice
	// skills only. WhyIncorrect is parallel to Choices and explains
	// the mistake each distractor represents.
	Choices      []string `json:"choices,omitempty"`
	CorrectIndex int      `json:"correct_index"`
	WhyIncorrect []string `json:"why_incorrect,omitempty"`

	// Steps is the precomputed worked solution, in order.
	Steps []string `json:"explanation_steps"`

	// Diagram is set for geometry skills and is derived from the same
	// parameters as the prompt.
	Diagram *DiagramSpec `json:"diagram,omitempty"`
}

// IsMultipleChoice reports whether the item is answered by choice index.
func (it *Item) IsMultipleChoice() bool {
	return it.Kind == skills.KindChoice
}

// DiagramSpec is a structured geometry descriptor. It carries enough
// for a renderer to draw the figure; rasterization happens elsewhere.
type DiagramSpec struct {
	// Type tags the figure: "right_triangle", "rectangle", "triangle".
	Type string `json:"type"`

	// Points maps vertex names to coordinates in figure units.
	Points map[string][2]float64 `json:"points,omitempty"`

	// Labels maps side or vertex names to display text. The unknown
	// quantity is labelled "?".
	Labels map[string]string `json:"labels,omitempty"`

	// AngleMarkers marks angles at named vertices.
	AngleMarkers []AngleMarker `json:"angle_markers,omitempty"`

	// SideTicks marks congruent sides.
	SideTicks []SideTick `json:"side_ticks,omitempty"`
}

// AngleMarker marks an angle at a vertex.
type AngleMarker struct {
	At    string `json:"at"`
	Style string `json:"style"` // "right" or "arc"
	Text  string `json:"text,omitempty"`
}

// SideTick marks a side with N tick marks.
type SideTick struct {
	Side  string `json:"side"`
	Count int    `json:"count"`
}
