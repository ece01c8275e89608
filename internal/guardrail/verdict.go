package guardrail

import "github.com/piepengu/mathdrill/internal/itemgen"

// Outcome tags a guardrail verdict.
type Outcome string

const (
	OutcomeAccepted    Outcome = "accepted"
	OutcomeRejected    Outcome = "rejected"
	OutcomeUnavailable Outcome = "unavailable"
)

// Reason codes for rejected or unavailable verdicts.
type Reason string

const (
	ReasonSchemaInvalid  Reason = "schema_invalid"
	ReasonUnsafeContent  Reason = "unsafe_content"
	ReasonContentInvalid Reason = "content_invalid"
	ReasonOverLength     Reason = "over_length"
	ReasonUnavailable    Reason = "unavailable"
)

// Verdict is the result of validating one external candidate. It
// always carries a usable Item: the validated candidate when accepted,
// or a deterministic template fallback otherwise. Callers switch on
// Outcome rather than intercepting errors.
type Verdict struct {
	Outcome Outcome       `json:"outcome"`
	Reason  Reason        `json:"reason,omitempty"`
	Item    *itemgen.Item `json:"item"`
}

// Accepted builds the verdict for a candidate that passed all stages.
func Accepted(item *itemgen.Item) Verdict {
	return Verdict{Outcome: OutcomeAccepted, Item: item}
}

// Rejected builds the verdict for a candidate that failed a stage,
// carrying the fallback item.
func Rejected(reason Reason, fallback *itemgen.Item) Verdict {
	return Verdict{Outcome: OutcomeRejected, Reason: reason, Item: fallback}
}

// Unavailable builds the verdict for a collaborator timeout or
// transport failure, carrying the fallback item.
func Unavailable(fallback *itemgen.Item) Verdict {
	return Verdict{Outcome: OutcomeUnavailable, Reason: ReasonUnavailable, Item: fallback}
}
