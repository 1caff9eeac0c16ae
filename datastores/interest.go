package datastores

import "fmt"

// Interest is the hackathon challenge a participant wants to work on.
// The zero value means no challenge was chosen.
type Interest string

const (
	InterestNone           Interest = ""
	InterestTourism        Interest = "tourism"
	InterestVisitor        Interest = "visitor"
	InterestSustainability Interest = "sustainability"
	InterestManagement     Interest = "management"

	// InterestAll is only meaningful as a [Query] filter.
	InterestAll Interest = "all"
)

var interestLabels = map[Interest]string{ //nolint: gochecknoglobals
	InterestTourism:        "Divulgação Turística",
	InterestVisitor:        "Experiência do Visitante",
	InterestSustainability: "Sustentabilidade",
	InterestManagement:     "Gestão Pública e Privada",
}

// Interests lists the selectable challenges in display order.
func Interests() []Interest {
	return []Interest{InterestTourism, InterestVisitor, InterestSustainability, InterestManagement}
}

// Valid reports whether i is one of [Interests].
func (i Interest) Valid() bool {
	_, ok := interestLabels[i]
	return ok
}

// Label is the display name of the challenge, empty for [InterestNone].
func (i Interest) Label() string { return interestLabels[i] }

// ParseInterest accepts [InterestNone] and the values of [Interests].
func ParseInterest(s string) (Interest, error) {
	i := Interest(s)
	if i == InterestNone || i.Valid() {
		return i, nil
	}
	return InterestNone, fmt.Errorf("unknown interest %q", s)
}
