package datastores

import "strings"

// Query selects registrations for the admin view.
type Query struct {
	// Text is matched case-insensitively against name or email.
	Text string
	// Interest must match exactly unless empty or [InterestAll].
	Interest Interest
}

func (q Query) Match(r *Registration) bool {
	if q.Interest != InterestNone && q.Interest != InterestAll && r.Interest != q.Interest {
		return false
	}
	text := strings.ToLower(q.Text)
	return strings.Contains(strings.ToLower(r.Name), text) ||
		strings.Contains(strings.ToLower(r.Email), text)
}

// Filter returns the registrations matching q, in their original order.
// rs is left untouched.
func Filter(rs []*Registration, q Query) []*Registration {
	out := make([]*Registration, 0, len(rs))
	for _, r := range rs {
		if q.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
