package collision

import "fmt"

// Policy decides whether a body that bounced off a wall may also take a
// pairwise impulse in the same pass.
type Policy int

const (
	// PolicyIndependent applies wall and pairwise checks to every body in
	// every pass.
	PolicyIndependent Policy = iota
	// PolicyExclusive marks a body that bounced off a wall as corrected and
	// skips its pairwise scan until the next pass.
	PolicyExclusive
)

func (p Policy) String() string {
	switch p {
	case PolicyIndependent:
		return "independent"
	case PolicyExclusive:
		return "exclusive"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy maps a config or flag value to a Policy. Empty selects the default.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "", "independent":
		return PolicyIndependent, nil
	case "exclusive":
		return PolicyExclusive, nil
	default:
		return 0, fmt.Errorf("unknown collision policy: %s", name)
	}
}
