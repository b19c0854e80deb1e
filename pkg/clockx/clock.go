package clockx

import "errors"

var ErrNoVictim = errors.New("clockx: sweep found no victim")

// Verdict is what a sweep visitor decides about the slot under the hand.
type Verdict int

const (
	// Skip moves the hand on (busy slot, or a slot given a second chance).
	Skip Verdict = iota
	// Claim stops the sweep and returns the slot.
	Claim
)

// Clock is the hand of a CLOCK replacement policy over slots [0..capacity).
// The ref bits and pin state live with the caller; Clock only owns the
// cursor, which persists across sweeps.
type Clock struct {
	hand int
	n    int
}

// New places the hand on the last slot so the first sweep starts at slot 0.
func New(capacity int) *Clock {
	if capacity <= 0 {
		capacity = 1
	}
	return &Clock{hand: capacity - 1, n: capacity}
}

func (c *Clock) Capacity() int { return c.n }

func (c *Clock) Hand() int { return c.hand }

// Advance moves the hand one slot forward and returns the new position.
func (c *Clock) Advance() int {
	c.hand = (c.hand + 1) % c.n
	return c.hand
}

// Sweep advances the hand and calls visit on each slot until visit returns
// Claim or an error. The sweep gives up after two full revolutions: if a
// claimable slot exists, the first revolution clears every ref bit and the
// second one reaches it.
func (c *Clock) Sweep(visit func(id int) (Verdict, error)) (int, error) {
	for range 2 * c.n {
		id := c.Advance()
		v, err := visit(id)
		if err != nil {
			return -1, err
		}
		if v == Claim {
			return id, nil
		}
	}
	return -1, ErrNoVictim
}
