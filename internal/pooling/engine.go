package pooling

import dErrors "fueleu/pkg/domain-errors"

// Redistribute moves surplus onto deficits under the pool feasibility
// rule: the aggregate balance must not be negative. The transfer is a
// greedy walk that preserves input order. Deficit members draw from
// surplus members front to back until covered; an exhausted surplus
// member is skipped for later deficits. Guarantees:
//
//   - sum(cbAfter) == sum(cbBefore): balance moves, it is never created
//     or destroyed;
//   - a deficit member never ends worse than it started;
//   - a surplus member never ends negative;
//   - every deficit member ends at zero (the precondition makes total
//     surplus cover total deficit).
//
// The front-to-back draw order among several surplus contributors is an
// implementation choice; any order-preserving greedy walk satisfies the
// guarantees above.
//
// Either the precondition holds and a full assignment is returned, or the
// call fails before any assignment is attempted.
func Redistribute(members []MemberInput) ([]Member, error) {
	if len(members) == 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "pool needs at least one member")
	}

	var total float64
	for _, m := range members {
		total += m.CBBeforeG
	}
	if total < 0 {
		return nil, dErrors.New(dErrors.CodePoolInfeasible,
			"total adjusted compliance balance is negative")
	}

	after := make([]float64, len(members))
	var surplus []int
	for i, m := range members {
		after[i] = m.CBBeforeG
		if m.CBBeforeG > 0 {
			surplus = append(surplus, i)
		}
	}

	next := 0 // first surplus member with anything left to give
	for i, m := range members {
		if m.CBBeforeG >= 0 {
			continue
		}
		shortfall := -after[i]
		for shortfall > 0 && next < len(surplus) {
			j := surplus[next]
			give := after[j]
			if give > shortfall {
				give = shortfall
			}
			after[j] -= give
			after[i] += give
			shortfall -= give
			if after[j] == 0 {
				next++
			}
		}
	}

	out := make([]Member, len(members))
	for i, m := range members {
		out[i] = Member{ShipID: m.ShipID, CBBeforeG: m.CBBeforeG, CBAfterG: after[i]}
	}
	return out, nil
}
