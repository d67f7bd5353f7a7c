package machine

import "vending"

// makeChange picks coins from pool summing to exactly target.
//
// It is a single greedy pass over the pool sorted largest first: a coin is
// taken whenever it still fits in the remaining amount and is never
// reconsidered. For a count-keyed pool that is min(count, remaining/value)
// per denomination. There is no backtracking, so the result is only
// guaranteed to exist when one does for canonical coin systems such as
// sterling; ok is false whenever the pass leaves a remainder.
func makeChange(pool purse, target int) (taken []vending.Coin, ok bool) {
	if target < 0 {
		return nil, false
	}
	remaining := target
	for _, c := range pool.denominations() {
		if remaining == 0 {
			break
		}
		v := c.Value()
		if v <= 0 || v > remaining {
			continue
		}
		n := min(pool[c], remaining/v)
		for range n {
			taken = append(taken, c)
		}
		remaining -= n * v
	}
	if remaining != 0 {
		return nil, false
	}
	return taken, true
}
