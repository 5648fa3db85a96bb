package roster

// Snake order: even rounds walk the draft order forward, odd rounds walk it
// in reverse. Rounds are 0-based, overall pick numbers 1-based.

// RoundOf returns the 0-based round for the 1-based overall pick number.
func RoundOf(pickNumber, numManagers int) int {
	if pickNumber <= 0 || numManagers <= 0 {
		return 0
	}

	return (pickNumber - 1) / numManagers
}

// SlotOf returns the 0-based position within the round for the 1-based
// overall pick number, after applying the snake reversal.
func SlotOf(pickNumber, numManagers int) int {
	if pickNumber <= 0 || numManagers <= 0 {
		return 0
	}

	round := RoundOf(pickNumber, numManagers)
	offset := (pickNumber - 1) % numManagers
	if round%2 == 1 {
		return numManagers - 1 - offset
	}

	return offset
}

// ManagerAt maps the 1-based overall pick number onto the draft order and
// returns the manager on the clock.
func ManagerAt(pickNumber int, order []string) (string, bool) {
	if pickNumber <= 0 || len(order) == 0 {
		return "", false
	}

	return order[SlotOf(pickNumber, len(order))], true
}

// TotalPicks is the size of a complete draft.
func TotalPicks(numManagers, rounds int) int {
	if numManagers <= 0 || rounds <= 0 {
		return 0
	}

	return numManagers * rounds
}
