package progress

// UnitProgress is the persisted mastery state of one card. The zero
// value is the state of a never-attempted unit.
type UnitProgress struct {
	// Streak counts consecutive distinct correct days since the last
	// reset. Clamped at the configured mastery length once reached.
	Streak int

	// LastAttempt is the day of the most recent attempt, correct or not.
	LastAttempt Date

	// Mastered is set when Streak reaches the required day count and
	// cleared again if the unit is later failed.
	Mastered bool

	// Lifetime counters, display only.
	Correct int
	Wrong   int
}

// Attempted reports whether the unit has ever been answered.
func (p UnitProgress) Attempted() bool {
	return !p.LastAttempt.IsZero() || p.Correct > 0 || p.Wrong > 0
}

// Apply returns the progress state after one evaluated attempt on day
// today with requiredDays as the mastery streak length. It is the only
// transition rule; Mastered is never set anywhere else.
//
// Rules:
//   - A correct answer on a strictly later day than LastAttempt advances
//     the streak by one; gaps of more than a day still advance (the
//     streak counts correct days, not calendar-consecutive days).
//   - A correct answer on the same day (or, under clock skew, an earlier
//     day) leaves the streak as is.
//   - Any wrong answer resets the streak to zero and demotes a mastered
//     unit.
//   - LastAttempt never moves backward.
func Apply(p UnitProgress, correct bool, today Date, requiredDays int) UnitProgress {
	if correct {
		p.Correct++
		if p.LastAttempt.IsZero() || today.After(p.LastAttempt) {
			p.Streak++
		}
		if p.Streak >= requiredDays {
			p.Streak = requiredDays
			p.Mastered = true
		}
	} else {
		p.Wrong++
		p.Streak = 0
		p.Mastered = false
	}

	if p.LastAttempt.IsZero() || today.After(p.LastAttempt) {
		p.LastAttempt = today
	}
	return p
}
