package sim

// Schedule is the annealing temperature. It decays geometrically once per
// tick and settles the first time it drops below the minimum.
type Schedule struct {
	initial   float64
	cooling   float64
	min       float64
	temp      float64
	ticks     int
	settled   bool
	settledAt int
}

func NewSchedule(initial, cooling, min float64) *Schedule {
	s := &Schedule{initial: initial, cooling: cooling, min: min}
	s.Reset()
	return s
}

func (s *Schedule) Reset() {
	s.temp = s.initial
	s.ticks = 0
	s.settled = s.initial < s.min
	s.settledAt = 0
}

// Decay advances the schedule by one tick.
func (s *Schedule) Decay() {
	s.temp *= s.cooling
	s.ticks++
	if !s.settled && s.temp < s.min {
		s.settled = true
		s.settledAt = s.ticks
	}
}

func (s *Schedule) Temperature() float64 { return s.temp }
func (s *Schedule) Ticks() int           { return s.ticks }
func (s *Schedule) Settled() bool        { return s.settled }

// SettledAt is the tick count at which the schedule settled, 0 for a
// schedule that started below its minimum. It is meaningless until Settled.
func (s *Schedule) SettledAt() int { return s.settledAt }
