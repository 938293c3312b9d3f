package sim

import "github.com/zeebo/simlab/variate"

// Dice is a two dice house game. Each game the player rolls two dice: a sum
// of seven pays the player Payout, anything else pays the house Cost.
type Dice struct {
	Games  int
	Cost   float64
	Payout float64
}

// DefaultDice returns the classroom dice configuration.
func DefaultDice() Dice {
	return Dice{Games: 10, Cost: 2, Payout: 5}
}

// DiceResult is one replication of the dice game.
type DiceResult struct {
	Replication  int
	HouseGain    float64
	HouseWins    int
	HousePercent float64
}

// Fields implements Result.
func (r DiceResult) Fields() []Field {
	return []Field{
		{"house gain", r.HouseGain},
		{"house wins", float64(r.HouseWins)},
		{"house %", r.HousePercent},
	}
}

// Validate checks the configuration.
func (d Dice) Validate() error {
	if d.Games <= 0 {
		return Error.New("games must be positive, got %d", d.Games)
	}
	if err := checkNonNegative("cost", d.Cost); err != nil {
		return err
	}
	return checkNonNegative("payout", d.Payout)
}

// Run plays one replication.
func (d Dice) Run(src variate.Source) DiceResult {
	var r DiceResult
	for i := 0; i < d.Games; i++ {
		sum := variate.UniformInt(src, 1, 6) + variate.UniformInt(src, 1, 6)
		if sum == 7 {
			r.HouseGain -= d.Payout
		} else {
			r.HouseGain += d.Cost
			r.HouseWins++
		}
	}
	r.HousePercent = float64(r.HouseWins) / float64(d.Games) * 100
	return r
}

// Simulate runs n replications.
func (d Dice) Simulate(seed uint64, n int) (Report[DiceResult], error) {
	if err := d.Validate(); err != nil {
		return Report[DiceResult]{}, err
	}
	if err := checkReplications(n); err != nil {
		return Report[DiceResult]{}, err
	}
	return newReport(Replicate("dice", seed, n, func(rep int, src variate.Source) DiceResult {
		r := d.Run(src)
		r.Replication = rep + 1
		return r
	})), nil
}
