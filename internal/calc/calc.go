// Package calc estimates the biogas and methane production of a feedstock
// mix for one plant.
package calc

import (
	"errors"
	"fmt"

	"github.com/joestump/biogas/internal/store"
	"github.com/joestump/biogas/internal/validate"
)

var (
	ErrAmountNotPositive = errors.New("amount must be a positive number")
	ErrTSNotPercentage   = errors.New("dry matter (TS) must be a percentage between 0 and 100")
	ErrExceedsVolume     = errors.New("amount exceeds the available plant volume")
	ErrAlreadyPicked     = errors.New("substrate already picked")
)

// Pick is one substrate added to a plan.
type Pick struct {
	Substrate store.Substrate
	Amount    float64
	// TS is the dry matter content in percent.
	TS float64
}

// Yield is an expected production volume.
type Yield struct {
	Biogas  float64
	Methane float64
}

func (p Pick) yield() Yield {
	organic := p.Substrate.OTS / 100 * p.TS / 100 * p.Amount
	return Yield{
		Biogas:  organic * p.Substrate.Biogas,
		Methane: organic * p.Substrate.Methane,
	}
}

// Plan is a substrate mix bounded by the volume of a plant.
type Plan struct {
	MaxVolume float64
	picks     []Pick
}

func NewPlan(maxVolume float64) *Plan {
	return &Plan{MaxVolume: maxVolume}
}

// Add picks sub with the given amount and dry matter percentage.
func (p *Plan) Add(sub store.Substrate, amount, ts float64) error {
	if !validate.IsPositiveDouble(amount) {
		return ErrAmountNotPositive
	}
	if !validate.IsPositivePercentage(ts) {
		return ErrTSNotPercentage
	}
	for _, pk := range p.picks {
		if pk.Substrate.ID == sub.ID {
			return fmt.Errorf("%w: %s", ErrAlreadyPicked, sub.Name)
		}
	}
	if avail := p.Available(); amount > avail {
		return fmt.Errorf("%w: %g requested, %g available", ErrExceedsVolume, amount, avail)
	}
	p.picks = append(p.picks, Pick{Substrate: sub, Amount: amount, TS: ts})
	return nil
}

// Remove drops the pick of substrateID and reports whether it was present.
func (p *Plan) Remove(substrateID int64) bool {
	for i, pk := range p.picks {
		if pk.Substrate.ID == substrateID {
			p.picks = append(p.picks[:i], p.picks[i+1:]...)
			return true
		}
	}
	return false
}

func (p *Plan) Clear() {
	p.picks = nil
}

// Picks returns a copy of the picked substrates in insertion order.
func (p *Plan) Picks() []Pick {
	return append([]Pick(nil), p.picks...)
}

// Used returns the summed amount of all picks.
func (p *Plan) Used() float64 {
	var used float64
	for _, pk := range p.picks {
		used += pk.Amount
	}
	return used
}

// Available returns the volume left for further picks.
func (p *Plan) Available() float64 {
	return p.MaxVolume - p.Used()
}

// Expected returns the total yield of the plan.
func (p *Plan) Expected() Yield {
	var total Yield
	for _, pk := range p.picks {
		y := pk.yield()
		total.Biogas += y.Biogas
		total.Methane += y.Methane
	}
	return total
}
