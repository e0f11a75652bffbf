package domain

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Holdings is the simulated incremental portfolio. Holdings are keyed
// by position id since two picks can share a ticker.
type Holdings struct {
	Positions map[string]*Holding
}

type Holding struct {
	PositionID string
	Symbol     string
	EntryPrice decimal.Decimal
	Shares     decimal.Decimal
}

func NewHoldings() *Holdings {
	return &Holdings{
		Positions: map[string]*Holding{},
	}
}

func (h Holdings) HeldIDs() []string {
	ids := []string{}
	for id := range h.Positions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (h Holdings) Len() int {
	return len(h.Positions)
}

// TotalValue marks every holding to market. priceMap is keyed by
// position id.
func (h Holdings) TotalValue(priceMap map[string]decimal.Decimal) (decimal.Decimal, error) {
	totalValue := decimal.Zero
	for id, holding := range h.Positions {
		price, ok := priceMap[id]
		if !ok {
			return decimal.Zero, fmt.Errorf("cannot compute holdings total value: price map missing %s (%s)", id, holding.Symbol)
		}
		totalValue = totalValue.Add(holding.Shares.Mul(price))
	}

	return totalValue, nil
}

// Resize sets every holding to targetValue worth of shares at the
// given prices
func (h *Holdings) Resize(targetValue decimal.Decimal, priceMap map[string]decimal.Decimal) error {
	for id, holding := range h.Positions {
		price, ok := priceMap[id]
		if !ok {
			return fmt.Errorf("cannot resize holding %s: price map missing it", id)
		}
		if !price.IsPositive() {
			return fmt.Errorf("cannot resize holding %s: non-positive price %s", id, price.String())
		}
		holding.Shares = targetValue.Div(price)
	}
	return nil
}

func (h Holdings) DeepCopy() *Holdings {
	out := NewHoldings()
	for id, holding := range h.Positions {
		c := *holding
		out.Positions[id] = &c
	}
	return out
}
