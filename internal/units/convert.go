// Package units converts measurement amounts between units. Same-type
// conversions route through the type's base unit; cross-type conversions
// (a recipe calls for cups, the shop sells grams) need an ingredient-scoped
// bridge supplied by the caller.
package units

import (
	"errors"

	"github.com/jand19081/ladle/internal/model"
)

var (
	// ErrUnknownUnit means a unit id was not present in the supplied catalog.
	ErrUnknownUnit = errors.New("unknown unit")
	// ErrNoBridge means the units are of different types and no supplied
	// bridge connects them.
	ErrNoBridge = errors.New("no bridge between unit types")
	// ErrBadFactor means a unit or bridge side has a non-positive factor
	// or amount, which would divide by zero.
	ErrBadFactor = errors.New("non-positive conversion factor")
)

// Convert converts amount from one unit to another. allUnits is the full
// unit catalog keyed by id; bridges must already be filtered to the relevant
// ingredient by the caller. When several bridges connect the same type pair
// the first match in the supplied order wins, so callers should pass bridges
// in a stable order.
//
// No rounding happens here; cents truncation is the cost calculator's job.
func Convert(amount float64, fromID, toID int64, allUnits map[int64]model.Unit, bridges []model.Bridge) (float64, error) {
	if fromID == toID {
		return amount, nil
	}

	from, ok := allUnits[fromID]
	if !ok {
		return 0, ErrUnknownUnit
	}
	to, ok := allUnits[toID]
	if !ok {
		return 0, ErrUnknownUnit
	}

	fromFactor, err := baseFactor(from)
	if err != nil {
		return 0, err
	}
	toFactor, err := baseFactor(to)
	if err != nil {
		return 0, err
	}

	inBase := amount * fromFactor

	if from.Type == to.Type {
		return inBase / toFactor, nil
	}

	ratio, err := bridgeRatio(from.Type, to.Type, allUnits, bridges)
	if err != nil {
		return 0, err
	}
	return inBase * ratio / toFactor, nil
}

// Convertible reports whether Convert would succeed for the unit pair.
func Convertible(fromID, toID int64, allUnits map[int64]model.Unit, bridges []model.Bridge) bool {
	_, err := Convert(1, fromID, toID, allUnits, bridges)
	return err == nil
}

// baseFactor returns the multiplier from a unit to its type's base unit.
// Custom units without a user-supplied factor are their own base.
func baseFactor(u model.Unit) (float64, error) {
	if u.FactorToBase > 0 {
		return u.FactorToBase, nil
	}
	if u.Type == model.UnitCustom && u.FactorToBase == 0 {
		return 1, nil
	}
	return 0, ErrBadFactor
}

// bridgeRatio finds a bridge connecting fromType to toType and returns the
// multiplier that carries an amount in fromType's base unit into toType's
// base unit. Bridges are directional in storage but usable either way.
func bridgeRatio(fromType, toType model.UnitType, allUnits map[int64]model.Unit, bridges []model.Bridge) (float64, error) {
	for _, b := range bridges {
		bf, ok := allUnits[b.FromUnitID]
		if !ok {
			continue
		}
		bt, ok := allUnits[b.ToUnitID]
		if !ok {
			continue
		}

		bfFactor, err := baseFactor(bf)
		if err != nil {
			continue
		}
		btFactor, err := baseFactor(bt)
		if err != nil {
			continue
		}

		switch {
		case bf.Type == fromType && bt.Type == toType:
			den := b.FromAmount * bfFactor
			if den <= 0 || b.ToAmount <= 0 {
				return 0, ErrBadFactor
			}
			return b.ToAmount * btFactor / den, nil
		case bt.Type == fromType && bf.Type == toType:
			den := b.ToAmount * btFactor
			if den <= 0 || b.FromAmount <= 0 {
				return 0, ErrBadFactor
			}
			return b.FromAmount * bfFactor / den, nil
		}
	}
	return 0, ErrNoBridge
}
