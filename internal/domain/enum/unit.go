package enum

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Unit is the measurement unit printed next to a line item quantity
type Unit string

const (
	UnitPackage Unit = "Package"
	UnitBottle  Unit = "Bottle"
	UnitKGs     Unit = "KGs"
	UnitLtrs    Unit = "Ltrs"
	UnitPieces  Unit = "Pieces"
	UnitBoxes   Unit = "Boxes"
)

// DefaultUnit is used for new and blank lines
const DefaultUnit = UnitPackage

// Units lists the selectable units in display order
var Units = []Unit{UnitPackage, UnitBottle, UnitKGs, UnitLtrs, UnitPieces, UnitBoxes}

func (u Unit) String() string {
	return string(u)
}

// IsValid reports whether u is one of the selectable units
func (u Unit) IsValid() bool {
	for _, known := range Units {
		if u == known {
			return true
		}
	}
	return false
}

// ErrUnknownUnit is returned for a unit outside Units
var ErrUnknownUnit = errors.New("unknown unit")

// ParseUnit maps raw input to a Unit. Blank input yields DefaultUnit.
func ParseUnit(raw string) (Unit, error) {
	if raw == "" {
		return DefaultUnit, nil
	}
	u := Unit(raw)
	if !u.IsValid() {
		return "", fmt.Errorf("%w %q", ErrUnknownUnit, raw)
	}
	return u, nil
}

func (u *Unit) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseUnit(str)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
