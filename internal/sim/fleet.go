package sim

import (
	"fmt"

	"gridstress/internal/model"
)

// DispatchClass names one tier of the merit order. Renewables are not a
// class: they are netted off in the balance step before any pool acts.
type DispatchClass string

const (
	ClassBatteries DispatchClass = "batteries"
	ClassReserves  DispatchClass = "reserves"
)

// DefaultDispatchOrder mirrors the documented merit order: batteries shave
// the peak first, strategic reserve fills what is left.
var DefaultDispatchOrder = []DispatchClass{ClassBatteries, ClassReserves}

// Fleet is the dispatchable resource configuration for one run. Pools are
// exercised strictly in slice order within each class; the class order is the
// explicit merit order rather than being implied by argument position.
type Fleet struct {
	DispatchOrder []DispatchClass
	Batteries     []model.BatteryParams
	Reserves      []model.ReserveParams
}

// normalized returns a copy with the default merit order filled in.
func (f Fleet) normalized() Fleet {
	if len(f.DispatchOrder) == 0 {
		f.DispatchOrder = DefaultDispatchOrder
	}
	return f
}

func (f Fleet) Validate() error {
	seen := map[DispatchClass]bool{}
	for i, class := range f.DispatchOrder {
		switch class {
		case ClassBatteries, ClassReserves:
		default:
			return model.Invalid("dispatch_order", "unknown class %q at position %d", class, i)
		}
		if seen[class] {
			return model.Invalid("dispatch_order", "class %q listed twice", class)
		}
		seen[class] = true
	}
	for i, b := range f.Batteries {
		if err := b.Validate(indexed("batteries", i)); err != nil {
			return err
		}
	}
	for i, r := range f.Reserves {
		if err := r.Validate(indexed("reserves", i)); err != nil {
			return err
		}
	}
	return nil
}

func indexed(field string, i int) string {
	return fmt.Sprintf("%s[%d]", field, i)
}
