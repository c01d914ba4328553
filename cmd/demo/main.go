package main

import (
	"flag"
	"fmt"
	"math"

	"gridstress/internal/model"
	"gridstress/internal/sim"
)

// Demo:
// - Build a synthetic 5-day dunkelflaute: steady winter demand, wind that
//   collapses for the middle three days, a weak solar midday bump
// - Dispatch a battery + reserve fleet through it
// - Print the summary and a slice of the ledger to show how models fit together
func main() {
	days := flag.Int("days", 5, "Event length in days")
	outCSV := flag.String("out", "", "Optional path to write ledger CSV (e.g. results/demo.csv)")
	flag.Parse()

	series := syntheticEvent(*days)

	fleet := sim.Fleet{
		Batteries: []model.BatteryParams{
			{Name: "grid-scale", PowerMW: 20000, CapacityMWh: 50000, InitialSOCMWh: 50000, RoundTripEfficiency: 0.9},
		},
		Reserves: []model.ReserveParams{
			{Name: "gas-peakers", PowerMW: 25000},
		},
	}

	result, err := sim.New().Run(series, fleet)
	if err != nil {
		panic(err)
	}

	fmt.Printf("synthetic %d-day dunkelflaute, %d half-hour intervals\n", *days, len(result.Ledger))
	fmt.Printf("unmet demand: %.0f MWh over %d intervals\n", result.TotalUnmetMWh, result.UnmetIntervals())
	if result.ExhaustionIndex >= 0 {
		fmt.Printf("battery exhausted at interval %d (hour %.1f)\n",
			result.ExhaustionIndex, float64(result.ExhaustionIndex)*series.Hours())
	} else {
		fmt.Println("batteries survived the event")
	}
	fmt.Printf("discharged %.0f MWh, reserves %.0f MWh, curtailed %.0f MWh\n",
		result.EnergyDischargedMWh, result.ReserveEnergyMWh, result.CurtailedMWh)

	fmt.Println("\nfirst 12 intervals:")
	fmt.Println("idx   net_mw  battery_mw  reserve_mw  unmet_mw     soc_mwh  phase")
	for _, rec := range result.Ledger[:min(12, len(result.Ledger))] {
		fmt.Printf("%3d %8.0f  %10.0f  %10.0f  %8.0f  %10.0f  %s\n",
			rec.Index, rec.NetBeforeDispatchMW, rec.BatteryDispatchMW,
			rec.ReserveDispatchMW, rec.UnmetDeficitMW, rec.BatterySOCMWh, rec.Phase)
	}

	if *outCSV != "" {
		if err := sim.WriteLedgerCSV(*outCSV, result.Ledger); err != nil {
			panic(err)
		}
		fmt.Printf("\nledger written to %s\n", *outCSV)
	}
}

// syntheticEvent builds a half-hourly demand/renewable pair: demand cycles
// between 35 and 50 GW daily, wind sits at 25 GW but collapses to 2 GW for
// the middle of the event, solar adds a small midday bump.
func syntheticEvent(days int) model.SeriesPair {
	n := days * 48
	demand := make([]float64, n)
	renewable := make([]float64, n)

	lullStart := n / 5
	lullEnd := n - n/5

	for i := 0; i < n; i++ {
		hourOfDay := float64(i%48) / 2

		demand[i] = 42500 + 7500*math.Sin(2*math.Pi*(hourOfDay-9)/24)

		wind := 25000.0
		if i >= lullStart && i < lullEnd {
			wind = 2000
		}
		solar := 0.0
		if hourOfDay >= 9 && hourOfDay <= 15 {
			solar = 4000 * math.Sin(math.Pi*(hourOfDay-9)/6)
		}
		renewable[i] = wind + solar
	}

	return model.SeriesPair{
		DemandMW:      demand,
		RenewableMW:   renewable,
		IntervalHours: model.HalfHour,
	}
}
