package sim

import (
	"encoding/csv"
	"os"
	"strconv"
)

// WriteLedgerCSV writes the per-interval ledger for charting or spreadsheet
// inspection. One row per interval, floats with fixed precision so repeated
// runs diff cleanly.
func WriteLedgerCSV(path string, ledger []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"index",
		"demand_mw",
		"renewable_mw",
		"net_mw",
		"battery_mw",
		"battery_soc_mwh",
		"reserve_mw",
		"unmet_mw",
		"curtailed_mw",
		"phase",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range ledger {
		row := []string{
			strconv.Itoa(r.Index),
			fmtFloat(r.DemandMW),
			fmtFloat(r.RenewableMW),
			fmtFloat(r.NetBeforeDispatchMW),
			fmtFloat(r.BatteryDispatchMW),
			fmtFloat(r.BatterySOCMWh),
			fmtFloat(r.ReserveDispatchMW),
			fmtFloat(r.UnmetDeficitMW),
			fmtFloat(r.CurtailedMW),
			string(r.Phase),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
