package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gridstress/internal/analysis"
	"gridstress/internal/config"
	"gridstress/internal/data"
	"gridstress/internal/scenario"
	"gridstress/internal/sim"
)

var (
	cfgPath     string
	weatherPath string
	fesPath     string
	seriesPath  string
	outPath     string
	limitN      int
)

var rootCmd = &cobra.Command{
	Use:   "gridstress",
	Short: "Grid stress-test dispatch simulator",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build a 2030 profile, find the worst stress window, and dispatch through it",
	RunE:  runScenario,
}

var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "Rank the worst stress windows in a 2030 profile",
	RunE:  rankScenarioWindows,
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Dispatch a fleet through a demand/renewable series CSV",
	RunE:  simulateSeries,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "examples/config.yaml", "YAML scenario config")

	runCmd.Flags().StringVar(&weatherPath, "weather", "", "NESO demand-update CSV (weather template year)")
	runCmd.Flags().StringVar(&fesPath, "fes", "", "FES data-workbook CSV (peak demand)")
	runCmd.Flags().StringVar(&outPath, "out", "results/dispatch.csv", "ledger CSV output path")
	_ = runCmd.MarkFlagRequired("weather")
	_ = runCmd.MarkFlagRequired("fes")

	windowsCmd.Flags().StringVar(&weatherPath, "weather", "", "NESO demand-update CSV (weather template year)")
	windowsCmd.Flags().StringVar(&fesPath, "fes", "", "FES data-workbook CSV (peak demand)")
	windowsCmd.Flags().IntVar(&limitN, "limit", 3, "number of windows to rank")
	_ = windowsCmd.MarkFlagRequired("weather")
	_ = windowsCmd.MarkFlagRequired("fes")

	simulateCmd.Flags().StringVar(&seriesPath, "series", "", "CSV with demand_mw and renewable_mw columns")
	simulateCmd.Flags().StringVar(&outPath, "out", "results/dispatch.csv", "ledger CSV output path")
	simulateCmd.Flags().IntVar(&limitN, "n", 0, "limit to first N intervals (0=all)")
	_ = simulateCmd.MarkFlagRequired("series")

	rootCmd.AddCommand(runCmd, windowsCmd, simulateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	profile, err := buildProfile(cfg)
	if err != nil {
		return err
	}

	window, err := analysis.WorstWindow(profile.NetMW, profile.IntervalHours(), cfg.Scenario.WindowDays)
	if err != nil {
		return fmt.Errorf("window search: %w", err)
	}
	fmt.Printf("worst %d-day window: intervals [%d, %d), deficit %.0f MWh\n",
		cfg.Scenario.WindowDays, window.Start, window.End, window.DeficitMWh)

	series, err := profile.Series(window.Start, window.End)
	if err != nil {
		return err
	}

	result, err := sim.New().Run(series, cfg.Fleet.ToSim())
	if err != nil {
		return fmt.Errorf("simulate: %w", err)
	}
	printSummary(result)

	if outPath != "" {
		if err := sim.WriteLedgerCSV(outPath, result.Ledger); err != nil {
			return fmt.Errorf("write ledger: %w", err)
		}
		fmt.Printf("ledger written to %s\n", outPath)
	}
	return nil
}

func rankScenarioWindows(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	profile, err := buildProfile(cfg)
	if err != nil {
		return err
	}

	windows, err := analysis.RankWindows(profile.NetMW, profile.IntervalHours(), cfg.Scenario.WindowDays, limitN)
	if err != nil {
		return fmt.Errorf("window search: %w", err)
	}

	stats := analysis.ComputeNetStats(profile.NetMW, profile.IntervalHours())
	fmt.Printf("net demand: mean %.0f MW, p05 %.0f MW, p95 %.0f MW\n", stats.MeanMW, stats.P05MW, stats.P95MW)
	fmt.Printf("annual deficit %.0f MWh, annual surplus %.0f MWh\n", stats.DeficitMWh, stats.SurplusMWh)
	for i, w := range windows {
		fmt.Printf("%d. intervals [%d, %d)  deficit %.0f MWh\n", i+1, w.Start, w.End, w.DeficitMWh)
	}
	return nil
}

func simulateSeries(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	series, err := data.LoadSeriesCSV(seriesPath)
	if err != nil {
		return fmt.Errorf("load series: %w", err)
	}
	if limitN > 0 && limitN < series.Len() {
		series.DemandMW = series.DemandMW[:limitN]
		series.RenewableMW = series.RenewableMW[:limitN]
	}

	result, err := sim.New().Run(series, cfg.Fleet.ToSim())
	if err != nil {
		return fmt.Errorf("simulate: %w", err)
	}
	printSummary(result)

	if outPath != "" {
		if err := sim.WriteLedgerCSV(outPath, result.Ledger); err != nil {
			return fmt.Errorf("write ledger: %w", err)
		}
		fmt.Printf("ledger written to %s\n", outPath)
	}
	return nil
}

// buildProfile runs the data-preparation pipeline: NESO weather template,
// FES peak demand, CP30 capacity targets, scaled 2030 profile.
func buildProfile(cfg *config.Config) (*scenario.Profile, error) {
	weather, err := data.LoadWeatherTemplate(weatherPath)
	if err != nil {
		return nil, fmt.Errorf("load weather template: %w", err)
	}

	peakMW, err := data.LoadPeakDemandMW(fesPath, cfg.Scenario.FESPathway, cfg.Scenario.TargetYear)
	if err != nil {
		return nil, fmt.Errorf("load FES peak demand: %w", err)
	}
	fmt.Printf("%s %d peak demand: %.0f MW\n", cfg.Scenario.FESPathway, cfg.Scenario.TargetYear, peakMW)

	targets := scenario.CP30()
	if cfg.Scenario.OffshoreWindGW > 0 {
		targets.OffshoreWind.HighGW = cfg.Scenario.OffshoreWindGW
	}

	return scenario.Build2030(weather, targets, peakMW)
}

func printSummary(result *sim.Result) {
	fmt.Printf("intervals: %d (%.1fh each)\n", len(result.Ledger), result.IntervalHours)
	fmt.Printf("unmet demand: %.1f MWh over %d intervals\n", result.TotalUnmetMWh, result.UnmetIntervals())
	if result.PeakDeficitIndex >= 0 {
		fmt.Printf("peak deficit: %.1f MW at interval %d\n", result.PeakDeficitMW, result.PeakDeficitIndex)
	}
	if result.ExhaustionIndex >= 0 {
		fmt.Printf("battery exhausted at interval %d\n", result.ExhaustionIndex)
	} else {
		fmt.Println("batteries never exhausted")
	}
	fmt.Printf("discharged %.1f MWh, charged %.1f MWh, reserves %.1f MWh, curtailed %.1f MWh\n",
		result.EnergyDischargedMWh, result.EnergyChargedMWh, result.ReserveEnergyMWh, result.CurtailedMWh)
}
