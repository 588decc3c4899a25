package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/koffie/isogeny-primes2/isogeny"
	"github.com/koffie/isogeny-primes2/numfield"
)

type sweepConfig struct {
	Fields []int64 `yaml:"fields"`
	Range  *struct {
		From int64 `yaml:"from"`
		To   int64 `yaml:"to"`
	} `yaml:"range"`
	NormBound  int64  `yaml:"norm_bound"`
	LoopCurves bool   `yaml:"loop_curves"`
	UsePIL     bool   `yaml:"use_pil"`
	Out        string `yaml:"out"`
	Chart      string `yaml:"chart"`
}

type sweepRow struct {
	D       int64   `json:"d"`
	Primes  []int64 `json:"primes,omitempty"`
	Count   int     `json:"count"`
	Largest int64   `json:"largest,omitempty"`
	MS      int64   `json:"ms"`
	Err     string  `json:"err,omitempty"`
}

func loadSweepConfig(path string) (*sweepConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &sweepConfig{NormBound: isogeny.DefaultNormBound}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.Range != nil {
		for d := cfg.Range.From; d <= cfg.Range.To; d++ {
			if d == 0 || d == 1 {
				continue
			}
			cfg.Fields = append(cfg.Fields, d)
		}
	}
	if len(cfg.Fields) == 0 {
		return nil, errors.New("sweep config names no fields")
	}
	if cfg.Out == "" {
		cfg.Out = "sweep.jsonl"
	}
	return cfg, nil
}

func newSweepCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run the computation over a list or range of fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSweepConfig(configPath)
			if err != nil {
				return err
			}
			rows, err := runSweep(cfg)
			if err != nil {
				return err
			}
			if cfg.Chart != "" {
				if err := writeSweepChart(cfg, rows); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "sweep.yaml", "sweep configuration file")
	return cmd
}

func runSweep(cfg *sweepConfig) ([]sweepRow, error) {
	out, err := os.Create(cfg.Out)
	if err != nil {
		return nil, err
	}
	defer out.Close()
	buf := bufio.NewWriter(out)
	defer buf.Flush()
	enc := json.NewEncoder(buf)

	var rows []sweepRow
	for _, d := range cfg.Fields {
		f, err := numfield.New(d)
		if err != nil {
			continue // non-squarefree entries from a range
		}
		start := time.Now()
		primes, err := isogeny.PreTypeOneTwoPrimes(f, isogeny.Options{
			NormBound:  cfg.NormBound,
			LoopCurves: cfg.LoopCurves,
			UsePIL:     cfg.UsePIL,
			Logger:     logger,
		})
		row := sweepRow{D: d, MS: time.Since(start).Milliseconds()}
		if err != nil {
			row.Err = err.Error()
			logger.Warn("sweep entry failed", zap.Int64("d", d), zap.Error(err))
		} else {
			row.Primes = primes
			row.Count = len(primes)
			if len(primes) > 0 {
				row.Largest = primes[len(primes)-1]
			}
		}
		if err := enc.Encode(row); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func writeSweepChart(cfg *sweepConfig, rows []sweepRow) error {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Candidate isogeny primes per field",
			Subtitle: fmt.Sprintf("norm bound %d", cfg.NormBound),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "D"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "candidates"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	var counts []opts.ScatterData
	var largest []opts.ScatterData
	for _, r := range rows {
		if r.Err != "" {
			continue
		}
		counts = append(counts, opts.ScatterData{Value: []interface{}{r.D, r.Count}})
		largest = append(largest, opts.ScatterData{Value: []interface{}{r.D, r.Largest}})
	}
	if len(counts) == 0 {
		return errors.New("no successful sweep rows to chart")
	}
	scatter.AddSeries("count", counts)
	scatter.AddSeries("largest candidate", largest)

	fh, err := os.Create(cfg.Chart)
	if err != nil {
		return err
	}
	defer fh.Close()
	return scatter.Render(fh)
}
