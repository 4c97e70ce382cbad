// Command eurotune compares One Euro filter settings on a synthetic noisy
// motion and prints lag, jitter and noise reduction for each of them.
//
// Usage:
//
//	eurotune [flags] [preset-name ...]
//
// Without preset names it sweeps the grid given by -mincutoff and -beta.
//
// Examples:
//
//	eurotune
//	eurotune -mincutoff 0.5,1,2 -beta 0,1,4
//	eurotune -rate 90 -noise 0.02 hand head
//	eurotune -jitter 0.3 controller
//	eurotune -presets tuning.toml -list
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-smooth/dsp/core"
	"github.com/cwbudde/algo-smooth/dsp/filter/oneeuro"
	"github.com/cwbudde/algo-smooth/dsp/filter/oneeuro/preset"
	"github.com/cwbudde/algo-smooth/dsp/signal"
	"github.com/cwbudde/algo-smooth/measure/tracking"
)

type candidate struct {
	name   string
	params oneeuro.Params
}

type row struct {
	candidate
	result    tracking.Result
	reduction float64
}

func main() {
	rate := flag.Float64("rate", core.DefaultStepRate, "frame rate in Hz")
	samples := flag.Int("n", 600, "number of frames to simulate")
	noise := flag.Float64("noise", 0.01, "peak amplitude of the added tracking noise")
	seed := flag.Int64("seed", 1, "noise seed")
	jitter := flag.Float64("jitter", 0, "frame time jitter as a fraction of the frame time, in [0, 1)")
	minCutoffs := flag.String("mincutoff", "0.5,1,2", "comma separated min cutoff values in Hz")
	betas := flag.String("beta", "0,0.5,2", "comma separated beta values")
	dCutoff := flag.Float64("dcutoff", 1, "derivative cutoff in Hz")
	presetFile := flag.String("presets", "", "TOML or YAML preset file merged over the built-in presets")
	list := flag.Bool("list", false, "list available preset names")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: eurotune [flags] [preset-name ...]\n\n")
		fmt.Fprintf(os.Stderr, "Compares One Euro filter settings on a noisy synthetic motion.\n")
		fmt.Fprintf(os.Stderr, "Without preset names, sweeps the -mincutoff x -beta grid.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  eurotune -mincutoff 0.5,1,2 -beta 0,1,4\n")
		fmt.Fprintf(os.Stderr, "  eurotune -rate 90 hand head\n")
		fmt.Fprintf(os.Stderr, "  eurotune -jitter 0.3 controller\n")
		fmt.Fprintf(os.Stderr, "  eurotune -presets tuning.toml -list\n")
	}
	flag.Parse()

	presets := preset.Builtin()
	if *presetFile != "" {
		loaded, err := preset.LoadFile(*presetFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		presets = preset.Merge(presets, loaded)
	}

	if *list {
		for _, name := range presets.Names() {
			fmt.Printf("%-12s %s\n", name, presets[name])
		}
		return
	}

	var candidates []candidate
	var err error
	if names := flag.Args(); len(names) > 0 {
		candidates, err = resolvePresets(presets, names)
	} else {
		candidates, err = grid(*minCutoffs, *betas, *dCutoff)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	gen := signal.NewGenerator(core.WithStepRate(*rate), core.WithSeed(*seed))
	rows, err := evaluate(gen, candidates, *samples, *noise, *jitter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := printTable(os.Stdout, rows); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output: %v\n", err)
		os.Exit(1)
	}
}

func parseList(s string) ([]float64, error) {
	var out []float64
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", field, err)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty value list %q", s)
	}
	return out, nil
}

func grid(minCutoffs, betas string, dCutoff float64) ([]candidate, error) {
	mins, err := parseList(minCutoffs)
	if err != nil {
		return nil, fmt.Errorf("mincutoff: %w", err)
	}
	bs, err := parseList(betas)
	if err != nil {
		return nil, fmt.Errorf("beta: %w", err)
	}

	var out []candidate
	for _, mc := range mins {
		for _, b := range bs {
			p := oneeuro.Params{MinCutoff: mc, Beta: b, DerivativeCutoff: dCutoff}
			if err := p.Validate(); err != nil {
				return nil, err
			}
			out = append(out, candidate{name: "grid", params: p})
		}
	}
	return out, nil
}

func resolvePresets(set preset.Set, names []string) ([]candidate, error) {
	out := make([]candidate, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		p, err := set.Get(name)
		if err != nil {
			return nil, err
		}
		out = append(out, candidate{name: name, params: p})
	}
	return out, nil
}

func motion(gen *signal.Generator, samples int) ([]float64, error) {
	return gen.Motion(0, []signal.Segment{
		{To: 1, Duration: 0.6, Hold: 0.5},
		{To: -0.5, Duration: 0.3, Hold: 0.4},
		{To: 0.25, Duration: 1.2, Hold: 1},
	}, samples)
}

func evaluate(gen *signal.Generator, candidates []candidate, samples int, noise, jitter float64) ([]row, error) {
	clean, err := motion(gen, samples)
	if err != nil {
		return nil, err
	}
	raw, err := gen.AddNoise(clean, noise)
	if err != nil {
		return nil, err
	}

	dts, err := gen.FrameTimes(jitter, samples)
	if err != nil {
		return nil, err
	}

	cfg := tracking.Config{StepRate: gen.Config().StepRate}

	rows := make([]row, 0, len(candidates))
	for _, c := range candidates {
		f, err := oneeuro.New(oneeuro.WithParams(c.params))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.name, err)
		}

		out := make([]float64, len(raw))
		for i, x := range raw {
			out[i] = f.Step(x, dts[i])
		}

		res, err := tracking.Analyze(clean, out, cfg)
		if err != nil {
			return nil, err
		}
		nr, err := tracking.NoiseReduction(raw, out, cfg)
		if err != nil {
			return nil, err
		}

		rows = append(rows, row{candidate: c, result: res, reduction: nr})
	}
	return rows, nil
}

func printTable(w io.Writer, rows []row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Name\tMin Cutoff\tBeta\tD Cutoff\tLag [ms]\tJitter RMS\tError RMS\tNoise Red. [dB]\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "----\t----------\t----\t--------\t--------\t----------\t---------\t---------------\n"); err != nil {
		return err
	}

	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%.3f\t%.3f\t%.3f\t%.1f\t%.6f\t%.6f\t%.2f\n",
			r.name,
			r.params.MinCutoff,
			r.params.Beta,
			r.params.DerivativeCutoff,
			r.result.Lag*1000,
			r.result.JitterRMS,
			r.result.ErrorRMS,
			r.reduction,
		); err != nil {
			return err
		}
	}
	return tw.Flush()
}
