package ecoweb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"
)

// WebType tags the interaction type of a network, derived from its source
// filename.
type WebType string

const (
	WebTypeAF      WebType = "AF" // anemone-fish
	WebTypeHP      WebType = "HP" // host-parasitoid
	WebTypePA      WebType = "PA" // plant-ant
	WebTypePH      WebType = "PH" // plant-herbivore
	WebTypePL      WebType = "PL" // pollination
	WebTypeSD      WebType = "SD" // seed dispersal
	WebTypeUnknown WebType = "??"
)

// Network is one loaded association matrix with its identity.
type Network struct {
	ID     string
	Type   WebType
	Matrix *BinaryMatrix
}

// NetworkRecord aggregates every per-network quantity the pipeline
// produces. Maps are keyed by quantile level c.
type NetworkRecord struct {
	ID   string
	Type WebType

	S           int
	N           int
	Links       int
	Connectance float64
	MinRowSum   float64
	MeanRowSum  float64
	VarRowSum   float64

	Dispersion    float64
	HasDispersion bool

	Fragility  map[float64]float64 // f_c
	Samples    []float64           // per-trial robustness values
	Robustness map[float64]float64 // c-quantile of Samples
	Residual   map[float64]float64 // Robustness - (1 - Fragility)
	Corrected  map[float64]float64 // f*_c, after the fit

	// Flags records why this network was left out of one or more
	// correction fits. A flagged record still appears in the catalog.
	Flags []string
}

// NetworkIssue names a network that was filtered out or failed, with the
// reason.
type NetworkIssue struct {
	ID     string
	Reason string
}

// RunSummary reports what happened to each input network.
type RunSummary struct {
	Processed int
	Filtered  []NetworkIssue
	Failed    []NetworkIssue
}

// Catalog is the finalized output of a run: one record per surviving
// network plus the fitted correction model.
type Catalog struct {
	Records []*NetworkRecord
	Model   CorrectionModel
	Summary RunSummary
}

// CatalogConfig controls catalog construction.
type CatalogConfig struct {
	Quantiles []float64 // Target quantile levels (default 0.25, 0.5, 0.75)
	Simulator SimulatorConfig
	Workers   int // Concurrent networks (0 = unbounded)

	// RunSimulation selects between simulating (and storing to Cache when
	// present) and loading previously stored samples from Cache.
	RunSimulation bool
	Cache         *SampleCache

	Logger *slog.Logger
}

// DefaultCatalogConfig returns the standard pipeline configuration.
func DefaultCatalogConfig() CatalogConfig {
	return CatalogConfig{
		Quantiles:     []float64{0.25, 0.5, 0.75},
		Simulator:     DefaultSimulatorConfig(),
		Workers:       0,
		RunSimulation: true,
	}
}

// BuildCatalog runs the full two-phase pipeline over a set of networks.
//
// Phase 1 computes every per-network quantity independently: degree
// statistics, dispersion, fragility per quantile, robustness samples and
// their quantiles. Networks run concurrently (bounded by cfg.Workers); each
// record is completed on one worker and then merged, so the phase needs no
// locking. Cancellation is honored between networks.
//
// Phase 2 starts only after every network has finished: for each quantile
// level the dispersion correction is fitted once across the whole catalog
// and the fitted slope is broadcast back into every record as corrected
// fragility.
//
// Degenerate networks (single trait row, constant row sums, undefined
// connectance or dispersion) are filtered with a reason rather than
// aborting the run; non-domain failures are likewise fatal only for their
// own network. An unfittable correction (fewer than 2 usable networks) is
// fatal to the whole run.
func BuildCatalog(ctx context.Context, networks []Network, cfg CatalogConfig) (*Catalog, error) {
	if len(cfg.Quantiles) == 0 {
		return nil, fmt.Errorf("no quantile levels configured: %w", ErrInvalidInput)
	}
	for _, c := range cfg.Quantiles {
		if c <= 0 || c >= 1 {
			return nil, fmt.Errorf("quantile level %v outside (0,1): %w", c, ErrInvalidInput)
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	summary := RunSummary{}

	// Structural policy filters, applied before any computation.
	eligible := make([]Network, 0, len(networks))
	for _, nw := range networks {
		switch {
		case nw.Matrix == nil:
			summary.Failed = append(summary.Failed, NetworkIssue{nw.ID, "no matrix loaded"})
		case nw.Matrix.N() == 1:
			summary.Filtered = append(summary.Filtered, NetworkIssue{nw.ID, "single-trait network (N=1)"})
		case RowSumStats(nw.Matrix).Variance == 0:
			summary.Filtered = append(summary.Filtered, NetworkIssue{nw.ID, "zero row-sum variance"})
		default:
			eligible = append(eligible, nw)
		}
	}

	// When reusing cached samples, the cache must cover every eligible
	// network at the configured trial count before phase 1 starts.
	var cached map[string][]float64
	if !cfg.RunSimulation {
		if cfg.Cache == nil {
			return nil, fmt.Errorf("simulation disabled but no cache configured: %w", ErrCacheMismatch)
		}
		ids := make([]string, len(eligible))
		for i, nw := range eligible {
			ids[i] = nw.ID
		}
		var err error
		cached, err = cfg.Cache.LoadAll(ids, cfg.Simulator.Trials)
		if err != nil {
			return nil, err
		}
	}

	// Phase 1: independent per-network computation.
	type outcome struct {
		record *NetworkRecord
		issue  *NetworkIssue
		domain bool
	}

	results := make(chan outcome, len(eligible))
	g, gctx := errgroup.WithContext(ctx)
	if cfg.Workers > 0 {
		g.SetLimit(cfg.Workers)
	}

	for _, nw := range eligible {
		nw := nw
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := buildRecord(gctx, nw, cfg, cached[nw.ID])
			switch {
			case err == nil:
				results <- outcome{record: rec}
			case errors.Is(err, ErrDomain):
				logger.Warn("network filtered", "id", nw.ID, "reason", err.Error())
				results <- outcome{issue: &NetworkIssue{nw.ID, err.Error()}, domain: true}
			case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
				return err
			default:
				logger.Warn("network failed", "id", nw.ID, "error", err.Error())
				results <- outcome{issue: &NetworkIssue{nw.ID, err.Error()}}
			}
			return nil
		})
	}

	// Barrier: the correction fit must not observe a partial catalog.
	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(results)

	records := make([]*NetworkRecord, 0, len(eligible))
	for out := range results {
		switch {
		case out.record != nil:
			records = append(records, out.record)
		case out.domain:
			summary.Filtered = append(summary.Filtered, *out.issue)
		default:
			summary.Failed = append(summary.Failed, *out.issue)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	summary.Processed = len(records)

	// Phase 2: one fit per quantile level over the full catalog, then
	// broadcast the fitted slope into every record.
	model := CorrectionModel{Fits: make(map[float64]CorrectionFit, len(cfg.Quantiles))}
	for _, c := range cfg.Quantiles {
		var fs, rs, ds []float64
		for _, rec := range records {
			f := rec.Fragility[c]
			switch {
			case !rec.HasDispersion || rec.Dispersion <= 0:
				rec.flag(fmt.Sprintf("excluded from fit at c=%g: no dispersion signal", c))
			case f <= 0 || f >= 1:
				rec.flag(fmt.Sprintf("excluded from fit at c=%g: fragility %g outside (0,1)", c, f))
			default:
				fs = append(fs, f)
				rs = append(rs, rec.Robustness[c])
				ds = append(ds, rec.Dispersion)
			}
		}

		fit, err := FitCorrection(fs, rs, ds)
		if err != nil {
			return nil, fmt.Errorf("correction fit at c=%g: %w", c, err)
		}
		model.Fits[c] = fit

		for _, rec := range records {
			rec.Corrected[c] = CorrectedFragility(rec.Fragility[c], fit.Lambda)
		}

		logger.Info("correction fitted",
			"c", c, "lambda", fit.Lambda, "r2", fit.RSquared, "networks", fit.Networks)
	}

	logger.Info("catalog complete",
		"processed", summary.Processed,
		"filtered", len(summary.Filtered),
		"failed", len(summary.Failed))

	return &Catalog{Records: records, Model: model, Summary: summary}, nil
}

// buildRecord computes every phase-1 quantity for one network. A returned
// error wrapping ErrDomain means the network is filtered, anything else
// that it failed.
func buildRecord(ctx context.Context, nw Network, cfg CatalogConfig, cachedSamples []float64) (*NetworkRecord, error) {
	m := nw.Matrix
	stats := RowSumStats(m)

	rec := &NetworkRecord{
		ID:          nw.ID,
		Type:        nw.Type,
		S:           m.S(),
		N:           m.N(),
		Links:       m.Links(),
		Connectance: m.Connectance(),
		MinRowSum:   stats.Min,
		MeanRowSum:  stats.Mean,
		VarRowSum:   stats.Variance,
		Fragility:   make(map[float64]float64, len(cfg.Quantiles)),
		Robustness:  make(map[float64]float64, len(cfg.Quantiles)),
		Residual:    make(map[float64]float64, len(cfg.Quantiles)),
		Corrected:   make(map[float64]float64, len(cfg.Quantiles)),
	}

	d, err := Dispersion(m)
	if err != nil {
		return nil, fmt.Errorf("dispersion of %s: %w", nw.ID, err)
	}
	rec.Dispersion = d
	rec.HasDispersion = true

	for _, c := range cfg.Quantiles {
		f, err := Fragility(m, c)
		if err != nil {
			return nil, fmt.Errorf("fragility of %s at c=%g: %w", nw.ID, c, err)
		}
		rec.Fragility[c] = f
	}

	samples := cachedSamples
	if cfg.RunSimulation {
		samples, err = SampleRobustness(ctx, m, cfg.Simulator)
		if err != nil {
			return nil, fmt.Errorf("simulation of %s: %w", nw.ID, err)
		}
		if cfg.Cache != nil {
			if err := cfg.Cache.Put(nw.ID, samples); err != nil {
				return nil, fmt.Errorf("caching samples of %s: %w", nw.ID, err)
			}
		}
	}
	rec.Samples = samples

	summary := Summarize(samples, cfg.Quantiles)
	for _, c := range cfg.Quantiles {
		rec.Robustness[c] = summary.Quantiles[c]
		rec.Residual[c] = rec.Robustness[c] - (1 - rec.Fragility[c])
	}

	return rec, nil
}

func (r *NetworkRecord) flag(reason string) {
	r.Flags = append(r.Flags, reason)
}
