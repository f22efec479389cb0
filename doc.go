// Package ecoweb estimates the robustness of bipartite ecological
// interaction networks to random species loss and compares it against an
// analytical fragility measure with a fitted dispersion correction.
//
// # Overview
//
// A network is a binary species-by-trait association matrix: columns are
// species (the lower level, removed during simulated extinctions) and rows
// are traits (the upper level, "lost" when their row sum reaches zero).
//
// Three quantities are produced per network:
//
//   - Robustness R: simulation-based. Species columns are removed in a
//     uniformly random order until some trait loses every link; R is the
//     fraction removed at that point, estimated over many independent trials.
//   - Fragility f: analytical. A closed-form order-statistics approximation
//     under a binomial-link null model of the species fraction remaining
//     when the probability that some trait has collapsed reaches a target
//     quantile c, so that ideally R ≈ 1 - f.
//   - Dispersion d: the ratio of the observed row-sum variance to its
//     binomial null expectation, d = (var_r/mean_r) / (1-p).
//
// Real degree distributions are over- or underdispersed relative to the
// null, which biases f. The catalog fits a single global slope lambda per
// quantile,
//
//	(R_c - (1-f_c)) / (f_c*(1-f_c)) ≈ lambda * log10(d)
//
// by least squares through the origin across all networks, and broadcasts
// the corrected fragility f* = f*(1 + (1-f)*(-lambda)) back into every
// record.
//
// # Quick Start
//
//	networks, err := ecoweb.LoadDirectory("data/webs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	cfg := ecoweb.DefaultCatalogConfig()
//	cfg.Simulator.Trials = 1000
//	cfg.Simulator.Seed = 42
//
//	cat, err := ecoweb.BuildCatalog(ctx, networks, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	for c, fit := range cat.Model.Fits {
//		fmt.Printf("c=%.2f: lambda=%.4f (R²=%.3f, %d webs)\n",
//			c, fit.Lambda, fit.RSquared, fit.Networks)
//	}
//
// # Pipeline
//
// BuildCatalog runs in two phases with an explicit barrier between them.
// Phase 1 is data-parallel over networks: each worker computes one
// network's degree statistics, dispersion, fragility and robustness samples
// and hands back a completed record. Phase 2 fits the correction once per
// quantile over the assembled catalog. No fit can observe a partial
// catalog.
//
// Degenerate networks are filtered with a recorded reason instead of
// aborting the run: single-trait networks (N=1), constant row sums (no
// dispersion signal), and saturated or empty matrices (connectance 0 or 1).
// A correction fit with fewer than two usable networks is fatal.
//
// # Reproducibility
//
// Trial i of a simulation uses an RNG seeded with Seed+i, so a fixed
// nonzero seed yields an identical sample vector regardless of worker
// count. Expensive sample vectors can be persisted in a SQLite-backed
// SampleCache and reloaded on later runs instead of resimulating.
//
// # Testing
//
// Exported helpers validate simulation properties in consumer tests:
//
//	func TestMyWeb(t *testing.T) {
//		samples, _ := ecoweb.SampleRobustness(ctx, m, cfg)
//		ecoweb.AssertUnitInterval(t, samples)
//		ecoweb.AssertReproducible(t, m, cfg)
//	}
package ecoweb
