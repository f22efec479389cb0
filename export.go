package ecoweb

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// WriteCSV writes the finalized catalog as one row per network. Per-quantile
// columns (fragility, robustness, residual, corrected fragility, lambda) are
// emitted for each fitted level in ascending order. The lambda value is
// repeated on every row since the model is global.
func WriteCSV(w io.Writer, cat *Catalog) error {
	levels := make([]float64, 0, len(cat.Model.Fits))
	for c := range cat.Model.Fits {
		levels = append(levels, c)
	}
	sort.Float64s(levels)

	header := []string{
		"id", "type", "s", "n", "links", "connectance",
		"min_row_sum", "mean_row_sum", "var_row_sum", "dispersion",
	}
	for _, c := range levels {
		suffix := trimFloat(c)
		header = append(header,
			"fragility_"+suffix,
			"robustness_"+suffix,
			"residual_"+suffix,
			"fstar_"+suffix,
			"lambda_"+suffix,
		)
	}
	header = append(header, "flags")

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, rec := range cat.Records {
		row := []string{
			rec.ID,
			string(rec.Type),
			strconv.Itoa(rec.S),
			strconv.Itoa(rec.N),
			strconv.Itoa(rec.Links),
			formatFloat(rec.Connectance),
			formatFloat(rec.MinRowSum),
			formatFloat(rec.MeanRowSum),
			formatFloat(rec.VarRowSum),
			formatFloat(rec.Dispersion),
		}
		for _, c := range levels {
			row = append(row,
				formatFloat(rec.Fragility[c]),
				formatFloat(rec.Robustness[c]),
				formatFloat(rec.Residual[c]),
				formatFloat(rec.Corrected[c]),
				formatFloat(cat.Model.Fits[c].Lambda),
			)
		}
		row = append(row, strings.Join(rec.Flags, "; "))

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row for %s: %w", rec.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 10, 64)
}

// trimFloat renders a quantile level as a compact column suffix: 0.25 -> "025".
func trimFloat(c float64) string {
	s := strconv.FormatFloat(c, 'g', -1, 64)
	return strings.ReplaceAll(strings.TrimPrefix(s, "0"), ".", "0")
}
