package voyage

import dErrors "fueleu/pkg/domain-errors"

// Compare ranks candidates against the baseline by relative GHG intensity.
// A candidate is compliant exactly when its intensity is no worse than the
// baseline's. Output order matches input order; the caller is responsible
// for excluding the baseline itself from candidates.
func Compare(baseline Record, candidates []Record) ([]ComparisonRow, error) {
	if baseline.GHGIntensity == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidBaseline, "baseline has zero GHG intensity")
	}

	rows := make([]ComparisonRow, 0, len(candidates))
	for _, c := range candidates {
		percentDiff := (c.GHGIntensity/baseline.GHGIntensity - 1) * 100
		rows = append(rows, ComparisonRow{
			ID:                  c.ID,
			BaselineIntensity:   baseline.GHGIntensity,
			ComparisonIntensity: c.GHGIntensity,
			PercentDiff:         percentDiff,
			Compliant:           percentDiff <= 0,
		})
	}
	return rows, nil
}
