package pipeline

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/econdex-org/econdex/source"
	"github.com/econdex-org/econdex/stats"
	"github.com/econdex-org/econdex/table"
)

// ============================================================================
// LABOR PANEL — Public-sector employment vs female labor outcomes
// ============================================================================
// Melts three wide-format World Bank panels into long (country, year,
// value) rows, inner-joins them on country code + year, and reports
// the correlations behind the crowding-out / crowding-in hypotheses:
//
//   crowding out — public-sector share vs female unemployment
//   crowding in  — public-sector share vs female labor force
//                  participation
// ============================================================================

// PublicSectorIndicator is the WWBI code for public-sector employment
// as a share of total employment.
const PublicSectorIndicator = "BI.EMP.TOTL.PB.ZS"

// LaborResult holds the merged panel and its headline statistics.
type LaborResult struct {
	// Panel has columns country_code, country_name, year,
	// public_sector_share, flfp, female_unemployment.
	Panel *table.Table

	Observations int
	Countries    int

	// CrowdingOut is corr(public_sector_share, female_unemployment);
	// CrowdingOutSlope the fitted trend-line slope.
	CrowdingOut      float64
	CrowdingOutSlope float64

	// CrowdingIn is corr(public_sector_share, flfp).
	CrowdingIn float64
}

// LaborPanel runs the three-way country+year merge and correlation
// analysis.
func (p *Pipeline) LaborPanel() (*LaborResult, error) {
	publicSector, err := p.loadLongPanel(source.SourceWWBI, "public_sector_share",
		func(r table.Row) bool {
			return r.Get("indicator_code").Equal(table.String(PublicSectorIndicator))
		})
	if err != nil {
		return nil, err
	}

	flfp, err := p.loadLongPanel(source.SourceFLFP, "flfp", nil)
	if err != nil {
		return nil, err
	}

	unemployment, err := p.loadLongPanel(source.SourceUnemployment, "female_unemployment", nil)
	if err != nil {
		return nil, err
	}

	// Key sets are identical across stages, so the merge order does
	// not change the final row set.
	merged, err := table.Join(publicSector,
		flfp.Select("country_code", "year", "flfp"),
		table.On("country_code", "year"), table.JoinInner)
	if err != nil {
		return nil, fmt.Errorf("join public sector with flfp: %w", err)
	}
	merged, err = table.Join(merged,
		unemployment.Select("country_code", "year", "female_unemployment"),
		table.On("country_code", "year"), table.JoinInner)
	if err != nil {
		return nil, fmt.Errorf("join with unemployment: %w", err)
	}

	result := &LaborResult{
		Panel:        merged.WithName("labor_panel"),
		Observations: merged.Len(),
		Countries:    countDistinct(merged, "country_code"),
	}

	// Crowding out: does a large public sector raise female
	// unemployment?
	xs, ys := merged.PairedNumbers("public_sector_share", "female_unemployment")
	if result.CrowdingOut, err = stats.Pearson(xs, ys); err != nil {
		return nil, fmt.Errorf("crowding-out correlation: %w", err)
	}
	if result.CrowdingOutSlope, _, err = stats.LinearFit(xs, ys); err != nil {
		return nil, fmt.Errorf("crowding-out trend: %w", err)
	}

	// Crowding in: does it raise participation instead?
	xs, ys = merged.PairedNumbers("public_sector_share", "flfp")
	if result.CrowdingIn, err = stats.Pearson(xs, ys); err != nil {
		return nil, fmt.Errorf("crowding-in correlation: %w", err)
	}

	p.logger.Info("labor panel merged",
		zap.Int("observations", result.Observations),
		zap.Int("countries", result.Countries),
		zap.Float64("crowding_out_corr", result.CrowdingOut),
		zap.Float64("crowding_in_corr", result.CrowdingIn))

	return result, nil
}

// loadLongPanel loads a wide per-year panel, optionally filters its
// rows, and melts it to long format with the given value field.
func (p *Pipeline) loadLongPanel(name, valueField string, keep func(table.Row) bool) (*table.Table, error) {
	wide, err := p.load(name)
	if err != nil {
		return nil, err
	}
	if keep != nil {
		wide = wide.Filter(keep)
	}
	long := table.WideToLong(wide,
		[]string{"country_name", "country_code"}, "year", valueField)

	p.logger.Info("melted panel",
		zap.String("source", name),
		zap.Int("wide_rows", wide.Len()),
		zap.Int("long_rows", long.Len()))
	return long, nil
}

func countDistinct(t *table.Table, field string) int {
	seen := make(map[string]bool)
	for i := 0; i < t.Len(); i++ {
		v := t.Value(i, field)
		if v.IsNull() {
			continue
		}
		seen[v.Text()] = true
	}
	return len(seen)
}
