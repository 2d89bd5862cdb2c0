package pipeline

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/econdex-org/econdex/country"
	"github.com/econdex-org/econdex/interp"
	"github.com/econdex-org/econdex/source"
	"github.com/econdex-org/econdex/table"
)

// ============================================================================
// AI USERS — Country-level AI usage table
// ============================================================================
// Combines measured Claude usage with estimated ChatGPT usage:
//
//   1. Claude users and GDP per working-age capita from the AEI table.
//   2. Internet users per country from the 2024 Findex survey.
//   3. ChatGPT weekly-active-user share estimated from the GDP →
//      WAU-share reference curve for the configured time period.
//
// Output columns: iso3, country_name, claude_users, chatgpt_users,
// total_ai_users, pop_adult, internet_users, ai_users_per_capita,
// ai_users_per_internet — filtered to total_ai_users > 0.
// ============================================================================

var aiUsersColumns = []string{
	"iso3", "country_name", "claude_users", "chatgpt_users",
	"total_ai_users", "pop_adult", "internet_users",
	"ai_users_per_capita", "ai_users_per_internet",
}

// AIUsers loads the three sources and produces the combined table.
func (p *Pipeline) AIUsers() (*table.Table, error) {
	aei, err := p.load(source.SourceAEI)
	if err != nil {
		return nil, err
	}
	findex, err := p.load(source.SourceFindex)
	if err != nil {
		return nil, err
	}
	wau, err := p.load(source.SourceWAUCurve)
	if err != nil {
		return nil, err
	}

	claude := claudeUsers(aei)
	gdp := gdpPerCapita(aei)
	p.logger.Info("extracted AEI facets",
		zap.Int("claude_countries", claude.Len()),
		zap.Int("gdp_countries", gdp.Len()))

	curve, err := wauCurve(wau, p.cfg.TimePeriod)
	if err != nil {
		return nil, err
	}

	chatgpt, err := estimateChatGPTUsers(gdp, findex, curve)
	if err != nil {
		return nil, err
	}

	return p.combine(claude, chatgpt)
}

// WAUShare evaluates the configured period's reference curve at a
// GDP per capita given in thousands of USD.
func (p *Pipeline) WAUShare(gdpK float64) (float64, error) {
	wau, err := p.load(source.SourceWAUCurve)
	if err != nil {
		return 0, err
	}
	curve, err := wauCurve(wau, p.cfg.TimePeriod)
	if err != nil {
		return 0, err
	}
	return curve.Estimate(gdpK), nil
}

// claudeUsers extracts measured usage counts per country. geo_id in
// the AEI release is already an ISO-3 code.
func claudeUsers(aei *table.Table) *table.Table {
	return aei.
		Filter(func(r table.Row) bool {
			return r.Get("facet").Equal(table.String("country")) &&
				r.Get("variable").Equal(table.String("usage_count")) &&
				!r.Get("geo_name").Equal(table.String("not_classified"))
		}).
		Select("geo_id", "geo_name", "value").
		Rename(map[string]string{
			"geo_id":   "iso3",
			"geo_name": "country_name",
			"value":    "claude_users",
		}).
		WithName("claude_users")
}

// gdpPerCapita extracts GDP per working-age capita per country.
func gdpPerCapita(aei *table.Table) *table.Table {
	return aei.
		Filter(func(r table.Row) bool {
			return r.Get("facet").Equal(table.String("country")) &&
				r.Get("variable").Equal(table.String("gdp_per_working_age_capita")) &&
				!r.Get("geo_name").Equal(table.String("not_classified"))
		}).
		Select("geo_id", "value").
		Rename(map[string]string{
			"geo_id": "iso3",
			"value":  "gdp_per_capita",
		}).
		WithName("gdp_per_capita")
}

// wauCurve selects one time period's reference curve. A period with
// no rows yields an empty curve, which estimates 0 for every input —
// the documented permissive default.
func wauCurve(wau *table.Table, timePeriod string) (interp.Curve, error) {
	period := wau.Filter(func(r table.Row) bool {
		return r.Get("time_period").Equal(table.String(timePeriod))
	})
	return interp.FromTable(period,
		"gdp_per_capita_thousands_usd", "median_wau_share_internet_users")
}

// estimateChatGPTUsers estimates ChatGPT users per country from the
// 2024 Findex internet-access survey and the GDP reference curve.
func estimateChatGPTUsers(gdp, findex *table.Table, curve interp.Curve) (*table.Table, error) {
	findex2024 := findex.
		Filter(func(r table.Row) bool {
			return r.Get("year").Equal(table.Number(2024)) &&
				r.Get("group").Equal(table.String("all")) &&
				!r.Get("internet").IsNull()
		}).
		Select("codewb", "countrynewwb", "pop_adult", "internet").
		Rename(map[string]string{
			"codewb":       "iso3",
			"countrynewwb": "country_name_findex",
		}).
		Derive(table.Product("internet_users", "pop_adult", "internet")).
		WithName("findex_2024")

	merged, err := table.Join(findex2024, gdp, table.On("iso3"), table.JoinInner)
	if err != nil {
		return nil, fmt.Errorf("join findex with gdp: %w", err)
	}

	merged = merged.Derive(
		table.Scale("gdp_k", "gdp_per_capita", 1.0/1000),
		table.Map("wau_share", "gdp_k", curve.Estimate),
		table.Product("chatgpt_users", "internet_users", "wau_share"),
	)

	return merged.
		Select("iso3", "country_name_findex", "pop_adult", "internet_users", "chatgpt_users").
		WithName("chatgpt_users"), nil
}

// combine outer-joins measured and estimated users, fills the
// documented zero defaults, derives the ratio metrics, and applies
// the edge filters.
func (p *Pipeline) combine(claude, chatgpt *table.Table) (*table.Table, error) {
	combined, err := table.Join(claude, chatgpt, table.On("iso3"), table.JoinOuter)
	if err != nil {
		return nil, fmt.Errorf("join claude with chatgpt: %w", err)
	}

	// Zero-fill is explicit, after the join: a country present on one
	// side only has genuinely zero users on the other.
	combined = combined.
		FillNull("claude_users", table.Number(0)).
		FillNull("chatgpt_users", table.Number(0)).
		FillNullFrom("country_name", "country_name_findex")

	combined = combined.Derive(
		table.Sum("total_ai_users", "claude_users", "chatgpt_users"),
		table.Ratio("ai_users_per_capita", "total_ai_users", "pop_adult"),
		table.Ratio("ai_users_per_internet", "total_ai_users", "internet_users"),
	)

	result := combined.
		Select(aiUsersColumns...).
		Filter(func(r table.Row) bool {
			total, ok := r.Get("total_ai_users").Float()
			return ok && total > 0
		})

	// Country-code validation happens only here, at the edge. Rows
	// with a code outside the known ISO-3 set are dropped, each with
	// a diagnostic, so the exclusion leaves a trail.
	dropped := 0
	result = result.Filter(func(r table.Row) bool {
		code := r.Get("iso3").Str()
		if country.KnownISO3(code) {
			return true
		}
		dropped++
		p.logger.Warn("dropping row with unmapped country code",
			zap.String("iso3", code),
			zap.String("country_name", r.Get("country_name").Str()))
		return false
	})

	p.logger.Info("combined AI users table",
		zap.Int("countries", result.Len()),
		zap.Int("dropped_unmapped", dropped))

	return result.WithName("ai_users"), nil
}
