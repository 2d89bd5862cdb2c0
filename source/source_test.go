package source

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/econdex-org/econdex/table"
)

// ============================================================================
// PARSE TESTS
// ============================================================================

var findexCSV = []byte(`codewb,countrynewwb,year,group,pop_adult,internet
USA,United States,2024,all,258000000,0.93
FRA,France,2024,all,52000000,0.89
DEU,Germany,2024,all,,0.91
`)

// World Bank indicator export with its 4-row preamble.
var worldBankCSV = []byte(`"Data Source","World Development Indicators",
"Last Updated Date","2025-01-28",

"extra preamble line",
Country Name,Country Code,Indicator Name,Indicator Code,2020,2021
France,FRA,Labor force participation,SL.TLF.CACT.FE.ZS,50.1,50.9
Germany,DEU,Labor force participation,SL.TLF.CACT.FE.ZS,55.2,
`)

func TestParseTypesCells(t *testing.T) {
	tbl, err := Parse("findex", findexCSV, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"codewb", "countrynewwb", "year", "group", "pop_adult", "internet"}, tbl.Columns())
	require.Equal(t, 3, tbl.Len())

	assert.Equal(t, table.KindString, tbl.Value(0, "codewb").Kind())
	assert.True(t, tbl.Value(0, "year").Equal(table.Number(2024)))
	assert.True(t, tbl.Value(0, "internet").Equal(table.Number(0.93)))
	assert.True(t, tbl.Value(2, "pop_adult").IsNull(), "empty cell reads as null")
}

func TestParseSkipRowsAndSnakeCase(t *testing.T) {
	tbl, err := Parse("flfp", worldBankCSV, 4)
	require.NoError(t, err)

	cols := tbl.Columns()
	assert.Contains(t, cols, "country_name")
	assert.Contains(t, cols, "country_code")
	assert.Contains(t, cols, "indicator_code")
	assert.Contains(t, cols, "2020", "year columns pass through snake-casing unchanged")

	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, "FRA", tbl.Value(0, "country_code").Str())
	assert.True(t, tbl.Value(0, "2020").Equal(table.Number(50.1)))
	assert.True(t, tbl.Value(1, "2021").IsNull())
}

func TestParseNAMarkers(t *testing.T) {
	data := []byte("a,b,c,d\nN/A,null,NA,n/a\n")
	tbl, err := Parse("t", data, 0)
	require.NoError(t, err)
	for _, c := range []string{"a", "b", "c", "d"} {
		assert.True(t, tbl.Value(0, c).IsNull(), "column %s", c)
	}
}

func TestParseUnnamedColumnKeepsAlignment(t *testing.T) {
	data := []byte("iso3,,pop_adult,internet\nUSA,junk,258000000,0.9\n")
	tbl, err := Parse("findex", data, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"iso3", "pop_adult", "internet"}, tbl.Columns())
	require.Equal(t, 1, tbl.Len())
	assert.True(t, tbl.Value(0, "pop_adult").Equal(table.Number(258000000)),
		"columns after an unnamed one must keep their own cells")
	assert.True(t, tbl.Value(0, "internet").Equal(table.Number(0.9)))
}

func TestParseMalformedRecordIsParseError(t *testing.T) {
	data := []byte("a,b\n\"unterminated,1\n")
	_, err := Parse("bad", data, 0)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "bad", perr.Source)
	assert.NotNil(t, perr.Err, "carries the csv reader's cause")
}

func TestParseNoHeaderIsParseError(t *testing.T) {
	_, err := Parse("empty", nil, 0)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "empty", perr.Source)
}

func TestParseSkipBeyondEOF(t *testing.T) {
	_, err := Parse("short", []byte("only,one,row\n"), 5)
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}

// ============================================================================
// LOADER TESTS
// ============================================================================

func TestLoadRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(findexCSV)
	}))
	defer srv.Close()

	loader := NewLoader()
	tbl, err := loader.Load(Source{
		Name:   "findex",
		URL:    srv.URL,
		Expect: []string{"codewb", "pop_adult"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Len())
}

func TestLoadHTTPStatusIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	loader := NewLoader()
	_, err := loader.Load(Source{Name: "findex", URL: srv.URL})

	var ferr *FetchError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, http.StatusNotFound, ferr.StatusCode)
	assert.Equal(t, "findex", ferr.Source)
}

func TestLoadTimeoutIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	loader := NewLoader(WithTimeout(20 * time.Millisecond))
	_, err := loader.Load(Source{Name: "slow", URL: srv.URL})

	var ferr *FetchError
	require.ErrorAs(t, err, &ferr)
	assert.NotNil(t, ferr.Err, "timeout carries the transport error, not a status code")
}

func TestLoadLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wau.csv")
	require.NoError(t, os.WriteFile(path, []byte("time_period,gdp,share\nMay 2025,10,0.1\n"), 0o644))

	loader := NewLoader()
	tbl, err := loader.Load(Source{Name: "wau", Path: path})
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Len())
}

func TestLoadMissingFileIsFetchError(t *testing.T) {
	loader := NewLoader()
	_, err := loader.Load(Source{Name: "wau", Path: "/nonexistent/wau.csv"})

	var ferr *FetchError
	assert.ErrorAs(t, err, &ferr)
}

func TestLoadMissingExpectedColumnIsParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(findexCSV)
	}))
	defer srv.Close()

	loader := NewLoader()
	_, err := loader.Load(Source{
		Name:   "findex",
		URL:    srv.URL,
		Expect: []string{"codewb", "definitely_missing"},
	})

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Reason, "definitely_missing")
}

func TestLoadNoLocationIsFetchError(t *testing.T) {
	loader := NewLoader()
	_, err := loader.Load(Source{Name: "nowhere"})
	var ferr *FetchError
	assert.ErrorAs(t, err, &ferr)
	assert.False(t, errors.Is(err, os.ErrNotExist))
}

// ============================================================================
// CONFIG TESTS
// ============================================================================

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "May 2025", cfg.TimePeriod)
	assert.Equal(t, DefaultTimeout, cfg.Timeout())

	src, err := cfg.Get(SourceAEI)
	require.NoError(t, err)
	assert.Equal(t, SourceAEI, src.Name)
	assert.NotEmpty(t, src.URL)

	_, err = cfg.Get("unknown")
	assert.Error(t, err)
}

func TestConfigSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")

	cfg := DefaultConfig()
	cfg.TimePeriod = "Dec 2024"
	cfg.TimeoutSeconds = 30
	cfg.Sources["wau_curve"] = Source{Path: "/tmp/custom.csv"}

	require.NoError(t, cfg.Save(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Dec 2024", loaded.TimePeriod)
	assert.Equal(t, 30*time.Second, loaded.Timeout())

	src, err := loaded.Get("wau_curve")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.csv", src.Path)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/sources.yaml")
	assert.Error(t, err)
}
