package calculation

import (
	"errors"
	"testing"

	"github.com/meicalc/meicalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	engine := NewEngine(testTables())

	assert.NotNil(t, engine.Tables, "Should keep tables")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should default to no-op logger")
}

func TestEngine_SetLogger(t *testing.T) {
	engine := NewEngine(testTables())

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	engine.SetLogger(nil)
	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestEngine_ComputeFixedDue(t *testing.T) {
	engine := NewEngine(testTables())

	tests := []struct {
		name       string
		activity   domain.ActivityType
		year       int
		wantTotal  string
		wantSource int
	}{
		{"commerce current year", domain.ActivityCommerce, 2025, "76.90", 2025},
		{"services previous year", domain.ActivityServices, 2024, "75.60", 2024},
		{"mixed pays both taxes", domain.ActivityMixed, 2025, "81.90", 2025},
		{"trucker higher pension", domain.ActivityTrucker, 2025, "183.16", 2025},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			due, err := engine.ComputeFixedDue(tt.activity, tt.year)
			require.NoError(t, err)
			assertDecimal(t, tt.wantTotal, due.Total)
			assert.Equal(t, tt.wantSource, due.SourceYear)
			assert.False(t, due.IsReferenceValue())
			assert.True(t, due.Total.Equal(due.Components.Total()))
		})
	}
}

func TestEngine_ComputeFixedDue_FallsBackToLatestYear(t *testing.T) {
	engine := NewEngine(testTables())
	logger := &TestLogger{}
	engine.SetLogger(logger)

	due, err := engine.ComputeFixedDue(domain.ActivityCommerce, 2030)
	require.NoError(t, err)

	assert.Equal(t, 2030, due.RequestedYear)
	assert.Equal(t, 2025, due.SourceYear)
	assert.True(t, due.IsReferenceValue())
	assertDecimal(t, "76.90", due.Total)
	assertDecimal(t, "922.80", due.Annual())
	require.Len(t, logger.messages, 1)
	assert.Contains(t, logger.messages[0], "WARN: fixed due for %d not published")
}

func TestEngine_ComputeFixedDue_UnknownActivity(t *testing.T) {
	_, err := NewEngine(testTables()).ComputeFixedDue(domain.ActivityType("farming"), 2025)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidActivity))
	assert.True(t, domain.IsValidationError(err))
}

func TestEngine_SimplesTax(t *testing.T) {
	engine := NewEngine(testTables())

	res, tableYear, err := engine.SimplesTax(d("100000"), domain.ActivityServices, 2025)
	require.NoError(t, err)
	assert.Equal(t, 2018, tableYear)
	assertDecimal(t, "6000.00", res.Tax)

	_, _, err = engine.SimplesTax(d("100000"), domain.ActivityType("x"), 2025)
	assert.True(t, errors.Is(err, domain.ErrInvalidActivity))
}

func TestEngine_PresumedProfitTax(t *testing.T) {
	engine := NewEngine(testTables())

	tax, err := engine.PresumedProfitTax(d("81000"), domain.ActivityCommerce)
	require.NoError(t, err)
	// IRPJ 972 + CSLL 874.80 + PIS 526.50 + COFINS 2430
	assertDecimal(t, "4803.30", tax)

	// services base 320 000 crosses the 240 000 surcharge threshold
	tax, err = engine.PresumedProfitTax(d("1000000"), domain.ActivityServices)
	require.NoError(t, err)
	assertDecimal(t, "171300.00", tax)

	_, err = engine.PresumedProfitTax(d("-1"), domain.ActivityCommerce)
	assert.True(t, errors.Is(err, domain.ErrInvalidRevenue))
}

func TestEngine_CapStatusFor_UsesActivityCap(t *testing.T) {
	engine := NewEngine(testTables())
	records := []domain.RevenueRecord{{Month: 1, Year: 2025, Amount: d("25160")}}

	status, err := engine.CapStatusFor(domain.ActivityTrucker, records)
	require.NoError(t, err)
	assertDecimal(t, "251600.00", status.Cap)
	assertDecimal(t, "10.00", status.PercentOfCap)

	status, err = engine.CapStatusFor(domain.ActivityCommerce, records)
	require.NoError(t, err)
	assertDecimal(t, "81000.00", status.Cap)

	_, err = engine.CapStatusFor(domain.ActivityType(""), records)
	assert.True(t, errors.Is(err, domain.ErrInvalidActivity))
}
