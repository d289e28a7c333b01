package analytics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-clinic-analytics/internal/domain/clinic"
)

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cases := map[string]func(c *Config){
		"max below default": func(c *Config) { c.MaxDays = c.DefaultDays - 1 },
		"zero max days":     func(c *Config) { c.MaxDays = 0 },
		"missing category":  func(c *Config) { delete(c.ProcedurePrices, clinic.CategoryExam) },
		"negative price":    func(c *Config) { c.ProcedurePrices[clinic.CategoryOther] = decimal.NewFromInt(-1) },
		"medium above high": func(c *Config) { c.MediumValueMin = c.HighValueMin + 1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := DefaultConfig()
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
