package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountTable(t *testing.T) {
	business := BusinessConfig{
		CollectionWeeks: 12,
		WeeksPerTier:    4,
		TierAmounts:     "1100,1080,1070",
	}

	table, err := business.AmountTable()

	assert.NoError(t, err)
	assert.Len(t, table, 12)
	assert.Equal(t, []int64{1100, 1100, 1100, 1100, 1080, 1080, 1080, 1080, 1070, 1070, 1070, 1070}, table)
}

func TestAmountTable_NotDecreasing(t *testing.T) {
	business := BusinessConfig{
		CollectionWeeks: 12,
		WeeksPerTier:    4,
		TierAmounts:     "1070,1080,1100",
	}

	_, err := business.AmountTable()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "strictly decreasing")
}

func TestAmountTable_CoverageMismatch(t *testing.T) {
	business := BusinessConfig{
		CollectionWeeks: 10,
		WeeksPerTier:    4,
		TierAmounts:     "1100,1080,1070",
	}

	_, err := business.AmountTable()

	assert.Error(t, err)
}

func TestAmountTable_BadEntries(t *testing.T) {
	tests := []struct {
		name    string
		amounts string
	}{
		{"non numeric", "1100,abc,1070"},
		{"zero amount", "1100,1080,0"},
		{"negative amount", "1100,1080,-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			business := BusinessConfig{
				CollectionWeeks: 12,
				WeeksPerTier:    4,
				TierAmounts:     tt.amounts,
			}

			_, err := business.AmountTable()
			assert.Error(t, err)
		})
	}
}
