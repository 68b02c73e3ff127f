package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjust(t *testing.T) {
	markers := []string{"OPS", "IVG"}

	tests := []struct {
		name         string
		record       Record
		wantAdjusted bool
	}{
		{
			name:         "ops prefix",
			record:       Record{Vendor: "OPS-1", Revenue: 10, Cost: 5, Profit: 5},
			wantAdjusted: true,
		},
		{
			name:         "ivg embedded",
			record:       Record{Vendor: "Carrier-IVG-East", Revenue: 7, Cost: 3, Profit: 4},
			wantAdjusted: true,
		},
		{
			name:         "lowercase ops still matches",
			record:       Record{Vendor: "ops wholesale", Revenue: 9, Cost: 2, Profit: 7},
			wantAdjusted: true,
		},
		{
			name:         "mixed case ivg still matches",
			record:       Record{Vendor: "Ivg Telecom", Revenue: 4, Cost: 1, Profit: 3},
			wantAdjusted: true,
		},
		{
			name:         "plain vendor untouched",
			record:       Record{Vendor: "Acme", Revenue: 20, Cost: 8, Profit: 12},
			wantAdjusted: false,
		},
		{
			name:         "op prefix alone does not match",
			record:       Record{Vendor: "Opal Networks", Revenue: 5, Cost: 2, Profit: 3},
			wantAdjusted: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Adjust([]Record{tt.record}, markers)
			require.Len(t, got, 1)

			r := got[0]
			assert.Equal(t, tt.wantAdjusted, r.Adjusted)
			assert.Equal(t, tt.record.Revenue, r.Revenue, "revenue must always be preserved")
			if tt.wantAdjusted {
				assert.Zero(t, r.Cost)
				assert.Zero(t, r.Profit)
			} else {
				assert.Equal(t, tt.record.Cost, r.Cost)
				assert.Equal(t, tt.record.Profit, r.Profit)
			}
		})
	}
}

func TestAdjustDoesNotMutateInput(t *testing.T) {
	in := []Record{{Vendor: "OPS-1", Revenue: 10, Cost: 5, Profit: 5}}

	_ = Adjust(in, []string{"OPS"})

	assert.Equal(t, 5.0, in[0].Cost)
	assert.False(t, in[0].Adjusted)
}

func TestAdjustPreservesLengthAndOrder(t *testing.T) {
	in := []Record{
		{Vendor: "Acme", Destination: "US"},
		{Vendor: "OPS-1", Destination: "UK"},
		{Vendor: "Beta", Destination: "DE"},
	}

	got := Adjust(in, []string{"OPS", "IVG"})
	require.Len(t, got, 3)
	assert.Equal(t, "Acme", got[0].Vendor)
	assert.Equal(t, "OPS-1", got[1].Vendor)
	assert.Equal(t, "Beta", got[2].Vendor)
}
