package provider

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/billing-estimator/internal/model"
)

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(42, 7))
}

func TestNearby_Count(t *testing.T) {
	t.Parallel()
	d := NewDirectory(seeded(), 0)

	assert.Len(t, d.Nearby(3), 3)
	assert.Len(t, d.Nearby(0), d.Len())
	assert.Len(t, d.Nearby(100), d.Len())
}

func TestNearby_PerturbationBounded(t *testing.T) {
	t.Parallel()
	d := NewDirectory(seeded(), 1.5)

	base := make(map[string]float64, len(sampleProviders))
	for _, p := range sampleProviders {
		base[p.NPI] = p.SuccessRatio
	}

	for range 50 {
		for _, p := range d.Nearby(0) {
			orig, ok := base[p.NPI]
			require.True(t, ok, "unexpected provider %s", p.NPI)
			assert.InDelta(t, orig, p.SuccessRatio, 1.5+0.05)
		}
	}
}

func TestNearby_ClampsToPercentRange(t *testing.T) {
	t.Parallel()
	d := NewDirectoryWith([]model.Provider{
		{NPI: "1", SuccessRatio: 99.9},
		{NPI: "2", SuccessRatio: 0.1},
	}, seeded(), 5)

	for range 50 {
		for _, p := range d.Nearby(0) {
			assert.GreaterOrEqual(t, p.SuccessRatio, 0.0)
			assert.LessOrEqual(t, p.SuccessRatio, 100.0)
		}
	}
}

func TestNearby_DoesNotMutateDirectory(t *testing.T) {
	t.Parallel()
	d := NewDirectory(seeded(), 0)
	_ = d.Nearby(0)

	assert.Equal(t, sampleProviders, d.providers)
}

func TestNearby_DeterministicWithSeed(t *testing.T) {
	t.Parallel()
	a := NewDirectory(seeded(), 0).Nearby(4)
	b := NewDirectory(seeded(), 0).Nearby(4)
	assert.Equal(t, a, b)
}
