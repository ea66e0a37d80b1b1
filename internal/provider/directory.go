// Package provider serves the mock "nearby provider" benchmark entries shown
// next to an estimate. Entries are static sample data, not registry lookups.
package provider

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/sells-group/billing-estimator/internal/model"
)

// DefaultMaxOffset bounds the random perturbation applied to success ratios.
const DefaultMaxOffset = 2.0

// sampleProviders is the static mock directory.
var sampleProviders = []model.Provider{
	{Name: "Lakeside Family Clinic", NPI: "1184729305", Specialty: "Family Medicine", SuccessRatio: 94.2, Address: "1420 Lakeshore Dr, Chicago, IL 60610"},
	{Name: "Summit Cardiology Associates", NPI: "1730295841", Specialty: "Cardiology", SuccessRatio: 91.5, Address: "88 Summit Ave, Denver, CO 80203"},
	{Name: "Brightpath Pediatrics", NPI: "1528471036", Specialty: "Pediatrics", SuccessRatio: 95.8, Address: "310 Maple St, Austin, TX 78701"},
	{Name: "Northgate Orthopedic Group", NPI: "1396058217", Specialty: "Orthopedics", SuccessRatio: 90.7, Address: "5021 Northgate Blvd, Sacramento, CA 95834"},
	{Name: "Clearview Dermatology", NPI: "1063829470", Specialty: "Dermatology", SuccessRatio: 96.1, Address: "27 Harbor Rd, Portland, ME 04101"},
	{Name: "Riverside Internal Medicine", NPI: "1457302968", Specialty: "Internal Medicine", SuccessRatio: 93.4, Address: "602 River Rd, Columbus, OH 43215"},
	{Name: "Meridian Neurology Partners", NPI: "1912674083", Specialty: "Neurology", SuccessRatio: 89.9, Address: "1150 Meridian St, Indianapolis, IN 46204"},
	{Name: "Harbor Behavioral Health", NPI: "1649205731", Specialty: "Psychiatry", SuccessRatio: 88.6, Address: "45 Wharf St, Baltimore, MD 21202"},
}

// Directory hands out shuffled, perturbed copies of the mock provider list.
type Directory struct {
	mu        sync.Mutex
	rng       *rand.Rand
	providers []model.Provider
	maxOffset float64
}

// NewDirectory creates a Directory over the built-in sample providers.
// A nil rng seeds a fresh PCG source. maxOffset <= 0 uses DefaultMaxOffset.
func NewDirectory(rng *rand.Rand, maxOffset float64) *Directory {
	return NewDirectoryWith(sampleProviders, rng, maxOffset)
}

// NewDirectoryWith creates a Directory over the given providers.
func NewDirectoryWith(providers []model.Provider, rng *rand.Rand, maxOffset float64) *Directory {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if maxOffset <= 0 {
		maxOffset = DefaultMaxOffset
	}
	cp := make([]model.Provider, len(providers))
	copy(cp, providers)
	return &Directory{rng: rng, providers: cp, maxOffset: maxOffset}
}

// Len returns the number of providers in the directory.
func (d *Directory) Len() int {
	return len(d.providers)
}

// Nearby returns up to n providers in random order, each with its success
// ratio shifted by a random offset in [-maxOffset, +maxOffset] and clamped
// to [0, 100]. n <= 0 or n > Len returns every provider.
func (d *Directory) Nearby(n int) []model.Provider {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]model.Provider, len(d.providers))
	copy(out, d.providers)
	d.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })

	if n > 0 && n < len(out) {
		out = out[:n]
	}
	for i := range out {
		offset := (d.rng.Float64()*2 - 1) * d.maxOffset
		out[i].SuccessRatio = perturb(out[i].SuccessRatio, offset)
	}
	return out
}

func perturb(ratio, offset float64) float64 {
	v := math.Max(0, math.Min(ratio+offset, 100))
	return math.Round(v*10) / 10
}
