package testutil

import (
	"fmt"

	"github.com/RouterHaus/routerhaus/pkg/models"
)

// NewKit returns a Kit with sensible defaults, suitable for test fixtures.
// Override individual fields through options or after creation as needed.
func NewKit(opts ...func(*models.Kit)) models.Kit {
	k := models.Kit{
		ID:             "k_0_testkit",
		Brand:          "TestBrand",
		Model:          "TestKit",
		WifiStandard:   models.Wifi6,
		WifiBands:      []string{"2.4", "5"},
		CoverageBucket: models.CoverageMidsize,
		WanTierLabel:   models.WanTier1G,
		DeviceLoad:     models.DeviceLoadSmall,
		PrimaryUse:     models.PrimaryUseDefault,
		PrimaryUses:    []string{models.PrimaryUseDefault},

		ApplicableCoverageBuckets: []string{models.CoverageMidsize},
		ApplicableWanTiers:        []string{models.WanTier1G},
		ApplicableDeviceLoads:     []string{models.DeviceLoadSmall},
		ApplicablePrimaryUses:     []string{models.PrimaryUseDefault},

		AccessSupport: []string{"Cable", "Fiber"},
		PriceUsd:      199,
		PriceBucket:   models.PriceBucketMid,
		Score:         5,
	}
	for _, opt := range opts {
		opt(&k)
	}
	return k
}

// WithID sets the kit id.
func WithID(id string) func(*models.Kit) {
	return func(k *models.Kit) { k.ID = id }
}

// WithBrand sets the kit brand.
func WithBrand(brand string) func(*models.Kit) {
	return func(k *models.Kit) { k.Brand = brand }
}

// WithModel sets the kit model name.
func WithModel(model string) func(*models.Kit) {
	return func(k *models.Kit) { k.Model = model }
}

// WithWifi sets the Wi-Fi standard and its matching band list.
func WithWifi(std models.WifiStandard) func(*models.Kit) {
	return func(k *models.Kit) {
		k.WifiStandard = std
		if std == models.Wifi6E || std == models.Wifi7 {
			k.WifiBands = []string{"2.4", "5", "6"}
		} else {
			k.WifiBands = []string{"2.4", "5"}
		}
	}
}

// WithMesh marks the kit mesh-ready.
func WithMesh() func(*models.Kit) {
	return func(k *models.Kit) { k.MeshReady = true }
}

// WithCoverage sets the coverage bucket and its envelope.
func WithCoverage(bucket string) func(*models.Kit) {
	return func(k *models.Kit) {
		k.CoverageBucket = bucket
		k.ApplicableCoverageBuckets = []string{bucket}
	}
}

// WithWan sets the WAN tier label and its envelope.
func WithWan(tier string) func(*models.Kit) {
	return func(k *models.Kit) {
		k.WanTierLabel = tier
		k.ApplicableWanTiers = []string{tier}
	}
}

// WithDeviceLoad sets the device-load bucket and its envelope.
func WithDeviceLoad(load string) func(*models.Kit) {
	return func(k *models.Kit) {
		k.DeviceLoad = load
		k.ApplicableDeviceLoads = []string{load}
	}
}

// WithUse sets the primary use and its envelope.
func WithUse(use string) func(*models.Kit) {
	return func(k *models.Kit) {
		k.PrimaryUse = use
		k.PrimaryUses = []string{use}
		k.ApplicablePrimaryUses = []string{use}
	}
}

// WithPrice sets the price and its derived bucket.
func WithPrice(usd float64, bucket string) func(*models.Kit) {
	return func(k *models.Kit) {
		k.PriceUsd = usd
		k.PriceBucket = bucket
	}
}

// WithAccess sets the supported access types.
func WithAccess(access ...string) func(*models.Kit) {
	return func(k *models.Kit) { k.AccessSupport = access }
}

// WithScore sets the relevance score.
func WithScore(score int) func(*models.Kit) {
	return func(k *models.Kit) { k.Score = score }
}

// Catalog returns n distinct kits with ascending prices, useful when a test
// only cares about counts and ordering.
func Catalog(n int) []models.Kit {
	kits := make([]models.Kit, 0, n)
	for i := 0; i < n; i++ {
		kits = append(kits, NewKit(
			WithID(fmt.Sprintf("k_%d_testkit", i)),
			WithModel(fmt.Sprintf("TestKit %d", i)),
			WithPrice(float64(100+i*10), models.PriceBucketBudget),
		))
	}
	return kits
}
