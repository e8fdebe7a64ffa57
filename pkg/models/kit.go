// Package models defines the RouterHaus catalog record types shared by the
// kits engine, the HTTP API, and the preference store.
package models

// WifiStandard is the normalized Wi-Fi generation of a kit.
type WifiStandard string

const (
	Wifi5  WifiStandard = "5"
	Wifi6  WifiStandard = "6"
	Wifi6E WifiStandard = "6E"
	Wifi7  WifiStandard = "7"
)

// Coverage buckets derived from square footage. The empty string means the
// footage was unknown.
const (
	CoverageApartment = "Apartment/Small"
	CoverageMidsize   = "2–3 Bedroom"
	CoverageLarge     = "Large/Multi-floor"
)

// CoverageBuckets lists every valid coverage bucket in display order.
var CoverageBuckets = []string{CoverageApartment, CoverageMidsize, CoverageLarge}

// WAN tier labels derived from the max WAN speed. The empty string means the
// speed was unknown.
const (
	WanTier1G   = "≤1G"
	WanTier2_5G = "2.5G"
	WanTier5G   = "5G"
	WanTier10G  = "10G"
)

// WanTiers lists every valid WAN tier label, fastest first.
var WanTiers = []string{WanTier10G, WanTier5G, WanTier2_5G, WanTier1G}

// Device load buckets derived from device capacity. The empty string means
// the capacity was unknown.
const (
	DeviceLoadTiny   = "1–5"
	DeviceLoadSmall  = "6–15"
	DeviceLoadMedium = "16–30"
	DeviceLoadLarge  = "31–60"
	DeviceLoadXL     = "61–100"
	DeviceLoadMax    = "100+"
)

// DeviceLoads lists every valid device load bucket in ascending order.
var DeviceLoads = []string{
	DeviceLoadTiny, DeviceLoadSmall, DeviceLoadMedium,
	DeviceLoadLarge, DeviceLoadXL, DeviceLoadMax,
}

// Price buckets derived from the USD price. PriceBucketNA marks kits with no
// known price.
const (
	PriceBucketNA     = "N/A"
	PriceBucketBudget = "<150"
	PriceBucketMid    = "150–299"
	PriceBucketHigh   = "300–599"
	PriceBucketTop    = "600+"
)

// PriceBuckets lists the priced buckets cheapest first (N/A excluded).
var PriceBuckets = []string{PriceBucketBudget, PriceBucketMid, PriceBucketHigh, PriceBucketTop}

// PrimaryUseDefault is assigned when a kit declares no primary use.
const PrimaryUseDefault = "All-Purpose"

// Kit is a fully derived catalog record. Every field is populated by the
// kits deriver; raw records may omit any of them.
type Kit struct {
	ID    string `json:"id"`
	Brand string `json:"brand"`
	Model string `json:"model"`

	WifiStandard WifiStandard `json:"wifiStandard"`
	WifiBands    []string     `json:"wifiBands"`

	MeshReady      bool    `json:"meshReady"`
	CoverageSqft   float64 `json:"coverageSqft"`
	CoverageBucket string  `json:"coverageBucket"`

	MaxWanSpeedMbps float64 `json:"maxWanSpeedMbps"`
	WanTierLabel    string  `json:"wanTierLabel"`
	WanTier         float64 `json:"wanTier"`

	LanCount    *int `json:"lanCount"`
	MultiGigLan bool `json:"multiGigLan"`
	USB         bool `json:"usb"`

	DeviceCapacity float64 `json:"deviceCapacity"`
	DeviceLoad     string  `json:"deviceLoad"`

	PrimaryUse  string   `json:"primaryUse"`
	PrimaryUses []string `json:"primaryUses"`
	UseTags     []string `json:"useTags,omitempty"`

	ApplicableDeviceLoads     []string `json:"applicableDeviceLoads"`
	ApplicableCoverageBuckets []string `json:"applicableCoverageBuckets"`
	ApplicableWanTiers        []string `json:"applicableWanTiers"`
	ApplicablePrimaryUses     []string `json:"applicablePrimaryUses"`

	AccessSupport []string `json:"accessSupport"`

	PriceUsd    float64 `json:"priceUsd"`
	PriceBucket string  `json:"priceBucket"`

	ReviewCount float64 `json:"reviewCount"`
	Rating      float64 `json:"rating"`

	Img       string `json:"img,omitempty"`
	URL       string `json:"url,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`

	// Score is the heuristic relevance used by the default sort and the
	// recommendation ranking.
	Score int `json:"_score"`
}
