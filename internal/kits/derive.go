package kits

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/RouterHaus/routerhaus/pkg/models"
)

// Derive normalizes one raw catalog record into a Kit. It is total (any
// input yields a valid record) and idempotent (re-deriving an already
// derived record is a no-op): explicit fields always win over recomputation.
//
// The steps run in a fixed order because some derived fields feed later
// ones: coverageBucket needs coverageSqft, wanTierLabel needs
// maxWanSpeedMbps, the applicable* envelopes need their primary buckets,
// and the score needs nearly everything.
func Derive(raw Raw, idx int) models.Kit {
	var k models.Kit
	deriveIdentity(raw, idx, &k)
	deriveWifi(raw, &k)
	deriveCoverage(raw, &k)
	deriveWan(raw, &k)
	derivePorts(raw, &k)
	deriveDeviceLoad(raw, &k)
	deriveUses(raw, &k)
	deriveEnvelopes(raw, &k)
	deriveAccessAndPrice(raw, &k)
	deriveReviews(raw, &k)
	deriveDisplay(raw, &k)
	deriveScore(&k)
	return k
}

var nonWord = regexp.MustCompile(`[^0-9A-Za-z_]+`)

func deriveIdentity(raw Raw, idx int, k *models.Kit) {
	k.Model = strings.TrimSpace(raw.str("model"))

	k.ID = raw.str("id")
	if k.ID == "" {
		slug := nonWord.ReplaceAllString(k.Model, "")
		if len(slug) > 12 {
			slug = slug[:12]
		}
		k.ID = fmt.Sprintf("k_%d_%s", idx, slug)
	}

	k.Brand = raw.str("brand")
	if k.Brand == "" {
		k.Brand = raw.str("manufacturer")
	}
	if k.Brand == "" {
		k.Brand = guessBrand(k.Model)
	}
}

func deriveWifi(raw Raw, k *models.Kit) {
	std := raw.str("wifiStandard")
	if std == "" {
		std = raw.str("wifi")
	}
	k.WifiStandard = normWifi(std)

	if bands := raw.strs("wifiBands"); len(bands) > 0 {
		k.WifiBands = bands
	} else {
		k.WifiBands = guessBands(k.WifiStandard)
	}
}

func deriveCoverage(raw Raw, k *models.Kit) {
	k.MeshReady = raw.boolean("meshReady")
	k.CoverageSqft = raw.num("coverageSqft")

	k.CoverageBucket = raw.str("coverageBucket")
	if !slices.Contains(models.CoverageBuckets, k.CoverageBucket) {
		k.CoverageBucket = coverageToBucket(k.CoverageSqft)
	}
}

func deriveWan(raw Raw, k *models.Kit) {
	k.MaxWanSpeedMbps = raw.num("maxWanSpeedMbps")

	k.WanTierLabel = raw.str("wanTierLabel")
	if !slices.Contains(models.WanTiers, k.WanTierLabel) {
		k.WanTierLabel = wanLabelFromMbps(k.MaxWanSpeedMbps)
	}

	if raw.has("wanTier") {
		k.WanTier = raw.num("wanTier")
	} else {
		k.WanTier = wanNumericFromLabel(k.WanTierLabel)
	}
}

func derivePorts(raw Raw, k *models.Kit) {
	k.LanCount = raw.intOrNil("lanCount")
	k.MultiGigLan = raw.boolean("multiGigLan")
	k.USB = raw.boolean("usb")
}

func deriveDeviceLoad(raw Raw, k *models.Kit) {
	k.DeviceCapacity = raw.num("deviceCapacity")

	k.DeviceLoad = raw.str("deviceLoad")
	if !slices.Contains(models.DeviceLoads, k.DeviceLoad) {
		k.DeviceLoad = capacityToLoad(k.DeviceCapacity)
	}
}

func deriveUses(raw Raw, k *models.Kit) {
	k.PrimaryUses = raw.strs("primaryUses")
	primary := raw.str("primaryUse")
	if primary == "" && len(k.PrimaryUses) > 0 {
		primary = k.PrimaryUses[0]
	}
	if primary == "" {
		primary = models.PrimaryUseDefault
	}
	// Backfill after defaulting, so deriving a record with no use fields
	// already yields the fixed point re-derivation would produce.
	if len(k.PrimaryUses) == 0 {
		k.PrimaryUses = []string{primary}
	}
	k.PrimaryUse = primary
	k.UseTags = raw.strs("useTags")
}

// deriveEnvelopes fills the applicable* inclusive envelopes. A declared
// envelope is kept, but the record's own primary bucket is always a member.
func deriveEnvelopes(raw Raw, k *models.Kit) {
	k.ApplicableDeviceLoads = envelope(raw.strs("applicableDeviceLoads"), k.DeviceLoad)
	k.ApplicableCoverageBuckets = envelope(raw.strs("applicableCoverageBuckets"), k.CoverageBucket)
	k.ApplicableWanTiers = envelope(raw.strs("applicableWanTiers"), k.WanTierLabel)

	declared := raw.strs("applicablePrimaryUses")
	k.ApplicablePrimaryUses = uniq(append(append(declared, k.PrimaryUses...), k.PrimaryUse))
}

func envelope(declared []string, primary string) []string {
	return uniq(append(declared, primary))
}

func deriveAccessAndPrice(raw Raw, k *models.Kit) {
	if access := raw.strs("accessSupport"); len(access) > 0 {
		k.AccessSupport = access
	} else {
		k.AccessSupport = []string{"Cable", "Fiber"}
	}

	k.PriceUsd = raw.num("priceUsd")

	k.PriceBucket = raw.str("priceBucket")
	if k.PriceBucket != models.PriceBucketNA && !slices.Contains(models.PriceBuckets, k.PriceBucket) {
		k.PriceBucket = priceToBucket(k.PriceUsd)
	}
}

func deriveReviews(raw Raw, k *models.Kit) {
	if raw.has("reviewCount") {
		k.ReviewCount = raw.num("reviewCount")
	} else {
		k.ReviewCount = raw.num("reviews")
	}
	k.Rating = raw.num("rating")
}

func deriveDisplay(raw Raw, k *models.Kit) {
	k.Img = raw.str("img")
	if k.Img == "" {
		k.Img = raw.str("image")
	}
	k.URL = raw.str("url")
	k.UpdatedAt = raw.str("updatedAt")
}

func deriveScore(k *models.Kit) {
	score := 1
	switch k.WifiStandard {
	case models.Wifi7:
		score = 5
	case models.Wifi6E:
		score = 4
	case models.Wifi6:
		score = 3
	}
	if k.MeshReady {
		score++
	}
	if WanRank(*k) >= 3 {
		score++
	}
	if k.PriceUsd > 0 {
		score++
	}
	k.Score = score
}

func guessBrand(model string) string {
	first, _, _ := strings.Cut(model, " ")
	if first == "" {
		return "Unknown"
	}
	return first
}

// normWifi maps free-text Wi-Fi descriptions onto the closed standard set.
// "7" is checked before "6E" before "6" so that "Wi-Fi 6E" does not match
// the plain-6 case. Unrecognized input defaults to "6".
func normWifi(s string) models.WifiStandard {
	u := strings.ToUpper(s)
	u = strings.Join(strings.Fields(u), "")
	switch {
	case strings.Contains(u, "7"):
		return models.Wifi7
	case strings.Contains(u, "6E"):
		return models.Wifi6E
	case strings.Contains(u, "6"):
		return models.Wifi6
	case strings.Contains(u, "5"):
		return models.Wifi5
	default:
		return models.Wifi6
	}
}

func guessBands(std models.WifiStandard) []string {
	if std == models.Wifi6E || std == models.Wifi7 {
		return []string{"2.4", "5", "6"}
	}
	return []string{"2.4", "5"}
}

func coverageToBucket(sqft float64) string {
	switch {
	case sqft == 0:
		return ""
	case sqft < 1800:
		return models.CoverageApartment
	case sqft <= 3200:
		return models.CoverageMidsize
	default:
		return models.CoverageLarge
	}
}

func wanLabelFromMbps(mbps float64) string {
	switch {
	case mbps == 0:
		return ""
	case mbps >= 10000:
		return models.WanTier10G
	case mbps >= 5000:
		return models.WanTier5G
	case mbps >= 2500:
		return models.WanTier2_5G
	default:
		return models.WanTier1G
	}
}

func wanNumericFromLabel(label string) float64 {
	switch label {
	case models.WanTier10G:
		return 10000
	case models.WanTier5G:
		return 5000
	case models.WanTier2_5G:
		return 2500
	case models.WanTier1G:
		return 1000
	default:
		return 0
	}
}

func priceToBucket(usd float64) string {
	switch {
	case usd == 0:
		return models.PriceBucketNA
	case usd < 150:
		return models.PriceBucketBudget
	case usd < 300:
		return models.PriceBucketMid
	case usd < 600:
		return models.PriceBucketHigh
	default:
		return models.PriceBucketTop
	}
}

func capacityToLoad(n float64) string {
	switch {
	case n == 0:
		return ""
	case n <= 8:
		return models.DeviceLoadTiny
	case n <= 20:
		return models.DeviceLoadSmall
	case n <= 40:
		return models.DeviceLoadMedium
	case n <= 80:
		return models.DeviceLoadLarge
	case n <= 120:
		return models.DeviceLoadXL
	default:
		return models.DeviceLoadMax
	}
}

// WifiRank orders Wi-Fi generations for sorting: 7 → 4, 6E → 3, 6 → 2,
// anything else → 1.
func WifiRank(k models.Kit) int {
	switch k.WifiStandard {
	case models.Wifi7:
		return 4
	case models.Wifi6E:
		return 3
	case models.Wifi6:
		return 2
	default:
		return 1
	}
}

// WanRank orders WAN tiers for sorting: 10G → 4 down to ≤1G → 1, unknown → 0.
func WanRank(k models.Kit) int {
	label := k.WanTierLabel
	if label == "" {
		label = wanLabelFromMbps(k.MaxWanSpeedMbps)
	}
	switch label {
	case models.WanTier10G:
		return 4
	case models.WanTier5G:
		return 3
	case models.WanTier2_5G:
		return 2
	case models.WanTier1G:
		return 1
	default:
		return 0
	}
}

// priceBucketIndex orders the priced buckets cheapest first; N/A and
// unknown values return -1.
func priceBucketIndex(bucket string) int {
	for i, b := range models.PriceBuckets {
		if b == bucket {
			return i
		}
	}
	return -1
}
