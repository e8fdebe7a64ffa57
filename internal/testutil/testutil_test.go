package testutil

import (
	"context"
	"testing"

	"github.com/RouterHaus/routerhaus/pkg/models"
)

func TestLogger_NotNil(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestNewStore_Usable(t *testing.T) {
	db := NewStore(t)
	if db == nil {
		t.Fatal("expected non-nil store")
	}
	if err := db.DB().PingContext(context.Background()); err != nil {
		t.Fatalf("PingContext: %v", err)
	}
}

func TestNewKit_Defaults(t *testing.T) {
	k := NewKit()
	if k.ID == "" {
		t.Error("expected non-empty ID")
	}
	if k.WifiStandard != models.Wifi6 {
		t.Errorf("WifiStandard = %q, want 6", k.WifiStandard)
	}
	if k.PriceBucket != models.PriceBucketMid {
		t.Errorf("PriceBucket = %q, want %q", k.PriceBucket, models.PriceBucketMid)
	}
}

func TestNewKit_WithOptions(t *testing.T) {
	k := NewKit(
		WithBrand("Apex"),
		WithWifi(models.Wifi6E),
		WithMesh(),
		WithCoverage(models.CoverageLarge),
	)
	if k.Brand != "Apex" {
		t.Errorf("Brand = %q, want Apex", k.Brand)
	}
	if len(k.WifiBands) != 3 {
		t.Errorf("WifiBands = %v, want three bands for 6E", k.WifiBands)
	}
	if !k.MeshReady {
		t.Error("expected mesh-ready kit")
	}
	if k.CoverageBucket != models.CoverageLarge {
		t.Errorf("CoverageBucket = %q, want %q", k.CoverageBucket, models.CoverageLarge)
	}
}

func TestCatalog_DistinctIDs(t *testing.T) {
	kits := Catalog(5)
	if len(kits) != 5 {
		t.Fatalf("len = %d, want 5", len(kits))
	}
	seen := map[string]bool{}
	for _, k := range kits {
		if seen[k.ID] {
			t.Errorf("duplicate id %q", k.ID)
		}
		seen[k.ID] = true
	}
}
