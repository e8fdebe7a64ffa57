package kits

import (
	"errors"
	"slices"

	"github.com/RouterHaus/routerhaus/pkg/models"
)

// MaxCompareItems caps the comparison tray.
const MaxCompareItems = 4

// ErrCompareFull is returned when adding to a full tray.
var ErrCompareFull = errors.New("compare tray is full")

// Tray is a shopper's comparison selection: an ordered set of kit ids.
type Tray struct {
	IDs []string `json:"ids"`
}

// Toggle adds the id if absent and removes it if present. Adding to a full
// tray returns ErrCompareFull. The returned bool reports whether the id is
// in the tray afterwards.
func (t *Tray) Toggle(id string) (bool, error) {
	if i := slices.Index(t.IDs, id); i >= 0 {
		t.IDs = slices.Delete(t.IDs, i, i+1)
		return false, nil
	}
	if len(t.IDs) >= MaxCompareItems {
		return false, ErrCompareFull
	}
	t.IDs = append(t.IDs, id)
	return true, nil
}

// Clear empties the tray.
func (t *Tray) Clear() { t.IDs = nil }

// Resolve maps the tray's ids onto catalog records, preserving tray order
// and dropping ids that no longer resolve.
func (t *Tray) Resolve(catalog []models.Kit) []models.Kit {
	byID := make(map[string]models.Kit, len(catalog))
	for _, k := range catalog {
		byID[k.ID] = k
	}
	out := make([]models.Kit, 0, len(t.IDs))
	for _, id := range t.IDs {
		if k, ok := byID[id]; ok {
			out = append(out, k)
		}
	}
	return out
}
