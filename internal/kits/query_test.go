package kits

import (
	"net/url"
	"reflect"
	"testing"
)

func TestDecodeQuery_Defaults(t *testing.T) {
	q := DecodeQuery(url.Values{})
	if !reflect.DeepEqual(q, DefaultQuery()) {
		t.Fatalf("decoded empty values = %+v, want defaults", q)
	}
}

func TestDecodeQuery_Full(t *testing.T) {
	values, err := url.ParseQuery("sort=price-desc&page=2&ps=6&wifi=6E,7&mesh=Mesh-ready&q=Gaming+Router&recos=0")
	if err != nil {
		t.Fatalf("ParseQuery: %v", err)
	}
	q := DecodeQuery(values)

	if q.Sort != SortPriceDesc {
		t.Errorf("Sort = %q, want price-desc", q.Sort)
	}
	if q.Page != 2 || q.PageSize != 6 {
		t.Errorf("Page/PageSize = %d/%d, want 2/6", q.Page, q.PageSize)
	}
	if q.ShowRecos {
		t.Error("ShowRecos = true, want false")
	}
	if q.Search != "gaming router" {
		t.Errorf("Search = %q, want lowercased", q.Search)
	}
	if got := q.Facets["wifi"]; !reflect.DeepEqual(got, []string{"6E", "7"}) {
		t.Errorf("wifi selection = %v, want [6E 7]", got)
	}
	if got := q.Facets["mesh"]; !reflect.DeepEqual(got, []string{"Mesh-ready"}) {
		t.Errorf("mesh selection = %v, want [Mesh-ready]", got)
	}
}

func TestDecodeQuery_BadValuesFallBack(t *testing.T) {
	values := url.Values{
		"page": {"zero"},
		"ps":   {"-3"},
		"sort": {""},
		"wifi": {",,"},
	}
	q := DecodeQuery(values)
	if q.Page != 1 || q.PageSize != DefaultPageSize || q.Sort != SortRelevance {
		t.Errorf("bad values decoded to %+v, want defaults", q)
	}
	if len(q.Facets) != 0 {
		t.Errorf("empty CSV kept a selection: %v", q.Facets)
	}
}

func TestDecodeQuery_DeduplicatesFacetValues(t *testing.T) {
	values := url.Values{"wifi": {"7,7,6E,7"}}
	q := DecodeQuery(values)
	if got := q.Facets["wifi"]; !reflect.DeepEqual(got, []string{"7", "6E"}) {
		t.Errorf("wifi selection = %v, want [7 6E]", got)
	}
}

func TestEncode_OmitsDefaults(t *testing.T) {
	if got := DefaultQuery().String(); got != "" {
		t.Fatalf("default query encoded to %q, want empty", got)
	}

	q := DefaultQuery()
	q.Page = 3
	if got := q.String(); got != "page=3" {
		t.Fatalf("encoded = %q, want page=3", got)
	}
}

func TestQuery_RoundTrip(t *testing.T) {
	tests := []string{
		"",
		"page=3",
		"q=mesh",
		"sort=price-desc&page=2&ps=6&wifi=6E,7",
		"access=Fiber&coverage=Large%2FMulti-floor&recos=0",
		"brand=Apex,HubCo&sort=rating-desc",
	}
	for _, raw := range tests {
		t.Run("?"+raw, func(t *testing.T) {
			values, err := url.ParseQuery(raw)
			if err != nil {
				t.Fatalf("ParseQuery: %v", err)
			}
			q := DecodeQuery(values)
			again := DecodeQuery(q.Encode())
			if !reflect.DeepEqual(q, again) {
				t.Fatalf("round trip changed query:\n first = %+v\nsecond = %+v", q, again)
			}
		})
	}
}

func TestQuery_StringIsCanonical(t *testing.T) {
	a := DecodeQuery(url.Values{"wifi": {"7"}, "brand": {"Apex"}})
	b := DecodeQuery(url.Values{"brand": {"Apex"}, "wifi": {"7"}})
	if a.String() != b.String() {
		t.Fatalf("equal states encode differently: %q vs %q", a.String(), b.String())
	}
}

func TestQuery_WithQuiz(t *testing.T) {
	q := DefaultQuery()
	q.Page = 4
	q.ShowRecos = false
	q.Facets = Selection{
		"brand":    {"Apex"},
		"coverage": {"Apartment/Small"},
	}

	applied := q.WithQuiz("Large/Multi-floor", "16–30", "Gaming")

	if got := applied.Facets["coverage"]; !reflect.DeepEqual(got, []string{"Large/Multi-floor"}) {
		t.Errorf("coverage = %v, want quiz answer", got)
	}
	if got := applied.Facets["device"]; !reflect.DeepEqual(got, []string{"16–30"}) {
		t.Errorf("device = %v, want quiz answer", got)
	}
	if got := applied.Facets["use"]; !reflect.DeepEqual(got, []string{"Gaming"}) {
		t.Errorf("use = %v, want quiz answer", got)
	}
	if got := applied.Facets["brand"]; !reflect.DeepEqual(got, []string{"Apex"}) {
		t.Errorf("brand = %v, quiz must not touch other facets", got)
	}
	if applied.Page != 1 || !applied.ShowRecos {
		t.Errorf("Page/ShowRecos = %d/%v, want 1/true", applied.Page, applied.ShowRecos)
	}

	// The receiver is untouched.
	if q.Page != 4 || q.ShowRecos {
		t.Error("WithQuiz mutated the receiver")
	}
	if got := q.Facets["coverage"]; !reflect.DeepEqual(got, []string{"Apartment/Small"}) {
		t.Errorf("receiver coverage = %v, want original", got)
	}

	// Blank answers leave the facets alone.
	same := q.WithQuiz("", "", "")
	if got := same.Facets["coverage"]; !reflect.DeepEqual(got, []string{"Apartment/Small"}) {
		t.Errorf("blank quiz replaced coverage: %v", got)
	}
}
