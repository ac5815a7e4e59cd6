package usecase

import (
	"reflect"
	"testing"

	"github.com/AladdinPP/prox-moble/internal/domain"
)

func TestParseItemList(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"simple list", "milk; eggs; bread", []string{"milk", "eggs", "bread"}},
		{"no spaces", "milk;eggs", []string{"milk", "eggs"}},
		{"empty segments dropped", "milk;; eggs; ;", []string{"milk", "eggs"}},
		{"whitespace collapsed", "  whole   milk ; eggs ", []string{"whole milk", "eggs"}},
		{"case-insensitive dedup keeps first", "Milk; milk; MILK; eggs", []string{"Milk", "eggs"}},
		{"empty query", "", nil},
		{"only separators", " ; ; ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := ParseItemList(tt.query)
			var names []string
			for _, item := range items {
				names = append(names, item.Name)
			}
			if !reflect.DeepEqual(names, tt.want) {
				t.Errorf("ParseItemList(%q) = %v, want %v", tt.query, names, tt.want)
			}
		})
	}
}

func TestSearchTerms(t *testing.T) {
	t.Run("extracts distinct names in order", func(t *testing.T) {
		items := []domain.ItemSpec{
			{Name: "milk", Brand: "Great Value"},
			{Name: "eggs"},
			{Name: "milk"},
			{Name: "  "},
		}
		got := SearchTerms(items)
		want := []string{"milk", "eggs"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("SearchTerms = %v, want %v", got, want)
		}
	})

	t.Run("empty input yields empty slice", func(t *testing.T) {
		if got := SearchTerms(nil); len(got) != 0 {
			t.Errorf("SearchTerms(nil) = %v, want empty", got)
		}
	})
}

func TestValidZipCode(t *testing.T) {
	valid := []string{"90001", "00501", "99999"}
	invalid := []string{"", "9000", "900011", "9000a", "90 01", "90001 "}

	for _, zip := range valid {
		if !ValidZipCode(zip) {
			t.Errorf("ValidZipCode(%q) = false, want true", zip)
		}
	}
	for _, zip := range invalid {
		if ValidZipCode(zip) {
			t.Errorf("ValidZipCode(%q) = true, want false", zip)
		}
	}
}
