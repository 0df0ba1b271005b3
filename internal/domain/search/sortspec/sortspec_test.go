package sortspec

import (
	"errors"
	"testing"

	"github.com/bizradar/planfinder/internal/domain"
)

func TestParseAliases(t *testing.T) {
	tests := []struct {
		token string
		field Field
		dir   Direction
	}{
		{"date_desc", FieldCreatedAt, Desc},
		{"date_asc", FieldCreatedAt, Asc},
		{"popularity_asc", FieldTotalUps, Asc},
		{"popularity_desc", FieldTotalUps, Desc},
		{"market_size_desc", FieldMarketSize, Desc},
		{"required_capital_asc", FieldRequiredCapital, Asc},
		{"time_to_market_desc", FieldTimeToMarket, Desc},
		{"title_asc", FieldTitle, Asc},
		{"created_at_desc", FieldCreatedAt, Desc},
	}

	for _, tt := range tests {
		s, err := Parse(tt.token)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.token, err)
			continue
		}
		if s.Field() != tt.field || s.Direction() != tt.dir {
			t.Errorf("Parse(%q) = %s/%s, want %s/%s",
				tt.token, s.Field(), s.Direction(), tt.field, tt.dir)
		}
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, token := range []string{
		"", "desc", "date", "date_sideways", "viability_desc",
		"_desc", "date_", "drop table_asc",
	} {
		if _, err := Parse(token); !errors.Is(err, domain.ErrInvalidSortToken) {
			t.Errorf("Parse(%q): want ErrInvalidSortToken, got %v", token, err)
		}
	}
}

func TestToggleFlipsActiveField(t *testing.T) {
	s, err := New(FieldTotalUps, Desc)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	s = s.Toggle(FieldTotalUps)
	if s.Direction() != Asc {
		t.Errorf("toggled direction = %s, want asc", s.Direction())
	}

	s = s.Toggle(FieldTotalUps)
	if s.Direction() != Desc {
		t.Errorf("double toggle direction = %s, want desc", s.Direction())
	}
}

func TestToggleNewFieldStartsAscending(t *testing.T) {
	s, err := New(FieldTotalUps, Desc)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	s = s.Toggle(FieldCreatedAt)
	if s.Field() != FieldCreatedAt || s.Direction() != Asc {
		t.Errorf("toggle to new field = %s/%s, want created_at/asc", s.Field(), s.Direction())
	}
}

func TestTokenRoundTrip(t *testing.T) {
	s, err := Parse("popularity_desc")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Token() != "total_ups_desc" {
		t.Errorf("Token() = %q, want total_ups_desc", s.Token())
	}
	back, err := Parse(s.Token())
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if back != s {
		t.Errorf("reparse mismatch: %v != %v", back, s)
	}
}

func TestZeroSort(t *testing.T) {
	var s Sort
	if !s.IsZero() {
		t.Error("zero Sort should report IsZero")
	}
}
