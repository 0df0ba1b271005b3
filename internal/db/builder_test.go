package db

import (
	"strings"
	"testing"
)

func TestIndexBuilderBuild(t *testing.T) {
	def, err := NewIndex("plans:idx").
		Prefix("plan:").
		Tag("industry").
		Tag("sentiment").
		SortableNumeric("market_size").
		SortableNumeric("total_ups").
		SortableText("title").
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if def.Name != "plans:idx" {
		t.Errorf("name = %q", def.Name)
	}
	if def.StorageType != StorageHash {
		t.Errorf("storage = %q, want HASH", def.StorageType)
	}
	if len(def.Fields) != 5 {
		t.Fatalf("fields = %d, want 5", len(def.Fields))
	}
	if !def.Fields[2].Sortable {
		t.Error("market_size should be sortable")
	}
}

func TestIndexBuilderRejectsEmpty(t *testing.T) {
	if _, err := NewIndex("idx").Build(); err == nil {
		t.Error("expected error for index without fields")
	}
	if _, err := NewIndex("").Tag("industry").Build(); err == nil {
		t.Error("expected error for empty index name")
	}
	if _, err := NewIndex("bad name").Tag("industry").Build(); err == nil {
		t.Error("expected error for invalid identifier")
	}
}

func TestIndexBuilderRejectsDuplicateFields(t *testing.T) {
	if _, err := NewIndex("idx").Tag("industry").Numeric("industry").Build(); err == nil {
		t.Error("expected error for duplicate field name")
	}
}

func TestIndexDefinitionString(t *testing.T) {
	def := NewIndex("plans:idx").Prefix("plan:").Tag("industry").SortableNumeric("total_ups").MustBuild()
	s := def.String()
	for _, want := range []string{"FT.CREATE", "ON HASH", "PREFIX plan:", "industry TAG", "total_ups NUMERIC SORTABLE"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}
