package plan

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestEntryUnmarshalString(t *testing.T) {
	var e Entry
	if err := json.Unmarshal([]byte(`"strong organic demand"`), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if e.Text != "strong organic demand" {
		t.Errorf("text = %q", e.Text)
	}
	if e.IsList() {
		t.Error("expected text entry, got list")
	}
}

func TestEntryUnmarshalList(t *testing.T) {
	var e Entry
	if err := json.Unmarshal([]byte(`["referrals","paid ads"]`), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !e.IsList() {
		t.Fatal("expected list entry")
	}
	if !reflect.DeepEqual(e.Items, []string{"referrals", "paid ads"}) {
		t.Errorf("items = %v", e.Items)
	}
}

func TestEntryUnmarshalRejectsObject(t *testing.T) {
	var e Entry
	if err := json.Unmarshal([]byte(`{"nested":"no"}`), &e); err == nil {
		t.Fatal("expected error for object entry")
	}
}

func TestSectionRoundTrip(t *testing.T) {
	in := Section{
		"summary":   {Text: "crowded but fragmented"},
		"channels":  {Items: []string{"seo", "partnerships"}},
		"retention": {Items: []string{}},
	}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out Section
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip mismatch:\n in=%#v\nout=%#v", in, out)
	}
}
