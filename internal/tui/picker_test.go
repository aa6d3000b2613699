package tui

import (
	"strings"
	"testing"
)

func TestFuzzyMatchScore(t *testing.T) {
	tests := []struct {
		label, query string
		match        bool
	}{
		{"Heart of Inmost Light", "", true},
		{"Heart of Inmost Light", "heart", true},
		{"Heart of Inmost Light", "hil", true},
		{"Iron Truage Helm", "truage", true},
		{"Iron Truage Helm", "truadge", true},
		{"Iron Truage Helm", "warlock", false},
		{"Iron Truage Helm", "zz", false},
	}
	for _, tt := range tests {
		got, _ := fuzzyMatchScore(tt.label, tt.query)
		if got != tt.match {
			t.Fatalf("fuzzyMatchScore(%q, %q) = %v, want %v", tt.label, tt.query, got, tt.match)
		}
	}
	_, prefix := fuzzyMatchScore("Heart", "he")
	_, inner := fuzzyMatchScore("The Heart", "he")
	if prefix <= inner {
		t.Fatalf("prefix score %d should beat %d", prefix, inner)
	}
}

func TestPickerMultiSelect(t *testing.T) {
	p := newPicker("mods", []pickerItem{{ID: 4, Label: "b"}, {ID: 2, Label: "a"}}, true)
	p.HandleKey(" ")
	p.HandleKey("j")
	res := p.HandleKey("space")
	if res.Action != pickerActionToggled {
		t.Fatalf("action = %v", res.Action)
	}
	res = p.HandleKey("enter")
	if res.Action != pickerActionSubmitted || len(res.SelectedIDs) != 2 || res.SelectedIDs[0] != 2 {
		t.Fatalf("result = %+v", res)
	}
	if res := p.HandleKey("esc"); res.Action != pickerActionCancelled {
		t.Fatalf("esc = %+v", res)
	}
}

func TestPickerKeepsOrderWithoutQuery(t *testing.T) {
	p := newPicker("items", []pickerItem{{ID: 0, Label: "zulu"}, {ID: 1, Label: "alpha"}}, false)
	if cur, _ := p.Current(); cur.ID != 0 {
		t.Fatalf("first = %+v", cur)
	}
	p.SetQuery("alp")
	if cur, _ := p.Current(); cur.ID != 1 || len(p.filtered) != 1 {
		t.Fatalf("filtered = %+v", p.filtered)
	}
	p.HandleKey("backspace")
	p.HandleKey("backspace")
	p.HandleKey("backspace")
	if len(p.filtered) != 2 {
		t.Fatalf("clearing the query restores all items, got %d", len(p.filtered))
	}
}

func TestKeyRegistryFallsBackToGlobal(t *testing.T) {
	r := NewKeyRegistry()
	if b := r.Lookup("q", scopePanel); b == nil || b.Action != actionQuit {
		t.Fatalf("q in panel = %+v", b)
	}
	if b := r.Lookup(" ", scopeModPicker); b == nil || b.Action != actionToggleSelect {
		t.Fatalf("space in mod picker = %+v", b)
	}
	if b := r.Lookup("l", scopeItemPicker); b != nil {
		t.Fatalf("l is filter text in the item picker, got %+v", b)
	}
	if len(r.HelpBindings(scopeExoticPicker)) != 4 {
		t.Fatalf("help = %d bindings", len(r.HelpBindings(scopeExoticPicker)))
	}
}

func TestCenterOverKeepsBaseAroundModal(t *testing.T) {
	base := strings.Join([]string{"aaaaaaaaaa", "bbbbbbbbbb", "cccccccccc"}, "\n")
	got := centerOver(base, "XX\nYY", 10, 3)
	want := strings.Join([]string{"aaaaXXaaaa", "bbbbYYbbbb", "cccccccccc"}, "\n")
	if got != want {
		t.Fatalf("centerOver =\n%s\nwant\n%s", got, want)
	}
}

func TestCenterOverPadsShortRows(t *testing.T) {
	got := centerOver("ab", "X", 6, 1)
	if got != "abX   " {
		t.Fatalf("centerOver = %q, want %q", got, "abX   ")
	}
}
