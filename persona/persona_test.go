package persona

import "testing"

func TestLookupKnown(t *testing.T) {
	p := Lookup("cardiologist")
	if p.Name != "Cardiologist" {
		t.Errorf("unexpected persona: %+v", p)
	}
}

func TestLookupFallsBackToGeneralist(t *testing.T) {
	for _, key := range []string{"", "astrologer"} {
		p := Lookup(key)
		if p.Key != DefaultKey {
			t.Errorf("Lookup(%q): expected generalist fallback, got %s", key, p.Key)
		}
	}
}

func TestGet(t *testing.T) {
	if _, ok := Get("psychiatrist"); !ok {
		t.Error("expected psychiatrist to exist")
	}
	if _, ok := Get("astrologer"); ok {
		t.Error("did not expect astrologer to exist")
	}
}

func TestKeysSortedAndComplete(t *testing.T) {
	keys := Keys()
	if len(keys) != 7 {
		t.Fatalf("expected 7 personas, got %d", len(keys))
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			t.Fatalf("keys not sorted: %v", keys)
		}
	}
}
