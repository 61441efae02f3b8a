package sound

import "testing"

func TestBuiltin(t *testing.T) {
	c := Builtin()
	if c.DefaultName() != "Default" {
		t.Fatalf("default name = %q", c.DefaultName())
	}
	entries := c.Entries()
	if len(entries) == 0 || entries[0].Name != "Radar" {
		t.Fatalf("unexpected entries %+v", entries)
	}
	id := 2
	if name, ok := c.NameFor(&id); !ok || name != "Chimes" {
		t.Fatalf("NameFor(2) = %q, %v", name, ok)
	}
	if beep, ok := c.Beep(&id); !ok || beep != 0x30 {
		t.Fatalf("Beep(2) = %#x, %v", beep, ok)
	}
}

func TestNameFor_NilAndUnknown(t *testing.T) {
	c := Builtin()
	if _, ok := c.NameFor(nil); ok {
		t.Fatal("nil id should not resolve")
	}
	unknown := 999
	if _, ok := c.NameFor(&unknown); ok {
		t.Fatal("unknown id should not resolve")
	}
	var nilCatalog *Catalog
	if nilCatalog.DefaultName() != FallbackName {
		t.Fatal("nil catalog should report the fallback name")
	}
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"invalid yaml": "sounds: [",
		"empty":        "default: Quiet\nsounds: []\n",
		"duplicate":    "sounds:\n  - {id: 1, name: A}\n  - {id: 1, name: B}\n",
		"nameless":     "sounds:\n  - {id: 1}\n",
	}
	for name, data := range cases {
		if _, err := Parse([]byte(data)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestParse_DefaultsName(t *testing.T) {
	c, err := Parse([]byte("sounds:\n  - {id: 9, name: Ping}\n"))
	if err != nil {
		t.Fatal(err)
	}
	if c.DefaultName() != FallbackName {
		t.Fatalf("expected fallback default name, got %q", c.DefaultName())
	}
}
