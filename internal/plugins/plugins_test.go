package plugins

import "testing"

func TestRegisterAndGet(t *testing.T) {
	r := NewRegistry()

	p, err := r.Register("exporter", "1.0.0", "writes schemas to disk")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == "" {
		t.Error("registered plugin should get an ID")
	}

	got, ok := r.Get("exporter")
	if !ok || got.Description != "writes schemas to disk" {
		t.Errorf("unexpected lookup result: %+v, %v", got, ok)
	}

	if _, ok := r.Get("missing"); ok {
		t.Error("lookup of unregistered plugin should fail")
	}
}

func TestRegister_Duplicate(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Register("dup", "1", ""); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if _, err := r.Register("dup", "2", ""); err == nil {
		t.Error("duplicate registration should fail")
	}
}

func TestRegister_EmptyName(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Register("", "1", ""); err == nil {
		t.Error("empty plugin name should fail")
	}
}

func TestList_Sorted(t *testing.T) {
	r := NewRegistry()
	r.Register("zeta", "1", "")
	r.Register("alpha", "1", "")
	r.Register("mid", "1", "")

	list := r.List()
	if len(list) != 3 {
		t.Fatalf("expected 3 plugins, got %d", len(list))
	}
	if list[0].Name != "alpha" || list[1].Name != "mid" || list[2].Name != "zeta" {
		t.Errorf("list not sorted by name: %+v", list)
	}
}

func TestDefault(t *testing.T) {
	r := Default("0.9.0")

	for _, name := range []string{"introspector", "ddl-generator", "optimizer"} {
		p, ok := r.Get(name)
		if !ok {
			t.Errorf("built-in plugin %q missing", name)
			continue
		}
		if p.Version != "0.9.0" {
			t.Errorf("plugin %q version = %q, want 0.9.0", name, p.Version)
		}
	}
}
