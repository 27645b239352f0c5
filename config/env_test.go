package config

import "testing"

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("NEWSDECK_TEST_STR", "value")
	t.Setenv("NEWSDECK_TEST_BLANK", "   ")

	if got := GetEnvOrDefault("NEWSDECK_TEST_STR", "fallback"); got != "value" {
		t.Errorf("got %q", got)
	}
	if got := GetEnvOrDefault("NEWSDECK_TEST_BLANK", "fallback"); got != "fallback" {
		t.Errorf("blank value: got %q", got)
	}
	if got := GetEnvOrDefault("NEWSDECK_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("unset: got %q", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("NEWSDECK_TEST_INT", "42")
	t.Setenv("NEWSDECK_TEST_BADINT", "forty-two")

	if got := GetEnvInt("NEWSDECK_TEST_INT", 7); got != 42 {
		t.Errorf("got %d", got)
	}
	if got := GetEnvInt("NEWSDECK_TEST_BADINT", 7); got != 7 {
		t.Errorf("unparseable: got %d", got)
	}
	if got := GetEnvInt("NEWSDECK_TEST_NOINT", 7); got != 7 {
		t.Errorf("unset: got %d", got)
	}
}

func TestGetEnvBool(t *testing.T) {
	cases := map[string]bool{"true": true, "TRUE": true, "1": true, "false": false, "0": false, "yes": false}
	for val, want := range cases {
		t.Setenv("NEWSDECK_TEST_BOOL", val)
		if got := GetEnvBool("NEWSDECK_TEST_BOOL"); got != want {
			t.Errorf("GetEnvBool(%q) = %v; want %v", val, got, want)
		}
	}
}

func TestSiteLookup(t *testing.T) {
	for _, name := range SourceNames() {
		site, ok := Site(name)
		if !ok {
			t.Fatalf("Site(%q) not found", name)
		}
		if site.Name != name {
			t.Fatalf("Site(%q).Name = %q", name, site.Name)
		}
		if site.DisplayName == "" || site.BaseURL == "" {
			t.Errorf("%s missing display name or base url", name)
		}
	}
	if _, ok := Site("nosuch"); ok {
		t.Error("Site returned a config for an unknown source")
	}
}
