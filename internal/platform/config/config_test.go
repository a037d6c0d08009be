package config

import (
	"testing"
	"time"

	kit "chatstats/internal/platform/testkit"
)

func TestMust_Values(t *testing.T) {
	c := New().Prefix("CFGT_")
	t.Setenv("CFGT_NAME", "  chatstats ")
	t.Setenv("CFGT_WORKERS", " 8 ")
	t.Setenv("CFGT_ARCHIVE", "on")
	t.Setenv("CFGT_GRACE", "250ms")
	t.Setenv("CFGT_PG", "postgres://db:5432/chatstats")
	t.Setenv("CFGT_PORT", "4000")
	t.Setenv("CFGT_COLON_PORT", ":8080")

	if got := c.MustString("NAME"); got != "chatstats" {
		t.Fatalf("MustString = %q", got)
	}
	if got := c.MustInt("WORKERS"); got != 8 {
		t.Fatalf("MustInt = %d", got)
	}
	if !c.MustBool("ARCHIVE") {
		t.Fatalf("MustBool(on) = false")
	}
	if got := c.MustDuration("GRACE"); got != 250*time.Millisecond {
		t.Fatalf("MustDuration = %v", got)
	}
	if u := c.MustURL("PG"); u.Scheme != "postgres" || u.Host != "db:5432" {
		t.Fatalf("MustURL = %v", u)
	}
	if got := c.MustPort("PORT"); got != ":4000" {
		t.Fatalf("MustPort = %q", got)
	}
	if got := c.MustPort("COLON_PORT"); got != ":8080" {
		t.Fatalf("MustPort(:8080) = %q", got)
	}
	kit.MustNotPanic(t, func() { c.Require("NAME", "PORT") })
}

func TestMust_Panics(t *testing.T) {
	c := New().Prefix("CFGP_")
	t.Setenv("CFGP_INT", "x")
	t.Setenv("CFGP_BOOL", "maybe")
	t.Setenv("CFGP_DUR", "-1s")
	t.Setenv("CFGP_URL", "/relative")
	t.Setenv("CFGP_PORT", "70000")
	t.Setenv("CFGP_BLANK", "   ")

	tests := map[string]func(){
		"missing string": func() { c.MustString("NOPE") },
		"blank string":   func() { c.MustString("BLANK") },
		"bad int":        func() { c.MustInt("INT") },
		"bad bool":       func() { c.MustBool("BOOL") },
		"negative dur":   func() { c.MustDuration("DUR") },
		"relative url":   func() { c.MustURL("URL") },
		"port range":     func() { c.MustPort("PORT") },
		"require":        func() { c.Require("INT", "NOPE") },
	}
	for name, fn := range tests {
		t.Run(name, func(t *testing.T) { kit.MustPanic(t, fn) })
	}
}

func TestMay_Fallbacks(t *testing.T) {
	c := New().Prefix("CFGM_")
	t.Setenv("CFGM_WORKERS", "four")
	t.Setenv("CFGM_ARCHIVE", "nah")
	t.Setenv("CFGM_TIMEOUT", "soon")
	t.Setenv("CFGM_MAX", "1024")
	t.Setenv("CFGM_SWAGGER", "0")
	t.Setenv("CFGM_SLOW", "2s")
	t.Setenv("CFGM_SUFFIX", " (dev) ")

	if got := c.MayInt("WORKERS", 2); got != 2 {
		t.Fatalf("bad int should fall back, got %d", got)
	}
	if got := c.MayBool("ARCHIVE", true); !got {
		t.Fatalf("bad bool should fall back")
	}
	if got := c.MayDuration("TIMEOUT", time.Second); got != time.Second {
		t.Fatalf("bad duration should fall back, got %v", got)
	}
	if got := c.MayInt("MAX", 0); got != 1024 {
		t.Fatalf("MayInt = %d", got)
	}
	if c.MayBool("SWAGGER", true) {
		t.Fatalf("MayBool(0) = true")
	}
	if got := c.MayDuration("SLOW", 0); got != 2*time.Second {
		t.Fatalf("MayDuration = %v", got)
	}
	if got := c.MayString("SUFFIX", ""); got != "(dev)" {
		t.Fatalf("MayString = %q", got)
	}
	if got := c.MayString("UNSET", "dflt"); got != "dflt" {
		t.Fatalf("MayString default = %q", got)
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("CFGC_")
	t.Setenv("CFGC_ORIGINS", " http://a.test , ,http://b.test ")
	t.Setenv("CFGC_EMPTY", " , , ")

	got := c.MayCSV("ORIGINS", nil)
	if len(got) != 2 || got[0] != "http://a.test" || got[1] != "http://b.test" {
		t.Fatalf("MayCSV = %v", got)
	}
	if got := c.MayCSV("EMPTY", []string{"*"}); len(got) != 1 || got[0] != "*" {
		t.Fatalf("blank list should give default, got %v", got)
	}
	if got := c.MayCSV("UNSET", nil); got != nil {
		t.Fatalf("unset = %v", got)
	}
}

func TestMayEnum(t *testing.T) {
	c := New().Prefix("CFGE_")
	if got := c.MayEnum("DATE_ORDER", "dmy", "dmy", "mdy"); got != "dmy" {
		t.Fatalf("unset enum = %q", got)
	}
	t.Setenv("CFGE_DATE_ORDER", "MDY")
	if got := c.MayEnum("DATE_ORDER", "dmy", "dmy", "mdy"); got != "mdy" {
		t.Fatalf("enum should return the allowed spelling, got %q", got)
	}
	t.Setenv("CFGE_DATE_ORDER", "ymd")
	kit.MustPanic(t, func() { c.MayEnum("DATE_ORDER", "dmy", "dmy", "mdy") })
}

func TestParsePort(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"1", ":1", true},
		{"65535", ":65535", true},
		{":4000", ":4000", true},
		{"0", "", false},
		{"65536", "", false},
		{"http", "", false},
	}
	for _, tc := range tests {
		got, ok := parsePort(tc.in)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Fatalf("parsePort(%q) = %q/%v", tc.in, got, ok)
		}
	}
}
