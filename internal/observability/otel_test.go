package observability

import (
	"context"
	"testing"
)

func TestParseHeadersSkipsMalformedPairs(t *testing.T) {
	got := parseHeaders("a=1, b = 2 ,broken,=x,c=")
	if len(got) != 2 || got["a"] != "1" || got["b"] != "2" {
		t.Fatalf("headers: got=%v", got)
	}
	if parseHeaders("  ") != nil {
		t.Fatalf("blank headers should be nil")
	}
}

func TestClampRatio(t *testing.T) {
	cases := map[float64]float64{-1: 0, 0.25: 0.25, 3: 1}
	for in, want := range cases {
		if got := clampRatio(in); got != want {
			t.Fatalf("clampRatio(%v): want=%v got=%v", in, want, got)
		}
	}
}

func TestInitOTelDisabledReturnsNoopShutdown(t *testing.T) {
	shutdown := InitOTel(context.Background(), nil, OtelConfig{Enabled: false})
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}
