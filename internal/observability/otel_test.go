package observability

import "testing"

func TestOtelSampleRatio(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"", 0.1},
		{"not-a-number", 0.1},
		{"0.5", 0.5},
		{"-2", 0},
		{"7", 1},
	}
	for _, tc := range cases {
		t.Setenv("OTEL_SAMPLER_RATIO", tc.raw)
		if got := otelSampleRatio(); got != tc.want {
			t.Fatalf("ratio %q: got %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestOtelEnabled(t *testing.T) {
	for _, raw := range []string{"", "0", "false", "off"} {
		t.Setenv("OTEL_ENABLED", raw)
		if otelEnabled() {
			t.Fatalf("expected disabled for %q", raw)
		}
	}
	for _, raw := range []string{"1", "true", "YES", "on"} {
		t.Setenv("OTEL_ENABLED", raw)
		if !otelEnabled() {
			t.Fatalf("expected enabled for %q", raw)
		}
	}
}

func TestOtelHeaders(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "x-api-key=secret, team=selah ,bad,=empty")
	headers := otelHeaders()
	if len(headers) != 2 || headers["x-api-key"] != "secret" || headers["team"] != "selah" {
		t.Fatalf("unexpected headers: %+v", headers)
	}

	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")
	if otelHeaders() != nil {
		t.Fatalf("expected nil headers when unset")
	}
}
