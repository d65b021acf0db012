package weather

import "testing"

func TestParseUnits(t *testing.T) {
	if u, err := ParseUnits(""); err != nil || u != UnitsMetric {
		t.Fatalf("expected metric default, got %q %v", u, err)
	}
	if u, err := ParseUnits("imperial"); err != nil || u != UnitsImperial {
		t.Fatalf("expected imperial, got %q %v", u, err)
	}
	if _, err := ParseUnits("kelvin"); err == nil {
		t.Fatal("expected error for unsupported units")
	}
}

func TestCurrentWeatherCondition(t *testing.T) {
	tests := []struct {
		main, desc string
		want       Condition
	}{
		{main: "Clear", want: ConditionClear},
		{main: "Clouds", want: ConditionCloudy},
		{main: "Drizzle", want: ConditionRain},
		{main: "Thunderstorm", want: ConditionStorm},
		{main: "Fog", want: ConditionMist},
		{main: "Other", desc: "Patchy light snow", want: ConditionSnow},
		{main: "", desc: "Overcast", want: ConditionCloudy},
		{main: "", desc: "volcanic ash", want: ConditionUnknown},
	}

	for _, tt := range tests {
		w := CurrentWeather{Weather: []Description{{Main: tt.main, Description: tt.desc}}}
		if got := w.Condition(); got != tt.want {
			t.Fatalf("%q/%q: expected %s, got %s", tt.main, tt.desc, tt.want, got)
		}
	}

	if (CurrentWeather{}).Condition() != ConditionUnknown {
		t.Fatal("expected unknown without descriptions")
	}
}
