package common

import (
	"reflect"
	"testing"
)

func TestHasAny(t *testing.T) {
	if !HasAny("Light Rain Showers", "drizzle", "rain") {
		t.Fatal("expected match on rain")
	}
	if HasAny("clear sky", "snow", "storm") {
		t.Fatal("unexpected match")
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList(" Paris, ,Madrid ,New York,")
	want := []string{"Paris", "Madrid", "New York"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if SplitList("") != nil {
		t.Fatal("expected nil for empty input")
	}
}
