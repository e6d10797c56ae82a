package domain

import (
	"math"
	"testing"
)

func TestRecord_CoalesceAndOr(t *testing.T) {
	r := Record{"zero": 0.0, "empty": "", "nil": nil, "name": "Ravi", "flag": false}

	if got := r.Coalesce("zero", 5.0); got != 0.0 {
		t.Errorf("Coalesce must keep a present zero, got %v", got)
	}
	if got := r.Coalesce("nil", "x"); got != "x" {
		t.Errorf("Coalesce must skip nil, got %v", got)
	}
	if got := r.Coalesce("flag", true); got != false {
		t.Errorf("Coalesce must keep false, got %v", got)
	}
	if got := r.Or("zero", 5.0); got != 5.0 {
		t.Errorf("Or must skip zero, got %v", got)
	}
	if got := r.StringOr("empty", "offline"); got != "offline" {
		t.Errorf("StringOr must skip empty, got %q", got)
	}
	if got := r.StringOr("name", "x"); got != "Ravi" {
		t.Errorf("StringOr = %q", got)
	}
	if got := (Record{"n": 12}).StringOr("n", "x"); got != "12" {
		t.Errorf("StringOr must format non-strings, got %q", got)
	}
}

func TestTruthy(t *testing.T) {
	falsy := []any{nil, false, 0, 0.0, math.NaN(), "", int64(0)}
	for _, v := range falsy {
		if Truthy(v) {
			t.Errorf("expected %#v to be falsy", v)
		}
	}
	truthy := []any{true, 1, -1.5, "0", []any{}, map[string]any{}}
	for _, v := range truthy {
		if !Truthy(v) {
			t.Errorf("expected %#v to be truthy", v)
		}
	}
}

func TestNearestDeliveryBoy_Flatten(t *testing.T) {
	n := NearestDeliveryBoy{BoyID: "b1", DistanceKm: 1.234, Record: Record{"status": "online", "boy_id": "stored"}}
	flat := n.Flatten()
	if flat["distance_km"] != 1.234 {
		t.Errorf("distance missing: %v", flat)
	}
	if flat["boy_id"] != "stored" {
		t.Errorf("stored fields must win, got %v", flat["boy_id"])
	}
}

func TestRouteCacheEntry_Expired(t *testing.T) {
	e := RouteCacheEntry{ExpiresAt: 1000}
	if e.Expired(999) {
		t.Error("not expired before expires_at")
	}
	if !e.Expired(1000) {
		t.Error("expired at expires_at")
	}
}
