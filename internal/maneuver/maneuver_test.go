package maneuver

import "testing"

func TestClassifyKnownCodes(t *testing.T) {
	cases := []struct {
		code  int
		label Label
		sign  int
	}{
		{0, None, 0},
		{1, Start, 0},
		{4, Destination, 0},
		{7, Straight, 0},
		{8, Continue, 0},
		{9, SlightRight, 2},
		{10, Right, 2},
		{11, SharpRight, 2},
		{12, UturnRight, 2},
		{13, UturnLeft, -2},
		{14, SharpLeft, -2},
		{15, Left, -2},
		{16, SlightLeft, -2},
		{18, SharpRight, 2},
		{21, Ferry, 0},
		{22, RoundaboutEnter, 4},
		{23, RoundaboutExit, 4},
		{24, Merge, 6},
		{25, RoundaboutEnter, 4},
		{26, RoundaboutExit, 4},
	}

	for _, c := range cases {
		got := Classify(c.code)
		if got.Label != c.label || got.Sign != c.sign {
			t.Fatalf("code %d: expected %s/%d, got %s/%d",
				c.code, c.label, c.sign, got.Label, got.Sign)
		}
	}
}

func TestClassifyFullRange(t *testing.T) {
	labels := map[Label]bool{
		None: true, Straight: true, Start: true, StartRight: true,
		StartLeft: true, Destination: true, DestinationRight: true,
		DestinationLeft: true, SlightLeft: true, Left: true, Right: true,
		SlightRight: true, Continue: true, SharpLeft: true, SharpRight: true,
		UturnLeft: true, UturnRight: true, Ferry: true,
		RoundaboutEnter: true, RoundaboutExit: true, StayLeft: true,
		StayRight: true, Merge: true,
	}
	signs := map[int]bool{SignLeft: true, SignNone: true, SignRight: true,
		SignRoundabout: true, SignMerge: true}

	for code := 0; code <= 26; code++ {
		got := Classify(code)
		if !labels[got.Label] {
			t.Fatalf("code %d: label %q outside enumeration", code, got.Label)
		}
		if !signs[got.Sign] {
			t.Fatalf("code %d: sign %d outside allowed set", code, got.Sign)
		}
	}
}

func TestClassifyUnknownCodes(t *testing.T) {
	for _, code := range []int{-1, 27, 99} {
		got := Classify(code)
		if got.Label != Continue || got.Sign != SignNone {
			t.Fatalf("code %d: expected continue/0, got %s/%d",
				code, got.Label, got.Sign)
		}
	}
}
