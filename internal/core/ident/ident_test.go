package ident

import "testing"

func TestNext(t *testing.T) {
	tests := []struct {
		name string
		ids  []int
		want int
	}{
		{name: "empty collection starts at 1", ids: nil, want: 1},
		{name: "dense ids", ids: []int{1, 2, 3}, want: 4},
		{name: "gaps do not get refilled", ids: []int{1, 7, 3}, want: 8},
		{name: "single record", ids: []int{42}, want: 43},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Next(tt.ids); got != tt.want {
				t.Errorf("Next(%v) = %d, want %d", tt.ids, got, tt.want)
			}
		})
	}
}

func TestNextNeverRepeats(t *testing.T) {
	var ids []int
	seen := make(map[int]bool)
	for i := 0; i < 50; i++ {
		id := Next(ids)
		if seen[id] {
			t.Fatalf("Next repeated id %d", id)
		}
		if len(ids) > 0 && id <= ids[len(ids)-1] {
			t.Fatalf("id %d not increasing after %v", id, ids[len(ids)-1])
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if len(ids) != 50 {
		t.Fatalf("expected 50 ids, got %d", len(ids))
	}
}

func TestSequence(t *testing.T) {
	got := Sequence([]int{2, 5}, 3)
	want := []int{6, 7, 8}
	if len(got) != len(want) {
		t.Fatalf("Sequence length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Sequence[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
