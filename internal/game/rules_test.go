package game

import "testing"

func TestResolve(t *testing.T) {
	cfg := Config{CardSets: 4, Cards: 13}

	tests := []struct {
		name       string
		deal       Deal
		thresholds Thresholds
		wantP1     int
		wantP2     int
		wantWin    bool
	}{
		{"neither exchanges, higher card wins", Deal{9, 4, 2}, Thresholds{3, 3}, 9, 4, true},
		{"neither exchanges, tie goes to p2", Deal{7, 7, 2}, Thresholds{3, 3}, 7, 7, false},
		{"p1 swaps up, p2 draws lower", Deal{2, 9, 5}, Thresholds{4, 0}, 9, 5, true},
		{"p1 swaps up, p2 draws higher", Deal{2, 9, 11}, Thresholds{4, 0}, 9, 11, false},
		{"p1 swaps up, p2 draws equal", Deal{2, 9, 9}, Thresholds{4, 0}, 9, 9, false},
		{"p1 swaps up, deck king refused", Deal{2, 9, 13}, Thresholds{4, 0}, 9, 2, true},
		{"p2 holding king refuses swap", Deal{2, 13, 5}, Thresholds{4, 0}, 2, 13, false},
		{"p1 swaps down", Deal{6, 3, 1}, Thresholds{6, 0}, 3, 6, false},
		{"p1 swaps equal", Deal{6, 6, 1}, Thresholds{6, 0}, 6, 6, false},
		{"p1 keeps, p2 draws lower", Deal{8, 3, 5}, Thresholds{4, 4}, 8, 5, true},
		{"p1 keeps, p2 draws higher", Deal{8, 3, 10}, Thresholds{4, 4}, 8, 10, false},
		{"p1 keeps, p2 draw of king refused", Deal{8, 3, 13}, Thresholds{4, 4}, 8, 3, true},
		{"p1 keeps, p2 above threshold keeps", Deal{8, 9, 1}, Thresholds{4, 4}, 8, 9, false},
		{"p1 always exchanges king", Deal{13, 12, 1}, Thresholds{13, 0}, 12, 13, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p1, p2 := cfg.Resolve(tt.deal, tt.thresholds)
			if p1 != tt.wantP1 || p2 != tt.wantP2 {
				t.Fatalf("Resolve(%+v, %+v) = (%d, %d), want (%d, %d)", tt.deal, tt.thresholds, p1, p2, tt.wantP1, tt.wantP2)
			}
			if got := cfg.P1Wins(tt.deal, tt.thresholds); got != tt.wantWin {
				t.Errorf("P1Wins = %v, want %v", got, tt.wantWin)
			}
		})
	}
}

func TestRank(t *testing.T) {
	cfg := Config{CardSets: 2, Cards: 3}
	want := []int{1, 2, 3, 1, 2, 3}
	for label := 1; label <= cfg.Deck(); label++ {
		if got := cfg.Rank(label); got != want[label-1] {
			t.Errorf("Rank(%d) = %d, want %d", label, got, want[label-1])
		}
	}
}
