package confidence

import "testing"

func TestString_TierBoundaries(t *testing.T) {
	cases := []struct {
		level Level
		want  string
	}{
		{Low, "low"},
		{Medium, "medium"},
		{High, "high"},
		{Terminal, "high"},
		{0.7, "medium"},
		{0.0, "low"},
	}
	for _, c := range cases {
		if got := c.level.String(); got != c.want {
			t.Errorf("Level(%v).String() = %q, want %q", float32(c.level), got, c.want)
		}
	}
}

func TestMax(t *testing.T) {
	if Max(Low, High) != High {
		t.Fatal("Max(Low, High) should be High")
	}
	if Max(High, Low) != High {
		t.Fatal("Max is not commutative in result")
	}
	if Max(Medium, Medium) != Medium {
		t.Fatal("Max(Medium, Medium) should be Medium")
	}
}

func TestTerminal_EqualsHighNumerically(t *testing.T) {
	if Terminal != High {
		t.Fatalf("Terminal = %v, want equal to High = %v", Terminal, High)
	}
}
