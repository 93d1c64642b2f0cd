package config

import "testing"

func TestLoadGoalTable(t *testing.T) {
	table, err := LoadGoalTable()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(table.Goals) != 4 {
		t.Fatalf("expected 4 goals, got %d", len(table.Goals))
	}
	tags := table.Tags()
	want := []string{"Physical", "Cognitive", "Linguistic", "Social-Emotional"}
	for i, tag := range want {
		if tags[i] != tag {
			t.Errorf("tag %d = %q, want %q", i, tags[i], tag)
		}
	}
}

func TestColorAndEmojiFallbacks(t *testing.T) {
	table, err := LoadGoalTable()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got := table.ColorFor("Physical"); got != "#D6E8F7" {
		t.Errorf("ColorFor(Physical) = %q", got)
	}
	if got := table.ColorFor("Made Up Type"); got != table.DefaultColor {
		t.Errorf("unknown type should use default color, got %q", got)
	}
	if got := table.EmojiFor("Made Up Type"); got != table.DefaultEmoji {
		t.Errorf("unknown type should use default emoji, got %q", got)
	}
	if table.KnownTag("Made Up Type") {
		t.Errorf("invented tag must not be known")
	}
}

func TestMonthsForAgeGroup(t *testing.T) {
	table, err := LoadGoalTable()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	cases := []struct {
		label string
		want  int
	}{
		{"0–3 Months", 2},
		{"3–6 Months", 5},
		{"6–12 Months", 9},
		{"1–2 Years", 18},
		{"2–4 Years", 36},
		{"4–6 Years", 60},
		{"Unknown Label", 12},
	}
	for _, tc := range cases {
		if got := table.MonthsForAgeGroup(tc.label); got != tc.want {
			t.Errorf("MonthsForAgeGroup(%q) = %d, want %d", tc.label, got, tc.want)
		}
	}
}
