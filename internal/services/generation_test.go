package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/brightsteps/brightsteps-backend/internal/config"
	"github.com/brightsteps/brightsteps-backend/internal/logger"
)

type fakeAIClient struct {
	reply string
	err   error
	calls int
}

func (f *fakeAIClient) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("production")
	if err != nil {
		t.Fatalf("logger init failed: %v", err)
	}
	return log
}

func testGoalTable(t *testing.T) *config.GoalTable {
	t.Helper()
	table, err := config.LoadGoalTable()
	if err != nil {
		t.Fatalf("goal table load failed: %v", err)
	}
	return table
}

func TestAreaCountForAge(t *testing.T) {
	cases := []struct {
		months int
		want   int
	}{
		{0, 2},
		{3, 2},
		{4, 3},
		{6, 3},
		{7, 5},
		{12, 5},
		{13, 6},
		{24, 6},
		{25, 8},
		{60, 8},
	}
	for _, tc := range cases {
		if got := AreaCountForAge(tc.months); got != tc.want {
			t.Errorf("AreaCountForAge(%d) = %d, want %d", tc.months, got, tc.want)
		}
	}
}

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare json", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced no lang", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  {\"a\":1}\n", `{"a":1}`},
	}
	for _, tc := range cases {
		if got := stripCodeFence(tc.in); got != tc.want {
			t.Errorf("%s: stripCodeFence(%q) = %q, want %q", tc.name, tc.in, got, tc.want)
		}
	}
}

func activitiesJSON(n int) string {
	out := `{"activities":[`
	for i := 0; i < n; i++ {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf(`{"title":"Activity %d","short_description":"d","icon":"🎵","materials":["a"],"how_to":["s"],"why_it_helps":"w","duration_min":8,"safety_notes":"n","reflection_prompt":"p"}`, i+1)
	}
	return out + `]}`
}

func TestGenerateAreaActivities_ExactlyFour(t *testing.T) {
	ai := &fakeAIClient{reply: activitiesJSON(4)}
	gs := NewGenerationService(testLogger(t), ai, testGoalTable(t))

	got := gs.GenerateAreaActivities(context.Background(), "Wiggle Fun", "desc", "Physical", 0, 6)
	if len(got) != 4 {
		t.Fatalf("expected 4 activities, got %d", len(got))
	}
	if got[0].Title != "Activity 1" {
		t.Errorf("unexpected first title %q", got[0].Title)
	}
}

func TestGenerateAreaActivities_TruncatesOvershoot(t *testing.T) {
	ai := &fakeAIClient{reply: activitiesJSON(6)}
	gs := NewGenerationService(testLogger(t), ai, testGoalTable(t))

	got := gs.GenerateAreaActivities(context.Background(), "Wiggle Fun", "desc", "Physical", 0, 6)
	if len(got) != 4 {
		t.Fatalf("expected overshoot truncated to 4, got %d", len(got))
	}
	if got[3].Title != "Activity 4" {
		t.Errorf("truncation should keep leading records, got %q", got[3].Title)
	}
}

func TestGenerateAreaActivities_RejectsUndershoot(t *testing.T) {
	ai := &fakeAIClient{reply: activitiesJSON(3)}
	gs := NewGenerationService(testLogger(t), ai, testGoalTable(t))

	got := gs.GenerateAreaActivities(context.Background(), "Wiggle Fun", "desc", "Physical", 0, 6)
	if len(got) != 0 {
		t.Fatalf("expected undershoot rejected as empty, got %d", len(got))
	}
}

func TestGenerateAreaActivities_FailuresCollapseToEmpty(t *testing.T) {
	cases := []struct {
		name string
		ai   *fakeAIClient
	}{
		{"call error", &fakeAIClient{err: fmt.Errorf("boom")}},
		{"invalid json", &fakeAIClient{reply: "sorry, I cannot do that"}},
		{"missing key", &fakeAIClient{reply: `{"items":[]}`}},
		{"wrong shape", &fakeAIClient{reply: `{"activities":{"title":"x"}}`}},
	}
	gsFor := func(ai *fakeAIClient) GenerationService {
		return NewGenerationService(testLogger(t), ai, testGoalTable(t))
	}
	for _, tc := range cases {
		got := gsFor(tc.ai).GenerateAreaActivities(context.Background(), "Area", "d", "Physical", 0, 6)
		if len(got) != 0 {
			t.Errorf("%s: expected empty result, got %d records", tc.name, len(got))
		}
	}
}

func TestGenerateDevelopmentAreas_AssignsPaletteAndCount(t *testing.T) {
	reply := `{"areas":[
		{"name":"Wiggle and Bounce Fun","type":"Physical","age_min":0,"age_max":6,"description":"d","activity_count":7},
		{"name":"Mystery Area","type":"Unheard Of","age_min":0,"age_max":6,"description":"d","activity_count":4}
	]}`
	ai := &fakeAIClient{reply: reply}
	table := testGoalTable(t)
	gs := NewGenerationService(testLogger(t), ai, table)

	got := gs.GenerateDevelopmentAreas(context.Background(), "Mina", 4, []string{"Physical"})
	if len(got) != 2 {
		t.Fatalf("expected 2 areas, got %d", len(got))
	}
	if got[0].Color != table.ColorFor("Physical") {
		t.Errorf("known type should map to its palette color, got %q", got[0].Color)
	}
	if got[1].Color != table.ColorFor("nope") {
		t.Errorf("unknown type should fall back to default color, got %q", got[1].Color)
	}
	for i, area := range got {
		if area.ActivityCount != 4 {
			t.Errorf("area %d activity count forced to 4, got %d", i, area.ActivityCount)
		}
	}
}

func TestGenerateChallengeTemplates_RejectsWrongCount(t *testing.T) {
	reply := `{"challenges":[{"duration":30,"title":"a"},{"duration":90,"title":"b"}]}`
	ai := &fakeAIClient{reply: reply}
	gs := NewGenerationService(testLogger(t), ai, testGoalTable(t))

	if got := gs.GenerateChallengeTemplates(context.Background()); len(got) != 0 {
		t.Fatalf("expected wrong-count template set rejected, got %d", len(got))
	}
}

func TestGenerateChallengeTemplates_AcceptsFour(t *testing.T) {
	reply := `{"challenges":[
		{"duration":30,"title":"30-Day Giggle Quest","tagline":"t","description":"d","emoji":"🎯","development_types":["Physical"]},
		{"duration":90,"title":"90-Day Bond","tagline":"t","description":"d","emoji":"🎯","development_types":["Cognitive"]},
		{"duration":180,"title":"Half-Year Adventure","tagline":"t","description":"d","emoji":"🎯","development_types":["Linguistic"]},
		{"duration":365,"title":"Year of Wonder","tagline":"t","description":"d","emoji":"🎯","development_types":["Social-Emotional"]}
	]}`
	ai := &fakeAIClient{reply: reply}
	gs := NewGenerationService(testLogger(t), ai, testGoalTable(t))

	got := gs.GenerateChallengeTemplates(context.Background())
	if len(got) != 4 {
		t.Fatalf("expected 4 challenge templates, got %d", len(got))
	}
	if got[3].Duration != 365 {
		t.Errorf("unexpected last duration %d", got[3].Duration)
	}
}
