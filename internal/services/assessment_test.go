package services

import (
	"context"
	"errors"
	"testing"

	"github.com/brightsteps/brightsteps-backend/internal/repos"
	"github.com/brightsteps/brightsteps-backend/internal/types"
)

func newAssessmentService(t *testing.T, ai *fakeAIClient) (AssessmentService, *types.Baby) {
	t.Helper()
	conn := testDB(t)
	log := testLogger(t)
	baby := seedBaby(t, conn, 5)
	gen := NewGenerationService(log, ai, testGoalTable(t))
	svc := NewAssessmentService(conn, log, gen, repos.NewAssessmentRepo(conn, log), repos.NewPersonalizedActivityRepo(conn, log))
	return svc, baby
}

func TestGenerateQuestions_PersistsRows(t *testing.T) {
	reply := `{"questions":[
		{"id":"abil_1","domain":"Physical","text":"Can Mina roll over?","age_range":"5 months","helpful_hint":"No pressure!"},
		{"id":"abil_2","domain":"Cognitive","text":"Does Mina track objects?","age_range":"5 months","helpful_hint":"Try a bright toy."}
	]}`
	svc, baby := newAssessmentService(t, &fakeAIClient{reply: reply})

	questions, err := svc.GenerateQuestions(context.Background(), baby)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	for i, q := range questions {
		if q.ID == 0 {
			t.Errorf("question %d not persisted", i)
		}
	}
	if questions[0].QuestionText != "Can Mina roll over?" {
		t.Errorf("unexpected question text %q", questions[0].QuestionText)
	}
}

func TestGenerateQuestions_FailureYieldsEmpty(t *testing.T) {
	svc, baby := newAssessmentService(t, &fakeAIClient{err: errors.New("down")})

	questions, err := svc.GenerateQuestions(context.Background(), baby)
	if err != nil {
		t.Fatalf("generate should not error on model failure: %v", err)
	}
	if len(questions) != 0 {
		t.Fatalf("expected empty set, got %d", len(questions))
	}
}

func TestSaveAnswers_ValidatesResponses(t *testing.T) {
	reply := `{"questions":[{"id":"abil_1","domain":"Physical","text":"q","age_range":"5 months","helpful_hint":"h"}]}`
	svc, baby := newAssessmentService(t, &fakeAIClient{reply: reply})
	ctx := context.Background()

	questions, err := svc.GenerateQuestions(ctx, baby)
	if err != nil || len(questions) != 1 {
		t.Fatalf("setup failed: %v (%d questions)", err, len(questions))
	}

	err = svc.SaveAnswers(ctx, baby, []AssessmentAnswer{{QuestionID: questions[0].ID, Response: "Pretty Good"}})
	if !errors.Is(err, ErrInvalidResponse) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}

	err = svc.SaveAnswers(ctx, baby, []AssessmentAnswer{{QuestionID: questions[0].ID, Response: types.AssessmentResponseMastered}})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	done, err := svc.AssessedToday(ctx, baby.ID)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !done {
		t.Errorf("assessment saved just now should count as assessed today")
	}
}

func TestGeneratePersonalized_FromAssessmentState(t *testing.T) {
	questionReply := `{"questions":[{"id":"abil_1","domain":"Physical","text":"Can Mina roll over?","age_range":"5 months","helpful_hint":"h"}]}`
	ai := &fakeAIClient{reply: questionReply}
	svc, baby := newAssessmentService(t, ai)
	ctx := context.Background()

	questions, err := svc.GenerateQuestions(ctx, baby)
	if err != nil || len(questions) != 1 {
		t.Fatalf("setup failed: %v", err)
	}
	if err := svc.SaveAnswers(ctx, baby, []AssessmentAnswer{{QuestionID: questions[0].ID, Response: types.AssessmentResponseOnTrack}}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	ai.reply = `{"activities":[
		{"title":"Rolling Practice","description":"d","materials":["Mat"],"how_to":["Step"],"why_it_helps":"w","target_domain":"Physical","target_ability":"Rolling","ability_state":"On-Track","duration_min":0,"safety_notes":"s","reflection_prompt":"r"}
	]}`

	activities, err := svc.GeneratePersonalized(ctx, baby)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(activities) != 1 {
		t.Fatalf("expected 1 activity, got %d", len(activities))
	}
	if activities[0].DurationMin != 10 {
		t.Errorf("zero duration should default to 10, got %d", activities[0].DurationMin)
	}

	listed, err := svc.ListPersonalized(ctx, baby.ID, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected persisted activity, got %d", len(listed))
	}
}
