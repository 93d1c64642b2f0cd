package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/brightsteps/brightsteps-backend/internal/config"
	"github.com/brightsteps/brightsteps-backend/internal/logger"
)

// Generated record shapes, mirroring the JSON the model is asked to return.

type GeneratedQuestion struct {
	ID          string `json:"id"`
	Domain      string `json:"domain"`
	Text        string `json:"text"`
	AgeRange    string `json:"age_range"`
	HelpfulHint string `json:"helpful_hint"`
}

type GeneratedArea struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	AgeMin        int    `json:"age_min"`
	AgeMax        int    `json:"age_max"`
	Description   string `json:"description"`
	ActivityCount int    `json:"activity_count"`
	Color         string `json:"color,omitempty"`
	Emoji         string `json:"emoji,omitempty"`
}

type GeneratedActivity struct {
	Title            string   `json:"title"`
	ShortDescription string   `json:"short_description"`
	Icon             string   `json:"icon"`
	Materials        []string `json:"materials"`
	HowTo            []string `json:"how_to"`
	WhyItHelps       string   `json:"why_it_helps"`
	DurationMin      int      `json:"duration_min"`
	SafetyNotes      string   `json:"safety_notes"`
	ReflectionPrompt string   `json:"reflection_prompt"`
}

type GeneratedPersonalizedActivity struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Materials        []string `json:"materials"`
	HowTo            []string `json:"how_to"`
	WhyItHelps       string   `json:"why_it_helps"`
	TargetDomain     string   `json:"target_domain"`
	TargetAbility    string   `json:"target_ability"`
	AbilityState     string   `json:"ability_state"`
	DurationMin      int      `json:"duration_min"`
	SafetyNotes      string   `json:"safety_notes"`
	ReflectionPrompt string   `json:"reflection_prompt"`
}

type GeneratedChallenge struct {
	Duration         int      `json:"duration"`
	Title            string   `json:"title"`
	Tagline          string   `json:"tagline"`
	Description      string   `json:"description"`
	Emoji            string   `json:"emoji"`
	DevelopmentTypes []string `json:"development_types"`
}

type GeneratedDailyActivity struct {
	DayNumber   int      `json:"day_number"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Materials   []string `json:"materials"`
	HowTo       []string `json:"how_to"`
	WhyItHelps  string   `json:"why_it_helps"`
	DurationMin int      `json:"duration_min"`
}

// AssessmentSummary is the slice of assessment state fed back into the
// personalized-activity prompt.
type AssessmentSummary struct {
	Domain  string `json:"domain"`
	Ability string `json:"ability"`
	State   string `json:"state"`
}

const activitiesPerArea = 4

// GenerationService builds prompts from structured inputs, invokes the
// model, and parses the reply. Every failure path collapses to an empty
// slice: callers treat "nothing generated" and "generation failed" the
// same and render without content.
type GenerationService interface {
	GenerateAbilityQuestions(ctx context.Context, babyName string, ageMonths int, goals []string) []GeneratedQuestion
	GeneratePersonalizedActivities(ctx context.Context, babyName string, ageMonths int, goals []string, assessments []AssessmentSummary) []GeneratedPersonalizedActivity
	GenerateDevelopmentAreas(ctx context.Context, babyName string, ageMonths int, goals []string) []GeneratedArea
	GenerateAreaActivities(ctx context.Context, areaName, description, developmentType string, ageMin, ageMax int) []GeneratedActivity
	GenerateChallengeTemplates(ctx context.Context) []GeneratedChallenge
	GenerateChallengeDailyActivities(ctx context.Context, durationDays int, title string, ageMonths, numDays int) []GeneratedDailyActivity
}

type generationService struct {
	log   *logger.Logger
	ai    AIClient
	goals *config.GoalTable
}

func NewGenerationService(log *logger.Logger, ai AIClient, goals *config.GoalTable) GenerationService {
	serviceLog := log.With("service", "GenerationService")
	return &generationService{log: serviceLog, ai: ai, goals: goals}
}

// AreaCountForAge is the step function deciding how many development areas
// a profile gets.
func AreaCountForAge(ageMonths int) int {
	switch {
	case ageMonths <= 3:
		return 2
	case ageMonths <= 6:
		return 3
	case ageMonths <= 12:
		return 5
	case ageMonths <= 24:
		return 6
	default:
		return 8
	}
}

// stripCodeFence removes a leading/trailing markdown code fence when the
// model wraps its JSON despite instructions.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	}
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// generate runs one prompt and unmarshals the named top-level array into
// out. Returns false on any failure; the caller falls back to empty.
func (gs *generationService) generate(ctx context.Context, op, prompt string, maxTokens int, key string, out any) bool {
	text, err := gs.ai.Complete(ctx, prompt, maxTokens)
	if err != nil {
		gs.log.Warn("Generation call failed", "op", op, "error", err)
		return false
	}
	text = stripCodeFence(text)

	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		gs.log.Warn("Generated text is not valid JSON", "op", op, "error", err)
		return false
	}
	raw, ok := payload[key]
	if !ok {
		gs.log.Warn("Generated JSON missing expected key", "op", op, "key", key)
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		gs.log.Warn("Generated records do not match expected shape", "op", op, "error", err)
		return false
	}
	return true
}

func (gs *generationService) GenerateAbilityQuestions(ctx context.Context, babyName string, ageMonths int, goals []string) []GeneratedQuestion {
	goalsText := strings.Join(goals, ", ")
	prompt := fmt.Sprintf(`You are a developmental psychology expert. Generate ability assessment questions for a %d-month-old baby named %s, focusing on: %s.

Requirements:
1. Generate 5-8 questions total (mix across the selected goals)
2. Each question should be answerable by a parent with: "Mastered" / "On-Track" / "Not Sure"
3. Base on verified sources: CDC, ASQ (Ages & Stages Questionnaire), WHO milestones
4. Tone: warm, non-judgmental, empowering
5. Use baby name: %s

Format as JSON:
{
  "questions": [
    {
      "id": "abil_1",
      "domain": "Physical",
      "text": "Can %s roll from back to front on their own?",
      "age_range": "%d months",
      "helpful_hint": "They don't need to do it perfectly every time."
    }
  ]
}

Return ONLY valid JSON.`, ageMonths, babyName, goalsText, babyName, babyName, ageMonths)

	var questions []GeneratedQuestion
	if !gs.generate(ctx, "ability_questions", prompt, 1500, "questions", &questions) {
		return []GeneratedQuestion{}
	}
	return questions
}

func (gs *generationService) GeneratePersonalizedActivities(ctx context.Context, babyName string, ageMonths int, goals []string, assessments []AssessmentSummary) []GeneratedPersonalizedActivity {
	goalsText := strings.Join(goals, ", ")
	summaryJSON, err := json.MarshalIndent(assessments, "", "  ")
	if err != nil {
		gs.log.Warn("Could not marshal assessment summary", "error", err)
		return []GeneratedPersonalizedActivity{}
	}

	prompt := fmt.Sprintf(`You are a developmental psychologist creating personalized activities for a parent.

Child: %s, %d months old
Development Goals: %s

Ability Assessment Results:
%s

Generate 3-5 personalized activities that:
1. Target the abilities marked as "On-Track" or "Not Sure" (needs support)
2. Celebrate abilities marked as "Mastered" with extension activities
3. Are age-appropriate and safe
4. Include clear materials, steps, and why it matters
5. Include a reflection prompt for the parent

Format as JSON:
{
  "activities": [
    {
      "title": "Rolling Practice with Favorite Toy",
      "description": "Help %s practice rolling by placing their favorite toy just out of reach",
      "materials": ["Soft mat", "Favorite toy"],
      "how_to": ["Lay %s on their back on a soft mat", "Place favorite toy to the side, slightly out of reach"],
      "why_it_helps": "Rolling builds core strength and coordination needed for sitting and crawling.",
      "target_domain": "Physical",
      "target_ability": "Rolling from back to front",
      "ability_state": "On-Track",
      "duration_min": 10,
      "safety_notes": "Always supervise. Use a soft surface.",
      "reflection_prompt": "How did %s respond to this activity?"
    }
  ]
}

Return ONLY valid JSON.`, babyName, ageMonths, goalsText, string(summaryJSON), babyName, babyName, babyName)

	var activities []GeneratedPersonalizedActivity
	if !gs.generate(ctx, "personalized_activities", prompt, 2500, "activities", &activities) {
		return []GeneratedPersonalizedActivity{}
	}
	return activities
}

func (gs *generationService) GenerateDevelopmentAreas(ctx context.Context, babyName string, ageMonths int, goals []string) []GeneratedArea {
	numAreas := AreaCountForAge(ageMonths)
	goalsText := strings.Join(goals, ", ")

	prompt := fmt.Sprintf(`You are a child development expert creating FUN, playful area names (NOT clinical).

Generate %d development areas for a %d-month-old baby named %s.
Development goals: %s

CRITICAL REQUIREMENTS:
1. Generate exactly %d areas
2. Use FUN, PLAYFUL names (NOT clinical/scary terms)
3. Each area gets EXACTLY 4 activities
4. Names should make parents excited, not worried
5. Include warm, encouraging descriptions

NAME STYLE EXAMPLES (good):
"Puzzle Master Adventures" (instead of "Problem Solving")
"Chat and Share Time" (instead of "Conversational Skills")
"Wiggle and Bounce Fun" (instead of "Gross Motor Development")
"Feeling Friends" (instead of "Emotional Recognition")

NAME STYLE EXAMPLES (bad - avoid):
"Speech and Language Disorder Prevention"
"Cognitive Delay Intervention"

Format as JSON (ONLY return valid JSON):
{
  "areas": [
    {
      "name": "Puzzle Master Adventures",
      "type": "Cognitive",
      "age_min": 24,
      "age_max": 72,
      "description": "Fun problem-solving activities that help your little one think creatively!",
      "activity_count": 4
    }
  ]
}

Make descriptions warm, encouraging, and parent-friendly (NOT scary or clinical).
EACH AREA MUST HAVE activity_count: 4 (fixed, not variable).
Return ONLY JSON, no markdown.`, numAreas, ageMonths, babyName, goalsText, numAreas)

	var areas []GeneratedArea
	if !gs.generate(ctx, "development_areas", prompt, 2000, "areas", &areas) {
		return []GeneratedArea{}
	}
	for i := range areas {
		areas[i].Color = gs.goals.ColorFor(areas[i].Type)
		areas[i].Emoji = gs.goals.EmojiFor(areas[i].Type)
		areas[i].ActivityCount = activitiesPerArea
	}
	return areas
}

func (gs *generationService) GenerateAreaActivities(ctx context.Context, areaName, description, developmentType string, ageMin, ageMax int) []GeneratedActivity {
	prompt := fmt.Sprintf(`You are a child development expert. Generate EXACTLY 4 fun activities for this area:

Area: %s
Development Type: %s
Age Range: %d-%d months
Description: %s

CRITICAL REQUIREMENTS:
1. Generate EXACTLY 4 activities (not 3, not 5, exactly 4)
2. Each activity: 5-10 minutes
3. All doable at home with common items
4. Safe, age-appropriate, FUN (not intimidating)
5. Tone: warm, encouraging, playful
6. Each activity has a fun emoji icon
7. Include materials, steps, why it helps, safety notes, reflection prompt

Format as JSON (ONLY return valid JSON):
{
  "activities": [
    {
      "title": "Activity Name",
      "short_description": "One-line fun description",
      "icon": "🎵",
      "materials": ["Item 1", "Item 2"],
      "how_to": ["Step 1: Description", "Step 2: Description"],
      "why_it_helps": "Why your child loves this & what they learn",
      "duration_min": 8,
      "safety_notes": "Keep it fun and safe",
      "reflection_prompt": "What did you notice?"
    }
  ]
}

Return ONLY JSON. Must have exactly 4 activities in the array.`, areaName, developmentType, ageMin, ageMax, description)

	var activities []GeneratedActivity
	if !gs.generate(ctx, "area_activities", prompt, 3000, "activities", &activities) {
		return []GeneratedActivity{}
	}
	return gs.normalizeAreaActivities(areaName, activities)
}

// normalizeAreaActivities enforces the exactly-four cardinality: overshoot
// is truncated, undershoot is rejected outright so the set stays absent
// and a later visit can regenerate it.
func (gs *generationService) normalizeAreaActivities(areaName string, activities []GeneratedActivity) []GeneratedActivity {
	switch {
	case len(activities) == activitiesPerArea:
		return activities
	case len(activities) > activitiesPerArea:
		gs.log.Warn("Generator returned extra area activities, truncating",
			"area", areaName, "got", len(activities), "want", activitiesPerArea)
		return activities[:activitiesPerArea]
	default:
		gs.log.Warn("Generator returned too few area activities, rejecting set",
			"area", areaName, "got", len(activities), "want", activitiesPerArea)
		return []GeneratedActivity{}
	}
}

func (gs *generationService) GenerateChallengeTemplates(ctx context.Context) []GeneratedChallenge {
	prompt := `Create 4 parent-child bonding challenges for different durations. These are high-commitment programs that help parents build consistent bonding habits with their children.

Create challenges for: 30 days, 90 days, 180 days, and 365 days.

Each challenge should be:
- Emotionally compelling
- Age-appropriate (0-6 years)
- Focused on building parent-child connection
- Transformational (clear before/after state)
- Encouraging and warm in tone

Return as JSON with this structure:
{
  "challenges": [
    {
      "duration": 30,
      "title": "30-Day Giggle Quest",
      "tagline": "Build Curiosity & Wonder",
      "description": "A 30-day adventure where you and your child explore the world together.",
      "emoji": "🎯",
      "development_types": ["Physical", "Cognitive", "Linguistic", "Social-Emotional"]
    }
  ]
}

Return ONLY valid JSON, no markdown formatting.`

	var challenges []GeneratedChallenge
	if !gs.generate(ctx, "challenge_templates", prompt, 2000, "challenges", &challenges) {
		return []GeneratedChallenge{}
	}
	if len(challenges) != 4 {
		gs.log.Warn("Generator returned wrong challenge template count, rejecting set",
			"got", len(challenges), "want", 4)
		return []GeneratedChallenge{}
	}
	return challenges
}

func (gs *generationService) GenerateChallengeDailyActivities(ctx context.Context, durationDays int, title string, ageMonths, numDays int) []GeneratedDailyActivity {
	if numDays <= 0 {
		numDays = 10
	}
	prompt := fmt.Sprintf(`Generate %d daily parent-child bonding activities for the "%s" challenge (total duration: %d days).

Target age: %d months old

Requirements for each activity:
- 10-15 minute duration
- Age-appropriate and safe
- Builds parent-child connection
- Variety across physical, cognitive, linguistic, social-emotional domains
- Materials should be common household items
- Clear, simple instructions
- Warm, encouraging tone

Format as JSON:
{
  "activities": [
    {
      "day_number": 1,
      "title": "Morning Cuddle & Song",
      "description": "Start the day with gentle cuddles and a favorite song",
      "materials": ["Your voice", "Comfortable spot"],
      "how_to": ["Sit comfortably with baby", "Sing a favorite song slowly"],
      "why_it_helps": "Builds emotional security through music and closeness",
      "duration_min": 10
    }
  ]
}

Return ONLY valid JSON with exactly %d activities.`, numDays, title, durationDays, ageMonths, numDays)

	var activities []GeneratedDailyActivity
	if !gs.generate(ctx, "challenge_daily_activities", prompt, 4000, "activities", &activities) {
		return []GeneratedDailyActivity{}
	}
	return activities
}
