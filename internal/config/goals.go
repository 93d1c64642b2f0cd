// Package config holds the static lookup tables the product ships with:
// the development-goal vocabulary with its pastel palette and emoji, and
// the onboarding age groups with their approximate month midpoints.
package config

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed goals.yaml
var goalsYAML []byte

type Goal struct {
	Tag   string `yaml:"tag"`
	Color string `yaml:"color"`
	Emoji string `yaml:"emoji"`
	Label string `yaml:"label"`
}

type AgeGroup struct {
	Label  string `yaml:"label"`
	Months int    `yaml:"months"`
}

type GoalTable struct {
	Goals        []Goal     `yaml:"goals"`
	DefaultColor string     `yaml:"default_color"`
	DefaultEmoji string     `yaml:"default_emoji"`
	AgeGroups    []AgeGroup `yaml:"age_groups"`

	byTag map[string]Goal
}

func LoadGoalTable() (*GoalTable, error) {
	var t GoalTable
	if err := yaml.Unmarshal(goalsYAML, &t); err != nil {
		return nil, fmt.Errorf("failed to parse embedded goal table: %w", err)
	}
	if len(t.Goals) == 0 {
		return nil, fmt.Errorf("embedded goal table is empty")
	}
	t.byTag = make(map[string]Goal, len(t.Goals))
	for _, g := range t.Goals {
		t.byTag[g.Tag] = g
	}
	return &t, nil
}

// ColorFor returns the pastel color for a goal tag, falling back to the
// neutral default for tags the generator invents.
func (t *GoalTable) ColorFor(tag string) string {
	if g, ok := t.byTag[tag]; ok {
		return g.Color
	}
	return t.DefaultColor
}

func (t *GoalTable) EmojiFor(tag string) string {
	if g, ok := t.byTag[tag]; ok {
		return g.Emoji
	}
	return t.DefaultEmoji
}

func (t *GoalTable) KnownTag(tag string) bool {
	_, ok := t.byTag[tag]
	return ok
}

// Tags returns the goal vocabulary in declaration order.
func (t *GoalTable) Tags() []string {
	out := make([]string, 0, len(t.Goals))
	for _, g := range t.Goals {
		out = append(out, g.Tag)
	}
	return out
}

// MonthsForAgeGroup maps an onboarding age-group label to the midpoint of
// its range in months. Unknown labels fall back to 12 months.
func (t *GoalTable) MonthsForAgeGroup(label string) int {
	for _, ag := range t.AgeGroups {
		if ag.Label == label {
			return ag.Months
		}
	}
	return 12
}
