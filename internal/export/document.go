package export

import (
	"fmt"
	"strings"

	"fitplan/training-planner/internal/domain"
	"fitplan/training-planner/internal/planner"
)

// WriteDocument renders the plan as a print-oriented plain-text
// document: weeks as top-level sections, trainings beneath with their
// blocks and prescriptions indented. An empty plan renders the title
// line and nothing else.
func WriteDocument(weeks []domain.TrainingWeek) string {
	var b strings.Builder
	b.WriteString("TRAINING PLAN\n")
	b.WriteString(strings.Repeat("=", 60))
	b.WriteString("\n")

	for i := range weeks {
		week := &weeks[i]
		writeWeek(&b, week)
	}
	return b.String()
}

func writeWeek(b *strings.Builder, week *domain.TrainingWeek) {
	fmt.Fprintf(b, "\nWEEK %d: %s to %s [%s]\n",
		planner.WeekNumber(week.StartDate),
		week.StartDate.Format("2006-01-02"),
		week.EndDate.Format("2006-01-02"),
		planner.StatusLabel(week.Status))
	if week.Focus != nil {
		fmt.Fprintf(b, "Focus: %s\n", week.Focus.Name)
	}
	if week.Notes != "" {
		fmt.Fprintf(b, "Notes: %s\n", week.Notes)
	}
	b.WriteString(strings.Repeat("-", 60))
	b.WriteString("\n")

	if len(week.Trainings) == 0 {
		b.WriteString("  (no trainings scheduled)\n")
		return
	}
	for j := range week.Trainings {
		writeTraining(b, &week.Trainings[j])
	}
}

func writeTraining(b *strings.Builder, training *domain.Training) {
	fmt.Fprintf(b, "\n  %s - %s\n",
		training.ScheduledDate.Format("Monday 2006-01-02"), training.Title)
	if training.Intensity != "" {
		fmt.Fprintf(b, "  Intensity: %s", training.Intensity)
		if training.EstimatedDurationMin > 0 {
			fmt.Fprintf(b, ", ~%d min", training.EstimatedDurationMin)
		}
		b.WriteString("\n")
	}
	if training.Description != "" {
		fmt.Fprintf(b, "  %s\n", training.Description)
	}

	for k := range training.Blocks {
		writeBlock(b, &training.Blocks[k])
	}
}

func writeBlock(b *strings.Builder, block *domain.TrainingBlock) {
	label := block.Label
	if label == "" {
		label = strings.ToUpper(string(block.Type))
	}
	fmt.Fprintf(b, "    [%s]\n", label)

	for l := range block.Prescriptions {
		p := &block.Prescriptions[l]
		fmt.Fprintf(b, "      %s: %dx%s", exerciseName(p), p.Sets, p.Reps)
		if p.Load != "" {
			fmt.Fprintf(b, " @ %s", p.Load)
		}
		if p.RPE != nil {
			fmt.Fprintf(b, " RPE %s", rpeString(p.RPE))
		}
		if rest := restSec(block, p); rest > 0 {
			fmt.Fprintf(b, " (rest %ds)", rest)
		}
		if p.Notes != "" {
			fmt.Fprintf(b, " - %s", p.Notes)
		}
		b.WriteString("\n")
	}
}
