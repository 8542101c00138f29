// Package export renders a training plan into portable formats: a flat
// CSV table and a print-oriented text document. Both are pure in-memory
// transformations of already-fetched data and deliberately exclude any
// personal fields, only structural training content is written.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"fitplan/training-planner/internal/domain"
	"fitplan/training-planner/internal/planner"
)

// csvHeader is always written, even for an empty plan.
var csvHeader = []string{
	"week_number",
	"week_start",
	"week_end",
	"week_status",
	"week_focus",
	"training_date",
	"training_title",
	"intensity",
	"block_type",
	"block_label",
	"exercise",
	"sets",
	"reps",
	"load",
	"rest_sec",
	"rpe",
}

// WriteCSV flattens the weeks into one row per exercise prescription.
// Trainings without blocks and blocks without prescriptions contribute
// no rows; the header row is emitted regardless.
func WriteCSV(w io.Writer, weeks []domain.TrainingWeek) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for i := range weeks {
		week := &weeks[i]
		weekNum := strconv.Itoa(planner.WeekNumber(week.StartDate))
		focus := ""
		if week.Focus != nil {
			focus = week.Focus.Name
		}
		for j := range week.Trainings {
			training := &week.Trainings[j]
			for k := range training.Blocks {
				block := &training.Blocks[k]
				for l := range block.Prescriptions {
					p := &block.Prescriptions[l]
					row := []string{
						weekNum,
						week.StartDate.Format("2006-01-02"),
						week.EndDate.Format("2006-01-02"),
						string(week.Status),
						focus,
						training.ScheduledDate.Format("2006-01-02"),
						training.Title,
						string(training.Intensity),
						string(block.Type),
						block.Label,
						exerciseName(p),
						strconv.Itoa(p.Sets),
						p.Reps,
						p.Load,
						strconv.Itoa(restSec(block, p)),
						rpeString(p.RPE),
					}
					if err := cw.Write(row); err != nil {
						return fmt.Errorf("write csv row: %w", err)
					}
				}
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func exerciseName(p *domain.ExercisePrescription) string {
	if p.Exercise != nil {
		return p.Exercise.Name
	}
	return p.ExerciseID.String()
}

// restSec resolves a prescription's rest, falling back to the block
// default when the prescription leaves it unset.
func restSec(block *domain.TrainingBlock, p *domain.ExercisePrescription) int {
	if p.RestSec > 0 {
		return p.RestSec
	}
	return block.DefaultRestSec
}

func rpeString(rpe *float64) string {
	if rpe == nil {
		return ""
	}
	return strconv.FormatFloat(*rpe, 'f', -1, 64)
}
