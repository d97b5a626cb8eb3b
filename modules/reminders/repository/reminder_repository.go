// Package repository persists CycleReminders (modules/cycle/model),
// adapted from the teacher's reminders module: the same single-table
// pgxpool pattern, retargeted from an application/stage to a cycle.
package repository

import (
	"context"
	"time"

	cycleModel "github.com/jvmatch/partnermatch/modules/cycle/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReminderRepository struct {
	pool *pgxpool.Pool
}

func NewReminderRepository(pool *pgxpool.Pool) *ReminderRepository {
	return &ReminderRepository{pool: pool}
}

// Create stages a cycle reminder (spec-derived: "run monthly" scheduling
// nudges and "resolve pending review queue before next cycle" nudges).
func (r *ReminderRepository) Create(ctx context.Context, reminder *cycleModel.CycleReminder) error {
	query := `
		INSERT INTO cycle_reminders (id, cycle_id, remind_at, message, is_done, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	reminder.ID = uuid.New().String()
	reminder.CreatedAt = time.Now().UTC()

	_, err := r.pool.Exec(ctx, query, reminder.ID, reminder.CycleID, reminder.RemindAt, reminder.Message, reminder.IsDone, reminder.CreatedAt)
	return err
}

func (r *ReminderRepository) ListPendingByCycle(ctx context.Context, cycleID string) ([]*cycleModel.CycleReminder, error) {
	query := `
		SELECT id, cycle_id, remind_at, message, is_done, created_at
		FROM cycle_reminders WHERE cycle_id = $1 AND is_done = false ORDER BY remind_at ASC
	`
	rows, err := r.pool.Query(ctx, query, cycleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []*cycleModel.CycleReminder
	for rows.Next() {
		rem := &cycleModel.CycleReminder{}
		if err := rows.Scan(&rem.ID, &rem.CycleID, &rem.RemindAt, &rem.Message, &rem.IsDone, &rem.CreatedAt); err != nil {
			return nil, err
		}
		reminders = append(reminders, rem)
	}
	return reminders, rows.Err()
}
