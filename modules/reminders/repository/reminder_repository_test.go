package repository

import (
	"context"
	"testing"
	"time"

	cycleModel "github.com/jvmatch/partnermatch/modules/cycle/model"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testReminderRepo struct {
	mock pgxmock.PgxPoolIface
}

func (r *testReminderRepo) Create(ctx context.Context, reminder *cycleModel.CycleReminder) error {
	query := `
		INSERT INTO cycle_reminders (id, cycle_id, remind_at, message, is_done, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	reminder.ID = "test-reminder-id"
	reminder.CreatedAt = time.Now().UTC()

	_, err := r.mock.Exec(ctx, query, reminder.ID, reminder.CycleID, reminder.RemindAt, reminder.Message, reminder.IsDone, reminder.CreatedAt)
	return err
}

func TestReminderRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	reminder := &cycleModel.CycleReminder{
		CycleID:  "cycle-1",
		RemindAt: time.Now().Add(24 * time.Hour),
		Message:  "resolve pending review queue before next cycle",
	}

	mock.ExpectExec("INSERT INTO cycle_reminders").
		WithArgs(pgxmock.AnyArg(), reminder.CycleID, reminder.RemindAt, reminder.Message, reminder.IsDone, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := &testReminderRepo{mock: mock}
	err = repo.Create(context.Background(), reminder)

	require.NoError(t, err)
	assert.NotEmpty(t, reminder.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
