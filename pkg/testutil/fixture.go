package testutil

import (
	"context"
	"database/sql"

	"github.com/habitforge/backend/internal/entity"
	"github.com/habitforge/backend/internal/repository"
)

var (
	User1 = entity.User{
		Base: entity.Base{ID: "user1"},
		Name: "user1",
	}

	User2 = entity.User{
		Base: entity.Base{ID: "user2"},
		Name: "user2",
	}

	Habit1 = entity.Habit{
		Base:     entity.Base{ID: "user1_habit1"},
		UserID:   User1.ID,
		Title:    "Morning run",
		Color:    "#ff5733",
		IsActive: true,
	}

	Streak1 = entity.Streak{
		HabitID: Habit1.ID,
		UserID:  User1.ID,
	}

	Task1 = entity.Task{
		Base:     entity.Base{ID: "user1_task1"},
		UserID:   User1.ID,
		HabitID:  sql.NullString{Valid: true, String: Habit1.ID},
		Title:    "Run 5k",
		XPReward: 10,
	}

	Task2 = entity.Task{
		Base:     entity.Base{ID: "user1_task2"},
		UserID:   User1.ID,
		Title:    "Read a chapter",
		XPReward: 15,
	}
)

func CreateFixtureDb(t mockTB, ctx context.Context) {
	t.Helper()

	InsertUsers(t, ctx)
	InsertHabits(t, ctx)
	InsertTasks(t, ctx)
}

func InsertUsers(t mockTB, ctx context.Context) {
	t.Helper()

	userRepo := repository.NewUserRepository()
	for _, user := range []entity.User{User1, User2} {
		user := user
		if err := userRepo.Create(ctx, &user); err != nil {
			t.Fatal(err)
		}
	}
}

func InsertHabits(t mockTB, ctx context.Context) {
	t.Helper()

	habit := Habit1
	if err := repository.NewHabitRepository().Create(ctx, &habit); err != nil {
		t.Fatal(err)
	}

	streak := Streak1
	if err := repository.NewStreakRepository().Create(ctx, &streak); err != nil {
		t.Fatal(err)
	}
}

func InsertTasks(t mockTB, ctx context.Context) {
	t.Helper()

	taskRepo := repository.NewTaskRepository()
	for _, task := range []entity.Task{Task1, Task2} {
		task := task
		if err := taskRepo.Create(ctx, &task); err != nil {
			t.Fatal(err)
		}
	}
}
