package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"taskhub/internal/model"
	"taskhub/internal/pagination"
)

// testDB opens a fresh sqlite database per test, mirroring the per-test
// isolation the production schema gets from mysql.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.sqlite")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Task{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$2a$10$test.hash.placeholder",
		Role:         model.RoleUser,
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "alice")

	byID, err := repo.FindByID(ctx, user.ID)
	assert.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	byUsername, err := repo.FindByUsername(ctx, "alice")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, byUsername.ID)

	byEmail, err := repo.FindByEmail(ctx, "alice@example.com")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_UniqueConstraintsTranslated(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, db, "alice")

	dupUsername := &model.User{
		ID:           uuid.New(),
		Username:     "alice",
		Email:        "other@example.com",
		PasswordHash: "x",
		Role:         model.RoleUser,
	}
	assert.ErrorIs(t, repo.Create(ctx, dupUsername), gorm.ErrDuplicatedKey)

	dupEmail := &model.User{
		ID:           uuid.New(),
		Username:     "bob",
		Email:        "alice@example.com",
		PasswordHash: "x",
		Role:         model.RoleUser,
	}
	assert.ErrorIs(t, repo.Create(ctx, dupEmail), gorm.ErrDuplicatedKey)
}

func TestUserRepository_Delete(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "alice")

	existed, err := repo.Delete(ctx, user.ID)
	assert.NoError(t, err)
	assert.True(t, existed)

	existed, err = repo.Delete(ctx, user.ID)
	assert.NoError(t, err)
	assert.False(t, existed)

	_, err = repo.FindByID(ctx, user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func seedTasks(t *testing.T, db *gorm.DB, creator *model.User, n int) []model.Task {
	t.Helper()
	repo := NewTaskRepository(db)
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tasks := make([]model.Task, 0, n)
	for i := 0; i < n; i++ {
		task := model.Task{
			ID:        uuid.New(),
			Title:     fmt.Sprintf("Task %02d", i),
			Status:    model.StatusTodo,
			Priority:  (i % 5) + 1,
			CreatedBy: creator.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(context.Background(), &task))
		tasks = append(tasks, task)
	}
	return tasks
}

func TestTaskRepository_PaginationPartitionsRows(t *testing.T) {
	db := testDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()
	creator := seedUser(t, db, "creator")
	seedTasks(t, db, creator, 15)

	seen := map[uuid.UUID]bool{}
	for _, offset := range []int{0, 5, 10} {
		params, err := pagination.NewParams(5, offset, pagination.SortAsc)
		require.NoError(t, err)

		rows, total, err := repo.List(ctx, model.TaskFilter{}, params)
		assert.NoError(t, err)
		assert.Equal(t, int64(15), total)
		assert.Len(t, rows, 5)

		for _, task := range rows {
			assert.False(t, seen[task.ID], "task %s appeared on two pages", task.ID)
			seen[task.ID] = true
		}
	}
	assert.Len(t, seen, 15)
}

func TestTaskRepository_OffsetBeyondTotal(t *testing.T) {
	db := testDB(t)
	repo := NewTaskRepository(db)
	creator := seedUser(t, db, "creator")
	seedTasks(t, db, creator, 3)

	params, err := pagination.NewParams(10, 100, pagination.SortAsc)
	require.NoError(t, err)

	rows, total, err := repo.List(context.Background(), model.TaskFilter{}, params)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Empty(t, rows)
}

func TestTaskRepository_Ordering(t *testing.T) {
	db := testDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()
	creator := seedUser(t, db, "creator")
	seedTasks(t, db, creator, 5)

	asc, _ := pagination.NewParams(10, 0, pagination.SortAsc)
	rows, _, err := repo.List(ctx, model.TaskFilter{}, asc)
	assert.NoError(t, err)
	for i := 1; i < len(rows); i++ {
		assert.False(t, rows[i].CreatedAt.Before(rows[i-1].CreatedAt))
	}

	desc, _ := pagination.NewParams(10, 0, pagination.SortDesc)
	rows, _, err = repo.List(ctx, model.TaskFilter{}, desc)
	assert.NoError(t, err)
	for i := 1; i < len(rows); i++ {
		assert.False(t, rows[i].CreatedAt.After(rows[i-1].CreatedAt))
	}
}

func TestTaskRepository_EqualTimestampsPageDeterministically(t *testing.T) {
	db := testDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()
	creator := seedUser(t, db, "creator")

	// identical created_at forces the id tiebreak
	stamp := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		require.NoError(t, repo.Create(ctx, &model.Task{
			ID:        uuid.New(),
			Title:     fmt.Sprintf("Tied %d", i),
			Status:    model.StatusTodo,
			Priority:  3,
			CreatedBy: creator.ID,
			CreatedAt: stamp,
		}))
	}

	page1Params, _ := pagination.NewParams(3, 0, pagination.SortAsc)
	page2Params, _ := pagination.NewParams(3, 3, pagination.SortAsc)

	page1, _, err := repo.List(ctx, model.TaskFilter{}, page1Params)
	require.NoError(t, err)
	page2, _, err := repo.List(ctx, model.TaskFilter{}, page2Params)
	require.NoError(t, err)

	ids := map[uuid.UUID]bool{}
	for _, task := range append(page1, page2...) {
		assert.False(t, ids[task.ID])
		ids[task.ID] = true
	}
	assert.Len(t, ids, 6)
}

func TestTaskRepository_FilterConjunction(t *testing.T) {
	db := testDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()
	user1 := seedUser(t, db, "user1")
	user2 := seedUser(t, db, "user2")

	newTask := func(title string, status model.TaskStatus, assignee *uuid.UUID) {
		require.NoError(t, repo.Create(ctx, &model.Task{
			ID:         uuid.New(),
			Title:      title,
			Status:     status,
			Priority:   3,
			CreatedBy:  user1.ID,
			AssignedTo: assignee,
		}))
	}
	newTask("Task A", model.StatusTodo, &user1.ID)
	newTask("Task B", model.StatusTodo, &user2.ID)
	newTask("Task C", model.StatusInProgress, &user1.ID)
	newTask("Task D", model.StatusDone, nil)
	newTask("Task E", model.StatusTodo, nil)

	params, _ := pagination.NewParams(10, 0, pagination.SortAsc)
	todo := model.StatusTodo

	_, todoTotal, err := repo.List(ctx, model.TaskFilter{Status: &todo}, params)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), todoTotal)

	_, assignedTotal, err := repo.List(ctx, model.TaskFilter{AssignedTo: &user1.ID}, params)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), assignedTotal)

	// conjunction is exactly the intersection of the single-filter sets
	both, bothTotal, err := repo.List(ctx, model.TaskFilter{Status: &todo, AssignedTo: &user1.ID}, params)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), bothTotal)
	assert.Equal(t, "Task A", both[0].Title)
}

func TestTaskRepository_UpdateAndDelete(t *testing.T) {
	db := testDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()
	creator := seedUser(t, db, "creator")
	tasks := seedTasks(t, db, creator, 1)

	task := tasks[0]
	task.Status = model.StatusDone
	assert.NoError(t, repo.Update(ctx, &task))

	reloaded, err := repo.FindByID(ctx, task.ID)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusDone, reloaded.Status)

	existed, err := repo.Delete(ctx, task.ID)
	assert.NoError(t, err)
	assert.True(t, existed)

	existed, err = repo.Delete(ctx, task.ID)
	assert.NoError(t, err)
	assert.False(t, existed)
}
