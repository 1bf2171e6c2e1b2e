package repository

import (
	"math"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pqh/blog/models"
	"github.com/pqh/blog/security"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Story{}, &models.Comment{}))

	for _, login := range []string{"alice", "bob"} {
		require.NoError(t, db.Create(&models.User{Login: login}).Error)
	}
	for i := 1; i <= 3; i++ {
		require.NoError(t, db.Create(&models.Story{Title: fmt.Sprintf("story %d", i)}).Error)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newComment(login string, storyID uint, text string) *models.Comment {
	return &models.Comment{
		Text:      text,
		UserLogin: login,
		StoryID:   storyID,
		User:      models.User{Login: login},
		Story:     models.Story{ID: storyID},
	}
}

func TestSaveAssignsID(t *testing.T) {
	repo := NewCommentRepository(newTestDB(t))
	ctx := context.Background()

	first, err := repo.Save(ctx, newComment("alice", 1, "hi"))
	require.NoError(t, err)
	second, err := repo.Save(ctx, newComment("bob", 1, "hello"))
	require.NoError(t, err)

	assert.NotZero(t, first.ID)
	assert.NotZero(t, second.ID)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestSaveDoesNotCreateReferencedRows(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepository(db)

	c := newComment("alice", 1, "hi")
	c.Story.Title = "changed"
	_, err := repo.Save(context.Background(), c)
	require.NoError(t, err)

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.EqualValues(t, 2, users)

	var story models.Story
	require.NoError(t, db.First(&story, 1).Error)
	assert.Equal(t, "story 1", story.Title)
}

func TestSaveUpdatesExisting(t *testing.T) {
	repo := NewCommentRepository(newTestDB(t))
	ctx := context.Background()

	created, err := repo.Save(ctx, newComment("alice", 1, "hi"))
	require.NoError(t, err)
	createdAt := created.CreatedAt

	update := newComment("alice", 2, "edited")
	update.ID = created.ID
	_, err = repo.Save(ctx, update)
	require.NoError(t, err)

	got, err := repo.FindOne(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Text)
	assert.Equal(t, uint(2), got.Story.ID)
	assert.Equal(t, "alice", got.User.Login)
	assert.WithinDuration(t, createdAt, got.CreatedAt, time.Second)
}

func TestFindOneMissing(t *testing.T) {
	repo := NewCommentRepository(newTestDB(t))

	_, err := repo.FindOne(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindAllPagination(t *testing.T) {
	repo := NewCommentRepository(newTestDB(t))
	ctx := context.Background()
	for i := 0; i < 25; i++ {
		_, err := repo.Save(ctx, newComment("alice", 1, fmt.Sprintf("c%02d", i)))
		require.NoError(t, err)
	}

	for _, tc := range []struct {
		page, size int
		want       int
	}{
		{0, 10, 10},
		{1, 10, 10},
		{2, 10, 5},
		{3, 10, 0},
		{0, 100, 25},
	} {
		t.Run(fmt.Sprintf("page=%d,size=%d", tc.page, tc.size), func(t *testing.T) {
			page, err := repo.FindAll(ctx, Pageable{Page: tc.page, Size: tc.size})
			require.NoError(t, err)
			assert.Len(t, page.Content, tc.want)
			assert.EqualValues(t, 25, page.TotalElements)
			assert.Equal(t, (25+tc.size-1)/tc.size, page.TotalPages)
			assert.Equal(t, tc.page, page.Number)
			assert.NotNil(t, page.Content)
		})
	}
}

func TestFindAllSort(t *testing.T) {
	repo := NewCommentRepository(newTestDB(t))
	ctx := context.Background()
	for _, text := range []string{"b", "c", "a"} {
		_, err := repo.Save(ctx, newComment("alice", 1, text))
		require.NoError(t, err)
	}

	page, err := repo.FindAll(ctx, Pageable{Size: 10, Sort: []SortOrder{{Property: "text", Desc: true}}})
	require.NoError(t, err)
	require.Len(t, page.Content, 3)
	assert.Equal(t, "c", page.Content[0].Text)
	assert.Equal(t, "a", page.Content[2].Text)

	page, err = repo.FindAll(ctx, Pageable{Size: 10, Sort: []SortOrder{{Property: "bogus"}}})
	require.NoError(t, err)
	assert.Equal(t, "b", page.Content[0].Text, "unknown properties fall back to id order")
}

func TestFindByStoryIDAndDeleteByStory(t *testing.T) {
	repo := NewCommentRepository(newTestDB(t))
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := repo.Save(ctx, newComment("alice", 1, fmt.Sprintf("one-%d", i)))
		require.NoError(t, err)
	}
	for i := 0; i < 2; i++ {
		_, err := repo.Save(ctx, newComment("bob", 2, fmt.Sprintf("two-%d", i)))
		require.NoError(t, err)
	}

	got, err := repo.FindByStoryID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "one-0", got[0].Text)
	assert.Equal(t, "one-2", got[2].Text)

	require.NoError(t, repo.DeleteByStory(ctx, 1))

	got, err = repo.FindByStoryID(ctx, 1)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got, err = repo.FindByStoryID(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	require.NoError(t, repo.DeleteByStory(ctx, 3), "deleting an empty story is fine")
}

func TestDeleteIsIdempotent(t *testing.T) {
	repo := NewCommentRepository(newTestDB(t))
	ctx := context.Background()

	c, err := repo.Save(ctx, newComment("alice", 1, "hi"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, c.ID))
	require.NoError(t, repo.Delete(ctx, c.ID))

	_, err = repo.FindOne(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindByUserIsCurrentUser(t *testing.T) {
	repo := NewCommentRepository(newTestDB(t))
	ctx := context.Background()
	_, err := repo.Save(ctx, newComment("alice", 1, "mine"))
	require.NoError(t, err)
	_, err = repo.Save(ctx, newComment("bob", 1, "theirs"))
	require.NoError(t, err)

	got, err := repo.FindByUserIsCurrentUser(security.WithPrincipal(ctx, security.Principal{Username: "alice"}))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "mine", got[0].Text)
	assert.Equal(t, "alice", got[0].User.Login)

	got, err = repo.FindByUserIsCurrentUser(ctx)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNewPage(t *testing.T) {
	p := NewPage[int](nil, Pageable{Page: 0, Size: 10}, 0)
	assert.Equal(t, 0, p.TotalPages)
	assert.NotNil(t, p.Content)
	assert.False(t, p.HasNext())
	assert.False(t, p.HasPrevious())

	p = NewPage([]int{1}, Pageable{Page: 1, Size: 10}, 25)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext())
	assert.True(t, p.HasPrevious())

	p = NewPage[int](nil, Pageable{Page: math.MaxInt, Size: 1}, 5)
	assert.False(t, p.HasNext())
}

func TestPageableOffsetSaturates(t *testing.T) {
	assert.Equal(t, 20, Pageable{Page: 2, Size: 10}.Offset())
	assert.Equal(t, math.MaxInt, Pageable{Page: math.MaxInt/4 + 1, Size: 4}.Offset())
}
