package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var likeColumns = []string{"id", "user_id", "post_id", "created_at", "updated_at"}

func TestLikeRepositoryImpl_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("creates like", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewLikeRepository(db)

		mock.ExpectQuery(queryInsertLike).
			WithArgs(int64(1), int64(2)).
			WillReturnRows(sqlmock.NewRows(likeColumns).AddRow(int64(11), int64(1), int64(2), now, now))

		like, err := repo.Create(ctx, 1, 2)

		require.NoError(t, err)
		assert.Equal(t, int64(11), like.ID)
		assert.Equal(t, int64(2), like.PostID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate like", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewLikeRepository(db)

		mock.ExpectQuery(queryInsertLike).
			WithArgs(int64(1), int64(2)).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "likes_user_id_post_id_key"})

		like, err := repo.Create(ctx, 1, 2)

		assert.Nil(t, like)
		assert.ErrorIs(t, err, ErrAlreadyLiked)
	})

	t.Run("missing post", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewLikeRepository(db)

		mock.ExpectQuery(queryInsertLike).
			WithArgs(int64(1), int64(99)).
			WillReturnError(&pq.Error{Code: "23503", Constraint: "likes_post_id_fkey"})

		_, err := repo.Create(ctx, 1, 99)

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestLikeRepositoryImpl_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)

	mock.ExpectExec(queryDeleteLike).WithArgs(int64(11)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(queryDeleteLike).WithArgs(int64(11)).WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.Delete(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.Delete(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepositoryImpl_GetByUserAndPost(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantLike  bool
		wantErr   error
		anyErr    bool
	}{
		{
			name: "found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(queryLikeByUserAndPost).
					WithArgs(int64(1), int64(2)).
					WillReturnRows(sqlmock.NewRows(likeColumns).AddRow(int64(11), int64(1), int64(2), now, now))
			},
			wantLike: true,
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(queryLikeByUserAndPost).
					WithArgs(int64(1), int64(2)).
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "database failure is reported",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(queryLikeByUserAndPost).
					WithArgs(int64(1), int64(2)).
					WillReturnError(errors.New("too many connections"))
			},
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := NewLikeRepository(db)
			tt.setupMock(mock)

			like, err := repo.GetByUserAndPost(ctx, 1, 2)

			switch {
			case tt.wantLike:
				require.NoError(t, err)
				assert.Equal(t, int64(11), like.ID)
			case tt.wantErr != nil:
				assert.Nil(t, like)
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.anyErr:
				assert.Nil(t, like)
				require.Error(t, err)
				assert.NotErrorIs(t, err, ErrNotFound)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLikeRepositoryImpl_CountByPost(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)

	mock.ExpectQuery(queryCountLikesByPost).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(4)))

	count, err := repo.CountByPost(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, 4, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTablesRepository_CountTables(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTablesRepository(db)

	mock.ExpectQuery(queryCountTables).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))

	count, err := repo.CountTables(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
