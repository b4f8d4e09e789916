package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/regform/pkg/domain/interfaces"
	"github.com/secmon-lab/regform/pkg/domain/model"
	"github.com/secmon-lab/regform/pkg/domain/types"
	"github.com/secmon-lab/regform/pkg/repository/firestore"
	"github.com/secmon-lab/regform/pkg/repository/memory"
)

func runFormRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Get returns ErrFormNotFound for unknown form", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Form().Get(context.Background(), types.NewFormID())
		gt.Error(t, err).Is(model.ErrFormNotFound)
	})

	t.Run("Put then Get preserves error order and values", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		now := time.Now().UTC().Truncate(time.Millisecond)
		form := model.NewForm(types.NewFormID(), now)
		form.Errors.Put(types.FieldPhone, "Invalid phone number.")
		form.Errors.Put(types.FieldEmail, "Invalid email address.")
		form.Errors.Put(types.FieldFirstName, "Your first name cannot be left blank.")
		form.SetValue(types.FieldPhone, "12345")
		form.SetValue(types.FieldLastName, "O'Brien")

		gt.NoError(t, repo.Form().Put(ctx, form)).Required()

		got, err := repo.Form().Get(ctx, form.ID)
		gt.NoError(t, err).Required()

		entries := got.Errors.Entries()
		gt.Array(t, entries).Length(3)
		gt.Value(t, entries[0].Field).Equal(types.FieldPhone)
		gt.Value(t, entries[1].Field).Equal(types.FieldEmail)
		gt.Value(t, entries[2].Field).Equal(types.FieldFirstName)
		gt.Value(t, entries[2].Message).Equal("Your first name cannot be left blank.")
		gt.Value(t, got.Value(types.FieldLastName)).Equal("O'Brien")
		gt.B(t, got.SubmitDisabled()).True()
		gt.B(t, got.UpdatedAt.Equal(now)).True()
	})

	t.Run("Get returns a copy", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		form := model.NewForm(types.NewFormID(), time.Now())
		form.Errors.Put(types.FieldEmail, "Invalid email address.")
		gt.NoError(t, repo.Form().Put(ctx, form)).Required()

		got, err := repo.Form().Get(ctx, form.ID)
		gt.NoError(t, err).Required()
		got.Errors.Remove(types.FieldEmail)

		again, err := repo.Form().Get(ctx, form.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, again.Errors.Len()).Equal(1)
	})

	t.Run("Delete removes the form and is idempotent", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		form := model.NewForm(types.NewFormID(), time.Now())
		gt.NoError(t, repo.Form().Put(ctx, form)).Required()
		gt.NoError(t, repo.Form().Delete(ctx, form.ID)).Required()
		gt.NoError(t, repo.Form().Delete(ctx, form.ID)).Required()

		_, err := repo.Form().Get(ctx, form.ID)
		gt.Error(t, err).Is(model.ErrFormNotFound)
	})

	t.Run("DeleteStale removes only old forms", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		now := time.Now().UTC()
		oldClean := model.NewForm(types.NewFormID(), now.Add(-48*time.Hour))
		oldDirty := model.NewForm(types.NewFormID(), now.Add(-48*time.Hour))
		oldDirty.Errors.Put(types.FieldEmail, "Invalid email address.")
		fresh := model.NewForm(types.NewFormID(), now)

		for _, f := range []*model.Form{oldClean, oldDirty, fresh} {
			gt.NoError(t, repo.Form().Put(ctx, f)).Required()
		}

		n, err := repo.Form().DeleteStale(ctx, now.Add(-24*time.Hour), true)
		gt.NoError(t, err).Required()
		gt.Value(t, n).Equal(1)

		_, err = repo.Form().Get(ctx, oldDirty.ID)
		gt.Error(t, err).Is(model.ErrFormNotFound)
		_, err = repo.Form().Get(ctx, oldClean.ID)
		gt.NoError(t, err).Required()

		n, err = repo.Form().DeleteStale(ctx, now.Add(-24*time.Hour), false)
		gt.NoError(t, err).Required()
		gt.Value(t, n).Equal(1)

		_, err = repo.Form().Get(ctx, fresh.ID)
		gt.NoError(t, err).Required()
	})
}

func TestFormRepository_Memory(t *testing.T) {
	runFormRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFormRepository_Firestore(t *testing.T) {
	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}
	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")

	runFormRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		prefix := fmt.Sprintf("test_%d", time.Now().UnixNano())
		repo, err := firestore.New(context.Background(), projectID, databaseID, firestore.WithCollectionPrefix(prefix))
		gt.NoError(t, err).Required()
		t.Cleanup(func() {
			_ = repo.Close()
		})
		return repo
	})
}
