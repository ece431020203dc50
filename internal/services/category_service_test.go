package services

import (
	"context"
	"testing"

	"kukkaro/internal/models"
	"kukkaro/internal/testutil"
)

func TestCreateCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		rec := &testutil.EventRecorder{}
		svc := NewCategoryService(db, rec)

		cat, err := svc.CreateCategory(ctx, "Groceries", models.CategoryTypeExpense, "🛒", "#FF0000")
		testutil.AssertNoError(t, err)

		if cat.ID == 0 {
			t.Fatal("expected non-zero category ID")
		}
		if cat.Name != "Groceries" {
			t.Errorf("expected name Groceries, got %s", cat.Name)
		}
		if cat.Type != models.CategoryTypeExpense {
			t.Errorf("expected type expense, got %s", cat.Type)
		}
		if last, _ := rec.Last(); last.Type != "category.created" {
			t.Errorf("expected category.created, got %s", last.Type)
		}
	})

	t.Run("missing_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, nil)

		_, err := svc.CreateCategory(ctx, "", models.CategoryTypeExpense, "", "#fff")
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
		if err.Error() != "Missing required fields: name, icon" {
			t.Errorf("unexpected message %q", err.Error())
		}
	})

	t.Run("invalid_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, nil)

		_, err := svc.CreateCategory(ctx, "Gifts", models.CategoryType("transfer"), "🎁", "#fff")
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})
}

func TestListCategories(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewCategoryService(db, nil)

	testutil.CreateTestCategoryWithName(t, db, "Transport", models.CategoryTypeExpense)
	testutil.CreateTestCategoryWithName(t, db, "Salary", models.CategoryTypeIncome)
	testutil.CreateTestCategoryWithName(t, db, "Food", models.CategoryTypeExpense)

	t.Run("all_sorted_by_name", func(t *testing.T) {
		cats, err := svc.ListCategories(ctx)
		testutil.AssertNoError(t, err)

		want := []string{"Food", "Salary", "Transport"}
		if len(cats) != len(want) {
			t.Fatalf("expected %d categories, got %d", len(want), len(cats))
		}
		for i, name := range want {
			if cats[i].Name != name {
				t.Errorf("position %d: expected %s, got %s", i, name, cats[i].Name)
			}
		}
	})

	t.Run("by_type", func(t *testing.T) {
		cats, err := svc.ListCategoriesByType(ctx, models.CategoryTypeExpense)
		testutil.AssertNoError(t, err)

		if len(cats) != 2 {
			t.Fatalf("expected 2 expense categories, got %d", len(cats))
		}
		for _, c := range cats {
			if c.Type != models.CategoryTypeExpense {
				t.Errorf("unexpected type %s", c.Type)
			}
		}
		if cats[0].Name != "Food" {
			t.Errorf("expected Food first, got %s", cats[0].Name)
		}
	})

	t.Run("by_invalid_type", func(t *testing.T) {
		_, err := svc.ListCategoriesByType(ctx, models.CategoryType("savings"))
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})
}

func TestUpdateCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("partial_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, nil)
		cat := testutil.CreateTestCategoryWithName(t, db, "Fun", models.CategoryTypeExpense)

		color := "#00ff00"
		updated, err := svc.UpdateCategory(ctx, cat.ID, CategoryUpdate{Color: &color})
		testutil.AssertNoError(t, err)

		if updated.Color != "#00ff00" {
			t.Errorf("expected new color, got %s", updated.Color)
		}
		if updated.Name != "Fun" || updated.Icon != cat.Icon {
			t.Errorf("unexpected changes: %+v", updated)
		}
		if updated.Type != models.CategoryTypeExpense {
			t.Errorf("type must not change, got %s", updated.Type)
		}
	})

	t.Run("requires_a_field", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, nil)
		cat := testutil.CreateTestCategory(t, db, models.CategoryTypeExpense)

		_, err := svc.UpdateCategory(ctx, cat.ID, CategoryUpdate{})
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, nil)
		cat := testutil.CreateTestCategory(t, db, models.CategoryTypeExpense)

		empty := ""
		_, err := svc.UpdateCategory(ctx, cat.ID, CategoryUpdate{Name: &empty})
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, nil)

		name := "x"
		_, err := svc.UpdateCategory(ctx, 9999, CategoryUpdate{Name: &name})
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestDeleteCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("unused_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		rec := &testutil.EventRecorder{}
		svc := NewCategoryService(db, rec)
		cat := testutil.CreateTestCategory(t, db, models.CategoryTypeExpense)

		testutil.AssertNoError(t, svc.DeleteCategory(ctx, cat.ID))

		_, err := svc.GetCategoryByID(ctx, cat.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
		if last, _ := rec.Last(); last.Type != "category.deleted" {
			t.Errorf("expected category.deleted, got %s", last.Type)
		}
	})

	t.Run("blocked_by_transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		rec := &testutil.EventRecorder{}
		svc := NewCategoryService(db, rec)
		cat := testutil.CreateTestCategory(t, db, models.CategoryTypeExpense)
		testutil.CreateTestExpense(t, db, cat.ID, "1", day(2024, 1, 1))
		testutil.CreateTestExpense(t, db, cat.ID, "2", day(2024, 1, 2))
		testutil.CreateTestExpense(t, db, cat.ID, "3", day(2024, 1, 3))

		err := svc.DeleteCategory(ctx, cat.ID)
		testutil.AssertAppError(t, err, "CATEGORY_IN_USE")
		if err.Error() != "Cannot delete category with existing transactions (3 transactions found)" {
			t.Errorf("unexpected message %q", err.Error())
		}

		if _, err := svc.GetCategoryByID(ctx, cat.ID); err != nil {
			t.Errorf("category should still exist: %v", err)
		}
		if len(rec.Types()) != 0 {
			t.Errorf("expected no events, got %v", rec.Types())
		}
	})

	t.Run("counts_incomes_too", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, nil)
		cat := testutil.CreateTestCategory(t, db, models.CategoryTypeIncome)
		testutil.CreateTestIncome(t, db, cat.ID, "100", day(2024, 1, 1))

		err := svc.DeleteCategory(ctx, cat.ID)
		testutil.AssertAppError(t, err, "CATEGORY_IN_USE")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, nil)

		testutil.AssertAppError(t, svc.DeleteCategory(ctx, 9999), "CATEGORY_NOT_FOUND")
	})
}
