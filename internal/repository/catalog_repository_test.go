package repository

import (
	"context"
	"errors"
	"testing"

	"sunnydayy-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func count(mt *mtest.T, n int) bson.D {
	return found(mt, bson.D{{Key: "n", Value: n}})
}

func TestProductRepositoryList(t *testing.T) {
	mt := newMock(t)

	mt.Run("filters and paginates", func(mt *mtest.T) {
		p := domain.Product{ID: primitive.NewObjectID(), Name: "Fight Shorts", Price: 1499, SKU: "FS-1"}
		mt.AddMockResponses(count(mt, 11), found(mt, toDoc(mt, p)))
		repo := NewProductRepository(mt.Coll)

		min := 1000.0
		products, total, err := repo.List(context.Background(), domain.ProductQuery{
			Page:      2,
			Limit:     10,
			MinPrice:  &min,
			Search:    "shorts",
			SortBy:    "price",
			SortOrder: 1,
		})
		if err != nil {
			mt.Fatalf("List returned error: %v", err)
		}
		if total != 11 || len(products) != 1 {
			mt.Fatalf("expected 1 of 11 products, got %d of %d", len(products), total)
		}

		mt.GetStartedEvent() // count
		find := mt.GetStartedEvent().Command
		if skip := find.Lookup("skip").AsInt64(); skip != 10 {
			mt.Errorf("expected skip 10, got %d", skip)
		}
		if _, _, ok := find.Lookup("filter", "name").RegexOK(); !ok {
			mt.Error("expected name regex filter")
		}
	})
}

func TestProductRepositoryWrites(t *testing.T) {
	mt := newMock(t)

	mt.Run("duplicate sku", func(mt *mtest.T) {
		mt.AddMockResponses(duplicateKey())
		repo := NewProductRepository(mt.Coll)

		err := repo.Insert(context.Background(), &domain.Product{Name: "Gloves", SKU: "MMA-GLOVES-001"})
		if !errors.Is(err, domain.ErrDuplicate) {
			mt.Fatalf("expected ErrDuplicate, got %v", err)
		}
	})

	mt.Run("update missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))
		repo := NewProductRepository(mt.Coll)

		_, err := repo.Update(context.Background(), primitive.NewObjectID(), &domain.Product{Name: "x", SKU: "y"})
		if !errors.Is(err, domain.ErrNotFound) {
			mt.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		repo := NewProductRepository(mt.Coll)

		if err := repo.Delete(context.Background(), primitive.NewObjectID()); !errors.Is(err, domain.ErrNotFound) {
			mt.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	mt.Run("sku taken", func(mt *mtest.T) {
		mt.AddMockResponses(count(mt, 1))
		repo := NewProductRepository(mt.Coll)

		taken, err := repo.SKUTaken(context.Background(), "MMA-GLOVES-001", primitive.NilObjectID)
		if err != nil {
			mt.Fatalf("SKUTaken returned error: %v", err)
		}
		if !taken {
			mt.Error("expected sku to be taken")
		}
	})
}

func TestCategoryRepository(t *testing.T) {
	mt := newMock(t)

	mt.Run("active only by default", func(mt *mtest.T) {
		c := domain.Category{ID: primitive.NewObjectID(), Name: "Apparel", Slug: "apparel", IsActive: true}
		mt.AddMockResponses(count(mt, 1), found(mt, toDoc(mt, c)))
		repo := NewCategoryRepository(mt.Coll)

		categories, total, err := repo.List(context.Background(), domain.CategoryQuery{Page: 1, Limit: 10})
		if err != nil {
			mt.Fatalf("List returned error: %v", err)
		}
		if total != 1 || len(categories) != 1 || categories[0].Slug != "apparel" {
			mt.Fatalf("unexpected categories: %+v (total %d)", categories, total)
		}

		mt.GetStartedEvent()
		find := mt.GetStartedEvent().Command
		if active, ok := find.Lookup("filter", "isActive").BooleanOK(); !ok || !active {
			mt.Error("expected isActive filter")
		}
	})

	mt.Run("find missing", func(mt *mtest.T) {
		mt.AddMockResponses(found(mt))
		repo := NewCategoryRepository(mt.Coll)

		if _, err := repo.FindByID(context.Background(), primitive.NewObjectID()); !errors.Is(err, domain.ErrNotFound) {
			mt.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestCartRepository(t *testing.T) {
	mt := newMock(t)

	mt.Run("empty cart for new user", func(mt *mtest.T) {
		mt.AddMockResponses(found(mt))
		repo := NewCartRepository(mt.Coll)

		cart, err := repo.Get(context.Background(), "user-1")
		if err != nil {
			mt.Fatalf("Get returned error: %v", err)
		}
		if cart.UserID != "user-1" || cart.Items == nil || len(cart.Items) != 0 {
			mt.Errorf("unexpected cart: %+v", cart)
		}
	})

	mt.Run("save upserts", func(mt *mtest.T) {
		mt.AddMockResponses(updated(1))
		repo := NewCartRepository(mt.Coll)

		if err := repo.SaveItems(context.Background(), "user-1", nil); err != nil {
			mt.Fatalf("SaveItems returned error: %v", err)
		}
		cmd := mt.GetStartedEvent().Command
		upsert, ok := cmd.Lookup("updates").Array().Index(0).Value().Document().Lookup("upsert").BooleanOK()
		if !ok || !upsert {
			mt.Error("expected upsert update")
		}
	})
}

func TestWishlistRepository(t *testing.T) {
	mt := newMock(t)

	mt.Run("add", func(mt *mtest.T) {
		w := domain.Wishlist{ID: primitive.NewObjectID(), UserID: "user-1", ProductIDs: []string{"7"}}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: toDoc(mt, w)}))
		repo := NewWishlistRepository(mt.Coll)

		got, err := repo.Add(context.Background(), "user-1", "7")
		if err != nil {
			mt.Fatalf("Add returned error: %v", err)
		}
		if len(got.ProductIDs) != 1 || got.ProductIDs[0] != "7" {
			mt.Errorf("unexpected wishlist: %+v", got)
		}
	})

	mt.Run("remove from missing list", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))
		repo := NewWishlistRepository(mt.Coll)

		got, err := repo.Remove(context.Background(), "user-2", "7")
		if err != nil {
			mt.Fatalf("Remove returned error: %v", err)
		}
		if len(got.ProductIDs) != 0 {
			mt.Errorf("expected empty wishlist, got %+v", got)
		}
	})
}
