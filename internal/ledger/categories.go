package ledger

import (
	"context"
	"fmt"
	"net/url"

	"contas/internal/cache"
	"contas/internal/core"
	"contas/internal/log"
)

const categoriesCollection = "categories"

type CategoryFilter struct {
	Type            core.CategoryType
	IncludeInactive bool
}

func (f CategoryFilter) query() url.Values {
	q := url.Values{}
	if f.Type != "" {
		q.Set("type", string(f.Type))
	}
	if f.IncludeInactive {
		q.Set("include_inactive", "true")
	}
	return q
}

func (c *Client) ListCategories(ctx context.Context, f CategoryFilter) ([]core.Category, error) {
	q := f.query()
	key := cache.Key(categoriesCollection, q.Encode())
	if v, ok := c.cache.Get(key); ok {
		if items, ok := v.([]core.Category); ok {
			return items, nil
		}
	}
	var items []core.Category
	if err := c.get(ctx, "/fin/categories", q, &items); err != nil {
		return nil, err
	}
	c.cache.Set(key, items)
	return items, nil
}

type CategoryCreate struct {
	Name string            `json:"name"`
	Type core.CategoryType `json:"type"`
}

func (c *Client) CreateCategory(ctx context.Context, in CategoryCreate) (core.Category, error) {
	var cat core.Category
	if err := c.post(ctx, "/fin/categories", in, &cat); err != nil {
		return core.Category{}, err
	}
	c.cache.Invalidate(categoriesCollection)
	c.logger.Info("category created",
		log.FieldOperation, log.OpCreate, log.FieldCategoryID, cat.ID)
	return cat, nil
}

// DeactivateCategory hides a category from default listings without
// touching the transactions that reference it.
func (c *Client) DeactivateCategory(ctx context.Context, id int64) (core.Category, error) {
	var cat core.Category
	if err := c.post(ctx, fmt.Sprintf("/fin/categories/%d/deactivate", id), nil, &cat); err != nil {
		return core.Category{}, err
	}
	c.cache.Invalidate(categoriesCollection)
	c.logger.Info("category deactivated",
		log.FieldOperation, log.OpDeactivate, log.FieldCategoryID, id)
	return cat, nil
}

type categoryMerge struct {
	SrcCategoryID int64 `json:"src_category_id"`
	DstCategoryID int64 `json:"dst_category_id"`
}

// MergeCategories moves everything under src into dst server-side. The
// transactions collection is invalidated too: their category ids changed.
func (c *Client) MergeCategories(ctx context.Context, srcID, dstID int64) error {
	if srcID == dstID {
		return &core.ValidationError{Field: "dst_category_id", Err: core.ErrSameCategory}
	}
	if err := c.post(ctx, "/fin/categories/merge", categoryMerge{SrcCategoryID: srcID, DstCategoryID: dstID}, nil); err != nil {
		return err
	}
	c.cache.Invalidate(categoriesCollection)
	c.cache.Invalidate(transactionsCollection)
	c.logger.Info("categories merged",
		log.FieldOperation, log.OpMerge, "src_category_id", srcID, "dst_category_id", dstID)
	return nil
}
