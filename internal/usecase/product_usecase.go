package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"unicode/utf8"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

const (
	maxProductName        = 255
	maxProductDescription = 5000
)

// ProductUsecase serves the public catalog and the admin catalog writes.
// Every write is audited in the same transaction.
type ProductUsecase struct {
	productRepo repo.ProductRepository
	tx          repo.TransactionManager
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository, tx repo.TransactionManager) *ProductUsecase {
	return &ProductUsecase{productRepo: productRepo, tx: tx}
}

// StockUnlimited stores NULL stock; otherwise a nil Stock defaults to 0.
type CreateProductInput struct {
	Name           string
	Description    *string
	Price          int64
	Stock          *int64
	StockUnlimited bool
	IsActive       *bool
}

type UpdateProductInput struct {
	Name           *string
	Description    *string
	Price          *int64
	Stock          *int64
	StockUnlimited bool
	IsActive       *bool
}

func (u *ProductUsecase) List(ctx context.Context) ([]model.Product, error) {
	products, err := u.productRepo.ListActive(ctx)
	if err != nil {
		return nil, Internal("list products", err)
	}
	return products, nil
}

// Get hides inactive products the same way as missing ones.
func (u *ProductUsecase) Get(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, Validation("Invalid product id", FieldError{Field: "id", Message: "must be a positive integer"})
	}
	p, err := u.productRepo.FindActiveByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NotFound("Product not found")
	}
	if err != nil {
		return model.Product{}, Internal("find product", err)
	}
	return p, nil
}

func (u *ProductUsecase) Create(ctx context.Context, actorUserID int64, in CreateProductInput) (model.Product, error) {
	if actorUserID <= 0 {
		return model.Product{}, Unauthenticated("Unauthorized")
	}

	name := strings.TrimSpace(in.Name)
	fields := validateProductFields(&name, in.Description, &in.Price, in.Stock)
	if name == "" {
		fields = append(fields, FieldError{Field: "name", Message: "Name is required"})
	}
	if len(fields) > 0 {
		return model.Product{}, Validation("Invalid product data", fields...)
	}

	p := model.Product{
		Name:          name,
		Description:   trimmedPtr(in.Description),
		Price:         in.Price,
		StockQuantity: in.Stock,
		IsActive:      true,
	}
	if p.StockQuantity == nil && !in.StockUnlimited {
		zero := int64(0)
		p.StockQuantity = &zero
	}
	if in.StockUnlimited {
		p.StockQuantity = nil
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Products().Create(ctx, &p); err != nil {
			return Internal("create product", err)
		}
		return writeProductAudit(ctx, r, actorUserID, model.AuditActionCreateProduct, nil, &p)
	})
	if err != nil {
		return model.Product{}, asAppError("create product", err)
	}
	return p, nil
}

// Update applies a partial change; an empty payload is a validation error.
func (u *ProductUsecase) Update(ctx context.Context, actorUserID int64, productID int64, in UpdateProductInput) (model.Product, error) {
	if actorUserID <= 0 {
		return model.Product{}, Unauthenticated("Unauthorized")
	}
	if productID <= 0 {
		return model.Product{}, Validation("Invalid product id", FieldError{Field: "id", Message: "must be a positive integer"})
	}

	patch := model.ProductPatch{
		Description:   trimmedPtr(in.Description),
		Price:         in.Price,
		StockQuantity: in.Stock,
		ClearStock:    in.StockUnlimited,
		IsActive:      in.IsActive,
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		patch.Name = &name
	}
	if patch.Empty() {
		return model.Product{}, Validation("At least one field must be provided to update")
	}
	fields := validateProductFields(patch.Name, patch.Description, patch.Price, patch.StockQuantity)
	if patch.Name != nil && *patch.Name == "" {
		fields = append(fields, FieldError{Field: "name", Message: "Name is required"})
	}
	if len(fields) > 0 {
		return model.Product{}, Validation("Invalid product data", fields...)
	}

	var after model.Product
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Products().FindByID(ctx, productID)
		if errors.Is(err, repo.ErrNotFound) {
			return NotFound("Product not found")
		}
		if err != nil {
			return Internal("find product", err)
		}
		after, err = r.Products().Update(ctx, productID, patch)
		if errors.Is(err, repo.ErrNotFound) {
			return NotFound("Product not found")
		}
		if err != nil {
			return Internal("update product", err)
		}
		return writeProductAudit(ctx, r, actorUserID, model.AuditActionUpdateProduct, &before, &after)
	})
	if err != nil {
		return model.Product{}, asAppError("update product", err)
	}
	return after, nil
}

// Deactivate is the only delete; order item snapshots keep pointing at the row.
func (u *ProductUsecase) Deactivate(ctx context.Context, actorUserID int64, productID int64) (model.Product, error) {
	if actorUserID <= 0 {
		return model.Product{}, Unauthenticated("Unauthorized")
	}
	if productID <= 0 {
		return model.Product{}, Validation("Invalid product id", FieldError{Field: "id", Message: "must be a positive integer"})
	}

	var after model.Product
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Products().FindByID(ctx, productID)
		if errors.Is(err, repo.ErrNotFound) {
			return NotFound("Product not found")
		}
		if err != nil {
			return Internal("find product", err)
		}
		after, err = r.Products().Deactivate(ctx, productID)
		if err != nil {
			return Internal("deactivate product", err)
		}
		return writeProductAudit(ctx, r, actorUserID, model.AuditActionDeactivateProduct, &before, &after)
	})
	if err != nil {
		return model.Product{}, asAppError("deactivate product", err)
	}
	return after, nil
}

func writeProductAudit(ctx context.Context, r repo.TxRepos, actorUserID int64, action model.AuditAction, before, after *model.Product) error {
	entry := model.AuditLog{
		ActorUserID:  actorUserID,
		Action:       action,
		ResourceType: model.AuditResourceProduct,
		ResourceID:   after.ID,
	}
	if before != nil {
		b, _ := json.Marshal(before)
		entry.BeforeJSON = string(b)
	}
	b, _ := json.Marshal(after)
	entry.AfterJSON = string(b)

	if err := r.AuditLogs().Create(ctx, entry); err != nil {
		return Internal("write audit log", err)
	}
	return nil
}

func validateProductFields(name, description *string, price, stock *int64) []FieldError {
	var fields []FieldError
	if name != nil && utf8.RuneCountInString(*name) > maxProductName {
		fields = append(fields, FieldError{Field: "name", Message: "Name must be 255 characters or less"})
	}
	if description != nil && utf8.RuneCountInString(strings.TrimSpace(*description)) > maxProductDescription {
		fields = append(fields, FieldError{Field: "description", Message: "Description must be 5000 characters or less"})
	}
	if price != nil && *price < 0 {
		fields = append(fields, FieldError{Field: "price", Message: "Price cannot be negative"})
	}
	if stock != nil && *stock < 0 {
		fields = append(fields, FieldError{Field: "stock_quantity", Message: "Stock quantity cannot be negative"})
	}
	return fields
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

// asAppError passes typed errors through and wraps anything else as internal.
func asAppError(op string, err error) error {
	if _, ok := AsAppError(err); ok {
		return err
	}
	return Internal(op, err)
}
