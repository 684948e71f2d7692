package handlers

import (
	"context"
	"time"

	"github.com/gdg-garage/trip-booking-api/internal/models"
	"github.com/gdg-garage/trip-booking-api/internal/store"
)

type ProductHandler struct {
	store *store.Store
}

func NewProductHandler(s *store.Store) *ProductHandler {
	return &ProductHandler{store: s}
}

type ProductFields struct {
	Name        string  `json:"name" doc:"Product name" required:"true" maxLength:"100"`
	Description string  `json:"description" doc:"Product description" required:"true"`
	Price       float64 `json:"price" doc:"Price with two decimal places" required:"true"`
	Company     uint    `json:"company" doc:"Owning company ID" required:"true"`
}

type ProductBody struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	CompanyName string    `json:"company_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func productBody(p *models.Product) ProductBody {
	return ProductBody{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		CompanyName: p.Company.Name,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type CreateProductRequest struct {
	Body ProductFields
}

type ProductResponse struct {
	Body ProductBody
}

func (h *ProductHandler) HandleCreate(ctx context.Context, input *CreateProductRequest) (*ProductResponse, error) {
	p := models.Product{
		Name:        input.Body.Name,
		Description: input.Body.Description,
		Price:       input.Body.Price,
		CompanyID:   input.Body.Company,
	}
	if err := h.store.CreateProduct(ctx, &p); err != nil {
		return nil, apiError(err)
	}
	created, err := h.store.Product(ctx, p.ID)
	if err != nil {
		return nil, apiError(err)
	}
	return &ProductResponse{Body: productBody(created)}, nil
}

type ListProductsResponse struct {
	Body []ProductBody
}

func (h *ProductHandler) HandleList(ctx context.Context, input *struct{}) (*ListProductsResponse, error) {
	products, err := h.store.Products(ctx)
	if err != nil {
		return nil, apiError(err)
	}
	res := &ListProductsResponse{Body: make([]ProductBody, 0, len(products))}
	for i := range products {
		res.Body = append(res.Body, productBody(&products[i]))
	}
	return res, nil
}

type ProductIDInput struct {
	ID uint `path:"id"`
}

func (h *ProductHandler) HandleGet(ctx context.Context, input *ProductIDInput) (*ProductResponse, error) {
	p, err := h.store.Product(ctx, input.ID)
	if err != nil {
		return nil, apiError(err)
	}
	return &ProductResponse{Body: productBody(p)}, nil
}

type UpdateProductRequest struct {
	ID   uint `path:"id"`
	Body ProductFields
}

func (h *ProductHandler) HandleUpdate(ctx context.Context, input *UpdateProductRequest) (*ProductResponse, error) {
	p, err := h.store.Product(ctx, input.ID)
	if err != nil {
		return nil, apiError(err)
	}
	p.Name = input.Body.Name
	p.Description = input.Body.Description
	p.Price = input.Body.Price
	p.CompanyID = input.Body.Company
	if err := h.store.SaveProduct(ctx, p); err != nil {
		return nil, apiError(err)
	}
	updated, err := h.store.Product(ctx, p.ID)
	if err != nil {
		return nil, apiError(err)
	}
	return &ProductResponse{Body: productBody(updated)}, nil
}

func (h *ProductHandler) HandleDelete(ctx context.Context, input *ProductIDInput) (*struct{}, error) {
	if err := h.store.DeleteProduct(ctx, input.ID); err != nil {
		return nil, apiError(err)
	}
	return nil, nil
}
