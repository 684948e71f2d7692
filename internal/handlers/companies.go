package handlers

import (
	"context"

	"github.com/gdg-garage/trip-booking-api/internal/models"
	"github.com/gdg-garage/trip-booking-api/internal/store"
)

type CompanyHandler struct {
	store *store.Store
}

func NewCompanyHandler(s *store.Store) *CompanyHandler {
	return &CompanyHandler{store: s}
}

type CompanyBody struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	TotalBookings int64  `json:"total_bookings" doc:"Bookings of any status across all trips of all products"`
}

func (h *CompanyHandler) body(ctx context.Context, c *models.Company) (CompanyBody, error) {
	total, err := h.store.CompanyTotalBookings(ctx, c.ID)
	if err != nil {
		return CompanyBody{}, err
	}
	return CompanyBody{ID: c.ID, Name: c.Name, Description: c.Description, TotalBookings: total}, nil
}

type CreateCompanyRequest struct {
	Body struct {
		Name        string `json:"name" doc:"Company name" required:"true" maxLength:"255"`
		Description string `json:"description,omitempty" doc:"Free-text description"`
	}
}

type CompanyResponse struct {
	Body CompanyBody
}

func (h *CompanyHandler) HandleCreate(ctx context.Context, input *CreateCompanyRequest) (*CompanyResponse, error) {
	c := models.Company{Name: input.Body.Name, Description: input.Body.Description}
	if err := h.store.CreateCompany(ctx, &c); err != nil {
		return nil, apiError(err)
	}
	body, err := h.body(ctx, &c)
	if err != nil {
		return nil, apiError(err)
	}
	return &CompanyResponse{Body: body}, nil
}

type ListCompaniesResponse struct {
	Body []CompanyBody
}

func (h *CompanyHandler) HandleList(ctx context.Context, input *struct{}) (*ListCompaniesResponse, error) {
	companies, err := h.store.Companies(ctx)
	if err != nil {
		return nil, apiError(err)
	}
	res := &ListCompaniesResponse{Body: make([]CompanyBody, 0, len(companies))}
	for i := range companies {
		body, err := h.body(ctx, &companies[i])
		if err != nil {
			return nil, apiError(err)
		}
		res.Body = append(res.Body, body)
	}
	return res, nil
}

type CompanyIDInput struct {
	ID uint `path:"id"`
}

func (h *CompanyHandler) HandleGet(ctx context.Context, input *CompanyIDInput) (*CompanyResponse, error) {
	c, err := h.store.Company(ctx, input.ID)
	if err != nil {
		return nil, apiError(err)
	}
	body, err := h.body(ctx, c)
	if err != nil {
		return nil, apiError(err)
	}
	return &CompanyResponse{Body: body}, nil
}

func (h *CompanyHandler) HandleDelete(ctx context.Context, input *CompanyIDInput) (*struct{}, error) {
	if err := h.store.DeleteCompany(ctx, input.ID); err != nil {
		return nil, apiError(err)
	}
	return nil, nil
}
