package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"gorm.io/datatypes"

	"github.com/hilalgiving/ledger/internal/app/service/campaign"
	donsvc "github.com/hilalgiving/ledger/internal/app/service/donation"
	subsvc "github.com/hilalgiving/ledger/internal/app/service/subscription"
	models "github.com/hilalgiving/ledger/internal/models"
	"github.com/hilalgiving/ledger/internal/repo"
	"github.com/hilalgiving/ledger/pkg/response"
	"github.com/hilalgiving/ledger/pkg/types"
)

type ListDonationsRequest struct {
	Filters   []*types.CommonFilter `json:"filters"`
	From      int                   `json:"from"`
	Size      int                   `json:"size"`
	SortBy    string                `json:"sort_by"`
	SortOrder string                `json:"sort_order"`
}

type DonationItem struct {
	ID                     string           `json:"id"`
	ReceiptNumber          string           `json:"receipt_number"`
	DonorName              *string          `json:"donor_name"`
	DonorEmail             string           `json:"donor_email"`
	Amount                 int64            `json:"amount"`
	Currency               string           `json:"currency"`
	Status                 string           `json:"status"`
	DonationTypeID         string           `json:"donation_type_id"`
	DonationTypeLabel      string           `json:"donation_type_label"`
	CampaignID             *string          `json:"campaign_id"`
	IsRecurring            bool             `json:"is_recurring"`
	Frequency              *types.Frequency `json:"frequency"`
	SubscriptionID         *string          `json:"subscription_id"`
	GatewayPaymentIntentID *string          `json:"gateway_payment_intent_id"`
	PaymentMethodType      *string          `json:"payment_method_type"`
	PaymentMethodBrand     *string          `json:"payment_method_brand"`
	PaymentMethodLast4     *string          `json:"payment_method_last4"`
	SettledOn              datatypes.Date   `json:"settled_on"`
	CompletedAt            time.Time        `json:"completed_at"`
	CreatedAt              time.Time        `json:"created_at"`
}

func toDonationItem(m *models.Donation) *DonationItem {
	return &DonationItem{
		ID:                     m.ID,
		ReceiptNumber:          m.ReceiptNumber,
		DonorName:              m.DonorName,
		DonorEmail:             m.DonorEmail,
		Amount:                 m.Amount,
		Currency:               m.Currency,
		Status:                 string(m.Status),
		DonationTypeID:         m.DonationTypeID,
		DonationTypeLabel:      m.DonationTypeLabel,
		CampaignID:             m.CampaignID,
		IsRecurring:            m.IsRecurring,
		Frequency:              m.Frequency,
		SubscriptionID:         m.SubscriptionID,
		GatewayPaymentIntentID: m.GatewayPaymentIntentID,
		PaymentMethodType:      m.PaymentMethodType,
		PaymentMethodBrand:     m.PaymentMethodBrand,
		PaymentMethodLast4:     m.PaymentMethodLast4,
		SettledOn:              m.SettledOn,
		CompletedAt:            m.CompletedAt,
		CreatedAt:              m.CreatedAt,
	}
}

type ListDonationsResponse struct {
	Items []*DonationItem `json:"items"`
	Total int64           `json:"total"`
}

// @Summary      List Donations (Admin)
// @Description  Retrieves a paginated and filterable list of ledger donations.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body ListDonationsRequest true "List donations request with filters, pagination, and sorting"
// @Success      200  {object}  handlers.RespListDonations
// @Router       /api/v1/admin/list_donations [post]
func ApiListDonations(svc *donsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ListDonationsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		listReq := &repo.ListDonationsRequest{Filters: req.Filters, From: req.From, Size: req.Size, SortBy: req.SortBy, SortOrder: req.SortOrder}
		res, err := svc.List(c.Request.Context(), listReq)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		items := lo.Map(res.Items, func(it *models.Donation, _ int) *DonationItem { return toDonationItem(it) })
		c.JSON(http.StatusOK, response.OKT(&ListDonationsResponse{Items: items, Total: res.Total}))
	}
}

// @Summary      Get Campaign (Admin)
// @Description  Retrieves a campaign with its running donation total.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body handlers.GetCampaignRequest true "Campaign lookup"
// @Success      200  {object}  handlers.RespCampaign
// @Router       /api/v1/admin/get_campaign [post]
func ApiGetCampaign(svc *campaign.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GetCampaignRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if req.CampaignID == "" {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "missing campaign_id"))
			return
		}
		res, err := svc.Get(c.Request.Context(), req.CampaignID)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Get Recurring Donation (Admin)
// @Description  Retrieves a recurring donation by gateway subscription id.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body handlers.GetRecurringDonationRequest true "Subscription lookup"
// @Success      200  {object}  handlers.RespRecurringDonation
// @Router       /api/v1/admin/get_recurring_donation [post]
func ApiGetRecurringDonation(svc *subsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GetRecurringDonationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if req.SubscriptionID == "" {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "missing subscription_id"))
			return
		}
		res, err := svc.Get(c.Request.Context(), req.SubscriptionID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "subscription not found"))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

type GetCampaignRequest struct {
	CampaignID string `json:"campaign_id"`
}

type GetRecurringDonationRequest struct {
	SubscriptionID string `json:"subscription_id"`
}

func RegisterAdminRoutes(r gin.IRouter, don *donsvc.Service, camp *campaign.Service, sub *subsvc.Service) {
	r.POST("/list_donations", ApiListDonations(don))
	r.POST("/get_campaign", ApiGetCampaign(camp))
	r.POST("/get_recurring_donation", ApiGetRecurringDonation(sub))
}
