package handlers

import (
	models "github.com/hilalgiving/ledger/internal/models"
	"github.com/hilalgiving/ledger/pkg/response"
)

// RespOK is a generic OK envelope for endpoints returning no specific data.
type RespOK struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    interface{}              `json:"data"`
}

// RespListDonations wraps ListDonationsResponse in the standard envelope.
type RespListDonations struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    ListDonationsResponse    `json:"data"`
}

// RespCampaign wraps a campaign in the standard envelope.
type RespCampaign struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    models.Campaign          `json:"data"`
}

// RespRecurringDonation wraps a recurring donation in the standard envelope.
type RespRecurringDonation struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    models.RecurringDonation `json:"data"`
}
