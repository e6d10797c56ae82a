package handler

import (
	"github.com/appzeto/food-admin/internal/core/domain"
	"github.com/appzeto/food-admin/internal/core/ports"
)

type createCityRequest struct {
	CityName string `json:"cityName" validate:"required,max=100"`
	Status   string `json:"status"   validate:"omitempty,oneof=active inactive"`
}

type updateCityRequest struct {
	CityName *string `json:"cityName" validate:"omitempty,max=100"`
	Status   *string `json:"status"   validate:"omitempty,oneof=active inactive"`
}

type cityListResponse struct {
	Cities []*domain.City `json:"cities"`
	Total  int            `json:"total"`
}

type createHubRequest struct {
	CityID              string   `json:"cityId"              validate:"required"`
	HubName             string   `json:"hubName"             validate:"required,max=100"`
	HubArea             string   `json:"hubArea"             validate:"max=200"`
	ServiceablePincodes []string `json:"serviceablePincodes"`
	Status              string   `json:"status"              validate:"omitempty,oneof=active inactive"`
}

type updateHubRequest struct {
	CityID              *string  `json:"cityId"`
	HubName             *string  `json:"hubName"             validate:"omitempty,max=100"`
	HubArea             *string  `json:"hubArea"             validate:"omitempty,max=200"`
	ServiceablePincodes []string `json:"serviceablePincodes"`
	Status              *string  `json:"status"              validate:"omitempty,oneof=active inactive"`
}

type hubListResponse struct {
	Hubs  []*domain.Hub `json:"hubs"`
	Total int           `json:"total"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type featureRequest struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       string `json:"color"`
	BgColor     string `json:"bgColor"`
	Order       *int   `json:"order"`
}

type statRequest struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Icon  string `json:"icon"`
	Order *int   `json:"order"`
}

// updateAboutRequest leaves logo, features and stats nil when they are not sent.
type updateAboutRequest struct {
	AppName     string           `json:"appName"`
	Version     string           `json:"version"`
	Description string           `json:"description"`
	Logo        *string          `json:"logo"`
	Features    []featureRequest `json:"features"`
	Stats       []statRequest    `json:"stats"`
}

func (r updateAboutRequest) toInput(adminID string) ports.UpdateAboutInput {
	in := ports.UpdateAboutInput{
		AppName:     r.AppName,
		Version:     r.Version,
		Description: r.Description,
		Logo:        r.Logo,
		UpdatedBy:   adminID,
	}
	if r.Features != nil {
		in.Features = make([]ports.FeatureInput, 0, len(r.Features))
		for _, f := range r.Features {
			in.Features = append(in.Features, ports.FeatureInput(f))
		}
	}
	if r.Stats != nil {
		in.Stats = make([]ports.StatInput, 0, len(r.Stats))
		for _, s := range r.Stats {
			in.Stats = append(in.Stats, ports.StatInput(s))
		}
	}
	return in
}
