package domain

import "time"

// EntityStatus is the lifecycle flag shared by cities and hubs.
type EntityStatus string

const (
	StatusActive   EntityStatus = "active"
	StatusInactive EntityStatus = "inactive"
)

// Valid reports whether s is a known status.
func (s EntityStatus) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// Admin roles accepted on the admin API.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// City is a serviceable city.
type City struct {
	ID        string       `json:"_id"`
	CityName  string       `json:"cityName"`
	Status    EntityStatus `json:"status"`
	CreatedBy string       `json:"createdBy,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// Hub is a delivery hub inside a city.
type Hub struct {
	ID                  string       `json:"_id"`
	CityID              string       `json:"cityId"`
	CityName            string       `json:"cityName,omitempty"`
	HubName             string       `json:"hubName"`
	HubArea             string       `json:"hubArea,omitempty"`
	ServiceablePincodes []string     `json:"serviceablePincodes"`
	Status              EntityStatus `json:"status"`
	CreatedBy           string       `json:"createdBy,omitempty"`
	CreatedAt           time.Time    `json:"createdAt"`
	UpdatedAt           time.Time    `json:"updatedAt"`
}

// AboutFeature is a highlighted feature card on the about page.
type AboutFeature struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       string `json:"color"`
	BgColor     string `json:"bgColor"`
	Order       int    `json:"order"`
}

// AboutStat is a headline number on the about page.
type AboutStat struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Icon  string `json:"icon"`
	Order int    `json:"order"`
}

// About is the content of the app's about page. Only one active page exists.
type About struct {
	ID          string         `json:"_id,omitempty"`
	AppName     string         `json:"appName"`
	Version     string         `json:"version"`
	Description string         `json:"description"`
	Logo        string         `json:"logo"`
	Features    []AboutFeature `json:"features"`
	Stats       []AboutStat    `json:"stats"`
	IsActive    bool           `json:"isActive"`
	UpdatedBy   string         `json:"updatedBy,omitempty"`
	CreatedAt   time.Time      `json:"createdAt,omitempty"`
	UpdatedAt   time.Time      `json:"updatedAt,omitempty"`
}

// Fallback colours for feature cards saved without them.
const (
	DefaultFeatureColor   = "text-gray-600"
	DefaultFeatureBgColor = "bg-gray-100"
)

// DefaultAbout returns the built-in about page shown before an admin edits it.
func DefaultAbout() About {
	return About{
		AppName:     "Appzeto Food",
		Version:     "1.0.0",
		Description: "Your trusted food delivery partner, bringing delicious meals right to your doorstep. Experience the convenience of ordering from your favorite restaurants with fast, reliable delivery.",
		Features: []AboutFeature{
			{Icon: "Heart", Title: "Made with Love", Description: "We're passionate about bringing you the best food experience possible.", Color: "text-pink-600 dark:text-pink-400", BgColor: "bg-pink-100 dark:bg-pink-900/30", Order: 0},
			{Icon: "Users", Title: "Serving Millions", Description: "Join millions of satisfied customers enjoying great food every day.", Color: "text-blue-600 dark:text-blue-400", BgColor: "bg-blue-100 dark:bg-blue-900/30", Order: 1},
			{Icon: "Shield", Title: "Quality Assured", Description: "We partner with the best restaurants to ensure quality and freshness.", Color: "text-green-600 dark:text-green-400", BgColor: "bg-green-100 dark:bg-green-900/30", Order: 2},
			{Icon: "Clock", Title: "Fast Delivery", Description: "Get your favorite meals delivered quickly and safely to your doorstep.", Color: "text-orange-600 dark:text-orange-400", BgColor: "bg-orange-100 dark:bg-orange-900/30", Order: 3},
		},
		Stats: []AboutStat{
			{Label: "Happy Customers", Value: "1M+", Icon: "Users", Order: 0},
			{Label: "Restaurant Partners", Value: "10K+", Icon: "Award", Order: 1},
			{Label: "Cities Served", Value: "50+", Icon: "Star", Order: 2},
		},
		IsActive: true,
	}
}
