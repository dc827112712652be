package domain

type Restaurant struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Rating       float64  `json:"rating"`
	Cuisine      []string `json:"cuisine"`
	IsVegetarian bool     `json:"is_vegetarian"`
	DeliveryFee  float64  `json:"delivery_fee"`
	DeliveryTime int      `json:"delivery_time"`
	IsPromoted   bool     `json:"is_promoted"`
	Discount     float64  `json:"discount"`
}
