package dto

type ProductResponse struct {
	Name      string `json:"name"`
	Price     string `json:"price"`
	ImagePath string `json:"imagePath"`
}
