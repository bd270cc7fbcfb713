package service

import (
	"shopchat-be/internal/dto"
	"shopchat-be/internal/entity"
)

type IProductService interface {
	List() []dto.ProductResponse
}

// Static storefront catalog, served read-only.
var catalog = []entity.Product{
	{Name: "Echo Dot (4th Gen)", Price: "₹4,499", ImagePath: "products/echo_dot.png"},
	{Name: "Fire TV Stick", Price: "₹3,999", ImagePath: "products/fire_tv_stick.png"},
	{Name: "Kindle Paperwhite", Price: "₹13,999", ImagePath: "products/kindle_paperwhite.png"},
	{Name: "Amazon Basics Wireless Mouse", Price: "₹699", ImagePath: "products/basics_mouse.png"},
	{Name: "Alexa Smart Plug", Price: "₹1,999", ImagePath: "products/smart_plug.png"},
	{Name: "Amazon Gift Card", Price: "₹500 - ₹5,000", ImagePath: "products/gift_card.png"},
	{Name: "Wireless Charger", Price: "₹1,299", ImagePath: "products/wireless_charger.png"},
	{Name: "Amazon Hoodie", Price: "₹2,299", ImagePath: "products/hoodie.png"},
	{Name: "Bluetooth Speaker", Price: "₹1,799", ImagePath: "products/bt_speaker.png"},
	{Name: "USB-C Cable", Price: "₹499", ImagePath: "products/usb_c_cable.png"},
}

type productService struct{}

func NewProductService() IProductService {
	return &productService{}
}

func (s *productService) List() []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(catalog))
	for _, p := range catalog {
		out = append(out, dto.ProductResponse{
			Name:      p.Name,
			Price:     p.Price,
			ImagePath: p.ImagePath,
		})
	}
	return out
}
