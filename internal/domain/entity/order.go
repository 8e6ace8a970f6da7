package entity

import "time"

const (
	PaymentMethodCOD = "cod"

	OrderStatusPending = "pending"
)

type ShippingDetails struct {
	FullName     string `json:"full_name" firestore:"fullName"`
	Phone        string `json:"phone" firestore:"phone"`
	Email        string `json:"email,omitempty" firestore:"email,omitempty"`
	AddressLine1 string `json:"address_line1" firestore:"addressLine1"`
	AddressLine2 string `json:"address_line2,omitempty" firestore:"addressLine2,omitempty"`
	City         string `json:"city" firestore:"city"`
	State        string `json:"state" firestore:"state"`
	Pincode      string `json:"pincode" firestore:"pincode"`
}

type Order struct {
	ID            string          `json:"id" firestore:"id"`
	BookID        string          `json:"book_id" firestore:"bookId"`
	BuyerID       string          `json:"buyer_id" firestore:"buyerId"`
	SellerID      string          `json:"seller_id" firestore:"sellerId"`
	Quantity      int             `json:"quantity" firestore:"quantity"`
	TotalPrice    float64         `json:"total_price" firestore:"totalPrice"`
	Shipping      ShippingDetails `json:"shipping" firestore:"shipping"`
	PaymentMethod string          `json:"payment_method" firestore:"paymentMethod"`
	Status        string          `json:"status" firestore:"status"`
	CreatedAt     time.Time       `json:"created_at" firestore:"createdAt"`
	UpdatedAt     time.Time       `json:"updated_at" firestore:"updatedAt"`
}
