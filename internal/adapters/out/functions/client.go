// Package functions calls the backend functions that persist orders and
// encrypt shipping addresses.
package functions

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"checkout/internal/adapters/out/httpclient"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/ports"
)

const (
	createOrderPath    = "/create-order"
	encryptAddressPath = "/encrypt-address"
)

var (
	_ ports.OrderFunction    = &Client{}
	_ ports.AddressEncryptor = &Client{}
)

var ErrEmptyCiphertext = errors.New("address encryption returned no ciphertext")

type deliveryOptionDTO struct {
	ID            string `json:"id"`
	CourierID     string `json:"courier_id"`
	ProviderName  string `json:"provider_name"`
	ServiceName   string `json:"service_name"`
	EstimatedDays int    `json:"estimated_days"`
	Estimate      bool   `json:"estimate"`
}

type createOrderRequest struct {
	BuyerID                  string            `json:"buyer_id"`
	SellerID                 string            `json:"seller_id"`
	ItemID                   string            `json:"item_id"`
	PaymentReference         string            `json:"payment_reference"`
	Amount                   string            `json:"amount"`
	ItemPrice                string            `json:"item_price"`
	DeliveryPrice            string            `json:"delivery_price"`
	DeliveryMethod           string            `json:"delivery_method"`
	DeliveryOption           deliveryOptionDTO `json:"delivery_option"`
	ShippingAddressEncrypted string            `json:"shipping_address_encrypted"`
}

type createOrderResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

type addressDTO struct {
	Street         string `json:"street"`
	City           string `json:"city"`
	Province       string `json:"province"`
	PostalCode     string `json:"postal_code"`
	Country        string `json:"country,omitempty"`
	AdditionalInfo string `json:"additional_info,omitempty"`
}

type encryptRequest struct {
	Address addressDTO `json:"address"`
}

type encryptResponse struct {
	Encrypted string `json:"encrypted"`
}

// Client implements ports.OrderFunction and ports.AddressEncryptor.
type Client struct {
	http *httpclient.Client
	now  func() time.Time
}

func NewClient(hc *httpclient.Client) *Client {
	return &Client{http: hc, now: time.Now}
}

// CreateOrder records the order remotely. The payment reference doubles as
// the idempotency key.
func (c *Client) CreateOrder(ctx context.Context, payload order.Payload) (ports.CreatedOrder, error) {
	body := createOrderRequest{
		BuyerID:          payload.BuyerID.String(),
		SellerID:         payload.SellerID.String(),
		ItemID:           payload.ItemID.String(),
		PaymentReference: payload.PaymentReference.String(),
		Amount:           payload.Amount.String(),
		ItemPrice:        payload.ItemPrice.String(),
		DeliveryPrice:    payload.DeliveryPrice.String(),
		DeliveryMethod:   payload.DeliveryMethod,
		DeliveryOption: deliveryOptionDTO{
			ID:            payload.DeliveryOption.ID,
			CourierID:     payload.DeliveryOption.CourierID,
			ProviderName:  payload.DeliveryOption.ProviderName,
			ServiceName:   payload.DeliveryOption.ServiceName,
			EstimatedDays: payload.DeliveryOption.EstimatedDays,
			Estimate:      payload.DeliveryOption.Estimate,
		},
		ShippingAddressEncrypted: payload.EncryptedShippingAddress,
	}

	var resp createOrderResponse
	headers := map[string]string{"Idempotency-Key": payload.PaymentReference.String()}
	if err := c.http.Do(ctx, http.MethodPost, createOrderPath, body, &resp, headers); err != nil {
		return ports.CreatedOrder{}, err
	}

	id, err := kernel.UUIDFromString(resp.ID)
	if err != nil {
		return ports.CreatedOrder{}, fmt.Errorf("%s: order id: %w", c.http.Service(), err)
	}
	createdAt := resp.CreatedAt
	if createdAt.IsZero() {
		createdAt = c.now()
	}
	return ports.CreatedOrder{ID: id, CreatedAt: createdAt}, nil
}

// Encrypt returns the opaque stored form of address.
func (c *Client) Encrypt(ctx context.Context, address kernel.Address) (string, error) {
	body := encryptRequest{Address: addressDTO{
		Street:         address.Street(),
		City:           address.City(),
		Province:       address.Province(),
		PostalCode:     address.PostalCode(),
		Country:        address.Country(),
		AdditionalInfo: address.AdditionalInfo(),
	}}

	var resp encryptResponse
	if err := c.http.Do(ctx, http.MethodPost, encryptAddressPath, body, &resp, nil); err != nil {
		return "", err
	}
	if resp.Encrypted == "" {
		return "", ErrEmptyCiphertext
	}
	return resp.Encrypted, nil
}
