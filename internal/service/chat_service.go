package service

import (
	"context"
	"strings"
)

// ChatGateway is the outbound surface for the shopping assistant.
type ChatGateway interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// storefrontPrompt pins the assistant to the shop's actual catalog rules so
// it cannot invent policies the backend does not honor.
const storefrontPrompt = `You are the shopping assistant for NileCart, an Egyptian online
storefront selling products from locally curated, admin-approved brands.
All prices are in Egyptian pounds (EGP). Shipping is a flat 70 EGP to Cairo
and Alexandria and 100 EGP to any other city. Orders are confirmed, shipped
and delivered by the store team; customers can see their order status by
order number. Brands, products and ads submitted by sellers only appear
after admin approval. Be concise, friendly and honest: if you do not know
something about an order or product, say so and point the customer to
support@nilecart.com.`

// ChatService proxies a single customer message to the AI gateway with the
// fixed storefront system prompt.
type ChatService struct {
	gateway ChatGateway
}

// NewChatService constructs a ChatService.
func NewChatService(gateway ChatGateway) *ChatService {
	return &ChatService{gateway: gateway}
}

// Ask forwards one message and returns the assistant reply.
func (s *ChatService) Ask(ctx context.Context, userMessage string) (string, error) {
	if strings.TrimSpace(userMessage) == "" {
		return "", validationError("Message is required")
	}
	return s.gateway.Complete(ctx, storefrontPrompt, userMessage)
}
