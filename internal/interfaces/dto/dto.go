// Package dto holds the JSON shapes served by the HTTP handlers. Money leaves
// the service as JSON numbers; decimals stay inside the application layer.
package dto

import (
	"encoding/json"
	"time"

	"ryzer-backend/internal/application/portfolio"
	"ryzer-backend/internal/domain"
)

type Asset struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Supply   int64   `json:"supply"`
	Location string  `json:"location"`
	Type     string  `json:"type"`
}

type Transaction struct {
	ID         int64     `json:"id"`
	AssetID    int64     `json:"asset_id"`
	AssetName  string    `json:"asset_name"`
	Buyer      string    `json:"buyer"`
	Quantity   int64     `json:"quantity"`
	Timestamp  time.Time `json:"timestamp"`
	TotalPrice float64   `json:"total_price"`
}

type BuyRequest struct {
	AssetID   int64  `json:"assetId"`
	Quantity  int64  `json:"quantity"`
	BuyerName string `json:"buyerName"`
}

type BuyResponse struct {
	Success         bool        `json:"success"`
	Message         string      `json:"message"`
	Transaction     Transaction `json:"transaction"`
	RemainingSupply int64       `json:"remainingSupply"`
}

type Holding struct {
	AssetName         string  `json:"assetName"`
	TotalTokens       int64   `json:"totalTokens"`
	TotalInvested     float64 `json:"totalInvested"`
	CurrentValue      float64 `json:"currentValue"`
	ProfitLoss        float64 `json:"profitLoss"`
	ProfitLossPercent float64 `json:"profitLossPercent"`
}

type Portfolio struct {
	Holdings               []Holding `json:"holdings"`
	TotalInvested          float64   `json:"totalInvested"`
	TotalCurrentValue      float64   `json:"totalCurrentValue"`
	TotalProfitLoss        float64   `json:"totalProfitLoss"`
	TotalProfitLossPercent float64   `json:"totalProfitLossPercent"`
}

type AssetEvent struct {
	ID            int64           `json:"id"`
	AssetID       int64           `json:"asset_id"`
	EventType     string          `json:"event_type"`
	TransactionID *int64          `json:"transaction_id"`
	Actor         string          `json:"actor"`
	EventData     json.RawMessage `json:"event_data"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func FromAsset(a domain.Asset) Asset {
	return Asset{
		ID:       a.ID,
		Name:     a.Name,
		Price:    a.Price.InexactFloat64(),
		Supply:   a.Supply,
		Location: a.Location,
		Type:     a.Category,
	}
}

func FromAssets(assets []domain.Asset) []Asset {
	out := make([]Asset, 0, len(assets))
	for _, a := range assets {
		out = append(out, FromAsset(a))
	}
	return out
}

func FromTransaction(tx domain.Transaction) Transaction {
	return Transaction{
		ID:         tx.ID,
		AssetID:    tx.AssetID,
		AssetName:  tx.AssetName,
		Buyer:      tx.Buyer,
		Quantity:   tx.Quantity,
		Timestamp:  tx.CreatedAt,
		TotalPrice: tx.TotalPrice.InexactFloat64(),
	}
}

func FromTransactions(txs []domain.Transaction) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		out = append(out, FromTransaction(tx))
	}
	return out
}

func FromSummary(s portfolio.Summary) Portfolio {
	p := Portfolio{
		Holdings:               make([]Holding, 0, len(s.Holdings)),
		TotalInvested:          s.TotalInvested.InexactFloat64(),
		TotalCurrentValue:      s.TotalCurrentValue.InexactFloat64(),
		TotalProfitLoss:        s.TotalProfitLoss.InexactFloat64(),
		TotalProfitLossPercent: s.TotalProfitLossPercent.InexactFloat64(),
	}
	for _, h := range s.Holdings {
		p.Holdings = append(p.Holdings, Holding{
			AssetName:         h.AssetName,
			TotalTokens:       h.TotalTokens,
			TotalInvested:     h.TotalInvested.InexactFloat64(),
			CurrentValue:      h.CurrentValue.InexactFloat64(),
			ProfitLoss:        h.ProfitLoss.InexactFloat64(),
			ProfitLossPercent: h.ProfitLossPercent.InexactFloat64(),
		})
	}
	return p
}

func FromAssetEvents(events []domain.AssetEvent) []AssetEvent {
	out := make([]AssetEvent, 0, len(events))
	for _, e := range events {
		out = append(out, AssetEvent{
			ID:            e.ID,
			AssetID:       e.AssetID,
			EventType:     e.EventType,
			TransactionID: e.TransactionID,
			Actor:         e.Actor,
			EventData:     json.RawMessage(e.EventData),
			CreatedAt:     e.CreatedAt,
		})
	}
	return out
}
