// Package dto はportfolioフィーチャーのHTTPレスポンスDTOを定義します。
package dto

import (
	quotesdto "portfolio_backend/internal/feature/quotes/transport/http/dto"
	"portfolio_backend/internal/feature/portfolio/usecase"
)

// HoldingValuationResponse は1保有銘柄分の評価結果です。
type HoldingValuationResponse struct {
	quotesdto.PortfolioQuoteResponse
	Weight          float64  `json:"weight"`
	WeightDeviation *float64 `json:"weightDeviation,omitempty"`
}

// SummaryResponse はポートフォリオ全体の評価サマリーです。
type SummaryResponse struct {
	Holdings             []HoldingValuationResponse `json:"holdings"`
	Cash                 float64                    `json:"cash"`
	PortfolioTotal       float64                    `json:"portfolioTotal"`
	DayChangeValue       float64                    `json:"dayChangeValue"`
	TotalWeightDeviation float64                    `json:"totalWeightDeviation"`
	TotalGain            float64                    `json:"totalGain"`
	TotalGainPercent     float64                    `json:"totalGainPercent"`
	DisplayCurrency      string                     `json:"displayCurrency"`
	DisplayRate          float64                    `json:"displayRate"`
	DisplayTotal         float64                    `json:"displayTotal"`
}

// RecommendationResponse は1銘柄分のリバランス推奨です。
type RecommendationResponse struct {
	Code            string  `json:"code"`
	Name            string  `json:"name"`
	CurrentQuantity float64 `json:"currentQuantity"`
	CurrentPrice    float64 `json:"currentPrice"`
	TargetWeight    float64 `json:"targetWeight"`
	TargetValue     float64 `json:"targetValue"`
	TargetQuantity  int64   `json:"targetQuantity"`
	QuantityChange  float64 `json:"quantityChange"`
	ValueChange     float64 `json:"valueChange"`
	NewWeight       float64 `json:"newWeight"`
	Action          string  `json:"action"`
}

// RebalanceResponse はリバランス計算の結果一式です。
type RebalanceResponse struct {
	Recommendations []RecommendationResponse `json:"recommendations"`
	PortfolioTotal  float64                  `json:"portfolioTotal"`
	Cash            float64                  `json:"cash"`
	ResultingCash   float64                  `json:"resultingCash"`
}

// ToSummaryResponse は評価サマリーをレスポンスDTOへ変換します。
func ToSummaryResponse(s usecase.Summary) SummaryResponse {
	holdings := make([]HoldingValuationResponse, 0, len(s.Holdings))
	for _, hv := range s.Holdings {
		holdings = append(holdings, HoldingValuationResponse{
			PortfolioQuoteResponse: quotesdto.ToPortfolioQuoteResponse(hv.PortfolioQuote),
			Weight:                 hv.Weight,
			WeightDeviation:        hv.WeightDeviation,
		})
	}
	return SummaryResponse{
		Holdings:             holdings,
		Cash:                 s.Cash,
		PortfolioTotal:       s.PortfolioTotal,
		DayChangeValue:       s.DayChangeValue,
		TotalWeightDeviation: s.TotalWeightDeviation,
		TotalGain:            s.TotalGain,
		TotalGainPercent:     s.TotalGainPercent,
		DisplayCurrency:      s.DisplayCurrency,
		DisplayRate:          s.DisplayRate,
		DisplayTotal:         s.DisplayTotal,
	}
}

// ToRebalanceResponse はリバランス結果をレスポンスDTOへ変換します。
func ToRebalanceResponse(r usecase.RebalanceResult) RebalanceResponse {
	recs := make([]RecommendationResponse, 0, len(r.Recommendations))
	for _, rec := range r.Recommendations {
		recs = append(recs, RecommendationResponse{
			Code:            rec.Code,
			Name:            rec.Name,
			CurrentQuantity: rec.CurrentQuantity,
			CurrentPrice:    rec.CurrentPrice,
			TargetWeight:    rec.TargetWeight,
			TargetValue:     rec.TargetValue,
			TargetQuantity:  rec.TargetQuantity,
			QuantityChange:  rec.QuantityChange,
			ValueChange:     rec.ValueChange,
			NewWeight:       rec.NewWeight,
			Action:          string(rec.Action),
		})
	}
	return RebalanceResponse{
		Recommendations: recs,
		PortfolioTotal:  r.PortfolioTotal,
		Cash:            r.Cash,
		ResultingCash:   r.ResultingCash,
	}
}
