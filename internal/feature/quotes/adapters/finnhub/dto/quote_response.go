package dto

// QuoteResponse はFinnhub /quote エンドポイントのレスポンスDTOです。
type QuoteResponse struct {
	Current       float64 `json:"c"`  // 現在値
	ChangeAbs     float64 `json:"d"`  // 前日比
	ChangePct     float64 `json:"dp"` // 前日比率
	High          float64 `json:"h"`  // 高値
	Low           float64 `json:"l"`  // 安値
	Open          float64 `json:"o"`  // 始値
	PreviousClose float64 `json:"pc"` // 前日終値
	Timestamp     int64   `json:"t"`  // UNIX秒
}
