package tradingpb

import (
	"encoding/json"
	"fmt"

	"github.com/olyamironova/electricity-trading-client/internal/domain"
)

// MarshalOrderDetail encodes d in its wire JSON form for storage.
func MarshalOrderDetail(d domain.OrderDetail) ([]byte, error) {
	pb, err := OrderDetailToProto(d)
	if err != nil {
		return nil, err
	}
	return json.Marshal(pb)
}

func UnmarshalOrderDetail(b []byte) (domain.OrderDetail, error) {
	var pb OrderDetail
	if err := json.Unmarshal(b, &pb); err != nil {
		return domain.OrderDetail{}, fmt.Errorf("tradingpb: decode order detail: %w", err)
	}
	return OrderDetailFromProto(&pb)
}

func MarshalPublicTrade(t domain.PublicTrade) ([]byte, error) {
	return json.Marshal(PublicTradeToProto(t))
}

func UnmarshalPublicTrade(b []byte) (domain.PublicTrade, error) {
	var pb PublicTrade
	if err := json.Unmarshal(b, &pb); err != nil {
		return domain.PublicTrade{}, fmt.Errorf("tradingpb: decode public trade: %w", err)
	}
	return PublicTradeFromProto(&pb)
}
