package tradingpb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/types/known/fieldmaskpb"
)

func TestCodec_Registered(t *testing.T) {
	assert.NotNil(t, encoding.GetCodecV2(CodecName))
}

func TestCodec_UpdateMaskAndPayload(t *testing.T) {
	payload, err := PayloadToProto(map[string]any{"a": "b"})
	require.NoError(t, err)
	in := &UpdateGridpoolOrderRequest{
		GridpoolId:        1,
		OrderId:           2,
		UpdateOrderFields: &UpdateOrder{Payload: payload},
		UpdateMask:        &fieldmaskpb.FieldMask{Paths: []string{"payload"}},
	}

	b, err := jsonCodec{}.Marshal(in)
	require.NoError(t, err)

	var out UpdateGridpoolOrderRequest
	require.NoError(t, jsonCodec{}.Unmarshal(b, &out))
	assert.Equal(t, []string{"payload"}, out.UpdateMask.GetPaths())
	assert.Equal(t, map[string]any{"a": "b"}, PayloadFromProto(out.UpdateOrderFields.Payload))
}

func TestCodec_UnmarshalError(t *testing.T) {
	var out CreateGridpoolOrderResponse
	assert.Error(t, jsonCodec{}.Unmarshal([]byte("{"), &out))
}
