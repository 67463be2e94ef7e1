package streaming

import (
	"encoding/json"
	"testing"

	"github.com/framelog/slp/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAckMessage_GameIDOptional(t *testing.T) {
	raw, err := json.Marshal(AckMessage{Type: TypeAck, For: TypeEndGame})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"ack","for":"end_game"}`, string(raw))

	var ack AckMessage
	require.NoError(t, json.Unmarshal([]byte(`{"type":"ack","for":"start_game","gameId":12}`), &ack))
	assert.Equal(t, uint(12), ack.GameID)
}

func TestActionsPayload(t *testing.T) {
	p := ActionsPayload{
		GameID: 3,
		Slot:   core.Slot(5),
		Actions: []ActionRecord{
			{Kind: "Attack", Label: "Jab1", Start: 0, End: 17, X: 1, Facing: "right"},
			{Kind: "Crouch", Start: 17, End: 20, Facing: "left"},
		},
	}
	raw, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"gameId":3,"slot":5,"actions":[
		{"kind":"Attack","label":"Jab1","start":0,"end":17,"x":1,"y":0,"facing":"right"},
		{"kind":"Crouch","start":17,"end":20,"x":0,"y":0,"facing":"left"}]}`, string(raw))
}
