package task

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gigmarket/backend/internal/domain"
)

func TestNewSendNotificationTask(t *testing.T) {
	userID := uuid.New()

	tk, err := NewSendNotificationTask(userID, domain.IDVerificationRejectedNotification("blurry"))
	require.NoError(t, err)
	assert.Equal(t, SendNotificationTaskName, tk.Type())

	var data SendNotification
	require.NoError(t, json.Unmarshal(tk.Payload(), &data))
	assert.Equal(t, userID, data.UserID)
	assert.Equal(t, domain.NotificationIDVerificationRejected, data.Payload.Type)
	assert.Equal(t, "/id-verification", data.Payload.ActionURL)
	assert.Equal(t, "red", data.Payload.Color)
}
