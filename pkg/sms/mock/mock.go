package mock_sms

import (
	"github.com/gigmarket/backend/pkg/sms"

	"github.com/stretchr/testify/mock"
)

type SMSSender struct {
	mock.Mock
}

func (m *SMSSender) Send(inp sms.SendSMSInput) error {
	args := m.Called(inp)

	return args.Error(0)
}
