package barrier

import "github.com/stretchr/testify/mock"

type mockSink struct {
	mock.Mock
}

func (m *mockSink) ReportFault(r Report) {
	m.Called(r)
}
