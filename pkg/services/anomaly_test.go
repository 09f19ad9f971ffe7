package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAnomalousReadingThresholdBoundary(t *testing.T) {
	assert.False(t, IsAnomalousReading(9999.99))
	assert.False(t, IsAnomalousReading(10000))
	assert.True(t, IsAnomalousReading(10000.01))
	assert.True(t, IsAnomalousReading(12000))
	assert.False(t, IsAnomalousReading(0))
}
