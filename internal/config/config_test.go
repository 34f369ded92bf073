package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckMQTTTopic(t *testing.T) {

	assert := assert.New(t)

	topic, err := CheckMQTTTopic("batsim")
	assert.NoError(err)
	assert.Equal("batsim", topic)

	topic, err = CheckMQTTTopic("BatSim_01")
	assert.NoError(err)
	assert.Equal("batsim_01", topic, "topic is lowercased")

	_, err = CheckMQTTTopic("bat sim")
	assert.Error(err)

	_, err = CheckMQTTTopic("bat/sim")
	assert.Error(err)

	_, err = CheckMQTTTopic("")
	assert.Error(err)
}
