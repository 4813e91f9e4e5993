package registry

import (
	"testing"

	"orders-hertz/conf"

	"github.com/stretchr/testify/assert"
)

func TestRegistrationDefaults(t *testing.T) {
	t.Setenv("POD_IP", "127.0.0.1")
	reg := Registration("Orders API", conf.Registry{ServicePort: 8000})

	assert.Equal(t, "orders-api-127.0.0.1-8000", reg.ID)
	assert.Equal(t, ServiceName, reg.Name)
	assert.Equal(t, "127.0.0.1", reg.Address)
	assert.Equal(t, 8000, reg.Port)
	assert.Equal(t, "Orders API", reg.Meta["title"])
	assert.Equal(t, "http://127.0.0.1:8000/", reg.Check.HTTP)
}

func TestRegistrationExplicitID(t *testing.T) {
	reg := Registration("Orders API", conf.Registry{
		ServiceID:   "orders-api-1",
		ServiceHost: "10.0.0.5",
		ServicePort: 9000,
	})

	assert.Equal(t, "orders-api-1", reg.ID)
	assert.Equal(t, "10.0.0.5", reg.Address)
	assert.Equal(t, "http://10.0.0.5:9000/", reg.Check.HTTP)
}

func TestNewConsulRegistryRequiresAddress(t *testing.T) {
	_, err := NewConsulRegistry(nil)
	assert.Error(t, err)
}

func TestAdvertiseHostPrefersEnv(t *testing.T) {
	t.Setenv("POD_IP", "")
	t.Setenv("HOST_IP", "10.1.2.3")
	t.Setenv("SERVICE_HOST", "10.9.9.9")
	assert.Equal(t, "10.1.2.3", AdvertiseHost())
}

func TestAdvertiseHostFallback(t *testing.T) {
	for _, k := range hostEnvKeys {
		t.Setenv(k, "")
	}
	assert.NotEmpty(t, AdvertiseHost())
}
