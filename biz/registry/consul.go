package registry

import (
	"errors"
	"fmt"

	"orders-hertz/conf"

	"github.com/hashicorp/consul/api"
)

const ServiceName = "orders-api"

// ConsulRegistry registers this process with the first reachable Consul agent.
type ConsulRegistry struct {
	client *api.Client
}

// NewConsulRegistry tries each address in turn and keeps the first one
// whose agent answers.
func NewConsulRegistry(addrs []string) (*ConsulRegistry, error) {
	if len(addrs) == 0 {
		return nil, errors.New("no consul address configured")
	}
	var lastErr error
	for _, addr := range addrs {
		cfg := api.DefaultConfig()
		cfg.Address = addr
		cli, err := api.NewClient(cfg)
		if err != nil {
			lastErr = err
			continue
		}
		if _, err := cli.Agent().Self(); err != nil {
			lastErr = err
			continue
		}
		return &ConsulRegistry{client: cli}, nil
	}
	return nil, fmt.Errorf("all consul addresses failed: %w", lastErr)
}

// Registration builds the agent registration with an HTTP check on GET /.
func Registration(svc string, cfg conf.Registry) *api.AgentServiceRegistration {
	host := cfg.ServiceHost
	if host == "" {
		host = AdvertiseHost()
	}
	id := cfg.ServiceID
	if id == "" {
		id = fmt.Sprintf("%s-%s-%d", ServiceName, host, cfg.ServicePort)
	}
	return &api.AgentServiceRegistration{
		ID:      id,
		Name:    ServiceName,
		Address: host,
		Port:    cfg.ServicePort,
		Meta:    map[string]string{"title": svc},
		Check: &api.AgentServiceCheck{
			HTTP:                           fmt.Sprintf("http://%s:%d/", host, cfg.ServicePort),
			Interval:                       "10s",
			Timeout:                        "2s",
			DeregisterCriticalServiceAfter: "1m",
		},
	}
}

func (r *ConsulRegistry) Register(reg *api.AgentServiceRegistration) error {
	return r.client.Agent().ServiceRegister(reg)
}

func (r *ConsulRegistry) Deregister(id string) error {
	return r.client.Agent().ServiceDeregister(id)
}
