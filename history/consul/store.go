package consul

import (
	"context"
	"slices"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/hashicorp/consul/api"
	"github.com/mwantia/commands/history"
)

// ConsulStore keeps one KV entry per invocation under a prefix. Entry IDs
// are time-ordered, so key order is invocation order.
//
// Consul KV has a 512KB limit per value, which is far above any command
// line a console accepts.
type ConsulStore struct {
	client *api.Client
	kv     *api.KV

	config *ConsulStoreConfig
}

// ConsulStoreConfig contains configuration options for the Consul store
type ConsulStoreConfig struct {
	// Address of the Consul server (default: "127.0.0.1:8500")
	Address string `yaml:"address"`

	// Token for Consul ACL authentication (optional)
	Token string `yaml:"token"`

	// Datacenter to use (optional)
	Datacenter string `yaml:"datacenter"`

	// Prefix for all keys in Consul KV (default: "commands/history")
	Prefix string `yaml:"prefix"`
}

func NewConsulStore(config *ConsulStoreConfig) (*ConsulStore, error) {
	if config == nil {
		config = &ConsulStoreConfig{}
	}

	if config.Address == "" {
		config.Address = "127.0.0.1:8500"
	}
	if config.Prefix == "" {
		config.Prefix = "commands/history"
	}
	config.Prefix = strings.Trim(config.Prefix, "/") + "/"

	clientConfig := api.DefaultConfig()
	clientConfig.Address = config.Address
	if config.Token != "" {
		clientConfig.Token = config.Token
	}
	if config.Datacenter != "" {
		clientConfig.Datacenter = config.Datacenter
	}

	client, err := api.NewClient(clientConfig)
	if err != nil {
		return nil, err
	}

	return &ConsulStore{
		client: client,
		kv:     client.KV(),
		config: config,
	}, nil
}

// Name returns the identifier name defined for this store
func (*ConsulStore) Name() string {
	return "consul"
}

func (cs *ConsulStore) Open(ctx context.Context) error {
	_, err := cs.client.Status().Leader()
	return err
}

// Close is a no-op: the Consul client is stateless.
func (cs *ConsulStore) Close(ctx context.Context) error {
	return nil
}

func (cs *ConsulStore) Append(ctx context.Context, entry history.Entry) error {
	value, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	pair := &api.KVPair{
		Key:   cs.config.Prefix + entry.ID.String(),
		Value: value,
	}

	_, err = cs.kv.Put(pair, (&api.WriteOptions{}).WithContext(ctx))
	return err
}

func (cs *ConsulStore) List(ctx context.Context, prefix string, limit int) ([]history.Entry, error) {
	pairs, _, err := cs.kv.List(cs.config.Prefix, (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return nil, err
	}

	slices.SortFunc(pairs, func(a, b *api.KVPair) int {
		return strings.Compare(b.Key, a.Key)
	})

	entries := make([]history.Entry, 0)
	for _, pair := range pairs {
		var entry history.Entry
		if err := json.Unmarshal(pair.Value, &entry); err != nil {
			return nil, err
		}

		if !history.Matches(entry, prefix) {
			continue
		}

		entries = append(entries, entry)
		if limit > 0 && len(entries) >= limit {
			break
		}
	}

	return entries, nil
}
