// Package redis wraps the go-redis client with the connection plumbing the
// rest of the module relies on: a retrying Connect driven by env-loadable
// Config, and a Healthcheck closure for HTTP probes.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		// terminate: the store is the only durable collaborator
//	}
//	defer client.Close()
//
// The client is acquired once at process start and released at shutdown;
// nothing else in the module manages connections.
package redis
