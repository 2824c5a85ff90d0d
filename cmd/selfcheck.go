package main

import (
	"context"
	"fmt"
	"net"

	"product_service/internal/clients"

	"github.com/sirupsen/logrus"
)

// localBaseURL turns a listen address such as ":8081" into a URL this
// process can dial.
func localBaseURL(addr string) (string, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "", fmt.Errorf("invalid listen address %q: %w", addr, err)
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port), nil
}

// selfCheck lists products through the public HTTP API.
func selfCheck(ctx context.Context, client clients.ProductClient, logger *logrus.Logger) error {
	products, err := client.List(ctx)
	if err != nil {
		return fmt.Errorf("self-check failed: %w", err)
	}
	logger.Infof("Self-check: product API answered with %d products", len(products))
	return nil
}
