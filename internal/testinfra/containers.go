// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

//go:build integration

// Package testinfra starts the backing services used by integration tests.
//
// Every helper needs a Docker daemon; call SkipIfNoDocker first. Run with:
//
//	go test -tags integration ./...
package testinfra

import (
	"context"
	"fmt"
	"net"
	"os/exec"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	DefaultPostgresImage = "postgres:16-alpine"
	DefaultNATSImage     = "nats:2.10-alpine"
	DefaultRedisImage    = "redis:7-alpine"

	startTimeout = 60 * time.Second
)

// SkipIfNoDocker skips the test if Docker is not available.
func SkipIfNoDocker(t *testing.T) {
	t.Helper()
	if !IsDockerAvailable() {
		t.Skip("Skipping test: Docker not available")
	}
}

// IsDockerAvailable checks if the Docker daemon is reachable.
func IsDockerAvailable() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return exec.CommandContext(ctx, "docker", "info").Run() == nil
}

// CleanupContainer terminates a container and logs failures.
func CleanupContainer(t *testing.T, ctx context.Context, container testcontainers.Container) {
	t.Helper()
	if container != nil {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	}
}

// Service is a started container plus the address clients should use.
type Service struct {
	testcontainers.Container

	// Endpoint is host:port of the exposed port.
	Endpoint string
}

func start(ctx context.Context, req testcontainers.ContainerRequest) (testcontainers.Container, error) {
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s container: %w", req.Image, err)
	}
	return container, nil
}

// newService resolves host and mapped port. The container is terminated on
// failure.
func newService(ctx context.Context, container testcontainers.Container, mappedPort func() (string, error)) (*Service, error) {
	host, err := container.Host(ctx)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get container host: %w", err)
	}
	port, err := mappedPort()
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get mapped port: %w", err)
	}
	return &Service{Container: container, Endpoint: net.JoinHostPort(host, port)}, nil
}

// PostgresContainer is a throwaway PostgreSQL server.
type PostgresContainer struct {
	*Service

	// DSN is a postgres:// URL for the test database.
	DSN string
}

// NewPostgresContainer starts PostgreSQL with database, user and password
// all set to "nexus".
func NewPostgresContainer(ctx context.Context) (*PostgresContainer, error) {
	container, err := start(ctx, testcontainers.ContainerRequest{
		Image:        DefaultPostgresImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "nexus",
			"POSTGRES_USER":     "nexus",
			"POSTGRES_PASSWORD": "nexus",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithStartupTimeout(startTimeout),
	})
	if err != nil {
		return nil, err
	}
	svc, err := newService(ctx, container, func() (string, error) {
		p, err := container.MappedPort(ctx, "5432")
		return p.Port(), err
	})
	if err != nil {
		return nil, err
	}
	return &PostgresContainer{
		Service: svc,
		DSN:     fmt.Sprintf("postgres://nexus:nexus@%s/nexus?sslmode=disable", svc.Endpoint),
	}, nil
}

// NewNATSContainer starts a NATS server with JetStream enabled.
// The returned Endpoint is host:port; prefix it with nats://.
func NewNATSContainer(ctx context.Context) (*Service, error) {
	container, err := start(ctx, testcontainers.ContainerRequest{
		Image:        DefaultNATSImage,
		ExposedPorts: []string{"4222/tcp"},
		Cmd:          []string{"-js"},
		WaitingFor:   wait.ForListeningPort("4222/tcp").WithStartupTimeout(startTimeout),
	})
	if err != nil {
		return nil, err
	}
	return newService(ctx, container, func() (string, error) {
		p, err := container.MappedPort(ctx, "4222")
		return p.Port(), err
	})
}

// NewRedisContainer starts a Redis server.
func NewRedisContainer(ctx context.Context) (*Service, error) {
	container, err := start(ctx, testcontainers.ContainerRequest{
		Image:        DefaultRedisImage,
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(startTimeout),
	})
	if err != nil {
		return nil, err
	}
	return newService(ctx, container, func() (string, error) {
		p, err := container.MappedPort(ctx, "6379")
		return p.Port(), err
	})
}
