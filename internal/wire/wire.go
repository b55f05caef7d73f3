// Package wire provides dependency injection for the application.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"log"
	"os"
	"sync"
	"time"

	"github.com/example/agencyos/internal/adapters/remote"
	"github.com/example/agencyos/internal/adapters/sqlite"
	"github.com/example/agencyos/internal/app"
	"github.com/example/agencyos/internal/config"
	"github.com/example/agencyos/internal/db"
	"github.com/example/agencyos/internal/ports/primary"
)

var (
	clientService     primary.ClientService
	taskService       primary.TaskService
	postService       primary.PostService
	onboardingService primary.OnboardingService
	vaultService      primary.VaultService
	workspaceService  primary.WorkspaceService
	once              sync.Once
)

// ClientService returns the singleton ClientService instance.
func ClientService() primary.ClientService {
	once.Do(initServices)
	return clientService
}

// TaskService returns the singleton TaskService instance.
func TaskService() primary.TaskService {
	once.Do(initServices)
	return taskService
}

// PostService returns the singleton PostService instance.
func PostService() primary.PostService {
	once.Do(initServices)
	return postService
}

// OnboardingService returns the singleton OnboardingService instance.
func OnboardingService() primary.OnboardingService {
	once.Do(initServices)
	return onboardingService
}

// VaultService returns the singleton VaultService instance.
func VaultService() primary.VaultService {
	once.Do(initServices)
	return vaultService
}

// WorkspaceService returns the singleton WorkspaceService instance.
func WorkspaceService() primary.WorkspaceService {
	once.Do(initServices)
	return workspaceService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	store := sqlite.NewSnapshotStore(database)

	// The remote workspace is optional; absent config disables it.
	var remoteURL, remoteKey string
	if cwd, err := os.Getwd(); err == nil {
		if cfg, err := config.LoadConfig(cwd); err == nil {
			remoteURL = cfg.RemoteURL
			remoteKey = cfg.RemoteKey
		}
	}
	remoteStore := remote.NewStore(remoteURL, remoteKey)

	state, err := app.NewStateContainer(context.Background(), store, remoteStore, time.Now)
	if err != nil {
		log.Fatalf("failed to initialize workspace state: %v", err)
	}

	clientService = app.NewClientService(state)
	taskService = app.NewTaskService(state)
	postService = app.NewPostService(state)
	onboardingService = app.NewOnboardingService(state)
	vaultService = app.NewVaultService(state)
	workspaceService = app.NewWorkspaceService(state)
}
