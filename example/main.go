// Example program demonstrating the flowconfig library API.
//
// Run from the repo root of a repository holding .flowconfig/config.yml:
//
//	go run ./example/
//
// With remote mode (set GITHUB_TOKEN first):
//
//	GITHUB_TOKEN=ghp_xxx go run ./example/
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/MyCarrier-DevOps/go-flowconfig/pkg/sdk"
)

func main() {
	ctx := context.Background()
	localConfig(ctx)

	if os.Getenv("GITHUB_TOKEN") != "" {
		remoteConfig(ctx)
	}
}

func localConfig(ctx context.Context) {
	cfg, err := sdk.Load(ctx, "config://", sdk.Options{Path: "."})
	if err != nil {
		log.Fatalf("local load failed: %v", err)
	}

	printConfig("Local", cfg)
}

func remoteConfig(ctx context.Context) {
	cfg, err := sdk.Load(ctx, "branch://main", sdk.Options{
		Owner: "MyCarrier-DevOps",
		Repo:  "go-flowconfig",
		Token: os.Getenv("GITHUB_TOKEN"),
	})
	if err != nil {
		log.Fatalf("remote load failed: %v", err)
	}

	printConfig("Remote", cfg)
}

func printConfig(label string, cfg *sdk.Config) {
	fmt.Printf("=== %s Config ===\n", label)

	digest, err := sdk.Hash(cfg, sdk.HashOptions{Encoding: "digest"})
	if err != nil {
		log.Fatalf("hashing failed: %v", err)
	}
	api, err := sdk.APIVersion(cfg)
	if err != nil {
		log.Fatalf("resolving api version failed: %v", err)
	}
	fmt.Printf("%-12s %s\n", "identifier", cfg.Identifier)
	fmt.Printf("%-12s %s\n", "apiVersion", api)
	fmt.Printf("%-12s %s\n", "digest", digest)

	entries, err := sdk.ResolveVersions(cfg, "develop")
	if err != nil {
		log.Fatalf("resolving versions failed: %v", err)
	}
	for _, e := range entries {
		fmt.Printf("%-30s %-8s %-12s %s\n", strings.Join(e.Path, "/"), e.Kind, e.Name, e.Version)
	}
	fmt.Println()
}
