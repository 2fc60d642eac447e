package main

import (
	"fmt"
	"log"
	"os"

	"github.com/airbusgeo/godal"
	"github.com/joho/godotenv"

	"github.com/driftwatch/driftwatch-research-cli/internal/properties"
	"github.com/driftwatch/driftwatch-research-cli/internal/sentinel"
)

func main() {
	fmt.Println("=== Driftwatch Test Tile Download ===")
	fmt.Println()

	if err := godotenv.Load("../../.env"); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
		fmt.Println("Make sure you have set the required environment variables:")
		fmt.Println("- TILE_MANIFEST_URL")
		fmt.Println("- ROOT_PATH")
		fmt.Println()
	}

	if os.Getenv("ROOT_PATH") == "" {
		rootPath, err := os.Getwd()
		if err != nil {
			log.Fatalf("Failed to resolve working directory: %v", err)
		}
		os.Setenv("ROOT_PATH", rootPath)
		fmt.Printf("Setting ROOT_PATH to: %s\n", rootPath)
	}

	godal.RegisterAll()

	fmt.Println("Fetching tile manifest...")
	manifest, err := sentinel.FetchTileManifest()
	if err != nil {
		log.Fatalf("Failed to fetch tile manifest: %v", err)
	}
	fmt.Printf("✓ Manifest lists %d tiles\n", len(manifest))

	if err := sentinel.DownloadTiles(manifest); err != nil {
		log.Fatalf("Failed to download tiles: %v", err)
	}

	fmt.Printf("\n=== Results ===\n")
	scenes, err := sentinel.ListScenes()
	if err != nil {
		log.Fatalf("Failed to list scenes: %v", err)
	}
	fmt.Printf("Scenes on disk: %d\n", len(scenes))

	for _, scene := range scenes {
		path := fmt.Sprintf("%s/%s", properties.TilesPath(), scene)
		ds, err := godal.Open(path)
		if err != nil {
			fmt.Printf("- %s (unreadable: %v)\n", scene, err)
			continue
		}

		fmt.Printf("- %s", scene)
		if bounds, err := ds.Bounds(); err == nil {
			fmt.Printf(" (bounds: %.6f, %.6f, %.6f, %.6f)", bounds[0], bounds[1], bounds[2], bounds[3])
		}
		structure := ds.Structure()
		fmt.Printf(" (size: %dx%d) (bands: %d)", structure.SizeX, structure.SizeY, structure.NBands)
		fmt.Println()
		ds.Close()
	}

	fmt.Println("\n✓ Test completed successfully!")
}
