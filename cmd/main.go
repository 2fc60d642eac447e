package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/airbusgeo/godal"
	"github.com/common-nighthawk/go-figure"
	bannercolor "github.com/fatih/color"
	"github.com/joho/godotenv"

	"github.com/driftwatch/driftwatch-research-cli/internal/delivery"
	"github.com/driftwatch/driftwatch-research-cli/internal/ml"
	"github.com/driftwatch/driftwatch-research-cli/internal/notification"
	"github.com/driftwatch/driftwatch-research-cli/internal/properties"
	"github.com/driftwatch/driftwatch-research-cli/internal/sentinel"
	"github.com/driftwatch/driftwatch-research-cli/internal/usecase"
)

func printBanner() {
	figure1 := figure.NewFigure("Driftwatch", "isometric1", true)
	figure2 := figure.NewFigure("CLI", "isometric1", true)
	bannercolor.Cyan(figure1.String())
	bannercolor.Cyan(figure2.String())
	fmt.Println()
}

func selectScene() (string, bool) {
	scenes, err := sentinel.ListScenes()
	if err != nil {
		fmt.Printf("\n\033[31mError reading tiles folder: %s\033[0m\n", err.Error())
		return "", false
	}
	if len(scenes) == 0 {
		fmt.Printf("\n\033[31mNo scenes found. Download demo tiles first.\033[0m\n")
		return "", false
	}

	fmt.Println("\033[32m\nAvailable scenes:\033[0m")
	for i, scene := range scenes {
		fmt.Printf("\033[32m%d. %s\033[0m\n", i+1, scene)
	}

	fmt.Print("\033[34mEnter the number of the scene you want to analyze: \033[0m")
	var choice int
	if _, err := fmt.Scan(&choice); err != nil || choice < 1 || choice > len(scenes) {
		fmt.Printf("\n\033[31mInvalid choice. Please select a valid scene number.\033[0m\n")
		return "", false
	}
	return scenes[choice-1], true
}

func loadPredictor() (*ml.OnnxPredictor, bool) {
	modelPath, err := ml.EnsureCheckpoint()
	if err != nil {
		fmt.Printf("\n\033[31mError fetching model checkpoint: %s\033[0m\n", err.Error())
		return nil, false
	}

	predictor, err := ml.NewOnnxPredictor(modelPath)
	if err != nil {
		fmt.Printf("\n\033[31mError loading model: %s\033[0m\n", err.Error())
		return nil, false
	}
	return predictor, true
}

func initCLI() {
	defer func() {
		if r := recover(); r != nil {
			pc, file, line, ok := runtime.Caller(3)
			var location string
			if ok {
				fn := runtime.FuncForPC(pc)
				location = fmt.Sprintf("%s:%d in %s", file, line, fn.Name())
			} else {
				location = "Unknown location"
			}

			fmt.Printf("\n\033[31mPANIC: %v\033[0m\n", r)
			fmt.Printf("\033[31mLocation: %s\033[0m\n", location)
			fmt.Printf("\033[31mPlease check the input and try again.\033[0m\n")
			fmt.Printf("\033[31mExiting...\033[0m\n")

			stack := debug.Stack()
			errMessage := fmt.Sprintf("Driftwatch CLI panic:\n\n%v\n\nLocation: %s\n\nStack trace:\n%s", r, location, stack)
			err := notification.SendDiscordErrorNotification(errMessage)
			if err != nil {
				fmt.Printf("\033[31mFailed to send notification: %s\033[0m\n", err.Error())
			}
		}
	}()
	printBanner()

	ctx := context.Background()

	for {
		fmt.Println("\033[34m===================\033[0m")
		fmt.Println("\033[34m1. Predict a full scene\033[0m")
		fmt.Println("\033[34m2. Run use cases\033[0m")
		fmt.Println("\033[34m3. Download demo tiles\033[0m")
		fmt.Println("\033[34m4. Fetch a scene from Copernicus\033[0m")
		fmt.Println("\033[34m5. List downloaded scenes\033[0m")
		fmt.Println("\033[34m6. Exit\033[0m")
		fmt.Println("\033[34mEnter your choice:\033[0m")

		var choice int
		_, err := fmt.Scan(&choice)
		if err != nil {
			fmt.Printf("\n\033[31mInvalid input. Please enter a number.\033[0m\n")

			fmt.Scanln()
			continue
		}

		switch choice {
		case 1:
			scene, ok := selectScene()
			if !ok {
				continue
			}

			predictor, ok := loadPredictor()
			if !ok {
				continue
			}

			scenePath := filepath.Join(properties.TilesPath(), scene)
			result, err := delivery.PredictScene(ctx, predictor, scenePath, properties.PredictionsPath(), delivery.FullSceneThreshold)
			if err != nil {
				fmt.Printf("\n\033[31mError predicting scene: %s\033[0m\n", err.Error())
				notification.SendDiscordErrorNotification(fmt.Sprintf("Driftwatch CLI\n\nError predicting scene: %s", err.Error()))
				continue
			}

			fmt.Printf("\n\033[32mSuccessful analysis!\n %d pixels flagged\n Probability raster: %s\n Classification raster: %s\n Quicklook: %s\033[0m\n",
				result.Detections, result.ProbabilityPath, result.ClassificationPath, result.QuicklookPath)
			notification.SendDiscordSuccessNotification(fmt.Sprintf("Driftwatch CLI\n\nSuccessful analysis!\nScene: %s\nPixels flagged: %d", scene, result.Detections))
		case 2:
			fmt.Println("\033[33m\nWarning:\033[0m")
			fmt.Println("\033[33m- A '.csv' use-case table should be present in the data/usecases folder.\033[0m")
			fmt.Println("\033[33m- Each row names a scene and a col/row window inside it.\n\033[0m")

			reader := bufio.NewReader(os.Stdin)
			fmt.Print("\033[34mEnter the use-case file name: \033[0m")
			fileName, _ := reader.ReadString('\n')
			fileName = strings.TrimSpace(fileName)
			if !strings.HasSuffix(fileName, ".csv") {
				fileName += ".csv"
			}

			useCases, err := usecase.LoadUseCases(filepath.Join(properties.UseCasesPath(), fileName))
			if err != nil {
				fmt.Printf("\n\033[31mError loading use cases: %s\033[0m\n", err.Error())
				continue
			}

			predictor, ok := loadPredictor()
			if !ok {
				continue
			}

			results, err := delivery.RunUseCases(ctx, predictor, useCases)
			if err != nil {
				fmt.Printf("\n\033[31mError running use cases: %s\033[0m\n", err.Error())
				notification.SendDiscordErrorNotification(fmt.Sprintf("Driftwatch CLI\n\nError running use cases: %s", err.Error()))
				continue
			}

			fmt.Printf("\n\033[32m%d use cases processed successfully!\033[0m\n", len(results))
			notification.SendDiscordSuccessNotification(fmt.Sprintf("Driftwatch CLI\n\n%d use cases processed successfully!", len(results)))
		case 3:
			manifest, err := sentinel.FetchTileManifest()
			if err != nil {
				fmt.Printf("\n\033[31mError fetching tile manifest: %s\033[0m\n", err.Error())
				continue
			}

			if err := sentinel.DownloadTiles(manifest); err != nil {
				fmt.Printf("\n\033[31mError downloading tiles: %s\033[0m\n", err.Error())
				continue
			}
			fmt.Printf("\n\033[32mDemo tiles downloaded to %s\033[0m\n", properties.TilesPath())
		case 4:
			fmt.Println("\033[33m\nWarning:\033[0m")
			fmt.Println("\033[33m- A '.geojson' file with the site name should be present in the data/geojsons folder.\n\033[0m")

			reader := bufio.NewReader(os.Stdin)
			fmt.Print("\033[34mEnter the site name: \033[0m")
			site, _ := reader.ReadString('\n')
			site = strings.TrimSpace(site)

			fmt.Print("\033[34mEnter the date to fetch (YYYY-MM-DD): \033[0m")
			date, _ := reader.ReadString('\n')
			date = strings.TrimSpace(date)
			day, err := time.Parse("2006-01-02", date)
			if err != nil {
				fmt.Printf("\n\033[31mInvalid date: %s\033[0m\n", err.Error())
				continue
			}

			geometry, err := sentinel.LoadAOIGeometry(site)
			if err != nil {
				fmt.Printf("\n\033[31mError loading AOI: %s\033[0m\n", err.Error())
				continue
			}

			if lat, lon, err := sentinel.CentroidLatLon(geometry); err == nil {
				fmt.Printf("\033[32mAOI centroid: %.5f, %.5f\033[0m\n", lat, lon)
			}

			imageBytes, err := sentinel.RequestScene(ctx, geometry, day, day.Add(time.Hour*23+time.Minute*59+time.Second*59))
			if err != nil {
				fmt.Printf("\n\033[31mError requesting scene: %s\033[0m\n", err.Error())
				notification.SendDiscordErrorNotification(fmt.Sprintf("Driftwatch CLI\n\nError requesting scene: %s", err.Error()))
				continue
			}

			scenePath := filepath.Join(properties.TilesPath(), fmt.Sprintf("%s_%s.tif", site, day.Format("2006-01-02")))
			if err := os.WriteFile(scenePath, imageBytes, 0644); err != nil {
				fmt.Printf("\n\033[31mError writing scene file: %s\033[0m\n", err.Error())
				continue
			}
			fmt.Printf("\n\033[32mScene saved to %s\033[0m\n", scenePath)
		case 5:
			scenes, err := sentinel.ListScenes()
			if err != nil {
				fmt.Printf("\n\033[31mError reading tiles folder: %s\033[0m\n", err.Error())
				continue
			}

			fmt.Println("\033[33m\nWarning:\033[0m")
			fmt.Println("\033[33mTo add a scene manually, place its '.tif' file in the data/tiles folder.\033[0m")

			fmt.Println("\n\033[32mAvailable scenes:\033[0m")
			for _, scene := range scenes {
				fmt.Printf("\033[32m- %s\033[0m\n", scene)
			}
		case 6:
			println("Exiting...")
			return
		default:
			println("Invalid choice. Please try again.")
		}
	}
}

func main() {
	err := godotenv.Load("../../.env")
	if err != nil {
		err := godotenv.Load("../.env")
		if err != nil {
			err = godotenv.Load(".env")
			if err != nil {
				fmt.Println("\033[33mNo .env file found, relying on the environment\033[0m")
			}
		}
	}

	godal.RegisterAll()
	initCLI()
}
