package usecase

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

// UseCase is one row of the use-case table: a named crop window inside a
// downloaded scene.
type UseCase struct {
	Name   string `csv:"name"`
	Scene  string `csv:"scene"`
	Col    int    `csv:"col"`
	Row    int    `csv:"row"`
	Width  int    `csv:"width"`
	Height int    `csv:"height"`
}

func LoadUseCases(filePath string) ([]UseCase, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open use-case file %s: %v", filePath, err)
	}
	defer file.Close()

	var useCases []UseCase
	if err := gocsv.UnmarshalFile(file, &useCases); err != nil {
		return nil, fmt.Errorf("failed to parse use-case file %s: %v", filePath, err)
	}

	for _, uc := range useCases {
		if uc.Name == "" || uc.Scene == "" {
			return nil, fmt.Errorf("use-case file %s has a row without name or scene", filePath)
		}
		if uc.Width <= 0 || uc.Height <= 0 {
			return nil, fmt.Errorf("use case %s has a non-positive window size", uc.Name)
		}
	}

	return useCases, nil
}
