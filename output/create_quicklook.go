package output

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"

	"github.com/fogleman/gg"

	"github.com/driftwatch/driftwatch-research-cli/internal/properties"
	"github.com/driftwatch/driftwatch-research-cli/internal/sentinel"
)

// CreateQuicklook renders the scene's NIR band as a grayscale background and
// marks classified floating-object pixels on top of it.
func CreateQuicklook(scene, classification *sentinel.Raster, outputImagePath string) error {
	if !strings.HasSuffix(outputImagePath, ".png") {
		outputImagePath += ".png"
	}

	nir, err := scene.BandByLabel("B8")
	if err != nil {
		return fmt.Errorf("failed to pick quicklook background band: %v", err)
	}

	width, height := scene.Width, scene.Height
	dc := gg.NewContext(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			gray := nir[y*width+x]
			if gray < 0 {
				gray = 0
			} else if gray > 1 {
				gray = 1
			}
			dc.SetRGB(gray, gray, gray)
			dc.SetPixel(x, y)
		}
	}

	debris := properties.ColorMap["debris"]
	dc.SetRGB255(int(debris.R), int(debris.G), int(debris.B))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if classification.Data[y*width+x] > 0 {
				dc.DrawCircle(float64(x), float64(y), 1.5)
			}
		}
	}
	dc.Fill()

	if err := dc.SavePNG(outputImagePath); err != nil {
		return fmt.Errorf("failed to save quicklook image: %v", err)
	}

	fmt.Println("Quicklook image created successfully at", outputImagePath)
	return nil
}

// CreateProbabilityImage renders a probability raster as a blue-to-red ramp.
func CreateProbabilityImage(prob *sentinel.Raster, outputImagePath string) error {
	if !strings.HasSuffix(outputImagePath, ".png") {
		outputImagePath += ".png"
	}

	width, height := prob.Width, prob.Height
	water := properties.ColorMap["water"]
	debris := properties.ColorMap["debris"]

	newImage := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := prob.Data[y*width+x]
			if p < 0 {
				p = 0
			} else if p > 1 {
				p = 1
			}
			newImage.Set(x, y, color.RGBA{
				R: uint8(float64(water.R) + p*(float64(debris.R)-float64(water.R))),
				G: uint8(float64(water.G) + p*(float64(debris.G)-float64(water.G))),
				B: uint8(float64(water.B) + p*(float64(debris.B)-float64(water.B))),
				A: 255,
			})
		}
	}

	outputFile, err := os.Create(outputImagePath)
	if err != nil {
		return fmt.Errorf("failed to create PNG file: %v", err)
	}
	defer outputFile.Close()

	if err := png.Encode(outputFile, newImage); err != nil {
		return fmt.Errorf("failed to encode PNG file: %v", err)
	}

	fmt.Println("Probability image created successfully at", outputImagePath)
	return nil
}
