package classifier

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// preprocess decodes image bytes and turns them into the model's feature
// vector: the image is converted to three-channel RGB, resized to the
// square input resolution, intensities scaled to [0,1], then mean-pooled
// into a gridSize x gridSize grid of per-channel values.
//
// imaging.Resize returns NRGBA regardless of the source color mode, which
// covers the single-channel and four-channel conversion cases.
func preprocess(imageData []byte, inputSize, gridSize int) ([]float64, error) {
	img, err := imaging.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	resized := imaging.Resize(img, inputSize, inputSize, imaging.Lanczos)

	cell := inputSize / gridSize
	if cell == 0 {
		return nil, fmt.Errorf("grid size %d exceeds input size %d", gridSize, inputSize)
	}

	features := make([]float64, 0, gridSize*gridSize*3)
	for gy := 0; gy < gridSize; gy++ {
		for gx := 0; gx < gridSize; gx++ {
			var sumR, sumG, sumB float64
			for y := gy * cell; y < (gy+1)*cell; y++ {
				for x := gx * cell; x < (gx+1)*cell; x++ {
					offset := resized.PixOffset(x, y)
					sumR += float64(resized.Pix[offset])
					sumG += float64(resized.Pix[offset+1])
					sumB += float64(resized.Pix[offset+2])
				}
			}
			n := float64(cell * cell * 255)
			features = append(features, sumR/n, sumG/n, sumB/n)
		}
	}

	return features, nil
}
