package data

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// numPixels is the flattened size of one 28x28 digit image.
const numPixels = 28 * 28

// LoadIDX loads a digit dataset partition from official IDX binary files.
//
// Parameters:
//   - dataDir: directory containing the IDX files
//   - train: if true, load the training set, else the test set
//   - maxSamples: maximum number of samples to load (0 = all)
//
// Expected files in dataDir:
//   - train-images-idx3-ubyte (or t10k-images-idx3-ubyte for test)
//   - train-labels-idx1-ubyte (or t10k-labels-idx1-ubyte for test)
//
// Pixels are normalized from 0-255 to [0, 1].
func LoadIDX(dataDir string, train bool, maxSamples int) (*Dataset, error) {
	var imageFile, labelFile string

	if train {
		imageFile = filepath.Join(dataDir, "train-images-idx3-ubyte")
		labelFile = filepath.Join(dataDir, "train-labels-idx1-ubyte")
	} else {
		imageFile = filepath.Join(dataDir, "t10k-images-idx3-ubyte")
		labelFile = filepath.Join(dataDir, "t10k-labels-idx1-ubyte")
	}

	imagesRaw, err := readIDXImages(imageFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load images: %w", err)
	}

	labelsRaw, err := readIDXLabels(labelFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load labels: %w", err)
	}

	if len(imagesRaw) != len(labelsRaw) {
		return nil, fmt.Errorf("image count (%d) != label count (%d)", len(imagesRaw), len(labelsRaw))
	}

	numSamples := len(imagesRaw)
	if maxSamples > 0 && numSamples > maxSamples {
		numSamples = maxSamples
	}

	images := make([][]float32, numSamples)
	labels := make([]int32, numSamples)

	for i := 0; i < numSamples; i++ {
		images[i] = make([]float32, len(imagesRaw[i]))
		for j, px := range imagesRaw[i] {
			images[i][j] = float32(px) / 255.0
		}
		labels[i] = int32(labelsRaw[i])
	}

	return &Dataset{Images: images, Labels: labels}, nil
}

// readIDXImages reads an IDX image file.
//
// IDX file format for images:
//
//	magic number: 0x00000803 (2051)
//	number of images: 4 bytes
//	number of rows: 4 bytes (28)
//	number of cols: 4 bytes (28)
//	pixel data: unsigned bytes (0-255)
func readIDXImages(filename string) ([][]byte, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var magic uint32
	if err := binary.Read(file, binary.BigEndian, &magic); err != nil {
		return nil, fmt.Errorf("failed to read magic: %w", err)
	}
	if magic != 2051 {
		return nil, fmt.Errorf("invalid magic number: got %d, want 2051", magic)
	}

	var numImages, numRows, numCols uint32
	if err := binary.Read(file, binary.BigEndian, &numImages); err != nil {
		return nil, err
	}
	if err := binary.Read(file, binary.BigEndian, &numRows); err != nil {
		return nil, err
	}
	if err := binary.Read(file, binary.BigEndian, &numCols); err != nil {
		return nil, err
	}

	imageSize := int(numRows * numCols)
	images := make([][]byte, numImages)

	for i := range images {
		images[i] = make([]byte, imageSize)
		if _, err := io.ReadFull(file, images[i]); err != nil {
			return nil, fmt.Errorf("failed to read image %d: %w", i, err)
		}
	}

	return images, nil
}

// readIDXLabels reads an IDX label file.
//
// IDX file format for labels:
//
//	magic number: 0x00000801 (2049)
//	number of labels: 4 bytes
//	label data: unsigned bytes (0-9)
func readIDXLabels(filename string) ([]byte, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var magic uint32
	if err := binary.Read(file, binary.BigEndian, &magic); err != nil {
		return nil, fmt.Errorf("failed to read magic: %w", err)
	}
	if magic != 2049 {
		return nil, fmt.Errorf("invalid magic number: got %d, want 2049", magic)
	}

	var numLabels uint32
	if err := binary.Read(file, binary.BigEndian, &numLabels); err != nil {
		return nil, err
	}

	labels := make([]byte, numLabels)
	if _, err := io.ReadFull(file, labels); err != nil {
		return nil, fmt.Errorf("failed to read labels: %w", err)
	}

	return labels, nil
}
