package compressors_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfcompressor/internal/domain/entities"
	"pdfcompressor/internal/infrastructure/compressors"
	"pdfcompressor/internal/testutil"
)

func compressWithPDFCPU(t *testing.T, input []byte) (*entities.CompressionResult, []byte) {
	t.Helper()

	compressor := compressors.NewPDFCPUCompressor(compressors.NewImageNormalizer(), nil)

	var out bytes.Buffer
	result, err := compressor.Compress(bytes.NewReader(input), &out, entities.NewCompressionConfig(entities.AlgorithmPDFCPU))
	require.NoError(t, err)
	return result, out.Bytes()
}

func TestPDFCPUCompressor_ResizesLargeJPEG(t *testing.T) {
	input := testutil.BuildPDF(testutil.Page{"Im0": testutil.JPEGImage(2000, 1000)})

	result, output := compressWithPDFCPU(t, input)
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Pages)
	assert.Equal(t, 1, result.ImagesFound)
	assert.Equal(t, 1, result.ImagesResized)

	images, err := testutil.InspectXObjects(output)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, 1000, images[0].Width)
	assert.Equal(t, 500, images[0].Height)
	assert.Equal(t, "DCTDecode", images[0].Filter)
}

func TestPDFCPUCompressor_FlattensTransparentImage(t *testing.T) {
	input := testutil.BuildPDF(testutil.Page{"Im0": testutil.TransparentImage(500, 500)})

	result, output := compressWithPDFCPU(t, input)
	assert.Equal(t, 1, result.ImagesFound)
	assert.Equal(t, 0, result.ImagesResized)

	images, err := testutil.InspectXObjects(output)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, 500, images[0].Width)
	assert.Equal(t, 500, images[0].Height)
	assert.Equal(t, "DCTDecode", images[0].Filter)
	assert.False(t, images[0].HasSMask)
}

func TestPDFCPUCompressor_SharedImageProcessedOnce(t *testing.T) {
	shared := testutil.JPEGImage(1500, 3000)
	input := testutil.BuildPDF(
		testutil.Page{"Im0": shared},
		testutil.Page{"Im0": shared},
	)

	result, output := compressWithPDFCPU(t, input)
	assert.Equal(t, 2, result.Pages)
	assert.Equal(t, 1, result.ImagesFound)

	images, err := testutil.InspectXObjects(output)
	require.NoError(t, err)
	require.Len(t, images, 2)
	for _, img := range images {
		assert.Equal(t, 500, img.Width)
		assert.Equal(t, 1000, img.Height)
	}
	assert.Equal(t, images[0].ObjNr, images[1].ObjNr)
}

func TestPDFCPUCompressor_SkipsForms(t *testing.T) {
	input := testutil.BuildPDF(testutil.Page{
		"Fm0": testutil.FormXObject(),
		"Im0": testutil.JPEGImage(300, 300),
	})

	result, output := compressWithPDFCPU(t, input)
	assert.Equal(t, 1, result.ImagesFound)
	assert.Equal(t, 1, result.FormsSkipped)

	xobjects, err := testutil.InspectXObjects(output)
	require.NoError(t, err)
	require.Len(t, xobjects, 2)
	assert.Equal(t, "Form", xobjects[0].Subtype)
	assert.Len(t, testutil.Images(xobjects), 1)
}

func TestPDFCPUCompressor_PageWithoutImages(t *testing.T) {
	input := testutil.BuildPDF(testutil.Page{})

	result, output := compressWithPDFCPU(t, input)
	assert.Equal(t, 0, result.ImagesFound)
	assert.NotEmpty(t, output)
}

func TestPDFCPUCompressor_InvalidInput(t *testing.T) {
	compressor := compressors.NewPDFCPUCompressor(compressors.NewImageNormalizer(), nil)

	var out bytes.Buffer
	_, err := compressor.Compress(bytes.NewReader([]byte("definitely not a pdf")), &out, entities.NewCompressionConfig(""))
	assert.True(t, errors.Is(err, entities.ErrInvalidFileFormat))
	assert.Zero(t, out.Len())
}
