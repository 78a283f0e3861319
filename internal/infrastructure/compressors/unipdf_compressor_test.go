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

func TestUniPDFCompressor_RequiresLicense(t *testing.T) {
	t.Setenv("UNIDOC_LICENSE_API_KEY", "")

	compressor := compressors.NewUniPDFCompressor(compressors.NewImageNormalizer(), nil)
	input := testutil.BuildPDF(testutil.Page{"Im0": testutil.JPEGImage(100, 100)})

	var out bytes.Buffer
	_, err := compressor.Compress(bytes.NewReader(input), &out, entities.NewCompressionConfig(entities.AlgorithmUniPDF))
	assert.True(t, errors.Is(err, entities.ErrLicenseRequired))
	assert.Zero(t, out.Len(), "nothing is written without a license")
}

func TestNewCompressor(t *testing.T) {
	normalizer := compressors.NewImageNormalizer()

	c, err := compressors.NewCompressor(entities.AlgorithmPDFCPU, normalizer, nil)
	require.NoError(t, err)
	assert.IsType(t, &compressors.PDFCPUCompressor{}, c)

	c, err = compressors.NewCompressor("", normalizer, nil)
	require.NoError(t, err)
	assert.IsType(t, &compressors.PDFCPUCompressor{}, c)

	c, err = compressors.NewCompressor(entities.AlgorithmUniPDF, normalizer, nil)
	require.NoError(t, err)
	assert.IsType(t, &compressors.UniPDFCompressor{}, c)

	_, err = compressors.NewCompressor("ghostscript", normalizer, nil)
	assert.True(t, errors.Is(err, entities.ErrUnknownAlgorithm))
}
