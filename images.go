package pdf2text

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// imageDumper extracts embedded images from a document into a directory.
type imageDumper interface {
	ExtractImages(path, dir string, pages []string) error
}

// pdfcpuDumper extracts images with pdfcpu. Pages selects 1-based page
// numbers; nil selects every page.
type pdfcpuDumper struct{}

func (pdfcpuDumper) ExtractImages(path, dir string, pages []string) error {
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrImageExtract, dir, err)
	}
	if err := api.ExtractImagesFile(path, dir, pages, nil); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrImageExtract, path, err)
	}
	return nil
}
