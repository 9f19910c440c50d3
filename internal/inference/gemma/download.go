package gemma

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"resty.dev/v3"

	"github.com/tonguetip/tonguetip/internal/config"
)

// downloadAndExtract fetches the gzipped model tarball and unpacks it into
// the configured model directory. The archive streams straight into the
// extractor so the compressed file never touches disk.
func downloadAndExtract(ctx context.Context, cfg config.GemmaConfig) error {
	if err := os.MkdirAll(cfg.ModelDirectory, 0755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", cfg.ModelDirectory, err)
	}

	client := resty.New()
	defer client.Close()
	if cfg.Username != "" {
		client.SetBasicAuth(cfg.Username, cfg.Key)
	}

	response, err := client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(cfg.DownloadURL)
	if err != nil {
		return fmt.Errorf("httpClient.Get(%s) > %w", cfg.DownloadURL, err)
	}
	body := response.Body
	defer body.Close()
	if response.IsError() {
		return fmt.Errorf("response error %d downloading model archive", response.StatusCode())
	}

	if err := extractTarGz(body, cfg.ModelDirectory); err != nil {
		return fmt.Errorf("extractTarGz() > %w", err)
	}
	return nil
}

func extractTarGz(archive io.Reader, destination string) error {
	gzipReader, err := gzip.NewReader(archive)
	if err != nil {
		return fmt.Errorf("gzip.NewReader() > %w", err)
	}
	defer gzipReader.Close()

	tarReader := tar.NewReader(gzipReader)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("tarReader.Next() > %w", err)
		}

		target, err := safeJoin(destination, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("os.MkdirAll(%s) > %w", target, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(target), err)
			}
			if err := writeFile(target, tarReader, header.FileInfo().Mode()); err != nil {
				return err
			}
		}
	}
}

// safeJoin rejects archive entries that would escape the destination directory.
func safeJoin(destination, name string) (string, error) {
	target := filepath.Join(destination, name)
	if !strings.HasPrefix(target, filepath.Clean(destination)+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry %q escapes destination directory", name)
	}
	return target, nil
}

func writeFile(target string, content io.Reader, mode os.FileMode) error {
	file, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("os.OpenFile(%s) > %w", target, err)
	}
	defer file.Close()

	if _, err := io.Copy(file, content); err != nil {
		return fmt.Errorf("io.Copy(%s) > %w", target, err)
	}
	return nil
}
